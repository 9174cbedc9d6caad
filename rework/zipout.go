package rework

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	fixzip "github.com/hidez8891/zip"
	"go.uber.org/zap"

	"htmlfix/misc"
	"htmlfix/state"
)

// output delivers reworked pages either into a destination directory tree or
// into a single zip archive when the destination name ends in ".zip". In
// archive mode pages are collected in a temporary file first and the final
// archive is produced on Close.
type output struct {
	dir string

	path    string
	tmpName string
	f       *os.File
	zw      *zip.Writer
	written map[string]struct{}
	fixZip  bool

	overwrite bool
	log       *zap.Logger
}

func newOutput(dst string, env *state.LocalEnv, log *zap.Logger) (*output, error) {
	o := &output{overwrite: env.Overwrite, log: log}

	if !strings.EqualFold(filepath.Ext(dst), ".zip") {
		o.dir = dst
		return o, nil
	}

	if _, err := os.Stat(dst); err == nil {
		if !env.Overwrite {
			return nil, fmt.Errorf("output archive already exists: %s", dst)
		}
		log.Warn("Overwriting existing archive", zap.String("file", dst))
	} else if !os.IsNotExist(err) {
		return nil, err
	} else if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}

	f, err := os.CreateTemp("", misc.GetAppName()+"-*.zip")
	if err != nil {
		return nil, fmt.Errorf("unable to create temporary archive: %w", err)
	}

	o.path = dst
	o.tmpName = f.Name()
	o.f = f
	o.zw = zip.NewWriter(f)
	o.written = make(map[string]struct{})
	o.fixZip = env.Cfg.Pages.FixZip
	return o, nil
}

func (o *output) archive() bool {
	return o.zw != nil
}

// writePage stores rendered page data under the given relative path and
// returns the full name of what has been written for logging.
func (o *output) writePage(rel string, data []byte) (string, error) {
	if o.archive() {
		name := filepath.ToSlash(rel)
		if _, ok := o.written[name]; ok {
			return "", fmt.Errorf("output name already used in archive: %s", name)
		}
		w, err := o.zw.Create(name)
		if err != nil {
			return "", fmt.Errorf("unable to create archive entry: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return "", fmt.Errorf("unable to write archive entry: %w", err)
		}
		o.written[name] = struct{}{}
		return filepath.Join(o.path, rel), nil
	}

	full := filepath.Join(o.dir, rel)
	if _, err := os.Stat(full); err == nil {
		if !o.overwrite {
			return "", fmt.Errorf("output file already exists: %s", full)
		}
		o.log.Warn("Overwriting existing file", zap.String("file", full))
		if err := os.Remove(full); err != nil {
			return "", err
		}
	} else if !os.IsNotExist(err) {
		return "", err
	} else if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return "", fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := os.WriteFile(full, data, 0644); err != nil {
		return "", fmt.Errorf("unable to write output file: %w", err)
	}
	return full, nil
}

// Close finalizes the output archive. In directory mode there is nothing to
// finalize.
func (o *output) Close() error {
	if !o.archive() {
		return nil
	}
	defer os.Remove(o.tmpName)

	if err := o.zw.Close(); err != nil {
		return fmt.Errorf("unable to close output archive: %w", err)
	}
	if err := o.f.Close(); err != nil {
		return fmt.Errorf("unable to finalize temporary archive: %w", err)
	}

	if o.fixZip {
		return copyZipWithoutDataDescriptors(o.tmpName, o.path)
	}
	return copyFile(o.tmpName, o.path)
}

// copyZipWithoutDataDescriptors rewrites an archive dropping data descriptor
// records - some strict consumers refuse archives that carry them.
func copyZipWithoutDataDescriptors(from, to string) error {
	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer out.Close()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	defer w.Close()

	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		// copy zip entry
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer sourceFile.Close()

	destinationFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destinationFile.Close()

	if _, err = io.Copy(destinationFile, sourceFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	if err = destinationFile.Close(); err != nil {
		return fmt.Errorf("failed to close destination file: %w", err)
	}
	return nil
}
