package rework

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"htmlfix/common"
	"htmlfix/state"
)

// RunDump implements the dump command: it parses a single page and renders
// it in the requested format for inspection.
func RunDump(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("dump")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format, err := common.ParseDumpFmt(cmd.String("format"))
	if err != nil {
		log.Warn("Unknown dump format requested, switching to tree", zap.Error(err))
		format = common.DumpFmtTree
	}

	page, err := isPageFile(src)
	if err != nil {
		return fmt.Errorf("unable to check file type: %w", err)
	}
	if !page {
		return fmt.Errorf("input was not recognized as HTML page (%s)", src)
	}

	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open page: %w", err)
	}
	defer file.Close()

	p, err := Prepare(ctx, file, filepath.Base(src), log)
	if err != nil {
		return fmt.Errorf("unable to parse page (%s): %w", src, err)
	}
	if p.Root == nil {
		return fmt.Errorf("page has no top level html element (%s)", src)
	}

	var data []byte
	switch format {
	case common.DumpFmtTree:
		data = []byte(p.Root.String())
	case common.DumpFmtHtml:
		data = []byte(p.Root.HTML())
	case common.DumpFmtResources:
		inv := newInventory(false)
		inv.collect(p, "")
		data = []byte(inv.String())
	}

	out := os.Stdout
	fname := cmd.Args().Get(1)
	if len(fname) > 0 {
		// a directory destination derives the file name from the source
		if fi, err := os.Stat(fname); err == nil && fi.IsDir() {
			base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
			fname = filepath.Join(fname, base+format.Ext())
		}
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	log.Info("Dumping page", zap.Stringer("format", format), zap.String("from", src), zap.String("to", fname))

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write dump: %w", err)
	}
	return nil
}
