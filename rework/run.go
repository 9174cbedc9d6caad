package rework

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"htmlfix/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("process")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")
	setupCodePage(cmd, env, log)

	out, err := newOutput(dst, env, log)
	if err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	err = walkPages(ctx, src, func(ctx context.Context, r io.Reader, src, _ string, log *zap.Logger) error {
		return processPage(ctx, r, src, out, log)
	}, log)
	if cerr := out.Close(); cerr != nil {
		err = multierr.Append(err, cerr)
	}
	return err
}

// setupCodePage interprets the force-zip-cp flag. Since zip "standard" does
// not define file name encoding we may need to force archaic code page for
// old archives.
func setupCodePage(cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) {
	cp := cmd.String("force-zip-cp")
	if len(cp) == 0 {
		return
	}
	enc, err := ianaindex.IANA.Encoding(cp)
	if err != nil {
		log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		return
	}
	env.CodePage = enc
	n, _ := ianaindex.IANA.Name(enc)
	log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
}

// processPage reworks a single page. "src" is part of the source path
// (always including file name) relative to the original path. When actual
// file was specified it will be just base file name without a path. When
// looking inside archive or directory it will be relative path inside
// archive or directory (including base file name).
func processPage(ctx context.Context, r io.Reader, src string, out *output, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var pageID, outputName string

	log.Info("Rework starting", zap.String("from", src))
	defer func(start time.Time) {
		// NOTE: a single malformed page must not stop batch processing.
		if r := recover(); r != nil {
			log.Error("Rework ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("rework panic: %v", r)
		} else {
			log.Info("Rework completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.String("page_id", pageID))
		}
	}(time.Now())

	p, err := Prepare(ctx, r, src, log)
	if err != nil {
		return fmt.Errorf("unable to parse page (%s): %w", src, err)
	}
	if p.Root == nil {
		log.Warn("Skipping page, no top level html element", zap.String("from", src))
		return nil
	}

	pageID = p.ID

	if err := p.Apply(ctx, log); err != nil {
		return fmt.Errorf("unable to rework page (%s): %w", src, err)
	}
	data := []byte(p.Root.HTML())

	rel := buildOutputPath(p, src, env)
	outputName, err = out.writePage(rel, data)
	if err != nil {
		return err
	}

	// Store rework result for debugging
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("result-%s%s", p.ID, filepath.Ext(rel)), data)
	}

	return nil
}
