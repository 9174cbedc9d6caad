package rework

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"htmlfix/state"
)

// RunExtract implements the extract command: it walks the same source shapes
// as process but instead of reworking pages it builds a classified resource
// reference inventory and hands it to the requested outputs.
func RunExtract(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("extract")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, extra arguments", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	setupCodePage(cmd, env, log)

	inv := newInventory(cmd.Bool("verify"))

	log.Info("Extraction starting", zap.String("source", src))
	defer func(start time.Time) {
		log.Info("Extraction completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if err := walkPages(ctx, src, inv.addPage, log); err != nil {
		return err
	}

	listing := true
	if path := cmd.String("manifest"); len(path) > 0 {
		listing = false
		if err := writeManifest(path, inv); err != nil {
			return fmt.Errorf("unable to write manifest: %w", err)
		}
		log.Info("Manifest written", zap.String("file", path), zap.Int("pages", len(inv.Pages)))
	}
	if path := cmd.String("db"); len(path) > 0 {
		listing = false
		if err := writeDatabase(path, inv); err != nil {
			return fmt.Errorf("unable to write database: %w", err)
		}
		log.Info("Database written", zap.String("file", path), zap.Int("pages", len(inv.Pages)))
	}
	if listing {
		if _, err := os.Stdout.WriteString(inv.String()); err != nil {
			return err
		}
	}
	return nil
}
