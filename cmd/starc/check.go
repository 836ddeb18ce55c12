package main

import (
	"fmt"

	"github.com/signadot/starlark-compiler/libdiff"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: check requires at least one manifest", cli.ErrUsage)
	}
	srcs, err := cfg.sources(args)
	if err != nil {
		return err
	}
	stale := 0
	for _, src := range srcs {
		bf, err := cfg.buildFile(src)
		if err != nil {
			return err
		}
		res, err := bf.Check(cfg.encOpts(nil)...)
		if err != nil {
			return fmt.Errorf("%s: %w", src.path, err)
		}
		if res.UpToDate() {
			cfg.logger.Debug("up to date", "file", res.Path)
			continue
		}
		stale++
		fmt.Fprintln(cc.Out, res)
		if cfg.NoDiff {
			continue
		}
		d := res.Diff
		if cfg.colorDiffs(cc.Out) {
			d = libdiff.Colorize(d)
		}
		fmt.Fprint(cc.Out, d)
	}
	if stale != 0 {
		cfg.logger.Error("stale generated files", "count", stale)
		return cli.ExitCodeErr(1)
	}
	return nil
}
