package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func gen(cfg *GenConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Gen.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: gen requires at least one manifest", cli.ErrUsage)
	}
	srcs, err := cfg.sources(args)
	if err != nil {
		return err
	}
	p := newProgress(cfg.logger)
	for _, src := range srcs {
		bf, err := cfg.buildFile(src)
		if err != nil {
			return err
		}
		if cfg.DryRun {
			fmt.Fprintf(cc.Out, "%s -> %s\n", src.path, bf.Path())
			continue
		}
		if err := bf.Save(cfg.encOpts(nil)...); err != nil {
			return fmt.Errorf("%s: %w", src.path, err)
		}
		cfg.logger.Debug("wrote", "manifest", src.path, "file", bf.Path(), "targets", len(bf.Targets()))
	}
	p.done("generated", "files", len(srcs))
	return nil
}
