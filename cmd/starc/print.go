package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
)

func printFiles(cfg *PrintConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Print.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: print requires at least one manifest", cli.ErrUsage)
	}
	srcs, err := cfg.sources(args)
	if err != nil {
		return err
	}
	for i, src := range srcs {
		if len(srcs) > 1 {
			if i > 0 {
				io.WriteString(cc.Out, "\n")
			}
			fmt.Fprintf(cc.Out, "# %s\n", src.path)
		}
		bf, err := cfg.buildFile(src)
		if err != nil {
			return err
		}
		text, err := bf.Render(cfg.encOpts(cc.Out)...)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(cc.Out, text); err != nil {
			return err
		}
	}
	return nil
}
