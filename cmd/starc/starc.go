package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/signadot/starlark-compiler/dirbuild"

	"github.com/scott-cotton/cli"
)

func starcMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Quiet && cfg.Verbose {
		return fmt.Errorf("%w: -q and -v are exclusive", cli.ErrUsage)
	}
	cfg.logger = newLogger(os.Stderr, cfg.logLevel())
	envOverlays, err := dirbuild.LoadEnv()
	if err != nil {
		return err
	}
	cfg.Overlays = append(envOverlays, cfg.Overlays...)
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}
