package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "f",
			Aliases:     []string{"format"},
			Description: "output format: BUILD, BUILD.bazel or bzl (default from manifest)",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.fmtFunc), "(format)"),
		},
		&cli.Opt{
			Name:        "overlay",
			Description: "merge or JSON patch applied to each manifest, may be repeated",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.overlayFunc), "(filepath)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "starc").
		WithSynopsis("starc [opts] command [opts] manifest...").
		WithDescription("starc generates Bazel BUILD and .bzl files from manifests.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return starcMain(cfg, cc, args)
		}).
		WithSubs(
			GenCommand(cfg),
			PrintCommand(cfg),
			CheckCommand(cfg))
}

func GenCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GenConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Gen, "gen").
		WithAliases("g", "generate").
		WithSynopsis("gen [-n] manifest...").
		WithDescription("write the files described by manifests").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return gen(cfg, cc, args)
		})
}

func PrintCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PrintConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Print, "print").
		WithAliases("p").
		WithSynopsis("print manifest...").
		WithDescription("print the files described by manifests").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return printFiles(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-s] manifest...").
		WithDescription("check that generated files on disk are up to date").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}
