package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/starlark-compiler/build"
	"github.com/signadot/starlark-compiler/dirbuild"
	"github.com/signadot/starlark-compiler/encode"
	"github.com/signadot/starlark-compiler/format"
	"github.com/signadot/starlark-compiler/manifest"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color     bool   `cli:"name=color desc='color output'"`
	Packed    bool   `cli:"name=packed desc='put short string arrays on one line'"`
	Workspace string `cli:"name=w aliases=workspace desc='workspace root (default .)'"`
	Verbose   bool   `cli:"name=v desc='log progress'"`
	Quiet     bool   `cli:"name=q desc='log errors only'"`

	Format   *format.Format
	Overlays []string

	logger *log.Logger
	Main   *cli.Command
}

func (cfg *MainConfig) fmtFunc(_ *cli.Context, v string) (any, error) {
	f, err := format.ParseFormat(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Format = &f
	return f, nil
}

func (cfg *MainConfig) overlayFunc(_ *cli.Context, v string) (any, error) {
	if _, err := os.Stat(v); err != nil {
		return nil, fmt.Errorf("%w: overlay %w", cli.ErrUsage, err)
	}
	cfg.Overlays = append(cfg.Overlays, v)
	return v, nil
}

func (cfg *MainConfig) logLevel() log.Level {
	switch {
	case cfg.Verbose:
		return log.DebugLevel
	case cfg.Quiet:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func (cfg *MainConfig) buildOpts() []build.Option {
	var res []build.Option
	if cfg.Workspace != "" {
		res = append(res, build.Workspace(cfg.Workspace))
	}
	if cfg.Format != nil {
		res = append(res, build.Format(*cfg.Format))
	}
	return res
}

// source is a manifest file and the overlays applied to it.
type source struct {
	path     string
	overlays []string
}

// sources expands args into manifests.  A directory argument stands for
// the manifests found under it, which take the directory's overlays before
// the configured ones.
func (cfg *MainConfig) sources(args []string) ([]source, error) {
	var res []source
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !fi.IsDir() {
			res = append(res, source{path: arg, overlays: cfg.Overlays})
			continue
		}
		dir, err := dirbuild.OpenDir(arg)
		if err != nil {
			return nil, err
		}
		paths, err := dir.Manifests()
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			cfg.logger.Warn("no manifests", "dir", arg)
		}
		overlays := append(append([]string(nil), dir.Overlays...), cfg.Overlays...)
		for _, p := range paths {
			res = append(res, source{path: p, overlays: overlays})
		}
	}
	return res, nil
}

// buildFile loads the manifest of src with its overlays.
func (cfg *MainConfig) buildFile(src source) (*build.BuildFile, error) {
	m, err := manifest.Load(src.path, src.overlays...)
	if err != nil {
		return nil, err
	}
	bf, err := m.BuildFile(cfg.buildOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.path, err)
	}
	return bf, nil
}

// encOpts are the options for rendering to w.  Files on disk are never
// colored.
func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var res []encode.EncodeOption
	if cfg.Packed {
		res = append(res, encode.EncodeArrayPolicy(encode.ArrayPacked))
	}
	if w == nil {
		return res
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// colorDiffs reports whether diffs written to w should be colored.
func (cfg *MainConfig) colorDiffs(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type GenConfig struct {
	*MainConfig
	DryRun bool `cli:"name=n desc='report what would be written without writing'"`

	Gen *cli.Command
}

type PrintConfig struct {
	*MainConfig

	Print *cli.Command
}

type CheckConfig struct {
	*MainConfig
	NoDiff bool `cli:"name=s desc='only list stale files'"`

	Check *cli.Command
}
