package build

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/signadot/starlark-compiler/debug"
	"github.com/signadot/starlark-compiler/encode"
	"github.com/signadot/starlark-compiler/libdiff"
)

// Save renders the file and writes it to Path, creating the package
// directory if needed.
func (b *BuildFile) Save(opts ...encode.EncodeOption) error {
	text, err := b.Render(opts...)
	if err != nil {
		return err
	}
	p := b.Path()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(p, []byte(text), 0644); err != nil {
		return err
	}
	if debug.Build() {
		debug.Logf("wrote %s (%d bytes)", p, len(text))
	}
	return nil
}

type CheckResult struct {
	Path     string
	Exists   bool
	Diff     string
	Inserted int
	Deleted  int
}

func (r *CheckResult) UpToDate() bool {
	return r.Exists && r.Diff == ""
}

func (r *CheckResult) String() string {
	switch {
	case !r.Exists:
		return fmt.Sprintf("%s: missing", r.Path)
	case r.UpToDate():
		return fmt.Sprintf("%s: up to date", r.Path)
	default:
		return fmt.Sprintf("%s: stale (+%d -%d)", r.Path, r.Inserted, r.Deleted)
	}
}

// Check compares the rendered file with what is on disk at Path.
func (b *BuildFile) Check(opts ...encode.EncodeOption) (*CheckResult, error) {
	text, err := b.Render(opts...)
	if err != nil {
		return nil, err
	}
	res := &CheckResult{Path: b.Path(), Exists: true}
	d, err := os.ReadFile(res.Path)
	if errors.Is(err, fs.ErrNotExist) {
		res.Exists = false
	} else if err != nil {
		return nil, err
	}
	res.Diff = libdiff.Unified(res.Path, res.Path+" (generated)", string(d), text, 3)
	res.Inserted, res.Deleted = libdiff.Counts(libdiff.Lines(string(d), text))
	return res, nil
}
