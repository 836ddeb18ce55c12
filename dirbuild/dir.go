// Package dirbuild interprets a starc manifest directory
package dirbuild

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/signadot/starlark-compiler/debug"
	"github.com/signadot/starlark-compiler/manifest"

	"github.com/goccy/go-yaml"
)

const ConfigName = "starc"

var DefaultSuffixes = []string{".starc.yaml", ".starc.json", ".starc.toml"}

var ErrDir = errors.New("bad manifest directory")

// Dir is a tree of manifests rooted at Root.  An optional starc.{yaml,toml}
// in Root configures which files are manifests and which overlays apply to
// all of them.
type Dir struct {
	Root     string   `json:"-"`
	Suffixes []string `json:"suffixes,omitempty"`
	Exclude  []string `json:"exclude,omitempty"`
	Overlays []string `json:"overlays,omitempty"`
}

func OpenDir(path string) (*Dir, error) {
	// Try starc.{yaml,toml} in order
	var (
		cfgPath string
		d       []byte
	)
	for _, ext := range []string{".yaml", ".toml"} {
		candidatePath := filepath.Join(path, ConfigName+ext)
		var err error
		d, err = os.ReadFile(candidatePath)
		if err == nil {
			cfgPath = candidatePath
			break
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read %q: %w", candidatePath, err)
		}
	}
	dir := &Dir{Root: path}
	if cfgPath == "" {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
		dir.Suffixes = DefaultSuffixes
		return dir, nil
	}
	if manifest.KindOf(cfgPath) == manifest.TOMLKind {
		y, err := manifest.TOMLToYAML(d)
		if err != nil {
			return nil, fmt.Errorf("could not decode %s: %w", cfgPath, err)
		}
		d = y
	}
	dec := yaml.NewDecoder(bytes.NewReader(d), yaml.DisallowUnknownField())
	if err := dec.Decode(dir); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: could not decode %s: %w", ErrDir, cfgPath, err)
	}
	if err := dir.init(); err != nil {
		return nil, fmt.Errorf("%s: %w", cfgPath, err)
	}
	if debug.Manifest() {
		debug.Logf("opened %s: suffixes %v, %d overlays", cfgPath, dir.Suffixes, len(dir.Overlays))
	}
	return dir, nil
}

func (dir *Dir) init() error {
	if len(dir.Suffixes) == 0 {
		dir.Suffixes = DefaultSuffixes
	}
	for _, s := range dir.Suffixes {
		if s == "" || strings.ContainsRune(s, filepath.Separator) {
			return fmt.Errorf("%w: bad suffix %q", ErrDir, s)
		}
	}
	for _, p := range dir.Exclude {
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("%w: exclude %q: %w", ErrDir, p, err)
		}
	}
	for i, o := range dir.Overlays {
		if !filepath.IsAbs(o) {
			o = filepath.Join(dir.Root, o)
		}
		if _, err := os.Stat(o); err != nil {
			return fmt.Errorf("%w: overlay %w", ErrDir, err)
		}
		dir.Overlays[i] = o
	}
	return nil
}

// Manifests returns the manifest files under Root in lexical order.
func (dir *Dir) Manifests() ([]string, error) {
	var res []string
	err := filepath.WalkDir(dir.Root, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == dir.Root {
			return nil
		}
		rel, err := filepath.Rel(dir.Root, p)
		if err != nil {
			return err
		}
		if dir.excluded(rel) {
			if de.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !de.IsDir() && dir.IsManifest(de.Name()) {
			res = append(res, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if debug.Manifest() {
		debug.Logf("found %d manifests under %s", len(res), dir.Root)
	}
	return res, nil
}

// IsManifest reports whether a file name carries one of the manifest
// suffixes.
func (dir *Dir) IsManifest(name string) bool {
	for _, s := range dir.Suffixes {
		if strings.HasSuffix(name, s) && len(name) > len(s) {
			return true
		}
	}
	return false
}

// excluded matches patterns against the slash separated relative path and
// against the base name.
func (dir *Dir) excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	base := filepath.Base(rel)
	for _, p := range dir.Exclude {
		if ok, _ := filepath.Match(p, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return false
}
