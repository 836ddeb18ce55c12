package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/signadot/starlark-compiler/debug"

	"github.com/goccy/go-yaml"
)

var ErrManifest = errors.New("bad manifest")

// Manifest describes one generated file.
type Manifest struct {
	Package     string       `json:"package"`
	Format      string       `json:"format,omitempty"`
	Name        string       `json:"name,omitempty"`
	Loads       []LoadSpec   `json:"loads,omitempty"`
	Assignments []Assignment `json:"assignments,omitempty"`
	Macros      []Macro      `json:"macros,omitempty"`
	Targets     []Target     `json:"targets,omitempty"`
}

// LoadSpec is one entry of loads: the symbols taken from a module, plain or
// under a local alias.
type LoadSpec struct {
	Module  string            `json:"module"`
	Symbols []string          `json:"symbols,omitempty"`
	Aliases map[string]string `json:"aliases,omitempty"`
}

type Assignment struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Macro is a function definition, only valid in .bzl files.
type Macro struct {
	Name   string   `json:"name"`
	Params []string `json:"params,omitempty"`
	Body   []Target `json:"body,omitempty"`
}

// Target is a call of Rule.  Attrs become keyword arguments.
type Target struct {
	Rule  string        `json:"rule"`
	Args  []any         `json:"args,omitempty"`
	Attrs yaml.MapSlice `json:"attrs,omitempty"`
}

type Kind int

const (
	YAMLKind Kind = iota
	TOMLKind
)

func (k Kind) String() string {
	if k == TOMLKind {
		return "toml"
	}
	return "yaml"
}

// KindOf returns the manifest kind for a file name.  JSON is read as YAML.
func KindOf(path string) Kind {
	if filepath.Ext(path) == ".toml" {
		return TOMLKind
	}
	return YAMLKind
}

// Parse decodes a manifest.  Unknown fields are errors; maps keep their
// order except in TOML input, where keys are sorted.
func Parse(data []byte, kind Kind) (*Manifest, error) {
	if kind == TOMLKind {
		d, err := TOMLToYAML(data)
		if err != nil {
			return nil, err
		}
		data = d
	}
	m := &Manifest{}
	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.UseOrderedMap(), yaml.DisallowUnknownField())
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads the manifest at path and applies the overlay files in order.
func Load(path string, overlays ...string) (*Manifest, error) {
	data, err := readYAML(path)
	if err != nil {
		return nil, err
	}
	if len(overlays) != 0 {
		patches := make([][]byte, len(overlays))
		for i, o := range overlays {
			patches[i], err = readYAML(o)
			if err != nil {
				return nil, err
			}
		}
		data, err = ApplyOverlays(data, patches...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	m, err := Parse(data, YAMLKind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if debug.Manifest() {
		debug.Logf("loaded %s: package %q, %d targets", path, m.Package, len(m.Targets))
	}
	return m, nil
}

func readYAML(path string) ([]byte, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if KindOf(path) == TOMLKind {
		d, err = TOMLToYAML(d)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return d, nil
}

func (m *Manifest) validate() error {
	for i := range m.Loads {
		ld := &m.Loads[i]
		if ld.Module == "" {
			return fmt.Errorf("%w: load %d has no module", ErrManifest, i)
		}
		if len(ld.Symbols) == 0 && len(ld.Aliases) == 0 {
			return fmt.Errorf("%w: load of %s has no symbols", ErrManifest, ld.Module)
		}
	}
	for i := range m.Assignments {
		if m.Assignments[i].Name == "" {
			return fmt.Errorf("%w: assignment %d has no name", ErrManifest, i)
		}
	}
	for i := range m.Macros {
		mac := &m.Macros[i]
		if mac.Name == "" {
			return fmt.Errorf("%w: macro %d has no name", ErrManifest, i)
		}
		for j := range mac.Body {
			if mac.Body[j].Rule == "" {
				return fmt.Errorf("%w: statement %d of macro %s has no rule", ErrManifest, j, mac.Name)
			}
		}
	}
	for i := range m.Targets {
		if m.Targets[i].Rule == "" {
			return fmt.Errorf("%w: target %d has no rule", ErrManifest, i)
		}
	}
	return nil
}
