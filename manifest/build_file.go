package manifest

import (
	"fmt"
	"maps"
	"slices"

	"github.com/signadot/starlark-compiler/build"
	"github.com/signadot/starlark-compiler/format"
	"github.com/signadot/starlark-compiler/ir"
)

// BuildFile converts m into a build.BuildFile.  opts are applied after the
// options derived from the manifest.
func (m *Manifest) BuildFile(opts ...build.Option) (*build.BuildFile, error) {
	var mOpts []build.Option
	if m.Format != "" {
		f, err := format.ParseFormat(m.Format)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrManifest, err)
		}
		mOpts = append(mOpts, build.Format(f))
	}
	if m.Name != "" {
		mOpts = append(mOpts, build.BzlName(m.Name))
	}
	bf := build.NewBuildFile(m.Package, append(mOpts, opts...)...)
	for i := range m.Loads {
		ld := &m.Loads[i]
		if err := bf.AddLoad(ld.Module, ld.Symbols...); err != nil {
			return nil, err
		}
		for _, alias := range slices.Sorted(maps.Keys(ld.Aliases)) {
			if err := bf.AddAliasedLoad(ld.Module, alias, ld.Aliases[alias]); err != nil {
				return nil, err
			}
		}
	}
	for i := range m.Assignments {
		a := &m.Assignments[i]
		v, err := ToNode(a.Value)
		if err != nil {
			return nil, fmt.Errorf("assignment %s: %w", a.Name, err)
		}
		if err := bf.AddAssignment(a.Name, v); err != nil {
			return nil, err
		}
	}
	for i := range m.Macros {
		mac := &m.Macros[i]
		body := make([]*ir.Node, len(mac.Body))
		for j := range mac.Body {
			call, err := mac.Body[j].Call()
			if err != nil {
				return nil, fmt.Errorf("macro %s: %w", mac.Name, err)
			}
			body[j] = call
		}
		def, err := ir.Def(mac.Name, mac.Params, body...)
		if err != nil {
			return nil, err
		}
		if err := bf.AddDef(def); err != nil {
			return nil, err
		}
	}
	for i := range m.Targets {
		call, err := m.Targets[i].Call()
		if err != nil {
			return nil, err
		}
		if err := bf.AddTarget(call); err != nil {
			return nil, err
		}
	}
	return bf, nil
}

// Call converts t to a function call node.
func (t *Target) Call() (*ir.Node, error) {
	args := make([]any, len(t.Args))
	for i, a := range t.Args {
		y, err := ToNode(a)
		if err != nil {
			return nil, fmt.Errorf("%s argument %d: %w", t.Rule, i, err)
		}
		args[i] = y
	}
	kwargs := make([]ir.NamedValue, len(t.Attrs))
	for i, item := range t.Attrs {
		name, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s attribute name %v is not a string", ErrManifest, t.Rule, item.Key)
		}
		y, err := ToNode(item.Value)
		if err != nil {
			return nil, fmt.Errorf("%s attribute %s: %w", t.Rule, name, err)
		}
		kwargs[i] = ir.Kw(name, y)
	}
	return ir.Call(t.Rule, args, kwargs...)
}
