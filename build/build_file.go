package build

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/signadot/starlark-compiler/debug"
	"github.com/signadot/starlark-compiler/encode"
	"github.com/signadot/starlark-compiler/format"
	"github.com/signadot/starlark-compiler/ir"
	"github.com/signadot/starlark-compiler/token"
)

var (
	ErrDuplicateTarget     = errors.New("duplicate target")
	ErrMissingName         = errors.New("target has no name")
	ErrDuplicateAssignment = errors.New("duplicate assignment")
	ErrLoadConflict        = errors.New("conflicting load")
)

type loadSet struct {
	symbols map[string]bool
	// alias -> symbol
	aliases map[string]string
}

// binding is what a loaded local name refers to.
type binding struct {
	module string
	symbol string
}

// BuildFile collects the loads, assignments, macros and targets of one
// package and renders them in canonical order.
type BuildFile struct {
	pkg       string
	workspace string
	format    format.Format
	base      string

	loads       map[string]*loadSet
	bound       map[string]binding
	assignments []*ir.Node
	names       map[string]bool
	defs        []*ir.Node
	targets     map[string]*ir.Node
}

type Option func(*BuildFile)

// Workspace sets the directory packages are relative to.  It defaults to
// the current directory.
func Workspace(dir string) Option {
	return func(b *BuildFile) { b.workspace = dir }
}

// Format sets the kind of file written.  It defaults to BUILD.bazel.
func Format(f format.Format) Option {
	return func(b *BuildFile) { b.format = f }
}

// BzlName sets the base name of a .bzl file.
func BzlName(base string) Option {
	return func(b *BuildFile) { b.base = base }
}

func NewBuildFile(pkg string, opts ...Option) *BuildFile {
	b := &BuildFile{
		pkg:       pkg,
		workspace: ".",
		format:    format.BazelFormat,
		loads:     map[string]*loadSet{},
		bound:     map[string]binding{},
		names:     map[string]bool{},
		targets:   map[string]*ir.Node{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *BuildFile) Package() string       { return b.pkg }
func (b *BuildFile) Format() format.Format { return b.format }

func (b *BuildFile) loadSet(module string) *loadSet {
	ls := b.loads[module]
	if ls == nil {
		ls = &loadSet{symbols: map[string]bool{}, aliases: map[string]string{}}
		b.loads[module] = ls
	}
	return ls
}

// AddLoad adds symbols to those loaded from module.  Adding a symbol twice
// has no effect; a symbol whose name is already bound by another load in
// the file is an ErrLoadConflict and nothing is added.
func (b *BuildFile) AddLoad(module string, symbols ...string) error {
	for _, sym := range symbols {
		if err := b.checkBinding(sym, binding{module: module, symbol: sym}); err != nil {
			return err
		}
	}
	ls := b.loadSet(module)
	for _, sym := range symbols {
		b.bound[sym] = binding{module: module, symbol: sym}
		ls.symbols[sym] = true
	}
	return nil
}

// AddAliasedLoad loads symbol from module under the local name alias.
func (b *BuildFile) AddAliasedLoad(module, alias, symbol string) error {
	if alias == symbol {
		return b.AddLoad(module, symbol)
	}
	if !token.IsIdentifier(alias) {
		return fmt.Errorf("%w: bad load alias %q", ir.ErrInvalidNode, alias)
	}
	bnd := binding{module: module, symbol: symbol}
	if err := b.checkBinding(alias, bnd); err != nil {
		return err
	}
	b.bound[alias] = bnd
	b.loadSet(module).aliases[alias] = symbol
	return nil
}

// checkBinding fails if local already names something other than bnd.
func (b *BuildFile) checkBinding(local string, bnd binding) error {
	prev, ok := b.bound[local]
	if !ok || prev == bnd {
		return nil
	}
	return fmt.Errorf("%w: %s binds %s to both %q from %s and %q from %s",
		ErrLoadConflict, b.pkg, local, prev.symbol, prev.module, bnd.symbol, bnd.module)
}

// AddTarget adds a rule invocation.  The call must carry a string name
// keyword, unique within the file.
func (b *BuildFile) AddTarget(call *ir.Node) error {
	if call == nil || call.Type != ir.CallType {
		return fmt.Errorf("%w: target in %s is not a function call", ir.ErrInvalidNode, b.pkg)
	}
	nameNode := call.Kwargs.Get("name")
	if nameNode == nil || nameNode.Type != ir.StringType || nameNode.String == "" {
		return fmt.Errorf("%w: %s call in %s", ErrMissingName, call.Name, b.pkg)
	}
	name := nameNode.String
	if _, ok := b.targets[name]; ok {
		return fmt.Errorf("%w: target named %q already exists in %s", ErrDuplicateTarget, name, b.pkg)
	}
	b.targets[name] = call
	if debug.Build() {
		debug.Logf("%s: added %s target %s", b.pkg, call.Name, name)
	}
	return nil
}

// AddAssignment appends `name = value`.  Assignments render in the order
// they were added.
func (b *BuildFile) AddAssignment(name string, value any) error {
	if b.names[name] {
		return fmt.Errorf("%w: %s assigned twice in %s", ErrDuplicateAssignment, name, b.pkg)
	}
	a, err := ir.Assign(name, value)
	if err != nil {
		return err
	}
	b.names[name] = true
	b.assignments = append(b.assignments, a)
	return nil
}

// AddDef appends a function definition.  Only .bzl files may render them.
func (b *BuildFile) AddDef(def *ir.Node) error {
	if def == nil || def.Type != ir.DeclarationType {
		return fmt.Errorf("%w: expected a function definition in %s", ir.ErrInvalidNode, b.pkg)
	}
	if b.names[def.Name] {
		return fmt.Errorf("%w: %s defined twice in %s", ErrDuplicateAssignment, def.Name, b.pkg)
	}
	b.names[def.Name] = true
	b.defs = append(b.defs, def)
	return nil
}

func (b *BuildFile) Target(name string) *ir.Node {
	return b.targets[name]
}

// Targets returns the target names in render order.
func (b *BuildFile) Targets() []string {
	return slices.Sorted(maps.Keys(b.targets))
}

// ToDocument assembles the file: loads by module, then assignments and
// definitions in the order added, then targets by name with their keyword
// arguments in priority order.  Targets passed to AddTarget are not
// modified.
func (b *BuildFile) ToDocument() *ir.Document {
	doc := ir.NewDocument()
	for _, module := range slices.Sorted(maps.Keys(b.loads)) {
		if ld := b.loads[module].toNode(module); ld != nil {
			doc.Append(ld)
		}
	}
	doc.Append(b.assignments...)
	doc.Append(b.defs...)
	for _, name := range b.Targets() {
		call := b.targets[name].Clone()
		call.Kwargs.Sort(CompareKwargs)
		doc.Append(call)
	}
	return doc
}

func (ls *loadSet) toNode(module string) *ir.Node {
	if len(ls.symbols) == 0 && len(ls.aliases) == 0 {
		return nil
	}
	call := &ir.Node{
		Type:   ir.CallType,
		Name:   "load",
		Values: []*ir.Node{ir.FromString(module)},
	}
	for _, sym := range slices.Sorted(maps.Keys(ls.symbols)) {
		call.Values = append(call.Values, ir.FromString(sym))
	}
	for _, alias := range slices.Sorted(maps.Keys(ls.aliases)) {
		call.Kwargs = append(call.Kwargs, ir.Kwarg{Name: alias, Value: ir.FromString(ls.aliases[alias])})
	}
	return call
}

// Path is the file the BuildFile is saved to.
func (b *BuildFile) Path() string {
	return filepath.Join(b.workspace, b.pkg, b.format.FileName(b.base))
}

func (b *BuildFile) encodeOpts(opts []encode.EncodeOption) []encode.EncodeOption {
	return append([]encode.EncodeOption{encode.EncodeFormat(b.format)}, opts...)
}

func (b *BuildFile) Render(opts ...encode.EncodeOption) (string, error) {
	text, err := encode.Render(b.ToDocument(), b.encodeOpts(opts)...)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", b.Path(), err)
	}
	return text, nil
}
