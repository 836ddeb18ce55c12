package build

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/signadot/starlark-compiler/encode"
	"github.com/signadot/starlark-compiler/format"
	"github.com/signadot/starlark-compiler/ir"
)

func mustRender(t *testing.T, b *BuildFile, opts ...encode.EncodeOption) string {
	t.Helper()
	out, err := b.Render(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func mustLoad(t *testing.T, b *BuildFile, module string, symbols ...string) {
	t.Helper()
	if err := b.AddLoad(module, symbols...); err != nil {
		t.Fatal(err)
	}
}

func TestLoadOrdering(t *testing.T) {
	b := NewBuildFile("pkg")
	mustLoad(t, b, "b", "y")
	mustLoad(t, b, "a", "z")
	mustLoad(t, b, "a", "x", "z")
	want := `load(
    "a",
    "x",
    "z",
)
load("b", "y")
`
	got := mustRender(t, b)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if strings.Index(got, `"a"`) > strings.Index(got, `"b"`) {
		t.Error("module a should load before b")
	}
	if strings.Index(got, `"x"`) > strings.Index(got, `"z"`) {
		t.Error("x should load before z")
	}
}

func TestLoadConflicts(t *testing.T) {
	b := NewBuildFile("pkg")
	mustLoad(t, b, "//m.bzl", "x")
	if err := b.AddAliasedLoad("//m.bzl", "x", "y"); !errors.Is(err, ErrLoadConflict) {
		t.Errorf("alias over plain symbol: got %v, want ErrLoadConflict", err)
	}

	b = NewBuildFile("pkg")
	if err := b.AddAliasedLoad("//m.bzl", "x", "y"); err != nil {
		t.Fatal(err)
	}
	if err := b.AddLoad("//m.bzl", "x"); !errors.Is(err, ErrLoadConflict) {
		t.Errorf("plain symbol over alias: got %v, want ErrLoadConflict", err)
	}
	if err := b.AddAliasedLoad("//m.bzl", "x", "y"); err != nil {
		t.Errorf("repeated alias: %v", err)
	}

	b = NewBuildFile("pkg")
	mustLoad(t, b, "//a.bzl", "x")
	if err := b.AddLoad("//b.bzl", "w", "x"); !errors.Is(err, ErrLoadConflict) {
		t.Errorf("same symbol from two modules: got %v, want ErrLoadConflict", err)
	}
	mustLoad(t, b, "//a.bzl", "x")
	if diff := cmp.Diff("load(\"//a.bzl\", \"x\")\n", mustRender(t, b)); diff != "" {
		t.Errorf("failed load left a trace (-want +got):\n%s", diff)
	}
}

func TestAliasedLoads(t *testing.T) {
	b := NewBuildFile("pkg")
	mustLoad(t, b, "//rules:ios.bzl", "ios_application")
	if err := b.AddAliasedLoad("//rules:ios.bzl", "_ios_application", "ios_application"); err != nil {
		t.Fatal(err)
	}
	if err := b.AddAliasedLoad("//rules:ios.bzl", "_framework", "ios_framework"); err != nil {
		t.Fatal(err)
	}
	if err := b.AddAliasedLoad("//rules:ios.bzl", "ios_library", "ios_library"); err != nil {
		t.Fatal(err)
	}
	want := `load(
    "//rules:ios.bzl",
    "ios_application",
    "ios_library",
    _framework = "ios_framework",
    _ios_application = "ios_application",
)
`
	if diff := cmp.Diff(want, mustRender(t, b)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if err := b.AddAliasedLoad("//rules:ios.bzl", "_framework", "other"); !errors.Is(err, ErrLoadConflict) {
		t.Errorf("expected ErrLoadConflict, got %v", err)
	}
	if err := b.AddAliasedLoad("//rules:ios.bzl", "not-ident", "x"); !errors.Is(err, ir.ErrInvalidNode) {
		t.Errorf("expected ErrInvalidNode, got %v", err)
	}
}

func TestKwargPriority(t *testing.T) {
	b := NewBuildFile("pkg")
	call := ir.Must(ir.Call("java_library", nil,
		ir.Kw("deps", []string{":a"}),
		ir.Kw("name", "X"),
		ir.Kw("testonly", 0),
	))
	if err := b.AddTarget(call); err != nil {
		t.Fatal(err)
	}
	want := `java_library(
    name = "X",
    testonly = 0,
    deps = [":a"],
)
`
	if diff := cmp.Diff(want, mustRender(t, b)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"deps", "name", "testonly"}, call.Kwargs.Names()); diff != "" {
		t.Errorf("AddTarget argument was modified (-want +got):\n%s", diff)
	}
}

func TestCompareKwargs(t *testing.T) {
	names := []string{"alwayslink", "deps", "zeta", "alpha", "srcs", "name", "visibility", "runtime_deps"}
	call := &ir.Node{Type: ir.CallType, Name: "r"}
	for _, n := range names {
		call.Kwargs.Set(n, ir.None())
	}
	call.Kwargs.Sort(CompareKwargs)
	want := []string{"name", "srcs", "alpha", "visibility", "zeta", "runtime_deps", "deps", "alwayslink"}
	if diff := cmp.Diff(want, call.Kwargs.Names()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestKwargOrderIndependentOfInsertion(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	attrs := []string{"name", "srcs", "deps", "visibility", "copts", "testonly", "hdrs", "alwayslink"}

	render := func(order []string) string {
		b := NewBuildFile("p")
		call := &ir.Node{Type: ir.CallType, Name: "cc_library"}
		for _, a := range order {
			v := ir.FromString(a)
			if a == "name" {
				v = ir.FromString("lib")
			}
			call.Kwargs.Set(a, v)
		}
		if err := b.AddTarget(call); err != nil {
			return err.Error()
		}
		out, err := b.Render()
		if err != nil {
			return err.Error()
		}
		return out
	}
	canonical := render(attrs)

	properties.Property("kwarg order does not depend on insertion order", prop.ForAll(
		func(keys []int) bool {
			order := slices.Clone(attrs)
			rank := map[string]int{}
			for i, a := range attrs {
				rank[a] = keys[i]
			}
			slices.SortStableFunc(order, func(a, b string) int { return rank[a] - rank[b] })
			return render(order) == canonical
		},
		gen.SliceOfN(len(attrs), gen.IntRange(0, 100)),
	))
	properties.TestingRun(t)
}

func TestDuplicateTarget(t *testing.T) {
	b := NewBuildFile("Pods/App")
	framework := func() *ir.Node {
		return ir.Must(ir.Call("apple_framework", nil, ir.Kw("name", "Framework")))
	}
	if err := b.AddTarget(framework()); err != nil {
		t.Fatal(err)
	}
	err := b.AddTarget(framework())
	if !errors.Is(err, ErrDuplicateTarget) {
		t.Fatalf("expected ErrDuplicateTarget, got %v", err)
	}
	for _, s := range []string{`"Framework"`, "Pods/App"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("error %q does not mention %s", err, s)
		}
	}
}

func TestMissingName(t *testing.T) {
	b := NewBuildFile("p")
	for _, call := range []*ir.Node{
		ir.Must(ir.Call("r", nil)),
		ir.Must(ir.Call("r", nil, ir.Kw("name", ir.Ref("NAME")))),
		ir.Must(ir.Call("r", nil, ir.Kw("name", ""))),
	} {
		if err := b.AddTarget(call); !errors.Is(err, ErrMissingName) {
			t.Errorf("expected ErrMissingName, got %v", err)
		}
	}
	if err := b.AddTarget(ir.FromString("x")); !errors.Is(err, ir.ErrInvalidNode) {
		t.Errorf("expected ErrInvalidNode, got %v", err)
	}
}

func TestDocumentOrder(t *testing.T) {
	b := NewBuildFile("p")
	for _, n := range []string{"zz", "aa", "mm"} {
		if err := b.AddTarget(ir.Must(ir.Call("filegroup", nil, ir.Kw("name", n)))); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.AddAssignment("SECOND_ADDED", 2); err != nil {
		t.Fatal(err)
	}
	if err := b.AddAssignment("FIRST_ADDED", 1); err != nil {
		t.Fatal(err)
	}
	mustLoad(t, b, "//:defs.bzl", "filegroup")
	want := `load("//:defs.bzl", "filegroup")

SECOND_ADDED = 2

FIRST_ADDED = 1

filegroup(name = "aa")

filegroup(name = "mm")

filegroup(name = "zz")
`
	if diff := cmp.Diff(want, mustRender(t, b)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"aa", "mm", "zz"}, b.Targets()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if b.Target("mm") == nil || b.Target("nope") != nil {
		t.Error("Target lookup failed")
	}
}

func TestAddAssignmentErrors(t *testing.T) {
	b := NewBuildFile("p")
	if err := b.AddAssignment("X", struct{}{}); !errors.Is(err, ir.ErrConversion) {
		t.Errorf("expected ErrConversion, got %v", err)
	}
	if err := b.AddAssignment("X", ir.Must(ir.Assign("Y", 1))); !errors.Is(err, ir.ErrInvalidAssignment) {
		t.Errorf("expected ErrInvalidAssignment, got %v", err)
	}
	if err := b.AddAssignment("X", 1); err != nil {
		t.Fatal(err)
	}
	if err := b.AddAssignment("X", 2); !errors.Is(err, ErrDuplicateAssignment) {
		t.Errorf("expected ErrDuplicateAssignment, got %v", err)
	}
}

func TestDefsOnlyInBzl(t *testing.T) {
	def := ir.Must(ir.Def("my_rule", []string{"name"},
		ir.Must(ir.Call("native.filegroup", nil, ir.Kw("name", ir.Ref("name")))),
	))
	bzl := NewBuildFile("tools", Format(format.BzlFormat), BzlName("macros"))
	if err := bzl.AddDef(def); err != nil {
		t.Fatal(err)
	}
	want := `def my_rule(name):
    native.filegroup(name = name)
`
	if diff := cmp.Diff(want, mustRender(t, bzl)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := bzl.Path(); got != filepath.Join(".", "tools", "macros.bzl") {
		t.Errorf("path = %s", got)
	}

	build := NewBuildFile("tools")
	if err := build.AddDef(def); err != nil {
		t.Fatal(err)
	}
	if _, err := build.Render(); !errors.Is(err, format.ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
	if err := build.AddDef(def); !errors.Is(err, ErrDuplicateAssignment) {
		t.Errorf("expected ErrDuplicateAssignment, got %v", err)
	}
}

func TestSaveAndCheck(t *testing.T) {
	ws := t.TempDir()
	b := NewBuildFile("a/b", Workspace(ws))
	if err := b.AddTarget(ir.Must(ir.Call("filegroup", nil, ir.Kw("name", "all"), ir.Kw("srcs", []string{"x", "y"})))); err != nil {
		t.Fatal(err)
	}
	if got, want := b.Path(), filepath.Join(ws, "a", "b", "BUILD.bazel"); got != want {
		t.Fatalf("path = %s, want %s", got, want)
	}

	res, err := b.Check()
	if err != nil {
		t.Fatal(err)
	}
	if res.Exists || res.UpToDate() {
		t.Errorf("unexpected result before save: %s", res)
	}

	if err := b.Save(); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(b.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != mustRender(t, b) {
		t.Errorf("saved text differs from rendered text:\n%s", d)
	}
	res, err = b.Check()
	if err != nil {
		t.Fatal(err)
	}
	if !res.UpToDate() {
		t.Errorf("expected up to date, got %s\n%s", res, res.Diff)
	}

	if err := b.AddTarget(ir.Must(ir.Call("filegroup", nil, ir.Kw("name", "more")))); err != nil {
		t.Fatal(err)
	}
	res, err = b.Check()
	if err != nil {
		t.Fatal(err)
	}
	if res.UpToDate() || res.Inserted != 2 || res.Deleted != 0 {
		t.Errorf("unexpected result %s\n%s", res, res.Diff)
	}
	if !strings.Contains(res.Diff, `+filegroup(name = "more")`) {
		t.Errorf("diff does not show the new target:\n%s", res.Diff)
	}
}
