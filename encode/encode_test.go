package encode

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/starlark-compiler/format"
	"github.com/signadot/starlark-compiler/ir"
)

func render(t *testing.T, doc *ir.Document, opts ...EncodeOption) string {
	t.Helper()
	out, err := Render(doc, opts...)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func checkText(t *testing.T, want, got string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeLiterals(t *testing.T) {
	call := ir.Must(ir.Call("call", nil,
		ir.Kw("_int", 5),
		ir.Kw("_true", true),
		ir.Kw("_none", nil),
	))
	want := `call(
    _int = 5,
    _true = True,
    _none = None,
)
`
	checkText(t, want, render(t, ir.NewDocument(call)))
}

func TestEncodeScalars(t *testing.T) {
	tests := []struct {
		node *ir.Node
		want string
	}{
		{ir.None(), "None"},
		{ir.FromBool(true), "True"},
		{ir.FromBool(false), "False"},
		{ir.FromInt(-3), "-3"},
		{ir.FromFloat(2), "2.0"},
		{ir.FromFloat(1.5), "1.5"},
		{ir.FromFloat(1e21), "1e+21"},
		{ir.FromString(""), `""`},
		{ir.FromString("a\x00b\nc"), `"a\u0000b\nc"`},
		{ir.FromString(`say "hi"\`), `"say \"hi\"\\"`},
		{ir.FromString("héllo ✓"), `"héllo ✓"`},
		{ir.Ref("COPTS"), "COPTS"},
		{ir.Must(ir.Array()), "[]"},
		{ir.Must(ir.Dict()), "{}"},
		{ir.Must(ir.Call("f", nil)), "f()"},
		{ir.FromInt(1).Add(ir.FromInt(2)).Mul(ir.Ref("x")), "(1 + 2) * x"},
		{ir.FromInt(1).Add(ir.FromInt(2).Mul(ir.Ref("x"))), "1 + 2 * x"},
		{ir.FromInt(1).Sub(ir.FromInt(2)).Sub(ir.FromInt(3)), "1 - 2 - 3"},
		{ir.FromInt(1).Sub(ir.FromInt(2).Sub(ir.FromInt(3))), "1 - (2 - 3)"},
		{ir.Ref("a").Lt(ir.Ref("b")).Eq(ir.FromBool(true)), "(a < b) == True"},
		{ir.Ref("a").Ge(ir.FromInt(2)), "a >= 2"},
	}
	for _, tt := range tests {
		if got := MustString(tt.node); got != tt.want {
			t.Errorf("got %s, want %s", got, tt.want)
		}
	}
}

func TestEncodeStringThreshold(t *testing.T) {
	s50 := strings.Repeat("a", 50)
	s51 := strings.Repeat("a", 51)

	got := MustString(ir.Must(ir.Call("f", nil, ir.Kw("x", s50))))
	checkText(t, `f(x = "`+s50+`")`, got)

	got = MustString(ir.Must(ir.Call("f", nil, ir.Kw("x", s51))))
	checkText(t, "f(\n    x = \""+s51+"\",\n)", got)

	got = MustString(ir.Must(ir.Array(s51)))
	checkText(t, "[\n    \""+s51+"\",\n]", got)

	// characters, not bytes
	wide := strings.Repeat("é", 50)
	got = MustString(ir.Must(ir.Array(wide)))
	checkText(t, `["`+wide+`"]`, got)
}

func TestEncodeIOSExample(t *testing.T) {
	const rules = "@bazel_build_rules_apple//rules:ios.bzl"
	glob := ir.Must(ir.Call("glob", []any{[]string{"Sources/**/*.swift"}}))
	srcs := ir.Must(glob.Op(ir.Plus, []string{"A.swift"}))
	doc := ir.NewDocument(
		ir.Must(ir.Call("load", []any{rules, "ios_application"},
			ir.Kw("_ios_application", "ios_application"))),
		ir.Must(ir.Call("load", []any{rules, "ios_application"})),
		ir.Must(ir.Call("ios_library", nil,
			ir.Kw("name", "App_Objc"),
			ir.Kw("srcs", srcs))),
		ir.Must(ir.Call("ios_application", nil,
			ir.Kw("name", "App"),
			ir.Kw("deps", []string{":App_Objc"}),
			ir.Kw("entitlements", []string{":App.entitlements"}))),
	)
	want := `load(
    "@bazel_build_rules_apple//rules:ios.bzl",
    "ios_application",
    _ios_application = "ios_application",
)
load("@bazel_build_rules_apple//rules:ios.bzl", "ios_application")

ios_library(
    name = "App_Objc",
    srcs = glob(["Sources/**/*.swift"]) + ["A.swift"],
)

ios_application(
    name = "App",
    deps = [":App_Objc"],
    entitlements = [":App.entitlements"],
)
`
	checkText(t, want, render(t, doc))
}

func TestEncodeNested(t *testing.T) {
	sel := ir.Must(ir.Call("select", []any{ir.Must(ir.Dict(
		ir.Pair{Key: "//conditions:linux", Value: []string{":linux_only"}},
		ir.Pair{Key: "//conditions:default", Value: []string{}},
	))}))
	srcs := ir.Must(ir.Call("glob", []any{[]string{"src/*.cc", "src/*.h"}}))
	doc := ir.NewDocument(ir.Must(ir.Call("cc_library", nil,
		ir.Kw("name", "lib"),
		ir.Kw("srcs", srcs),
		ir.Kw("deps", sel),
		ir.Kw("copts", ir.Ref("COPTS")),
	)))
	want := `cc_library(
    name = "lib",
    srcs = glob([
        "src/*.cc",
        "src/*.h",
    ]),
    deps = select({
        "//conditions:linux": [":linux_only"],
        "//conditions:default": [],
    }),
    copts = COPTS,
)
`
	checkText(t, want, render(t, doc))
}

func TestEncodeStatements(t *testing.T) {
	doc := ir.NewDocument(
		ir.Must(ir.Call("load", []any{"//a:a.bzl", "a"})),
		ir.Must(ir.Call("load", []any{"//b:b.bzl", "b"})),
		ir.Must(ir.Assign("COPTS", []string{"-Wall", "-Werror"})),
		ir.Must(ir.Assign("VERSION", "1.0")),
		ir.Must(ir.Call("a", nil)),
		ir.Must(ir.Call("load", []any{"//c:c.bzl", "c"})),
	)
	want := `load("//a:a.bzl", "a")
load("//b:b.bzl", "b")

COPTS = [
    "-Wall",
    "-Werror",
]

VERSION = "1.0"

a()

load("//c:c.bzl", "c")
`
	checkText(t, want, render(t, doc))
}

func TestEncodeEmptyDocument(t *testing.T) {
	if got := render(t, ir.NewDocument()); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestEncodeArrayPolicy(t *testing.T) {
	short := ir.Must(ir.Array("a", "b"))
	checkText(t, "[\n    \"a\",\n    \"b\",\n]", MustString(short))
	checkText(t, `["a", "b"]`, MustString(short, EncodeArrayPolicy(ArrayPacked)))

	mixed := ir.Must(ir.Array("a", 1))
	checkText(t, "[\n    \"a\",\n    1,\n]", MustString(mixed, EncodeArrayPolicy(ArrayPacked)))

	long := ir.Must(ir.Array(strings.Repeat("x", 25), strings.Repeat("y", 25)))
	if SingleLine(long, ArrayPacked) {
		t.Error("strings totalling 50 characters should not pack")
	}
	if !SingleLine(ir.Must(ir.Array(strings.Repeat("x", 24), strings.Repeat("y", 25))), ArrayPacked) {
		t.Error("strings totalling 49 characters should pack")
	}
}

func TestSingleLineCall(t *testing.T) {
	arr := []string{"a", "b"}
	tests := []struct {
		name string
		call *ir.Node
		want bool
	}{
		{"empty", ir.Must(ir.Call("f", nil)), true},
		{"one kwarg", ir.Must(ir.Call("f", nil, ir.Kw("a", 1))), true},
		{"two kwargs", ir.Must(ir.Call("f", nil, ir.Kw("a", 1), ir.Kw("b", 2))), false},
		{"multi line kwarg", ir.Must(ir.Call("f", nil, ir.Kw("a", arr))), false},
		{"two args", ir.Must(ir.Call("f", []any{1, "x"})), true},
		{"three args", ir.Must(ir.Call("f", []any{1, 2, 3})), false},
		{"one container", ir.Must(ir.Call("f", []any{arr})), true},
		{"container and arg", ir.Must(ir.Call("f", []any{arr, 1})), false},
		{"container and kwarg", ir.Must(ir.Call("f", []any{arr}, ir.Kw("a", 1))), false},
		{"arg and kwarg", ir.Must(ir.Call("f", []any{1}, ir.Kw("a", 1))), false},
	}
	for _, tt := range tests {
		if got := SingleLine(tt.call, ArrayByCount); got != tt.want {
			t.Errorf("%s: SingleLine = %t, want %t", tt.name, got, tt.want)
		}
	}
}

func TestSingleLineContainers(t *testing.T) {
	arr := []string{"a", "b"}
	if SingleLine(ir.Must(ir.Dict(ir.Pair{Key: "k", Value: arr})), ArrayByCount) {
		t.Error("dictionary with a multi line value should be multi line")
	}
	if !SingleLine(ir.Must(ir.Dict(ir.Pair{Key: "k", Value: 1})), ArrayByCount) {
		t.Error("dictionary with one entry should be single line")
	}
	if SingleLine(ir.Must(ir.Binary(1, ir.Plus, arr)), ArrayByCount) {
		t.Error("binary with a multi line operand should be multi line")
	}
	if SingleLine(ir.Must(ir.Assign("X", 1)), ArrayByCount) {
		t.Error("statements are never single line")
	}
}

func TestEncodeDef(t *testing.T) {
	lib := ir.Must(ir.Call("native.cc_library", nil,
		ir.Kw("name", ir.Ref("name")),
		ir.Kw("srcs", []string{"a.cc", "b.cc"}),
	))
	doc := ir.NewDocument(
		ir.Must(ir.Def("my_library", []string{"name", "**kwargs"}, lib)),
		ir.Must(ir.Def("noop", nil)),
	)
	want := `def my_library(name, **kwargs):
    native.cc_library(
        name = name,
        srcs = [
            "a.cc",
            "b.cc",
        ],
    )

def noop():
    pass
`
	checkText(t, want, render(t, doc, EncodeFormat(format.BzlFormat)))
	checkText(t, want, render(t, doc))

	for _, f := range []format.Format{format.BuildFormat, format.BazelFormat} {
		if _, err := Render(doc, EncodeFormat(f)); !errors.Is(err, format.ErrBadFormat) {
			t.Errorf("%s: expected ErrBadFormat, got %v", f, err)
		}
	}
}

func TestEncodeUnrenderable(t *testing.T) {
	assign := ir.Must(ir.Assign("X", 1))
	inf := math.Inf(1)
	for name, node := range map[string]*ir.Node{
		"unknown type":  {Type: ir.Type(99)},
		"statement":     {Type: ir.ArrayType, Values: []*ir.Node{assign}},
		"nil child":     {Type: ir.ArrayType, Values: []*ir.Node{nil}},
		"empty number":  {Type: ir.NumberType},
		"infinity":      {Type: ir.NumberType, Float64: &inf},
		"dict mismatch": {Type: ir.DictionaryType, Fields: []*ir.Node{ir.FromString("k")}},
		"invalid utf8":  ir.FromString("a\xffb"),
		"invalid key":   ir.Must(ir.Dict(ir.Pair{Key: "\xc3", Value: 1})),
	} {
		if err := EncodeNode(node, io.Discard); !errors.Is(err, ErrUnrenderable) {
			t.Errorf("%s: expected ErrUnrenderable, got %v", name, err)
		}
	}
	if _, err := Render(ir.NewDocument(nil)); !errors.Is(err, ErrUnrenderable) {
		t.Errorf("nil statement: expected ErrUnrenderable, got %v", err)
	}
	if _, err := Render(ir.NewDocument(ir.Must(ir.Assign("X", "a\xffb")))); !errors.Is(err, ErrUnrenderable) {
		t.Errorf("invalid utf8 assignment: expected ErrUnrenderable, got %v", err)
	}
}

func TestDepthRestoredOnError(t *testing.T) {
	bad := &ir.Node{
		Type: ir.ArrayType,
		Values: []*ir.Node{
			ir.Must(ir.Call("f", nil, ir.Kw("a", 1), ir.Kw("b", []any{1, &ir.Node{Type: ir.Type(99)}}))),
			ir.FromInt(2),
		},
	}
	es := newEncState(nil)
	if err := encode(bad, io.Discard, es); !errors.Is(err, ErrUnrenderable) {
		t.Fatalf("expected ErrUnrenderable, got %v", err)
	}
	if es.depth != 0 {
		t.Errorf("depth = %d after failed encode", es.depth)
	}
}

func TestEncodeDepth(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	if err := EncodeNode(ir.Must(ir.Array("a", "b")), buf, Depth(1)); err != nil {
		t.Fatal(err)
	}
	checkText(t, "[\n        \"a\",\n        \"b\",\n    ]\n", buf.String())

	doc := ir.NewDocument()
	doc.Append(
		ir.Must(ir.Call("load", []any{"//a.bzl", "x"})),
		ir.Must(ir.Call("load", []any{"//b.bzl", "y"})),
		ir.Must(ir.Assign("X", 1)),
	)
	got, err := Render(doc, Depth(1))
	if err != nil {
		t.Fatal(err)
	}
	checkText(t, "    load(\"//a.bzl\", \"x\")\n    load(\"//b.bzl\", \"y\")\n\n    X = 1\n", got)
}

func TestEncodeColors(t *testing.T) {
	colors := NewColors()
	colors.Default = func(v string, _ ...any) string { return v }
	for k := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string { return "<" + v + ">" }
	}
	got := MustString(ir.Must(ir.Call("f", nil, ir.Kw("a", 1))), EncodeColors(colors))
	checkText(t, "<f><(><a>< = ><1><)>", got)
}
