// Package encode writes IR documents as Starlark source in the layout
// produced by buildifier.
//
// # Usage
//
//	doc := ir.NewDocument(
//	    ir.Must(ir.Call("load", []any{"@rules_cc//cc:defs.bzl", "cc_library"})),
//	    ir.Must(ir.Call("cc_library", nil,
//	        ir.Kw("name", "lib"),
//	        ir.Kw("srcs", []string{"a.cc", "b.cc"}),
//	    )),
//	)
//	text, err := encode.Render(doc)
//
// renders
//
//	load("@rules_cc//cc:defs.bzl", "cc_library")
//
//	cc_library(
//	    name = "lib",
//	    srcs = [
//	        "a.cc",
//	        "b.cc",
//	    ],
//	)
//
// # Layout
//
// Each node is either single line or multi line, decided bottom up by
// SingleLine.  Multi line lists put one item per line, each followed by a
// comma, indented 4 spaces past the line holding the opening bracket.
//
// # Related Packages
//
//   - github.com/signadot/starlark-compiler/ir - node model
//   - github.com/signadot/starlark-compiler/build - BUILD file aggregation
package encode
