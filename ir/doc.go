// Package ir provides the intermediate representation of Starlark build
// files: a closed set of node variants distinguished by [Type].
//
// # Building nodes
//
// Each variant has a constructor, and [FromValue] converts Go values:
//
//	srcs := ir.Must(ir.Call("glob", []any{[]string{"Sources/**/*.swift"}}))
//	lib := ir.Must(ir.Call("ios_library", nil,
//	    ir.Kw("name", "App_Objc"),
//	    ir.Kw("srcs", srcs.Add(ir.Must(ir.Array("A.swift")))),
//	))
//
// Constructors may also be looked up by name with [Lookup] or [Build],
// accepting the variant name ("FunctionCall") or the snake cased form
// ("function_call").
//
// Values with no node mapping fail with [ErrConversion]; an assignment on the
// right hand side of an assignment fails with [ErrInvalidAssignment].
//
// # Related Packages
//
//   - github.com/signadot/starlark-compiler/encode - Encode IR to text
//   - github.com/signadot/starlark-compiler/build - Aggregate BUILD files
package ir
