// Package format names the flavors of Starlark files the encoder produces.
//
// # Usage
//
//	f, err := format.ParseFormat("BUILD.bazel")
//	name := f.FileName("")     // "BUILD.bazel"
//
// BUILD flavors forbid function definitions; the .bzl flavor allows them.
//
// # Related Packages
//
//   - github.com/signadot/starlark-compiler/encode - Encode IR to text
//   - github.com/signadot/starlark-compiler/build - Aggregate BUILD files
package format
