// Package build aggregates the statements of one Bazel package into a
// BUILD file.
//
// Loads are merged per module, targets are keyed by their name attribute
// and attributes are put in buildifier's order, so that the same set of
// additions always renders the same text regardless of the order they were
// made in.
//
//	bf := build.NewBuildFile("app", build.Workspace(root))
//	err := bf.AddLoad("@rules_cc//cc:defs.bzl", "cc_library")
//	err = bf.AddTarget(ir.Must(ir.Call("cc_library", nil,
//	    ir.Kw("srcs", []string{"lib.cc"}),
//	    ir.Kw("name", "lib"),
//	)))
//	err = bf.Save()
package build
