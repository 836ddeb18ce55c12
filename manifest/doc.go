// Package manifest reads declarative descriptions of BUILD and .bzl files.
//
// A manifest is YAML, JSON or TOML:
//
//	package: app
//	format: BUILD.bazel
//	loads:
//	  - module: "@rules_cc//cc:defs.bzl"
//	    symbols: [cc_library]
//	assignments:
//	  - name: COPTS
//	    value: ["-Wall"]
//	targets:
//	  - rule: cc_library
//	    attrs:
//	      name: lib
//	      srcs: {$expr: 'glob(["*.cc"]) + ["extra.cc"]'}
//	      copts: {$ref: COPTS}
//
// Overlays given to Load are merge patches (mappings) or JSON patches
// (sequences) applied to the manifest before it is decoded.
package manifest
