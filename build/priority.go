package build

import "cmp"

// kwargPriority orders well known rule attributes.  Names not listed sort at
// 0, between the two groups.  The table is buildifier's
// (github.com/bazelbuild/buildtools, tables/tables.go).
var kwargPriority = map[string]int{
	"name":              -99,
	"gwt_name":          -98,
	"package_name":      -97,
	"visible_node_name": -96,
	"size":              -95,
	"timeout":           -94,
	"testonly":          -93,
	"src":               -92,
	"srcdir":            -91,
	"srcs":              -90,
	"out":               -89,
	"outs":              -88,
	"hdrs":              -87,
	"has_services":      -86,
	"include":           -85,
	"of":                -84,
	"baseline":          -83,
	"destdir":           1,
	"exports":           2,
	"runtime_deps":      3,
	"deps":              4,
	"implementation":    5,
	"implements":        6,
	"alwayslink":        7,
}

func KwargPriority(name string) int {
	return kwargPriority[name]
}

// CompareKwargs orders keyword names by priority, then lexically.
func CompareKwargs(a, b string) int {
	return cmp.Or(
		cmp.Compare(KwargPriority(a), KwargPriority(b)),
		cmp.Compare(a, b),
	)
}
