package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/starlark-compiler/ir"
)

// MustString renders node without the trailing newline, panicking on error.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := EncodeNode(node, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
