package encode

import (
	"github.com/signadot/starlark-compiler/ir"
	"github.com/signadot/starlark-compiler/token"
)

// MaxSingleLineString is the longest string, in characters, that keeps its
// parent on one line.
const MaxSingleLineString = 50

// ArrayPolicy selects when an array literal is written on one line.
type ArrayPolicy int

const (
	// ArrayByCount puts arrays of at most one single line element on one
	// line.
	ArrayByCount ArrayPolicy = iota
	// ArrayPacked additionally puts arrays of strings on one line when their
	// combined length is under MaxSingleLineString.
	ArrayPacked
)

func (p ArrayPolicy) String() string {
	switch p {
	case ArrayByCount:
		return "count"
	case ArrayPacked:
		return "packed"
	default:
		return "<unknown array policy>"
	}
}

// SingleLine reports whether node is laid out on one line.  The decision is
// made bottom up: containers are single line only if their children are.
// Statements are never single line.
func SingleLine(node *ir.Node, policy ArrayPolicy) bool {
	if node == nil {
		return true
	}
	switch node.Type {
	case ir.NoneType, ir.BoolType, ir.NumberType, ir.ReferenceType:
		return true
	case ir.StringType:
		return token.Len(node.String) <= MaxSingleLineString
	case ir.BinaryType:
		return SingleLine(node.Left, policy) && SingleLine(node.Right, policy)
	case ir.ArrayType:
		if len(node.Values) <= 1 && allSingleLine(node.Values, policy) {
			return true
		}
		return policy == ArrayPacked && packable(node.Values)
	case ir.DictionaryType:
		return len(node.Fields) <= 1 && allSingleLine(node.Values, policy)
	case ir.CallType:
		return singleLineCall(node, policy)
	default:
		return false
	}
}

func singleLineCall(node *ir.Node, policy ArrayPolicy) bool {
	switch {
	case len(node.Values) == 0:
		if len(node.Kwargs) > 1 {
			return false
		}
		for _, kw := range node.Kwargs {
			if !SingleLine(kw.Value, policy) {
				return false
			}
		}
		return true
	case len(node.Kwargs) == 0:
		if len(node.Values) <= 2 && allSingleLine(node.Values, policy) {
			return true
		}
		return len(node.Values) == 1 && node.Values[0] != nil && node.Values[0].Type.IsContainer()
	default:
		return false
	}
}

func allSingleLine(nodes []*ir.Node, policy ArrayPolicy) bool {
	for _, n := range nodes {
		if !SingleLine(n, policy) {
			return false
		}
	}
	return true
}

func packable(elems []*ir.Node) bool {
	total := 0
	for _, e := range elems {
		if e == nil || e.Type != ir.StringType {
			return false
		}
		total += token.Len(e.String)
	}
	return total < MaxSingleLineString
}
