package manifest

import (
	"fmt"
	"strings"

	"github.com/signadot/starlark-compiler/ir"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// ParseExpr parses an expression such as
//
//	glob(["src/*.go"]) + [":extra"]
//
// Identifiers become variable references except True, False and None.
// Calls take positional arguments only.
func ParseExpr(src string) (*ir.Node, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifest, exprKey, err)
	}
	y, err := fromAST(tree.Node)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", src, err)
	}
	return y, nil
}

func fromAST(node ast.Node) (*ir.Node, error) {
	switch n := node.(type) {
	case *ast.NilNode:
		return ir.None(), nil
	case *ast.BoolNode:
		return ir.FromBool(n.Value), nil
	case *ast.IntegerNode:
		return ir.FromInt(int64(n.Value)), nil
	case *ast.FloatNode:
		return ir.FromFloat(n.Value), nil
	case *ast.StringNode:
		return ir.FromString(n.Value), nil
	case *ast.IdentifierNode:
		switch n.Value {
		case "True":
			return ir.FromBool(true), nil
		case "False":
			return ir.FromBool(false), nil
		case "None":
			return ir.None(), nil
		}
		return ir.Ref(n.Value), nil
	case *ast.UnaryNode:
		return fromUnary(n)
	case *ast.BinaryNode:
		op, err := ir.ParseOperator(n.Operator)
		if err != nil {
			return nil, fmt.Errorf("%w: operator %s", ir.ErrConversion, n.Operator)
		}
		l, err := fromAST(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := fromAST(n.Right)
		if err != nil {
			return nil, err
		}
		return ir.Binary(l, op, r)
	case *ast.ArrayNode:
		return fromNodes(n.Nodes)
	case *ast.MapNode:
		pairs := make([]ir.Pair, len(n.Pairs))
		for i, p := range n.Pairs {
			pn, ok := p.(*ast.PairNode)
			if !ok {
				return nil, fmt.Errorf("%w: map entry %T", ir.ErrConversion, p)
			}
			k, err := fromAST(pn.Key)
			if err != nil {
				return nil, err
			}
			v, err := fromAST(pn.Value)
			if err != nil {
				return nil, err
			}
			pairs[i] = ir.Pair{Key: k, Value: v}
		}
		return ir.Dict(pairs...)
	case *ast.CallNode:
		name, err := calleeName(n.Callee)
		if err != nil {
			return nil, err
		}
		return fromCall(name, n.Arguments)
	case *ast.BuiltinNode:
		return fromCall(n.Name, n.Arguments)
	default:
		return nil, fmt.Errorf("%w: unsupported expression %T", ir.ErrConversion, node)
	}
}

func fromUnary(n *ast.UnaryNode) (*ir.Node, error) {
	y, err := fromAST(n.Node)
	if err != nil {
		return nil, err
	}
	switch {
	case n.Operator == "+" && y.Type == ir.NumberType:
		return y, nil
	case n.Operator == "-" && y.Int64 != nil:
		return ir.FromInt(-*y.Int64), nil
	case n.Operator == "-" && y.Float64 != nil:
		return ir.FromFloat(-*y.Float64), nil
	default:
		return nil, fmt.Errorf("%w: unary %s on %s", ir.ErrConversion, n.Operator, y.Type)
	}
}

func fromNodes(nodes []ast.Node) (*ir.Node, error) {
	elems := make([]*ir.Node, len(nodes))
	for i, a := range nodes {
		y, err := fromAST(a)
		if err != nil {
			return nil, err
		}
		elems[i] = y
	}
	return ir.FromSlice(elems), nil
}

func fromCall(name string, args []ast.Node) (*ir.Node, error) {
	values := make([]any, len(args))
	for i, a := range args {
		y, err := fromAST(a)
		if err != nil {
			return nil, err
		}
		values[i] = y
	}
	return ir.Call(name, values)
}

// calleeName accepts identifiers and dotted member access like native.glob.
func calleeName(node ast.Node) (string, error) {
	switch n := node.(type) {
	case *ast.IdentifierNode:
		return n.Value, nil
	case *ast.MemberNode:
		prop, ok := n.Property.(*ast.StringNode)
		if !ok || n.Optional {
			break
		}
		base, err := calleeName(n.Node)
		if err != nil {
			return "", err
		}
		return strings.Join([]string{base, prop.Value}, "."), nil
	}
	return "", fmt.Errorf("%w: unsupported callee %T", ir.ErrConversion, node)
}
