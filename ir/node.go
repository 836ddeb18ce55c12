package ir

import (
	"fmt"
	"strings"

	"github.com/signadot/starlark-compiler/token"
)

// Node is a Starlark expression or statement.  Type selects the variant;
// only the fields belonging to that variant are set.
//
//	NoneType         -
//	BoolType         Bool
//	NumberType       Int64 or Float64
//	StringType       String
//	ReferenceType    Name
//	ArrayType        Values
//	DictionaryType   Fields (keys) and Values, index aligned
//	BinaryType       Left, Operator, Right
//	CallType         Name, Values (positional), Kwargs
//	AssignmentType   Name, Right
//	DeclarationType  Name, Params, Values (body)
type Node struct {
	Type Type

	Name     string
	Operator Operator
	Left     *Node
	Right    *Node
	Fields   []*Node
	Values   []*Node
	Kwargs   Kwargs
	Params   []string

	String  string
	Bool    bool
	Int64   *int64
	Float64 *float64
}

// NamedValue is a keyword argument before conversion to a Node.
type NamedValue struct {
	Name  string
	Value any
}

func Kw(name string, v any) NamedValue {
	return NamedValue{Name: name, Value: v}
}

func None() *Node {
	return &Node{Type: NoneType}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

// Ref is a reference to a variable by name.  The name is emitted verbatim
// and never resolved.
func Ref(name string) *Node {
	return &Node{
		Type: ReferenceType,
		Name: name,
	}
}

func FromSlice(elems []*Node) *Node {
	return &Node{
		Type:   ArrayType,
		Values: elems,
	}
}

// Array converts each element with FromValue.
func Array(elems ...any) (*Node, error) {
	return fromSlice(elems)
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: DictionaryType}
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		res.Fields[i] = kvs[i].Key
		res.Values[i] = kvs[i].Val
	}
	return res
}

// Dict builds a dictionary whose entries keep the order of pairs.
func Dict(pairs ...Pair) (*Node, error) {
	kvs := make([]KeyVal, len(pairs))
	for i, p := range pairs {
		k, err := exprValue(p.Key)
		if err != nil {
			return nil, fmt.Errorf("dictionary key %d: %w", i, err)
		}
		v, err := exprValue(p.Value)
		if err != nil {
			return nil, fmt.Errorf("dictionary value %d: %w", i, err)
		}
		kvs[i] = KeyVal{Key: k, Val: v}
	}
	return FromKeyVals(kvs), nil
}

func Binary(lhs any, op Operator, rhs any) (*Node, error) {
	if op < 0 || int(op) >= len(operatorSymbols) {
		return nil, fmt.Errorf("%w: unsupported operator %d", ErrInvalidNode, op)
	}
	l, err := exprValue(lhs)
	if err != nil {
		return nil, fmt.Errorf("left operand of %s: %w", op, err)
	}
	r, err := exprValue(rhs)
	if err != nil {
		return nil, fmt.Errorf("right operand of %s: %w", op, err)
	}
	return binary(l, op, r), nil
}

func binary(l *Node, op Operator, r *Node) *Node {
	return &Node{
		Type:     BinaryType,
		Left:     l,
		Operator: op,
		Right:    r,
	}
}

// Call builds a function call.  Keyword arguments keep the order given;
// a keyword given twice is an error.
func Call(name string, args []any, kwargs ...NamedValue) (*Node, error) {
	if !token.IsDottedName(name) {
		return nil, fmt.Errorf("%w: bad function name %q", ErrInvalidNode, name)
	}
	res := &Node{
		Type:   CallType,
		Name:   name,
		Values: make([]*Node, len(args)),
		Kwargs: make(Kwargs, 0, len(kwargs)),
	}
	for i, a := range args {
		v, err := exprValue(a)
		if err != nil {
			return nil, fmt.Errorf("%s argument %d: %w", name, i, err)
		}
		res.Values[i] = v
	}
	for _, kw := range kwargs {
		if !token.IsIdentifier(kw.Name) {
			return nil, fmt.Errorf("%w: bad keyword %q in call to %s", ErrInvalidNode, kw.Name, name)
		}
		if res.Kwargs.Has(kw.Name) {
			return nil, fmt.Errorf("%w: keyword %q repeated in call to %s", ErrInvalidNode, kw.Name, name)
		}
		v, err := exprValue(kw.Value)
		if err != nil {
			return nil, fmt.Errorf("%s keyword %s: %w", name, kw.Name, err)
		}
		res.Kwargs = append(res.Kwargs, Kwarg{Name: kw.Name, Value: v})
	}
	return res, nil
}

// Assign builds `name = value`.  The value may not itself be an assignment.
func Assign(name string, value any) (*Node, error) {
	if !token.IsIdentifier(name) {
		return nil, fmt.Errorf("%w: bad variable name %q", ErrInvalidNode, name)
	}
	v, err := FromValue(value)
	if err != nil {
		return nil, fmt.Errorf("value of %s: %w", name, err)
	}
	switch v.Type {
	case AssignmentType:
		return nil, fmt.Errorf("%w: %s = %s = ...", ErrInvalidAssignment, name, v.Name)
	case DeclarationType:
		return nil, fmt.Errorf("%w: cannot assign function definition %s to %s", ErrInvalidAssignment, v.Name, name)
	}
	return &Node{
		Type:  AssignmentType,
		Name:  name,
		Right: v,
	}, nil
}

// Def builds a function (macro) definition.
func Def(name string, params []string, body ...*Node) (*Node, error) {
	if !token.IsIdentifier(name) {
		return nil, fmt.Errorf("%w: bad function name %q", ErrInvalidNode, name)
	}
	for _, p := range params {
		if !token.IsIdentifier(strings.TrimLeft(p, "*")) {
			return nil, fmt.Errorf("%w: bad parameter %q of %s", ErrInvalidNode, p, name)
		}
	}
	for i, stmt := range body {
		if stmt == nil {
			return nil, fmt.Errorf("%w: nil statement %d in body of %s", ErrInvalidNode, i, name)
		}
	}
	return &Node{
		Type:   DeclarationType,
		Name:   name,
		Params: params,
		Values: body,
	}, nil
}

// Must panics if err is not nil.  It is meant for building trees from
// constants.
func Must(y *Node, err error) *Node {
	if err != nil {
		panic(err)
	}
	return y
}

// IsLoad reports whether y is a load(...) statement.
func (y *Node) IsLoad() bool {
	return y != nil && y.Type == CallType && y.Name == "load"
}

func (y *Node) Op(op Operator, rhs any) (*Node, error) {
	return Binary(y, op, rhs)
}

func (y *Node) Add(rhs *Node) *Node { return binary(y, Plus, rhs) }
func (y *Node) Sub(rhs *Node) *Node { return binary(y, Minus, rhs) }
func (y *Node) Mul(rhs *Node) *Node { return binary(y, Times, rhs) }
func (y *Node) Div(rhs *Node) *Node { return binary(y, Divide, rhs) }
func (y *Node) Mod(rhs *Node) *Node { return binary(y, Modulo, rhs) }
func (y *Node) Eq(rhs *Node) *Node  { return binary(y, Equal, rhs) }
func (y *Node) Ne(rhs *Node) *Node  { return binary(y, NotEqual, rhs) }
func (y *Node) Lt(rhs *Node) *Node  { return binary(y, Less, rhs) }
func (y *Node) Le(rhs *Node) *Node  { return binary(y, LessEqual, rhs) }
func (y *Node) Gt(rhs *Node) *Node  { return binary(y, Greater, rhs) }
func (y *Node) Ge(rhs *Node) *Node  { return binary(y, GreaterEqual, rhs) }

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	dst := &Node{
		Type:     y.Type,
		Name:     y.Name,
		Operator: y.Operator,
		Left:     y.Left.Clone(),
		Right:    y.Right.Clone(),
		String:   y.String,
		Bool:     y.Bool,
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, f := range y.Fields {
			dst.Fields[i] = f.Clone()
		}
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			dst.Values[i] = v.Clone()
		}
	}
	if y.Kwargs != nil {
		dst.Kwargs = make(Kwargs, len(y.Kwargs))
		for i, kw := range y.Kwargs {
			dst.Kwargs[i] = Kwarg{Name: kw.Name, Value: kw.Value.Clone()}
		}
	}
	if y.Params != nil {
		dst.Params = append([]string(nil), y.Params...)
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	return dst
}

// Children returns the direct sub-nodes of y in source order.
func (y *Node) Children() []*Node {
	switch y.Type {
	case BinaryType:
		return []*Node{y.Left, y.Right}
	case AssignmentType:
		return []*Node{y.Right}
	case DictionaryType:
		res := make([]*Node, 0, 2*len(y.Fields))
		for i := range y.Fields {
			res = append(res, y.Fields[i], y.Values[i])
		}
		return res
	case CallType:
		res := make([]*Node, 0, len(y.Values)+len(y.Kwargs))
		res = append(res, y.Values...)
		for _, kw := range y.Kwargs {
			res = append(res, kw.Value)
		}
		return res
	case ArrayType, DeclarationType:
		return y.Values
	default:
		return nil
	}
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Children() {
			if yy == nil {
				return fmt.Errorf("%w: nil child of %s", ErrInvalidNode, y.Type)
			}
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
