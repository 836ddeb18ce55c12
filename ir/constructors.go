package ir

import (
	"fmt"
	"strings"
	"unicode"
)

// Constructor builds a node of one variant from positional and keyword
// values, converting them with FromValue.
type Constructor func(args []any, kwargs ...NamedValue) (*Node, error)

var constructors = map[Type]Constructor{
	NoneType:        newNone,
	BoolType:        newBool,
	NumberType:      newNumber,
	StringType:      newString,
	ReferenceType:   newReference,
	ArrayType:       newArray,
	DictionaryType:  newDictionary,
	BinaryType:      newBinary,
	CallType:        newCall,
	AssignmentType:  newAssignment,
	DeclarationType: newDeclaration,
}

// Lookup returns the constructor for a variant, named either as the variant
// ("FunctionCall") or as its snake cased call site form ("function_call").
func Lookup(name string) (Constructor, error) {
	t, err := ParseType(variantName(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConstructor, name)
	}
	c, ok := constructors[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConstructor, name)
	}
	return c, nil
}

// Build looks up the constructor called name and applies it.
func Build(name string, args []any, kwargs ...NamedValue) (*Node, error) {
	c, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return c(args, kwargs...)
}

func variantName(v string) string {
	if !strings.Contains(v, "_") && v != "" && unicode.IsUpper(rune(v[0])) {
		return v
	}
	b := &strings.Builder{}
	for _, part := range strings.Split(v, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(strings.ToLower(part[1:]))
	}
	return b.String()
}

func arity(t Type, args []any, kwargs []NamedValue, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrInvalidNode, t, n, len(args))
	}
	if len(kwargs) != 0 {
		return fmt.Errorf("%w: %s takes no keyword arguments", ErrInvalidNode, t)
	}
	return nil
}

func newNone(args []any, kwargs ...NamedValue) (*Node, error) {
	if err := arity(NoneType, args, kwargs, 0); err != nil {
		return nil, err
	}
	return None(), nil
}

func newBool(args []any, kwargs ...NamedValue) (*Node, error) {
	return newScalar(BoolType, args, kwargs)
}

func newNumber(args []any, kwargs ...NamedValue) (*Node, error) {
	return newScalar(NumberType, args, kwargs)
}

func newString(args []any, kwargs ...NamedValue) (*Node, error) {
	return newScalar(StringType, args, kwargs)
}

func newArray(args []any, kwargs ...NamedValue) (*Node, error) {
	return newScalar(ArrayType, args, kwargs)
}

func newDictionary(args []any, kwargs ...NamedValue) (*Node, error) {
	return newScalar(DictionaryType, args, kwargs)
}

// newScalar converts a single argument and checks it lands on t.
func newScalar(t Type, args []any, kwargs []NamedValue) (*Node, error) {
	if err := arity(t, args, kwargs, 1); err != nil {
		return nil, err
	}
	y, err := FromValue(args[0])
	if err != nil {
		return nil, err
	}
	if y.Type != t {
		return nil, fmt.Errorf("%w: %T is not a %s", ErrConversion, args[0], t)
	}
	return y, nil
}

func newReference(args []any, kwargs ...NamedValue) (*Node, error) {
	if err := arity(ReferenceType, args, kwargs, 1); err != nil {
		return nil, err
	}
	name, ok := args[0].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: variable reference needs a name, got %T", ErrInvalidNode, args[0])
	}
	return Ref(name), nil
}

// newBinary takes (lhs, rhs) and the keyword operator, defaulting to "+".
func newBinary(args []any, kwargs ...NamedValue) (*Node, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: %s takes 2 arguments, got %d", ErrInvalidNode, BinaryType, len(args))
	}
	op := Plus
	for _, kw := range kwargs {
		if kw.Name != "operator" {
			return nil, fmt.Errorf("%w: %s has no keyword %q", ErrInvalidNode, BinaryType, kw.Name)
		}
		s, ok := kw.Value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: operator must be a string, got %T", ErrInvalidNode, kw.Value)
		}
		var err error
		op, err = ParseOperator(s)
		if err != nil {
			return nil, err
		}
	}
	return Binary(args[0], op, args[1])
}

func newCall(args []any, kwargs ...NamedValue) (*Node, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: %s needs a function name", ErrInvalidNode, CallType)
	}
	name, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: function name must be a string, got %T", ErrInvalidNode, args[0])
	}
	return Call(name, args[1:], kwargs...)
}

func newAssignment(args []any, kwargs ...NamedValue) (*Node, error) {
	if err := arity(AssignmentType, args, kwargs, 2); err != nil {
		return nil, err
	}
	name, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: variable name must be a string, got %T", ErrInvalidNode, args[0])
	}
	return Assign(name, args[1])
}

// newDeclaration takes (name, params, body statements...).
func newDeclaration(args []any, kwargs ...NamedValue) (*Node, error) {
	if len(args) < 2 || len(kwargs) != 0 {
		return nil, fmt.Errorf("%w: %s takes a name, parameters and body", ErrInvalidNode, DeclarationType)
	}
	name, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: function name must be a string, got %T", ErrInvalidNode, args[0])
	}
	params, ok := args[1].([]string)
	if !ok && args[1] != nil {
		return nil, fmt.Errorf("%w: parameters must be []string, got %T", ErrInvalidNode, args[1])
	}
	body := make([]*Node, len(args)-2)
	for i, a := range args[2:] {
		y, err := FromValue(a)
		if err != nil {
			return nil, fmt.Errorf("body of %s: %w", name, err)
		}
		body[i] = y
	}
	return Def(name, params, body...)
}
