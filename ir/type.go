package ir

import "fmt"

type Type int

const (
	NoneType Type = iota
	BoolType
	NumberType
	StringType
	ReferenceType
	ArrayType
	DictionaryType
	BinaryType
	CallType
	AssignmentType
	DeclarationType
)

var typeNames = map[Type]string{
	NoneType:        "None",
	BoolType:        "Bool",
	NumberType:      "Number",
	StringType:      "String",
	ReferenceType:   "VariableReference",
	ArrayType:       "Array",
	DictionaryType:  "Dictionary",
	BinaryType:      "BinaryOperator",
	CallType:        "FunctionCall",
	AssignmentType:  "VariableAssignment",
	DeclarationType: "FunctionDeclaration",
}

func (t Type) String() string {
	s, ok := typeNames[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, err := ParseType(string(d))
	if err != nil {
		return err
	}
	*t = tt
	return nil
}

// ParseType returns the type whose variant name is v, e.g. "FunctionCall".
func ParseType(v string) (Type, error) {
	for t, s := range typeNames {
		if s == v {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unrecognized type %q", v)
}

func Types() []Type {
	return []Type{
		NoneType,
		BoolType,
		NumberType,
		StringType,
		ReferenceType,
		ArrayType,
		DictionaryType,
		BinaryType,
		CallType,
		AssignmentType,
		DeclarationType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case NoneType, BoolType, NumberType, StringType, ReferenceType:
		return true
	default:
		return false
	}
}

// IsContainer reports whether t is a bracketed collection literal.
func (t Type) IsContainer() bool {
	return t == ArrayType || t == DictionaryType
}

// IsStatement reports whether nodes of type t may only appear at statement
// level: at the top of a document or in a function body.
func (t Type) IsStatement() bool {
	return t == AssignmentType || t == DeclarationType
}
