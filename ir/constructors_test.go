package ir

import (
	"errors"
	"testing"
)

func TestVariantName(t *testing.T) {
	for in, want := range map[string]string{
		"function_call":        "FunctionCall",
		"FunctionCall":         "FunctionCall",
		"none":                 "None",
		"string":               "String",
		"variable_reference":   "VariableReference",
		"binary_operator":      "BinaryOperator",
		"function_declaration": "FunctionDeclaration",
	} {
		if got := variantName(in); got != want {
			t.Errorf("variantName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLookupCoversAllTypes(t *testing.T) {
	for _, typ := range Types() {
		if _, err := Lookup(typ.String()); err != nil {
			t.Errorf("no constructor for %s: %v", typ, err)
		}
	}
	if _, err := Lookup("method_call"); !errors.Is(err, ErrUnknownConstructor) {
		t.Errorf("expected ErrUnknownConstructor, got %v", err)
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name   string
		args   []any
		kwargs []NamedValue
		want   Type
	}{
		{"none", nil, nil, NoneType},
		{"bool", []any{true}, nil, BoolType},
		{"number", []any{3}, nil, NumberType},
		{"string", []any{"s"}, nil, StringType},
		{"variable_reference", []any{"X"}, nil, ReferenceType},
		{"array", []any{[]any{1, "a"}}, nil, ArrayType},
		{"dictionary", []any{map[string]any{"a": 1}}, nil, DictionaryType},
		{"binary_operator", []any{1, 2}, []NamedValue{Kw("operator", "*")}, BinaryType},
		{"function_call", []any{"glob", []string{"*.go"}}, []NamedValue{Kw("allow_empty", true)}, CallType},
		{"variable_assignment", []any{"X", 1}, nil, AssignmentType},
		{"function_declaration", []any{"m", []string{"name"}, Must(Call("pass_through", nil))}, nil, DeclarationType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.name, tt.args, tt.kwargs...)
			if err != nil {
				t.Fatal(err)
			}
			if got.Type != tt.want {
				t.Errorf("Build(%s) type = %s, want %s", tt.name, got.Type, tt.want)
			}
		})
	}
}

func TestBuildBinaryOperatorDefault(t *testing.T) {
	got, err := Build("binary_operator", []any{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if got.Operator != Plus {
		t.Errorf("default operator = %s", got.Operator)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want error
	}{
		{"none", []any{1}, ErrInvalidNode},
		{"string", []any{1}, ErrConversion},
		{"array", []any{"x"}, ErrConversion},
		{"number", []any{struct{}{}}, ErrConversion},
		{"function_call", nil, ErrInvalidNode},
		{"variable_reference", []any{""}, ErrInvalidNode},
		{"variable_assignment", []any{"X", Must(Assign("Y", 1))}, ErrInvalidAssignment},
		{"function_declaration", []any{"m"}, ErrInvalidNode},
		{"frobnicate", nil, ErrUnknownConstructor},
	}
	for _, tt := range tests {
		if _, err := Build(tt.name, tt.args); !errors.Is(err, tt.want) {
			t.Errorf("Build(%s, %v): expected %v, got %v", tt.name, tt.args, tt.want, err)
		}
	}
}
