package ir

import "fmt"

type Operator int

const (
	Plus Operator = iota
	Minus
	Times
	Divide
	Modulo
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
)

var operatorSymbols = []string{
	Plus:         "+",
	Minus:        "-",
	Times:        "*",
	Divide:       "/",
	Modulo:       "%",
	Equal:        "==",
	NotEqual:     "!=",
	Less:         "<",
	LessEqual:    "<=",
	Greater:      ">",
	GreaterEqual: ">=",
}

func (o Operator) String() string {
	if o < 0 || int(o) >= len(operatorSymbols) {
		return "<unknown operator>"
	}
	return operatorSymbols[o]
}

func ParseOperator(v string) (Operator, error) {
	for i, s := range operatorSymbols {
		if s == v {
			return Operator(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unsupported operator %q", ErrInvalidNode, v)
}

func Operators() []Operator {
	res := make([]Operator, len(operatorSymbols))
	for i := range operatorSymbols {
		res[i] = Operator(i)
	}
	return res
}

// Precedence returns how tightly o binds; higher binds tighter.
// Comparisons share the lowest level and do not associate.
func (o Operator) Precedence() int {
	switch o {
	case Times, Divide, Modulo:
		return 3
	case Plus, Minus:
		return 2
	default:
		return 1
	}
}
