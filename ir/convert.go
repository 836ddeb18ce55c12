package ir

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Pair is an ordered dictionary entry.  A []Pair converts to a Dictionary
// with entries in slice order.
type Pair struct {
	Key   any
	Value any
}

// FromValue converts a Go value to a Node.
//
//	*Node                    itself
//	nil                      None
//	bool                     Bool
//	string                   String
//	integer and float kinds  Number
//	[]any, []string, []int,
//	[]*Node                  Array
//	[]Pair                   Dictionary, in order
//	map[string]any,
//	map[string]string        Dictionary, keys sorted
//
// Any other type is an ErrConversion.
func FromValue(v any) (*Node, error) {
	switch x := v.(type) {
	case *Node:
		if x == nil {
			return nil, fmt.Errorf("%w: nil *ir.Node", ErrConversion)
		}
		return x, nil
	case nil:
		return None(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return fromUint(x)
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case []*Node:
		return fromSlice(x)
	case []any:
		return fromSlice(x)
	case []string:
		return fromSlice(x)
	case []int:
		return fromSlice(x)
	case []Pair:
		return Dict(x...)
	case map[string]any:
		return fromMap(x)
	case map[string]string:
		return fromMap(x)
	default:
		return nil, fmt.Errorf("%w: Go type %T not convertible to node", ErrConversion, v)
	}
}

func fromUint(v uint64) (*Node, error) {
	if v > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d overflows int64", ErrConversion, v)
	}
	return FromInt(int64(v)), nil
}

func fromSlice[T any](elems []T) (*Node, error) {
	values := make([]*Node, len(elems))
	for i, e := range elems {
		v, err := exprValue(e)
		if err != nil {
			return nil, fmt.Errorf("array element %d: %w", i, err)
		}
		values[i] = v
	}
	return FromSlice(values), nil
}

func fromMap[T any](m map[string]T) (*Node, error) {
	keys := slices.Sorted(maps.Keys(m))
	pairs := make([]Pair, len(keys))
	for i, k := range keys {
		pairs[i] = Pair{Key: k, Value: m[k]}
	}
	return Dict(pairs...)
}

// exprValue converts v and requires the result to be an expression.
func exprValue(v any) (*Node, error) {
	y, err := FromValue(v)
	if err != nil {
		return nil, err
	}
	if y.Type.IsStatement() {
		return nil, fmt.Errorf("%w: %s %s used as an expression", ErrInvalidNode, y.Type, y.Name)
	}
	return y, nil
}
