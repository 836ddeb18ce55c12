package manifest

import (
	"fmt"
	"maps"
	"slices"

	"github.com/signadot/starlark-compiler/ir"

	"github.com/goccy/go-yaml"
)

const (
	refKey  = "$ref"
	exprKey = "$expr"
)

// ToNode converts a decoded manifest value.  A single entry mapping
// {$ref: NAME} is a variable reference and {$expr: SOURCE} is parsed with
// ParseExpr; other values convert as by ir.FromValue with mappings kept in
// order.
func ToNode(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		if len(x) == 1 {
			if k, ok := x[0].Key.(string); ok {
				if y, ok, err := special(k, x[0].Value); ok {
					return y, err
				}
			}
		}
		pairs := make([]ir.Pair, len(x))
		for i, item := range x {
			k, err := ToNode(item.Key)
			if err != nil {
				return nil, err
			}
			val, err := ToNode(item.Value)
			if err != nil {
				return nil, fmt.Errorf("value of %v: %w", item.Key, err)
			}
			pairs[i] = ir.Pair{Key: k, Value: val}
		}
		return ir.Dict(pairs...)
	case map[string]any:
		if len(x) == 1 {
			for k, val := range x {
				if y, ok, err := special(k, val); ok {
					return y, err
				}
			}
		}
		keys := slices.Sorted(maps.Keys(x))
		pairs := make([]ir.Pair, len(keys))
		for i, k := range keys {
			val, err := ToNode(x[k])
			if err != nil {
				return nil, fmt.Errorf("value of %s: %w", k, err)
			}
			pairs[i] = ir.Pair{Key: k, Value: val}
		}
		return ir.Dict(pairs...)
	case []any:
		elems := make([]*ir.Node, len(x))
		for i, e := range x {
			y, err := ToNode(e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = y
		}
		return ir.FromSlice(elems), nil
	default:
		return ir.FromValue(v)
	}
}

func special(key string, v any) (*ir.Node, bool, error) {
	switch key {
	case refKey:
		name, ok := v.(string)
		if !ok || name == "" {
			return nil, true, fmt.Errorf("%w: %s needs a variable name, got %v", ErrManifest, refKey, v)
		}
		return ir.Ref(name), true, nil
	case exprKey:
		src, ok := v.(string)
		if !ok {
			return nil, true, fmt.Errorf("%w: %s needs a string, got %T", ErrManifest, exprKey, v)
		}
		y, err := ParseExpr(src)
		return y, true, err
	default:
		return nil, false, nil
	}
}
