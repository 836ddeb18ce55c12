package ir

import (
	"cmp"
	"slices"
)

type Kwarg struct {
	Name  string
	Value *Node
}

// Kwargs holds the keyword arguments of a call in render order.
type Kwargs []Kwarg

func (k Kwargs) Get(name string) *Node {
	for i := range k {
		if k[i].Name == name {
			return k[i].Value
		}
	}
	return nil
}

func (k Kwargs) Has(name string) bool {
	return k.Get(name) != nil
}

// Set replaces the value of name in place, or appends it.
func (k *Kwargs) Set(name string, v *Node) {
	for i := range *k {
		if (*k)[i].Name == name {
			(*k)[i].Value = v
			return
		}
	}
	*k = append(*k, Kwarg{Name: name, Value: v})
}

func (k Kwargs) Names() []string {
	res := make([]string, len(k))
	for i := range k {
		res[i] = k[i].Name
	}
	return res
}

// Sort reorders k by compare on names.  Equal names keep their order.
func (k Kwargs) Sort(compare func(a, b string) int) {
	slices.SortStableFunc(k, func(a, b Kwarg) int {
		return compare(a.Name, b.Name)
	})
}

// SortByName is Sort with lexical order.
func (k Kwargs) SortByName() {
	k.Sort(cmp.Compare[string])
}
