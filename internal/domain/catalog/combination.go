package catalog

import (
	"sort"
	"strings"
)

// Combination assigns exactly one value to each eligible attribute,
// keyed by attribute name. Combinations are ephemeral: they exist only
// during a generation pass and are never persisted directly.
type Combination map[string]string

// Key returns the canonical identity of the combination: the sorted
// "name=value" pairs joined by "|". Two combinations with the same
// assignments always produce the same key regardless of attribute
// declaration order.
func (c Combination) Key() string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+c[name])
	}
	return strings.Join(pairs, "|")
}

// GenerateCombinations produces the Cartesian product of the given
// attributes' values. The first attribute varies outermost, so for
// Color=[Red,Blue] and Size=[S,M] the order is Red/S, Red/M, Blue/S,
// Blue/M. Downstream reconciliation relies on this order being stable.
//
// Zero attributes yields an empty sequence, which callers interpret as
// "variants disabled".
func GenerateCombinations(attrs []*Attribute) []Combination {
	if len(attrs) == 0 {
		return nil
	}

	combos := []Combination{{}}
	for _, attr := range attrs {
		next := make([]Combination, 0, len(combos)*len(attr.Values))
		for _, base := range combos {
			for _, value := range attr.Values {
				combo := make(Combination, len(base)+1)
				for k, v := range base {
					combo[k] = v
				}
				combo[attr.Name] = value
				next = append(next, combo)
			}
		}
		combos = next
	}
	return combos
}
