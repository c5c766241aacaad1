package domain

import "sort"

// Distribution maps a category (sector, location, cap tier) to a
// non-negative weight.
type Distribution map[string]float64

func (d Distribution) Copy() Distribution {
	out := make(Distribution, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Keys returns the categories in lexical order so float sums over a
// distribution are reproducible.
func (d Distribution) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values follows the order of Keys.
func (d Distribution) Values() []float64 {
	keys := d.Keys()
	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = d[k]
	}
	return values
}
