package walk

import (
	"math/rand/v2"
)

// aliasTable samples an index in O(1) from a fixed discrete distribution
// (Vose's method).
type aliasTable struct {
	prob  []float64
	alias []int
}

// newAliasTable builds a table from non-negative weights. A zero or
// non-finite total falls back to the uniform distribution.
// Complexity: O(len(weights)).
func newAliasTable(weights []float64) aliasTable {
	n := len(weights)
	t := aliasTable{prob: make([]float64, n), alias: make([]int, n)}
	if n == 0 {
		return t
	}
	var total float64
	for _, w := range weights {
		total += w
	}
	scaled := make([]float64, n)
	for i, w := range weights {
		if total > 0 && total < maxFinite {
			scaled[i] = w * float64(n) / total
		} else {
			scaled[i] = 1
		}
	}

	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i, p := range scaled {
		if p < 1 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}
	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		t.prob[s] = scaled[s]
		t.alias[s] = l
		scaled[l] = scaled[l] + scaled[s] - 1
		if scaled[l] < 1 {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}
	// Leftovers are 1 up to rounding.
	for _, i := range large {
		t.prob[i] = 1
		t.alias[i] = i
	}
	for _, i := range small {
		t.prob[i] = 1
		t.alias[i] = i
	}

	return t
}

// sample draws one index.
func (t aliasTable) sample(rng *rand.Rand) int {
	i := rng.IntN(len(t.prob))
	if rng.Float64() < t.prob[i] {
		return i
	}

	return t.alias[i]
}
