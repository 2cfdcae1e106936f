// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column statistics that honour a missing-value mask, so sentinel or
//     placeholder values never leak into means and ranges.
//
// Determinism:
//   - Fixed row order per column; stat.Mean sums in input order.

package matrix

import (
	"gonum.org/v1/gonum/stat"
)

// ColumnStats summarises the known entries of one column.
// When Count == 0 the remaining fields are zero.
type ColumnStats struct {
	Count int
	Mean  float64
	Min   float64
	Max   float64
}

// Range returns Max-Min, or 0 for an empty column.
func (s ColumnStats) Range() float64 {
	if s.Count == 0 {
		return 0
	}

	return s.Max - s.Min
}

// MaskedColumnStats computes count, mean, min and max of every column of m over
// the entries for which known(row, col) reports true. A nil known treats every
// entry as known.
//
// Complexity: O(r*c) time, O(r) scratch space.
func MaskedColumnStats(m *Dense, known func(row, col int) bool) []ColumnStats {
	out := make([]ColumnStats, m.c)
	col := make([]float64, 0, m.r)
	for j := 0; j < m.c; j++ {
		col = col[:0]
		for i := 0; i < m.r; i++ {
			if known != nil && !known(i, j) {
				continue
			}
			col = append(col, m.data[i*m.c+j])
		}
		if len(col) == 0 {
			continue
		}
		s := ColumnStats{Count: len(col), Mean: stat.Mean(col, nil), Min: col[0], Max: col[0]}
		for _, v := range col[1:] {
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
		}
		out[j] = s
	}

	return out
}
