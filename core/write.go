// SPDX-License-Identifier: MIT

package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/katalvlaran/attrimpute/matrix"
)

// WriteFeatures writes m in g's feature layout: one row per node in index
// order, keys and labels taken from g, values in shortest round-trip form.
// m must have exactly g.NodeCount() rows; its column count may differ from
// g.FeatureDimension() (embeddings).
//
// Errors: ErrDimensionMismatch (wrapped) on a row count mismatch, or the
// writer's error.
// Complexity: O(n*c).
func WriteFeatures(w io.Writer, g *Graph, m *matrix.Dense) error {
	if m == nil || m.Rows() != g.NodeCount() {
		rows := 0
		if m != nil {
			rows = m.Rows()
		}

		return fmt.Errorf("core: write features: %w: matrix has %d rows, graph has %d nodes", ErrDimensionMismatch, rows, g.NodeCount())
	}

	row := func(i int) []float64 { return m.RowView(i) }

	return writeRows(w, g, row, func(int, int) bool { return true })
}

// WriteGraph writes g's own feature table, missing positions as "#", so the
// output reloads into an equivalent graph.
func WriteGraph(w io.Writer, g *Graph) error {
	row := func(i int) []float64 { return g.values[i*g.dim : (i+1)*g.dim] }

	return writeRows(w, g, row, func(i, d int) bool { return !g.missing[i*g.dim+d] })
}

// WriteEdges writes one "<key> <key>" line per edge in (U, V) order.
func WriteEdges(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	for _, e := range g.edges {
		bw.WriteString(g.keys[e.U])
		bw.WriteByte(' ')
		bw.WriteString(g.keys[e.V])
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("core: write edges: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("core: write edges: %w", err)
	}

	return nil
}

func writeRows(w io.Writer, g *Graph, row func(i int) []float64, known func(i, d int) bool) error {
	bw := bufio.NewWriter(w)
	layout := g.layout
	if layout.Header != "" {
		bw.WriteString(layout.Header)
		bw.WriteByte('\n')
	}

	var buf []byte
	for i := 0; i < g.NodeCount(); i++ {
		buf = append(buf[:0], g.keys[i]...)
		sep := byte(' ')
		if layout.Tabbed {
			buf = append(buf, '\t')
			sep = ','
		} else {
			buf = append(buf, ' ')
		}
		for j, v := range row(i) {
			if j > 0 {
				buf = append(buf, sep)
			}
			if !known(i, j) {
				buf = append(buf, MissingHash...)

				continue
			}
			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
		}
		if layout.Tabbed && layout.Labels {
			buf = append(buf, '\t')
			buf = append(buf, g.labels[i]...)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("core: write features: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("core: write features: %w", err)
	}

	return nil
}

// WriteFeaturesFile writes m to path (creating parent directories) via WriteFeatures.
func WriteFeaturesFile(path string, g *Graph, m *matrix.Dense) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("core: write features: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("core: write features: %w", err)
	}
	if err := WriteFeatures(f, g, m); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}
