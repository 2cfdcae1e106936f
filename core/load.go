// SPDX-License-Identifier: MIT
// Package: attrimpute/core
//
// load.go - text loaders for the feature table and the edge list.
//
// Feature layouts:
//   - Tabbed: "<id>\t<v1>,<v2>,...,<vd>[\t<label>]" with an optional header on the
//     first line ("node_id\tfeature\tlabel").
//   - Plain:  "<id> <v1> <v2> ... <vd>".
//
// The layout is detected from the header or the first data row and then
// enforced on every following row.

package core

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
)

const maxLineBytes = 16 << 20

// reader names used in LoadError when Parse is fed anonymous streams.
const (
	featuresSource = "features"
	edgesSource    = "edges"
)

// Load reads the feature table at featurePath and the edge list at edgePath.
//
// Nodes are assigned dense indices in ascending numeric id order. Self-loops
// and duplicate edges are dropped and counted in Stats unless WithStrictEdges
// is given.
//
// Errors: always *LoadError wrapping one of the package sentinels.
// Complexity: O(n*d + m log m).
func Load(featurePath, edgePath string, opts ...LoadOption) (*Graph, error) {
	ff, err := os.Open(featurePath)
	if err != nil {
		return nil, &LoadError{Path: featurePath, Err: fmt.Errorf("%w: %w", ErrFileAccess, err)}
	}
	defer ff.Close()

	ef, err := os.Open(edgePath)
	if err != nil {
		return nil, &LoadError{Path: edgePath, Err: fmt.Errorf("%w: %w", ErrFileAccess, err)}
	}
	defer ef.Close()

	return parse(ff, featurePath, ef, edgePath, opts)
}

// Parse is Load over arbitrary readers. LoadError.Path is "features" or "edges".
func Parse(features, edges io.Reader, opts ...LoadOption) (*Graph, error) {
	return parse(features, featuresSource, edges, edgesSource, opts)
}

func parse(features io.Reader, featurePath string, edges io.Reader, edgePath string, opts []LoadOption) (*Graph, error) {
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	rows, layout, err := readFeatures(features, featurePath, &cfg)
	if err != nil {
		return nil, err
	}
	index := make(map[int64]int, len(rows))
	for i := range rows {
		id, _ := strconv.ParseInt(rows[i].key, 10, 64)
		index[id] = i
	}

	pairs, err := readEdges(edges, edgePath, index)
	if err != nil {
		return nil, err
	}

	return assemble(rows, pairs, edgePath, layout, &cfg)
}

// newScanner returns a line scanner tolerant of very wide feature rows.
func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	return sc
}

func isCommentLine(line string) bool {
	return strings.HasPrefix(line, "%") || strings.HasPrefix(line, "//")
}

// readFeatures parses the feature table and returns rows sorted by numeric id.
func readFeatures(r io.Reader, path string, cfg *loadConfig) ([]nodeRow, Layout, error) {
	var (
		layout   Layout
		rows     []nodeRow
		ids      []int64
		detected bool
		dim      = -1
		sc       = newScanner(r)
		lineNo   int
		dataSeen bool
	)
	for sc.Scan() {
		lineNo++
		raw := strings.TrimRight(sc.Text(), " \r")
		if strings.TrimSpace(raw) == "" || isCommentLine(raw) {
			continue
		}

		// Header is only honoured before any data row.
		if !dataSeen && layout.Header == "" && isHeader(raw) {
			layout.Header = raw
			if strings.Contains(raw, "\t") {
				layout.Tabbed = true
				layout.Labels = len(strings.Split(raw, "\t")) >= 3
				detected = true
			}

			continue
		}
		if !detected {
			layout.Tabbed, layout.Labels = detectTabbed(raw, cfg)
			detected = true
		}
		dataSeen = true

		row, id, err := parseFeatureRow(raw, layout, cfg)
		if err != nil {
			return nil, layout, &LoadError{Path: path, Line: lineNo, Err: err}
		}
		if dim < 0 {
			dim = len(row.vals)
		} else if len(row.vals) != dim {
			return nil, layout, loadErrorf(path, lineNo, ErrDimensionMismatch, "got %d values, want %d", len(row.vals), dim)
		}
		row.line = lineNo
		rows = append(rows, row)
		ids = append(ids, id)
	}
	if err := sc.Err(); err != nil {
		return nil, layout, &LoadError{Path: path, Line: lineNo, Err: fmt.Errorf("%w: %w", ErrFileAccess, err)}
	}
	if len(rows) == 0 {
		return nil, layout, &LoadError{Path: path, Err: ErrEmptyInput}
	}

	// Dense indices follow ascending numeric id.
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case ids[a] < ids[b]:
			return -1
		case ids[a] > ids[b]:
			return 1
		}

		return 0
	})
	sorted := make([]nodeRow, len(rows))
	for i, k := range order {
		if i > 0 && ids[k] == ids[order[i-1]] {
			return nil, layout, loadErrorf(path, rows[k].line, ErrDuplicateNode, "id %d", ids[k])
		}
		sorted[i] = rows[k]
	}

	return sorted, layout, nil
}

// detectTabbed decides the layout from the first data row. Plain rows separate
// with spaces, so two tab-separated fields are "<id>\t<values>" and three are
// "<id>\t<values>\t<label>" unless the third field is a missing marker or a
// non-integral number, which only a plain row of two values can hold.
func detectTabbed(line string, cfg *loadConfig) (tabbed, labels bool) {
	if !strings.Contains(line, "\t") {
		return false, false
	}
	parts := strings.Split(line, "\t")
	switch {
	case len(parts) == 2:
		return true, false
	case len(parts) != 3:
		return false, false
	case strings.Contains(parts[1], ","):
		return true, true
	}
	third := strings.TrimSpace(parts[2])
	if cfg.isMissing(third) {
		return false, false
	}
	if _, err := strconv.ParseInt(third, 10, 64); err == nil {
		return true, true
	}
	if _, err := strconv.ParseFloat(third, 64); err == nil {
		return false, false
	}

	return true, true
}

// isHeader reports whether line is a column header: no token of it, split on
// whitespace and commas, is a number.
func isHeader(line string) bool {
	tokens := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for _, tok := range tokens {
		if _, err := strconv.ParseFloat(tok, 64); err == nil {
			return false
		}
	}

	return len(tokens) > 0
}

// parseFeatureRow splits one data line according to layout.
func parseFeatureRow(line string, layout Layout, cfg *loadConfig) (nodeRow, int64, error) {
	var idTok, label string
	var valToks []string
	if layout.Tabbed {
		parts := strings.Split(line, "\t")
		want := 2
		if layout.Labels {
			want = 3
		}
		if len(parts) != want {
			return nodeRow{}, 0, fmt.Errorf("%w: got %d tab-separated fields, want %d", ErrMalformedLine, len(parts), want)
		}
		idTok = strings.TrimSpace(parts[0])
		valToks = strings.Split(parts[1], ",")
		if layout.Labels {
			label = strings.TrimSpace(parts[2])
		}
	} else {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nodeRow{}, 0, fmt.Errorf("%w: need an id and at least one value", ErrMalformedLine)
		}
		idTok, valToks = fields[0], fields[1:]
	}

	id, err := strconv.ParseInt(idTok, 10, 64)
	if err != nil {
		return nodeRow{}, 0, fmt.Errorf("%w: node id %q is not an integer", ErrMalformedLine, idTok)
	}

	row := nodeRow{key: idTok, label: label, vals: make([]float64, len(valToks)), miss: make([]bool, len(valToks))}
	for d, tok := range valToks {
		tok = strings.TrimSpace(tok)
		if cfg.isMissing(tok) {
			row.miss[d] = true

			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nodeRow{}, 0, fmt.Errorf("%w: %q at dimension %d", ErrNonNumeric, tok, d)
		}
		row.vals[d] = v
	}

	return row, id, nil
}

// readEdges parses "<a> <b>" lines and resolves them against index.
func readEdges(r io.Reader, path string, index map[int64]int) ([]edgePair, error) {
	var pairs []edgePair
	sc := newScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || isCommentLine(line) || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, loadErrorf(path, lineNo, ErrMalformedLine, "got %d fields, want 2", len(fields))
		}
		var ends [2]int
		for k, tok := range fields {
			id, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				return nil, loadErrorf(path, lineNo, ErrMalformedLine, "node id %q is not an integer", tok)
			}
			idx, ok := index[id]
			if !ok {
				return nil, loadErrorf(path, lineNo, ErrUnknownNode, "id %d", id)
			}
			ends[k] = idx
		}
		pairs = append(pairs, edgePair{a: ends[0], b: ends[1], line: lineNo})
	}
	if err := sc.Err(); err != nil {
		return nil, &LoadError{Path: path, Line: lineNo, Err: fmt.Errorf("%w: %w", ErrFileAccess, err)}
	}

	return pairs, nil
}
