// SPDX-License-Identifier: MIT
// Package: attrimpute/core
//
// errors.go - sentinel causes and the LoadError envelope.
//
// Error policy:
//   - Every construction failure is returned as *LoadError, carrying the file
//     path and 1-based line number when one applies.
//   - The cause is one of the sentinels below (possibly joined with the OS error);
//     callers branch with errors.Is on the cause and errors.As on *LoadError.

package core

import (
	"errors"
	"fmt"
)

var (
	// ErrFileAccess indicates an input file is absent or unreadable.
	ErrFileAccess = errors.New("core: cannot read input file")

	// ErrEmptyInput indicates the feature table contains no nodes.
	ErrEmptyInput = errors.New("core: no nodes in feature table")

	// ErrMalformedLine indicates a wrong column count or a non-integer node id.
	ErrMalformedLine = errors.New("core: malformed line")

	// ErrNonNumeric indicates a feature token that is neither a finite number
	// nor a missing-value marker.
	ErrNonNumeric = errors.New("core: non-numeric feature value")

	// ErrDimensionMismatch indicates a feature vector whose length differs from
	// the first row, or a matrix whose shape does not fit the graph.
	ErrDimensionMismatch = errors.New("core: inconsistent feature dimension")

	// ErrUnknownNode indicates an edge endpoint absent from the node table.
	ErrUnknownNode = errors.New("core: edge references unknown node")

	// ErrDuplicateNode indicates the same node id on two rows.
	ErrDuplicateNode = errors.New("core: duplicate node id")

	// ErrInvalidEdge indicates a self-loop or a duplicate edge under WithStrictEdges.
	ErrInvalidEdge = errors.New("core: invalid edge")
)

// LoadError reports why a Graph could not be constructed.
type LoadError struct {
	// Path is the offending file; empty for in-memory construction.
	Path string
	// Line is the 1-based line number, or 0 when the failure is file-wide.
	Line int
	// Err is the underlying cause.
	Err error
}

func (e *LoadError) Error() string {
	switch {
	case e.Path == "":
		return fmt.Sprintf("core: load: %v", e.Err)
	case e.Line == 0:
		return fmt.Sprintf("core: load %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("core: load %s:%d: %v", e.Path, e.Line, e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

// loadErrorf builds a *LoadError whose cause wraps sentinel with a formatted detail.
func loadErrorf(path string, line int, sentinel error, format string, args ...any) *LoadError {
	return &LoadError{Path: path, Line: line, Err: fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)}
}
