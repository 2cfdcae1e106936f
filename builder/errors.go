// SPDX-License-Identifier: MIT
// Package: attrimpute/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables (package-level) are exposed.
//   • Callers use errors.Is(err, ErrX) to branch on semantics.
//   • Implementations attach context with `%w`.
//   • Validation panics are confined to option constructors (WithX...).

package builder

import (
	"errors"
)

// ErrTooFewVertices indicates that a size parameter (n, rows, cols) is smaller
// than the allowed minimum for the requested constructor.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates that a probability value is outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrConstructFailed indicates a nil constructor, an empty draft, or a failure
// while freezing the draft into a core.Graph.
var ErrConstructFailed = errors.New("builder: construction failed")
