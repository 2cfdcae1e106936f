// SPDX-License-Identifier: MIT

package strategy

import (
	"errors"
	"fmt"
)

var (
	// ErrNotRun is returned by ExtractResults and SaveFeatures before a
	// successful Run.
	ErrNotRun = errors.New("strategy: results requested before a successful run")

	// ErrConfiguration is the cause wrapped by every *ConfigurationError.
	ErrConfiguration = errors.New("strategy: invalid configuration")
)

// ConfigurationError reports a rejected option. Configure leaves the previous
// configuration untouched when it returns one.
type ConfigurationError struct {
	Strategy string
	Key      string
	Value    float64
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("strategy: %s: option %q=%g: %s", e.Strategy, e.Key, e.Value, e.Reason)
}

// Unwrap makes errors.Is(err, ErrConfiguration) hold.
func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// InsufficientNeighborsError records that node had no usable neighbor for
// dimension Dim (Found of Wanted) and received Fallback instead.
type InsufficientNeighborsError struct {
	Node     int
	Dim      int
	Found    int
	Wanted   int
	Fallback float64
}

func (e *InsufficientNeighborsError) Error() string {
	return fmt.Sprintf("strategy: node %d dim %d: %d of %d neighbors usable, fallback %g",
		e.Node, e.Dim, e.Found, e.Wanted, e.Fallback)
}
