// SPDX-License-Identifier: MIT

package core

import (
	"strings"
)

// Default missing-value markers. "nan" is matched case-insensitively.
const (
	MissingHash       = "#"
	MissingQuotedHash = "'#'"
	missingNaN        = "nan"
)

// LoadOption customises Load, Parse and New.
type LoadOption func(*loadConfig)

type loadConfig struct {
	tokens map[string]struct{}
	strict bool
}

func defaultLoadConfig() loadConfig {
	return loadConfig{
		tokens: map[string]struct{}{MissingHash: {}, MissingQuotedHash: {}},
	}
}

// WithMissingToken registers an additional token that marks a missing value.
// Panics if tok is empty or contains whitespace, tab or comma.
func WithMissingToken(tok string) LoadOption {
	if tok == "" || strings.ContainsAny(tok, " \t,\r\n") {
		panic("core: WithMissingToken requires a non-empty token without separators")
	}

	return func(c *loadConfig) { c.tokens[tok] = struct{}{} }
}

// WithStrictEdges turns self-loops and duplicate edges into a *LoadError
// (cause ErrInvalidEdge) instead of silently dropping them.
func WithStrictEdges() LoadOption {
	return func(c *loadConfig) { c.strict = true }
}

// isMissing reports whether tok is a missing-value marker.
func (c *loadConfig) isMissing(tok string) bool {
	if _, ok := c.tokens[tok]; ok {
		return true
	}

	return strings.EqualFold(tok, missingNaN)
}
