// SPDX-License-Identifier: MIT

package runner

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/katalvlaran/attrimpute/core"
	"github.com/katalvlaran/attrimpute/deepwalk"
	"github.com/katalvlaran/attrimpute/knn"
	"github.com/katalvlaran/attrimpute/strategy"
	"github.com/katalvlaran/attrimpute/topo2vec"
)

// ErrUnknownStrategy is returned for a name outside the registry.
var ErrUnknownStrategy = errors.New("runner: unknown strategy")

// Factory constructs a strategy bound to g.
type Factory func(g *core.Graph, opts ...strategy.Option) strategy.Strategy

var registry = map[string]Factory{
	knn.Name:      func(g *core.Graph, opts ...strategy.Option) strategy.Strategy { return knn.New(g, opts...) },
	topo2vec.Name: func(g *core.Graph, opts ...strategy.Option) strategy.Strategy { return topo2vec.New(g, opts...) },
	deepwalk.Name: func(g *core.Graph, opts ...strategy.Option) strategy.Strategy { return deepwalk.New(g, opts...) },
}

var aliases = map[string]string{
	"attributeddeepwalk": deepwalk.Name,
	"adw":                deepwalk.Name,
}

// Names lists the registered strategy names, sorted.
func Names() []string { return slices.Sorted(maps.Keys(registry)) }

// Canonical resolves name (case-insensitive, aliases allowed) to a registry name.
func Canonical(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	if _, ok := registry[key]; !ok {
		return "", fmt.Errorf("%w: %q (known: %s)", ErrUnknownStrategy, name, strings.Join(Names(), ", "))
	}

	return key, nil
}

// NewStrategy constructs the named strategy bound to g.
func NewStrategy(name string, g *core.Graph, opts ...strategy.Option) (strategy.Strategy, error) {
	key, err := Canonical(name)
	if err != nil {
		return nil, err
	}

	return registry[key](g, opts...), nil
}
