// SPDX-License-Identifier: MIT
// Package: attrimpute/builder
//
// api.go - public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator: BuildDataset(bopts, cons...). Resolves cfg, runs cons in
//     order against a Draft, draws features, smooths, corrupts, freezes.
//   - Constructors only shape topology; every node-level attribute is drawn
//     afterwards in index order so a given seed maps to one dataset.
//   - Determinism: same options/seed and constructor order ⇒ identical datasets.

package builder

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/attrimpute/core"
	"github.com/katalvlaran/attrimpute/matrix"
)

// Draft is the mutable topology a Constructor appends to. Nodes are dense
// indices 0..Len()-1.
type Draft struct {
	n     int
	edges []core.EdgeSpec
}

// Len returns the number of nodes added so far.
func (d *Draft) Len() int { return d.n }

// AddNodes appends k nodes and returns the index of the first.
func (d *Draft) AddNodes(k int) int {
	first := d.n
	d.n += k

	return first
}

// AddEdge appends the undirected edge u-v. Duplicates are collapsed by core.
func (d *Draft) AddEdge(u, v int) {
	d.edges = append(d.edges, core.EdgeSpec{From: u, To: v})
}

// Constructor appends a component to the draft using the resolved config.
// Constructors validate early and return sentinel errors; they never panic.
type Constructor func(d *Draft, cfg builderConfig) error

// Dataset couples a corrupted graph with the complete feature matrix it was
// derived from.
type Dataset struct {
	Graph *core.Graph
	Truth *matrix.Dense
}

// BuildGraph is BuildDataset without the ground truth.
func BuildGraph(bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	ds, err := BuildDataset(bopts, cons...)
	if err != nil {
		return nil, err
	}

	return ds.Graph, nil
}

// BuildDataset resolves bopts, applies every constructor in order, then draws
// features with the configured FeatureFn, applies smoothing, hides values at
// the configured MCAR rate and freezes the result.
//
// Errors: constructor errors wrapped as "BuildGraph: %w"; ErrConstructFailed
// for a nil constructor or an empty draft.
// Complexity: Σ constructor cost + O(n*d*(1+smoothing*avgdeg)).
func BuildDataset(bopts []BuilderOption, cons ...Constructor) (*Dataset, error) {
	cfg := newBuilderConfig(bopts...)
	draft := &Draft{}
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(draft, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}
	if draft.n == 0 {
		return nil, fmt.Errorf("BuildGraph: no nodes: %w", ErrConstructFailed)
	}

	truth := drawFeatures(draft, cfg)
	smooth(draft, truth, cfg)
	missing := corrupt(draft.n*cfg.dim, cfg)

	nodes := make([]core.NodeSpec, draft.n)
	for i := range nodes {
		nodes[i] = core.NodeSpec{
			Key:      strconv.Itoa(i),
			Features: truth[i*cfg.dim : (i+1)*cfg.dim],
			Missing:  missing[i*cfg.dim : (i+1)*cfg.dim],
		}
		if cfg.labelFn != nil {
			nodes[i].Label = cfg.labelFn(i)
		}
	}
	g, err := core.New(nodes, draft.edges)
	if err != nil {
		return nil, fmt.Errorf("BuildGraph: %w: %w", ErrConstructFailed, err)
	}
	m, err := matrix.NewDenseFrom(draft.n, cfg.dim, truth)
	if err != nil {
		return nil, fmt.Errorf("BuildGraph: %w: %w", ErrConstructFailed, err)
	}

	return &Dataset{Graph: g, Truth: m}, nil
}
