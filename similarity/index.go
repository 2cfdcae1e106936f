package similarity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"slices"

	"github.com/emirpasic/gods/queues/priorityqueue"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/attrimpute/bfs"
	"github.com/katalvlaran/attrimpute/core"
)

// ErrInvalidConfig indicates a Config that cannot produce a meaningful index.
var ErrInvalidConfig = errors.New("similarity: invalid config")

// Default parameters.
const (
	DefaultHopCutoff     = 3
	DefaultGraphWeight   = 0.5
	DefaultFeatureWeight = 0.5
)

// Config parameterises Build.
type Config struct {
	HopCutoff     int     // >= 1
	GraphWeight   float64 // >= 0
	FeatureWeight float64 // >= 0, not both weights 0
	Workers       int     // <= 0 means GOMAXPROCS
	MaxNeighbors  int     // 0 keeps every other node
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		HopCutoff:     DefaultHopCutoff,
		GraphWeight:   DefaultGraphWeight,
		FeatureWeight: DefaultFeatureWeight,
	}
}

func (c Config) validate() error {
	switch {
	case c.HopCutoff < 1:
		return fmt.Errorf("%w: HopCutoff=%d < 1", ErrInvalidConfig, c.HopCutoff)
	case c.GraphWeight < 0 || c.FeatureWeight < 0:
		return fmt.Errorf("%w: negative weight (%g, %g)", ErrInvalidConfig, c.GraphWeight, c.FeatureWeight)
	case c.GraphWeight == 0 && c.FeatureWeight == 0:
		return fmt.Errorf("%w: both weights are zero", ErrInvalidConfig)
	case c.MaxNeighbors < 0:
		return fmt.Errorf("%w: MaxNeighbors=%d < 0", ErrInvalidConfig, c.MaxNeighbors)
	}

	return nil
}

// Neighbor is one entry of a node's ordered list.
type Neighbor struct {
	ID       int
	Distance float64
}

// Index holds one ordered neighbor list per node. It is immutable after Build.
type Index struct {
	g      *core.Graph
	cfg    Config
	ranges []float64
	lists  [][]Neighbor
}

// Build computes every node's neighbor list.
//
// Errors: ErrInvalidConfig, or ctx.Err() when cancelled.
// Complexity: O(n^2 * d / workers) wall time.
func Build(ctx context.Context, g *core.Graph, cfg Config) (*Index, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	n := g.NodeCount()
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = max(1, min(workers, n))

	ix := &Index{g: g, cfg: cfg, lists: make([][]Neighbor, n)}
	for _, s := range g.ColumnStats() {
		ix.ranges = append(ix.ranges, s.Range())
	}

	eg, ctx := errgroup.WithContext(ctx)
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		eg.Go(func() error {
			s := bfs.NewSearcher(g)
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				ix.lists[i] = ix.row(s, i)
			}

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return ix, nil
}

// row computes node i's ordered list.
func (ix *Index) row(s *bfs.Searcher, i int) []Neighbor {
	hops := s.Hops(i, ix.cfg.HopCutoff)
	n := ix.g.NodeCount()
	if ix.cfg.MaxNeighbors > 0 && ix.cfg.MaxNeighbors < n-1 {
		return ix.boundedRow(hops, i)
	}
	out := make([]Neighbor, 0, n-1)
	for j := 0; j < n; j++ {
		if j != i {
			out = append(out, Neighbor{ID: j, Distance: ix.distance(hops[j], i, j)})
		}
	}
	slices.SortFunc(out, compareNeighbors)

	return out
}

// boundedRow keeps the MaxNeighbors closest entries with a max-heap on
// (distance, id), evicting the current worst whenever a closer one arrives.
func (ix *Index) boundedRow(hops []int, i int) []Neighbor {
	limit := ix.cfg.MaxNeighbors
	worstFirst := priorityqueue.NewWith(func(a, b interface{}) int {
		return compareNeighbors(b.(Neighbor), a.(Neighbor))
	})
	for j := 0; j < ix.g.NodeCount(); j++ {
		if j == i {
			continue
		}
		cand := Neighbor{ID: j, Distance: ix.distance(hops[j], i, j)}
		if worstFirst.Size() < limit {
			worstFirst.Enqueue(cand)

			continue
		}
		top, _ := worstFirst.Peek()
		if compareNeighbors(cand, top.(Neighbor)) < 0 {
			worstFirst.Dequeue()
			worstFirst.Enqueue(cand)
		}
	}
	out := make([]Neighbor, worstFirst.Size())
	for k := len(out) - 1; k >= 0; k-- {
		v, _ := worstFirst.Dequeue()
		out[k] = v.(Neighbor)
	}

	return out
}

func compareNeighbors(a, b Neighbor) int {
	switch {
	case a.Distance < b.Distance:
		return -1
	case a.Distance > b.Distance:
		return 1
	}

	return a.ID - b.ID
}

// distance combines the hop term and the feature term.
func (ix *Index) distance(hop, i, j int) float64 {
	c := float64(ix.cfg.HopCutoff + 1)
	h := c
	if hop != bfs.Unreached {
		h = math.Min(float64(hop), c)
	}

	return ix.cfg.GraphWeight*(h/c) + ix.cfg.FeatureWeight*ix.featureDistance(i, j)
}

// featureDistance is the range-normalised RMS difference over shared dimensions.
func (ix *Index) featureDistance(i, j int) float64 {
	var sum float64
	shared := 0
	for d, r := range ix.ranges {
		xi, okI := ix.g.Value(i, d)
		xj, okJ := ix.g.Value(j, d)
		if !okI || !okJ {
			continue
		}
		shared++
		if r == 0 {
			continue
		}
		t := (xi - xj) / r
		sum += t * t
	}
	if shared == 0 {
		return 1
	}

	return math.Sqrt(sum / float64(shared))
}

// Distance returns d(i, j) computed on demand with a search that stops at j or
// at the hop cutoff, or +Inf for i == j or an out-of-range index.
func (ix *Index) Distance(i, j int) float64 {
	n := ix.g.NodeCount()
	if i == j || i < 0 || j < 0 || i >= n || j >= n {
		return math.Inf(1)
	}
	res, err := bfs.BFS(ix.g, i, bfs.WithMaxDepth(ix.cfg.HopCutoff), bfs.WithOnVisit(func(id, _ int) error {
		if id == j {
			return errReached
		}

		return nil
	}))
	if err != nil && !errors.Is(err, errReached) {
		return math.Inf(1)
	}

	return ix.distance(res.Depth[j], i, j)
}

// errReached stops the on-demand search of Distance at its target.
var errReached = errors.New("similarity: target reached")

// Neighbors returns node's full ordered list (read-only).
func (ix *Index) Neighbors(node int) []Neighbor {
	if node < 0 || node >= len(ix.lists) {
		return nil
	}

	return ix.lists[node]
}

// Nearest returns up to k closest neighbors of node that have a known value
// at dim, in list order.
// Complexity: O(position of the k-th qualifying entry).
func (ix *Index) Nearest(node, dim, k int) []Neighbor {
	if k <= 0 {
		return nil
	}
	var out []Neighbor
	for _, nb := range ix.Neighbors(node) {
		if ix.g.IsMissing(nb.ID, dim) {
			continue
		}
		out = append(out, nb)
		if len(out) == k {
			break
		}
	}

	return out
}

// NearestAny returns up to k closest neighbors of node regardless of missing values.
func (ix *Index) NearestAny(node, k int) []Neighbor {
	list := ix.Neighbors(node)
	if k <= 0 {
		return nil
	}

	return slices.Clone(list[:min(k, len(list))])
}

// Config returns the configuration the index was built with.
func (ix *Index) Config() Config { return ix.cfg }
