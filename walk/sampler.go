package walk

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/attrimpute/core"
)

// ErrInvalidConfig indicates a Config that cannot drive a sampler.
var ErrInvalidConfig = errors.New("walk: invalid config")

// Mode selects the transition rule.
type Mode int

const (
	// Uniform picks each neighbor with equal probability.
	Uniform Mode = iota
	// Biased picks neighbors proportionally to Config.Weight.
	Biased
)

func (m Mode) String() string {
	switch m {
	case Uniform:
		return "uniform"
	case Biased:
		return "biased"
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// Default parameters.
const (
	DefaultWalksPerNode = 10
	DefaultWalkLength   = 80
)

// Config parameterises a Sampler.
type Config struct {
	WalksPerNode int
	WalkLength   int
	Seed         uint64
	Workers      int // <= 0 means GOMAXPROCS
	Mode         Mode
	Weight       WeightFunc // required in Biased mode
}

// DefaultConfig returns a uniform configuration with the documented defaults.
func DefaultConfig() Config {
	return Config{WalksPerNode: DefaultWalksPerNode, WalkLength: DefaultWalkLength}
}

func (c Config) validate() error {
	switch {
	case c.WalksPerNode < 1:
		return fmt.Errorf("%w: WalksPerNode=%d < 1", ErrInvalidConfig, c.WalksPerNode)
	case c.WalkLength < 1:
		return fmt.Errorf("%w: WalkLength=%d < 1", ErrInvalidConfig, c.WalkLength)
	case c.Mode != Uniform && c.Mode != Biased:
		return fmt.Errorf("%w: unknown mode %v", ErrInvalidConfig, c.Mode)
	case c.Mode == Biased && c.Weight == nil:
		return fmt.Errorf("%w: biased mode needs a Weight", ErrInvalidConfig)
	}

	return nil
}

// Sampler produces walks over one graph. It is safe for concurrent use once built.
type Sampler struct {
	g       *core.Graph
	cfg     Config
	workers int
	tables  []aliasTable // Biased mode only, one per node
}

// NewSampler validates cfg and, in Biased mode, builds one alias table per
// node in parallel.
// Complexity: O(n + m * cost(Weight)).
func NewSampler(ctx context.Context, g *core.Graph, cfg Config) (*Sampler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	s := &Sampler{g: g, cfg: cfg, workers: workers}
	if cfg.Mode != Biased {
		return s, nil
	}

	n := g.NodeCount()
	s.tables = make([]aliasTable, n)
	err := parallelRange(ctx, n, workers, func(u int) {
		s.tables[u] = newAliasTable(resolveWeights(cfg.Weight, u, g.Neighbors(u)))
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Config returns the sampler configuration.
func (s *Sampler) Config() Config { return s.cfg }

// streamFor derives a PCG stream id unique to (round, start).
func streamFor(round, start int) uint64 {
	x := uint64(round)<<32 ^ uint64(uint32(start))
	// splitmix64 finaliser
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb

	return x ^ (x >> 31)
}

// Walk returns the walk of the given round starting at start. It is a pure
// function of (Seed, round, start). An isolated start yields a length-1 walk.
func (s *Sampler) Walk(start, round int) []int {
	rng := rand.New(rand.NewPCG(s.cfg.Seed, streamFor(round, start)))
	walk := make([]int, 1, s.cfg.WalkLength)
	walk[0] = start
	cur := start
	for len(walk) < s.cfg.WalkLength {
		nbrs := s.g.Neighbors(cur)
		if len(nbrs) == 0 {
			break
		}
		if s.cfg.Mode == Biased {
			cur = nbrs[s.tables[cur].sample(rng)]
		} else {
			cur = nbrs[rng.IntN(len(nbrs))]
		}
		walk = append(walk, cur)
	}

	return walk
}

// Corpus generates every walk: WalksPerNode rounds, node index ascending
// within each round.
// Errors: ctx.Err() on cancellation.
func (s *Sampler) Corpus(ctx context.Context) (*Corpus, error) {
	n := s.g.NodeCount()
	walks := make([][]int, n*s.cfg.WalksPerNode)
	err := parallelRange(ctx, len(walks), s.workers, func(k int) {
		walks[k] = s.Walk(k%n, k/n)
	})
	if err != nil {
		return nil, err
	}

	return &Corpus{walks: walks, nodes: n}, nil
}

// parallelRange calls fn for every index in [0, n) across workers contiguous
// chunks. fn must only write to slot i.
func parallelRange(ctx context.Context, n, workers int, fn func(i int)) error {
	if n == 0 {
		return nil
	}
	workers = max(1, min(workers, n))
	chunk := (n + workers - 1) / workers
	eg, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		eg.Go(func() error {
			for i := lo; i < hi; i++ {
				if i%256 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				fn(i)
			}

			return nil
		})
	}

	return eg.Wait()
}
