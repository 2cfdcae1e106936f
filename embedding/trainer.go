package embedding

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/viterin/vek"

	"github.com/katalvlaran/attrimpute/matrix"
	"github.com/katalvlaran/attrimpute/walk"
)

// Default parameters, as in word2vec.
const (
	DefaultDimensions   = 128
	DefaultWindow       = 5
	DefaultEpochs       = 5
	DefaultNegative     = 5
	DefaultLearningRate = 0.025

	minLRFraction = 1e-4
	maxExp        = 6.0
	unigramPower  = 0.75
	tableSize     = 1 << 20
	seedStream    = uint64(0x2545f4914f6cdd1d)
)

// Config parameterises a Trainer.
type Config struct {
	Dimensions   int
	Window       int
	Epochs       int
	Negative     int
	LearningRate float64
	Seed         uint64
	// OnEpoch, when set, is called after each pass with the 1-based epoch and
	// the current learning rate.
	OnEpoch func(epoch int, lr float64)
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Dimensions:   DefaultDimensions,
		Window:       DefaultWindow,
		Epochs:       DefaultEpochs,
		Negative:     DefaultNegative,
		LearningRate: DefaultLearningRate,
	}
}

func (c Config) validate() error {
	switch {
	case c.Dimensions < 1:
		return fmt.Errorf("%w: Dimensions=%d < 1", ErrInvalidConfig, c.Dimensions)
	case c.Window < 1:
		return fmt.Errorf("%w: Window=%d < 1", ErrInvalidConfig, c.Window)
	case c.Epochs < 1:
		return fmt.Errorf("%w: Epochs=%d < 1", ErrInvalidConfig, c.Epochs)
	case c.Negative < 0:
		return fmt.Errorf("%w: Negative=%d < 0", ErrInvalidConfig, c.Negative)
	case !(c.LearningRate > 0) || math.IsInf(c.LearningRate, 0):
		return fmt.Errorf("%w: LearningRate=%g", ErrInvalidConfig, c.LearningRate)
	}

	return nil
}

// Trainer runs skip-gram with negative sampling.
type Trainer struct {
	cfg Config
}

// NewTrainer validates cfg.
func NewTrainer(cfg Config) (*Trainer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Trainer{cfg: cfg}, nil
}

// Train returns one row per corpus node holding its input vector.
//
// Errors: *EmptyCorpusError when no walk has two tokens, ctx.Err() on
// cancellation between walks.
// Complexity: O(Epochs * Tokens * Window * (Negative+1) * Dimensions).
func (t *Trainer) Train(ctx context.Context, corpus *walk.Corpus) (*matrix.Dense, error) {
	if !hasPairs(corpus) {
		return nil, &EmptyCorpusError{Walks: corpus.Len(), Tokens: corpus.Tokens()}
	}
	n, dim := corpus.Nodes(), t.cfg.Dimensions
	rng := rand.New(rand.NewPCG(t.cfg.Seed, t.cfg.Seed^seedStream))

	emb, err := matrix.NewDense(n, dim)
	if err != nil {
		return nil, fmt.Errorf("embedding: %w", err)
	}
	for i := 0; i < n; i++ {
		row := emb.RowView(i)
		for d := range row {
			row[d] = (rng.Float64() - 0.5) / float64(dim)
		}
	}
	out := make([]float64, n*dim)
	table := unigramTable(corpus.Counts())

	s := &sgd{
		in:     emb,
		out:    out,
		dim:    dim,
		neu1e:  make([]float64, dim),
		scaled: make([]float64, dim),
		table:  table,
		rng:    rng,
		neg:    t.cfg.Negative,
	}
	total := float64(t.cfg.Epochs*corpus.Tokens()) + 1
	processed := 0
	lr := t.cfg.LearningRate
	for epoch := 1; epoch <= t.cfg.Epochs; epoch++ {
		for w := 0; w < corpus.Len(); w++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			tokens := corpus.Walk(w)
			for pos, center := range tokens {
				lr = t.cfg.LearningRate * math.Max(minLRFraction, 1-float64(processed)/total)
				processed++
				lo := max(0, pos-t.cfg.Window)
				hi := min(len(tokens)-1, pos+t.cfg.Window)
				for c := lo; c <= hi; c++ {
					if c != pos {
						s.pair(center, tokens[c], lr)
					}
				}
			}
		}
		if t.cfg.OnEpoch != nil {
			t.cfg.OnEpoch(epoch, lr)
		}
	}

	return emb, nil
}

func hasPairs(c *walk.Corpus) bool {
	for i := 0; i < c.Len(); i++ {
		if len(c.Walk(i)) > 1 {
			return true
		}
	}

	return false
}

// unigramTable lays out node ids proportionally to count^0.75. Nodes that
// never occur get no slots.
func unigramTable(counts []int) []int32 {
	var norm float64
	for _, c := range counts {
		norm += math.Pow(float64(c), unigramPower)
	}
	table := make([]int32, 0, tableSize)
	if norm == 0 {
		return table
	}
	var cum float64
	for id, c := range counts {
		if c == 0 {
			continue
		}
		cum += math.Pow(float64(c), unigramPower) / norm
		for float64(len(table)) < cum*tableSize && len(table) < tableSize {
			table = append(table, int32(id))
		}
	}
	// Rounding can leave the tail short; pad with the last seen id.
	for len(table) < tableSize {
		table = append(table, table[len(table)-1])
	}

	return table
}

// sgd holds the mutable training state.
type sgd struct {
	in     *matrix.Dense
	out    []float64
	dim    int
	neu1e  []float64
	scaled []float64
	table  []int32
	rng    *rand.Rand
	neg    int
}

// pair applies one positive and s.neg negative updates for (center, context).
func (s *sgd) pair(center, context int, lr float64) {
	l1 := s.in.RowView(center)
	clear(s.neu1e)
	for d := 0; d <= s.neg; d++ {
		target, label := context, 1.0
		if d > 0 {
			target = int(s.table[s.rng.IntN(len(s.table))])
			if target == context {
				continue
			}
			label = 0
		}
		l2 := s.out[target*s.dim : (target+1)*s.dim]
		f := vek.Dot(l1, l2)
		var g float64
		switch {
		case f > maxExp:
			g = (label - 1) * lr
		case f < -maxExp:
			g = label * lr
		default:
			g = (label - 1/(1+math.Exp(-f))) * lr
		}
		// neu1e += g*l2 ; l2 += g*l1
		vek.Add_Inplace(s.neu1e, vek.MulNumber_Into(s.scaled, l2, g))
		vek.Add_Inplace(l2, vek.MulNumber_Into(s.scaled, l1, g))
	}
	vek.Add_Inplace(l1, s.neu1e)
}
