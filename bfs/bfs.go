// Package bfs provides breadth-first search over a core.Graph,
// returning unweighted hop distances, parent links, and visit order.
package bfs

import (
	"context"
	"fmt"
	"slices"

	"github.com/katalvlaran/attrimpute/core"
)

// queueItem pairs a node index with its BFS depth.
type queueItem struct {
	id    int
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph *core.Graph
	opts  Options
	ctx   context.Context
	queue []queueItem
	head  int
	res   *Result
}

// BFS runs breadth-first search on g starting from start,
// applying any number of functional Options.
// Returns ErrGraphNil or ErrStartNotFound for invalid input,
// ErrOptionViolation for bad options, the context error on cancellation,
// or any user-supplied hook error.
func BFS(g *core.Graph, start int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	n := g.NodeCount()
	if start < 0 || start >= n {
		return nil, fmt.Errorf("%w: %d", ErrStartNotFound, start)
	}

	w := &walker{
		graph: g,
		opts:  o,
		ctx:   o.Ctx,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Start:  start,
			Order:  make([]int, 0, n),
			Depth:  filled(n, Unreached),
			Parent: filled(n, Unreached),
		},
	}

	w.enqueue(start, 0, Unreached)

	return w.res, w.loop()
}

func filled(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}

	return out
}

// enqueue marks id reached at depth d, records its parent and appends it to
// the queue.
func (w *walker) enqueue(id, d, parent int) {
	w.res.Depth[id] = d
	w.res.Parent[id] = parent
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for w.head < len(w.queue) {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.dequeue()
		if err := w.visit(item); err != nil {
			return err
		}
		w.enqueueNeighbors(item)
	}

	return nil
}

// dequeue pops the next item.
func (w *walker) dequeue() queueItem {
	item := w.queue[w.head]
	w.head++

	return item
}

// visit records the node in Order and calls OnVisit.
func (w *walker) visit(item queueItem) error {
	w.res.Order = append(w.res.Order, item.id)
	if err := w.opts.OnVisit(item.id, item.depth); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %d: %w", item.id, err)
	}

	return nil
}

// enqueueNeighbors applies MaxDepth and enqueues every unseen neighbor.
func (w *walker) enqueueNeighbors(item queueItem) {
	nextDepth := item.depth + 1
	if w.opts.MaxDepth > 0 && nextDepth > w.opts.MaxDepth {
		return
	}
	for _, nbr := range w.graph.Neighbors(item.id) {
		if w.res.Depth[nbr] == Unreached {
			w.enqueue(nbr, nextDepth, item.id)
		}
	}
}

// Searcher runs repeated hook-free, depth-limited searches over one graph,
// reusing its scratch buffers between calls. A Searcher is not safe for
// concurrent use; give each goroutine its own.
type Searcher struct {
	graph   *core.Graph
	depth   []int
	queue   []int
	touched []int
}

// NewSearcher allocates scratch space sized for g.
func NewSearcher(g *core.Graph) *Searcher {
	n := g.NodeCount()

	return &Searcher{
		graph: g,
		depth: filled(n, Unreached),
		queue: make([]int, 0, n),
	}
}

// Hops returns the hop distance from start to every node, with Unreached for
// nodes farther than cutoff (cutoff <= 0 means unlimited). The returned slice
// is owned by the Searcher and valid until the next call.
// Complexity: O(size of the cutoff ball).
func (s *Searcher) Hops(start, cutoff int) []int {
	for _, id := range s.touched {
		s.depth[id] = Unreached
	}
	s.touched = s.touched[:0]
	if start < 0 || start >= len(s.depth) {
		return s.depth
	}

	s.queue = append(s.queue[:0], start)
	s.depth[start] = 0
	s.touched = append(s.touched, start)
	for head := 0; head < len(s.queue); head++ {
		cur := s.queue[head]
		next := s.depth[cur] + 1
		if cutoff > 0 && next > cutoff {
			continue
		}
		for _, nbr := range s.graph.Neighbors(cur) {
			if s.depth[nbr] != Unreached {
				continue
			}
			s.depth[nbr] = next
			s.touched = append(s.touched, nbr)
			s.queue = append(s.queue, nbr)
		}
	}

	return s.depth
}

// Cover returns the sorted set of nodes within depth hops of start,
// start included. The slice is freshly allocated.
func (s *Searcher) Cover(start, depth int) []int {
	if depth <= 0 {
		if start < 0 || start >= len(s.depth) {
			return nil
		}

		return []int{start}
	}
	s.Hops(start, depth)
	out := slices.Clone(s.touched)
	slices.Sort(out)

	return out
}

// Cover is a one-shot convenience around Searcher.Cover.
func Cover(g *core.Graph, start, depth int) []int {
	return NewSearcher(g).Cover(start, depth)
}
