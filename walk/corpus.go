package walk

// Corpus is an ordered, read-only collection of walks over node indices.
type Corpus struct {
	walks [][]int
	nodes int
}

// NewCorpus wraps externally produced walks over a vocabulary of nodes ids.
// The walks are not copied.
func NewCorpus(nodes int, walks [][]int) *Corpus {
	return &Corpus{walks: walks, nodes: nodes}
}

// Len returns the number of walks.
func (c *Corpus) Len() int { return len(c.walks) }

// Nodes returns the vocabulary size.
func (c *Corpus) Nodes() int { return c.nodes }

// Walk returns walk i (read-only).
func (c *Corpus) Walk(i int) []int { return c.walks[i] }

// Tokens returns the total number of node occurrences.
func (c *Corpus) Tokens() int {
	total := 0
	for _, w := range c.walks {
		total += len(w)
	}

	return total
}

// Counts returns how often each node occurs.
func (c *Corpus) Counts() []int {
	counts := make([]int, c.nodes)
	for _, w := range c.walks {
		for _, v := range w {
			counts[v]++
		}
	}

	return counts
}
