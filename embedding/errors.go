package embedding

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a Config that cannot drive training.
var ErrInvalidConfig = errors.New("embedding: invalid config")

// EmptyCorpusError reports a corpus in which no two nodes ever co-occur, so
// there is nothing to learn from.
type EmptyCorpusError struct {
	Walks  int
	Tokens int
}

func (e *EmptyCorpusError) Error() string {
	return fmt.Sprintf("embedding: corpus has no co-occurring pairs (%d walks, %d tokens)", e.Walks, e.Tokens)
}
