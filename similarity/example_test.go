package similarity_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/katalvlaran/attrimpute/core"
	"github.com/katalvlaran/attrimpute/similarity"
)

// ExampleIndex_Nearest lists the closest neighbor of node 2 that knows
// dimension 0.
func ExampleIndex_Nearest() {
	g, _ := core.Parse(
		strings.NewReader("0 1 10\n1 2 20\n2 # 21\n3 5 40\n"),
		strings.NewReader("0 1\n1 2\n2 3\n"),
	)
	ix, err := similarity.Build(context.Background(), g, similarity.DefaultConfig())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, nb := range ix.Nearest(2, 0, 2) {
		fmt.Printf("node %d at %.4f\n", nb.ID, nb.Distance)
	}
	// Output:
	// node 1 at 0.1417
	// node 0 at 0.4333
}
