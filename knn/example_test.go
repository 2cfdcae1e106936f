package knn_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/attrimpute/core"
	"github.com/katalvlaran/attrimpute/knn"
	"github.com/katalvlaran/attrimpute/strategy"
)

// ExampleImputer fills the missing first feature of node 2 on the path
// 0-1-2-3 from its single nearest neighbor.
func ExampleImputer() {
	g, _ := core.Parse(
		strings.NewReader("0 1 10\n1 2 20\n2 # 21\n3 5 40\n"),
		strings.NewReader("0 1\n1 2\n2 3\n"),
	)
	s := knn.New(g)
	if err := s.Configure(strategy.Options{"k": 1}); err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := s.Run(); err != nil {
		fmt.Println("error:", err)
		return
	}
	res, _ := s.ExtractResults()
	fmt.Println(res.Features.Row(2))
	// Output:
	// [2 21]
}
