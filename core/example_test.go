// SPDX-License-Identifier: MIT

package core_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/katalvlaran/attrimpute/core"
)

// ExampleParse loads a small tabbed feature table with one missing value.
func ExampleParse() {
	features := "node_id\tfeature\tlabel\n" +
		"0\t1,10\tA\n" +
		"1\t2,20\tA\n" +
		"2\t#,21\tB\n"
	edges := "0 1\n1 2\n2 1\n"

	g, err := core.Parse(strings.NewReader(features), strings.NewReader(edges))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(g.NodeCount(), g.EdgeCount(), g.FeatureDimension())
	fmt.Println("missing:", g.MissingCount(), g.IsMissing(2, 0))
	fmt.Println("neighbors of 1:", g.Neighbors(1))
	fmt.Println("dropped duplicates:", g.Stats().DuplicateEdges)
	// Output:
	// 3 2 2
	// missing: 1 true
	// neighbors of 1: [0 2]
	// dropped duplicates: 1
}

// ExampleWriteFeatures completes the missing entry and writes it back in the source layout.
func ExampleWriteFeatures() {
	g, _ := core.Parse(strings.NewReader("5 1 #\n7 3 4\n"), strings.NewReader("5 7\n"))

	m := g.Features()
	_ = m.Set(0, 1, 4)
	_ = core.WriteFeatures(os.Stdout, g, m)
	// Output:
	// 5 1 4
	// 7 3 4
}
