package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/attrimpute/bfs"
	"github.com/katalvlaran/attrimpute/core"
)

func newInspectCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <features> <edges>",
		Short: "Load a feature/edge file pair and print its statistics",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := core.Load(args[0], args[1])
			if err != nil {
				return err
			}
			st, layout := g.Stats(), g.Layout()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "nodes %d, edges %d, dimension %d\n", st.Nodes, st.Edges, st.Dimension)
			fmt.Fprintf(w, "missing %d, self-loops dropped %d, duplicate edges dropped %d\n",
				st.MissingValues, st.SelfLoops, st.DuplicateEdges)
			comps, largest := bfs.Components(g), 0
			for i, c := range comps {
				if len(c) > len(comps[largest]) {
					largest = i
				}
			}
			span, err := bfs.DoubleSweep(cmd.Context(), g, comps[largest][0])
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "components %d, largest %d\n", len(comps), len(comps[largest]))
			fmt.Fprintf(w, "span %d hops (%s -> %s)\n", span.Hops, g.Key(span.From), g.Key(span.To))
			fmt.Fprintf(w, "layout tabbed=%t header=%t labels=%t\n", layout.Tabbed, layout.Header != "", layout.Labels)

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DIM\tKNOWN\tMEAN\tMIN\tMAX")
			for d, c := range g.ColumnStats() {
				fmt.Fprintf(tw, "%d\t%d\t%.4g\t%.4g\t%.4g\n", d, c.Count, c.Mean, c.Min, c.Max)
			}

			return tw.Flush()
		},
	}
}
