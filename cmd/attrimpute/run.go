package main

import (
	"fmt"
	"io"
	"maps"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/attrimpute/runner"
	"github.com/katalvlaran/attrimpute/strategy"
)

func newRunCmd(a *app) *cobra.Command {
	var set map[string]string
	cmd := &cobra.Command{
		Use:   "run <dataset> <strategy>",
		Short: "Run one strategy on <input>/<dataset>.zip",
		Long: `Unpack <input>/<dataset>.zip, run the strategy (knn, topo2vec, deepwalk) and
write <output>/<dataset>_<strategy>/<dataset>_features.txt, or <dataset>.zip with --zip.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := runner.Canonical(args[1])
			if err != nil {
				return err
			}
			opts := a.cfg.RunnerOptions(a.logger)
			if len(set) > 0 {
				parsed, err := parseSet(set)
				if err != nil {
					return err
				}
				merged := strategy.Options{}
				for name, so := range a.cfg.Strategies {
					if c, _ := runner.Canonical(name); c == key {
						maps.Copy(merged, so)
					}
				}
				maps.Copy(merged, parsed)
				opts = append(opts, runner.WithStrategyOptions(key, merged))
			}

			rep, err := runner.New(opts...).RunArchive(cmd.Context(), a.cfg.Input, a.cfg.Output, args[0], key)
			if err != nil {
				return err
			}
			printReports(cmd.OutOrStdout(), []runner.Report{rep})

			return nil
		},
	}
	cmd.Flags().StringToStringVar(&set, "set", nil, "strategy option key=value, repeatable")

	return cmd
}

func parseSet(set map[string]string) (strategy.Options, error) {
	out := make(strategy.Options, len(set))
	for k, v := range set {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("--set %s=%s: %w", k, v, err)
		}
		out[k] = f
	}

	return out, nil
}

func printReports(w io.Writer, reports []runner.Report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATASET\tSTRATEGY\tNODES\tEDGES\tMISSING\tFALLBACKS\tELAPSED\tOUTPUT")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			r.Dataset, r.Strategy, r.Nodes, r.Edges, r.Missing, r.Fallbacks, r.Elapsed.Round(time.Millisecond), r.Output)
	}
	tw.Flush()
}
