package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/attrimpute/runner"
)

func newEvalCmd(a *app) *cobra.Command {
	var parallel int
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run every strategy on every dataset of the input directory",
		Long: `For each <input>/*.zip run knn, topo2vec and deepwalk concurrently on the
shared graph and write <output>/<dataset>_<strategy>.txt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := a.cfg.RunnerOptions(a.logger)
			if cmd.Flags().Changed("parallel") {
				opts = append(opts, runner.WithParallelStrategies(parallel))
			}
			reports, err := runner.New(opts...).Evaluate(cmd.Context(), a.cfg.Input, a.cfg.Output)
			if err != nil {
				return err
			}
			printReports(cmd.OutOrStdout(), reports)

			return nil
		},
	}
	cmd.Flags().IntVar(&parallel, "parallel", 0, "strategies run at once per dataset (0 = all)")

	return cmd
}
