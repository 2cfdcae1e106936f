package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/attrimpute/config"
)

// app carries the resolved settings from the root command to its children.
type app struct {
	configPath string
	verbose    bool
	input      string
	output     string
	workers    int
	zip        bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "attrimpute",
		Short:         "Impute missing node attributes on attributed graphs",
		Long:          `attrimpute fills missing node features with KNN, Topo2Vec or attributed DeepWalk.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "YAML run configuration")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "development logging at debug level")
	pf.StringVar(&a.input, "input", "", "directory holding <name>.zip datasets")
	pf.StringVar(&a.output, "output", "", "directory receiving results")
	pf.IntVar(&a.workers, "workers", 0, "parallelism inside a strategy (0 = GOMAXPROCS)")
	pf.BoolVar(&a.zip, "zip", false, "zip the output of run")

	root.AddCommand(newRunCmd(a), newEvalCmd(a), newInspectCmd(a), newGenerateCmd(a))

	return root
}

// setup resolves the configuration (file, .env, environment, flags) and
// builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	if _, err := config.LoadEnv(wd); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = a.input
	}
	if flags.Changed("output") {
		cfg.Output = a.output
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("zip") {
		cfg.Zip = a.zip
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if a.verbose {
		a.logger, err = zap.NewDevelopment()
	} else {
		a.logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	return nil
}
