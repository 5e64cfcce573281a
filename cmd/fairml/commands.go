package main

import (
	"os"

	"github.com/spf13/cobra"
)

// options holds the flags shared by every command.
type options struct {
	configPath string
	target     string
	sensitive  []string
	threshold  float64
	verbose    bool
	jsonOut    bool
	outPath    string
	sqlDSN     string
	query      string

	predColumn string
	bootstrap  int
	seed       int64
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "fairml",
		Short:         "Detect bias and check fairness compliance in tabular data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&opts.target, "target", "", "binary label column")
	pf.StringSliceVar(&opts.sensitive, "sensitive", nil, "sensitive attribute columns, comma separated")
	pf.Float64Var(&opts.threshold, "threshold", 0.1, "bias threshold in [0, 1]")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log configuration and results")
	pf.BoolVar(&opts.jsonOut, "json", false, "print results as JSON")
	pf.StringVar(&opts.outPath, "out", "", "append results as JSON lines to this file")
	pf.StringVar(&opts.sqlDSN, "sql-dsn", os.Getenv("FAIRML_SQL_DSN"), "Postgres DSN to read the dataset from")
	pf.StringVar(&opts.query, "query", "", "SQL query selecting the dataset")

	detectCmd := &cobra.Command{
		Use:   "detect [file]",
		Short: "Run bias detection for every sensitive attribute",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, opts, args)
		},
	}

	metricsCmd := &cobra.Command{
		Use:   "metrics [file]",
		Short: "Compute every fairness metric for the first sensitive attribute",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetrics(cmd, opts, args)
		},
	}
	metricsCmd.Flags().StringVar(&opts.predColumn, "pred-column", "", "prediction column, defaults to the target")
	metricsCmd.Flags().IntVar(&opts.bootstrap, "bootstrap", 0, "bootstrap resamples for confidence intervals, 0 disables")
	metricsCmd.Flags().Int64Var(&opts.seed, "seed", 42, "bootstrap random seed")

	eeocCmd := &cobra.Command{
		Use:   "eeoc [file]",
		Short: "Check the EEOC 80% rule on the target column",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEEOC(cmd, opts, args)
		},
	}

	ecoaCmd := &cobra.Command{
		Use:   "ecoa [file]",
		Short: "Run the ECOA disparate impact analysis on the target column",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runECOA(cmd, opts, args)
		},
	}

	scanCmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "Suggest sensitive attribute columns from column names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, args)
		},
	}

	root.AddCommand(detectCmd, metricsCmd, eeocCmd, ecoaCmd, scanCmd)
	return root
}
