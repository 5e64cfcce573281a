package main

import (
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hed1ad/gofairml/pkg/detectors"
	fio "github.com/hed1ad/gofairml/pkg/io"
	"github.com/hed1ad/gofairml/pkg/io/dataset"
	"github.com/hed1ad/gofairml/pkg/io/jsonl"
	"github.com/hed1ad/gofairml/pkg/io/sqldb"
)

// newDetector merges the config file with explicitly set flags.
func newDetector(cmd *cobra.Command, opts *options) (*detectors.FairnessDetector, error) {
	cfg := detectors.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := detectors.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("target") {
		cfg.Target = opts.target
	}
	if flags.Changed("sensitive") {
		cfg.SensitiveAttributes = opts.sensitive
	}
	if flags.Changed("threshold") {
		cfg.Threshold = opts.threshold
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	return detectors.New(detectors.WithConfig(cfg), detectors.WithLogger(logger)), nil
}

// loadTable reads the dataset from the file argument or, without one, from
// the configured SQL source.
func loadTable(cmd *cobra.Command, opts *options, args []string) (*fio.Table, error) {
	if len(args) == 1 {
		return dataset.Load(args[0])
	}

	if opts.sqlDSN == "" {
		return nil, errors.New("no dataset: pass a file or --sql-dsn with --query")
	}
	if opts.query == "" {
		return nil, errors.New("--query is required with --sql-dsn")
	}

	r, err := sqldb.Open(cmd.Context(), "postgres", opts.sqlDSN, opts.query)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return r.Read()
}

func writeResults(opts *options, results ...fio.Result) error {
	if opts.outPath == "" {
		return nil
	}

	w, err := jsonl.NewWriter(opts.outPath)
	if err != nil {
		return err
	}
	defer w.Close()

	return w.WriteAll(results)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encode output")
}
