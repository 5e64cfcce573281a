package main

import (
	"fmt"

	"github.com/spf13/cobra"

	fio "github.com/hed1ad/gofairml/pkg/io"
	"github.com/hed1ad/gofairml/pkg/metrics"
	"github.com/hed1ad/gofairml/pkg/report"
)

// runDetect is the handler for "fairml detect".
func runDetect(cmd *cobra.Command, opts *options, args []string) error {
	d, err := newDetector(cmd, opts)
	if err != nil {
		return err
	}
	table, err := loadTable(cmd, opts, args)
	if err != nil {
		return err
	}

	verdicts, err := d.DetectBiasAll(table, nil)
	if err != nil {
		return err
	}

	records := make([]fio.Result, len(verdicts))
	for i, v := range verdicts {
		records[i] = v.Record()
	}
	if err := writeResults(opts, records...); err != nil {
		return err
	}

	if opts.jsonOut {
		return printJSON(cmd, verdicts)
	}
	for _, v := range verdicts {
		fmt.Fprintf(cmd.OutOrStdout(), "Attribute: %s\n%s\n", v.Attribute, v.Summary())
		if v.Advice != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Advice: %s\n", v.Advice)
		}
	}
	return nil
}

// runMetrics is the handler for "fairml metrics".
func runMetrics(cmd *cobra.Command, opts *options, args []string) error {
	d, err := newDetector(cmd, opts)
	if err != nil {
		return err
	}
	table, err := loadTable(cmd, opts, args)
	if err != nil {
		return err
	}

	var yPred []bool
	if opts.predColumn != "" {
		if yPred, err = table.Labels(opts.predColumn); err != nil {
			return err
		}
	}

	values, err := d.Metrics(table, yPred)
	if err != nil {
		return err
	}

	var ivs map[metrics.Metric]metrics.Interval
	if opts.bootstrap > 0 {
		ivs, err = d.Intervals(table, yPred, metrics.WithResamples(opts.bootstrap), metrics.WithSeed(opts.seed))
		if err != nil {
			return err
		}
	}

	rec := fio.Result{
		Kind:      "metrics",
		Attribute: d.Config().SensitiveAttributes[0],
		Passed:    true,
		Metrics:   make(fio.Metrics, len(values)),
	}
	for m, v := range values {
		rec.Metrics[string(m)] = v
		rec.Passed = rec.Passed && metrics.IsFair(v, m)
	}
	if err := writeResults(opts, rec); err != nil {
		return err
	}

	if opts.jsonOut {
		return printJSON(cmd, newMetricsOutput(rec.Metrics, ivs))
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.Summary(values))
	for _, m := range metrics.All {
		iv, ok := ivs[m]
		if !ok {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %.0f%% CI: [%.4f, %.4f] (%d resamples)\n",
			report.FormatMetric(iv.Value, string(m)), 100*iv.Confidence, iv.Lower, iv.Upper, iv.Resamples)
	}
	return nil
}

// metricsOutput is the --json shape of "fairml metrics". Values go through
// fio.Float so an unbounded disparate impact ratio still encodes.
type metricsOutput struct {
	Metrics   fio.Metrics               `json:"metrics"`
	Intervals map[string]intervalOutput `json:"intervals,omitempty"`
}

type intervalOutput struct {
	Value      fio.Float `json:"value"`
	Lower      fio.Float `json:"lower"`
	Upper      fio.Float `json:"upper"`
	Confidence float64   `json:"confidence"`
	Resamples  int       `json:"resamples"`
}

func newMetricsOutput(values fio.Metrics, ivs map[metrics.Metric]metrics.Interval) metricsOutput {
	out := metricsOutput{Metrics: values}
	if len(ivs) == 0 {
		return out
	}

	out.Intervals = make(map[string]intervalOutput, len(ivs))
	for m, iv := range ivs {
		out.Intervals[string(m)] = intervalOutput{
			Value:      fio.Float(iv.Value),
			Lower:      fio.Float(iv.Lower),
			Upper:      fio.Float(iv.Upper),
			Confidence: iv.Confidence,
			Resamples:  iv.Resamples,
		}
	}
	return out
}
