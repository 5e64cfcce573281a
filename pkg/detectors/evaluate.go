package detectors

import (
	"cmp"

	"github.com/pkg/errors"

	fio "github.com/hed1ad/gofairml/pkg/io"
	"github.com/hed1ad/gofairml/pkg/metrics"
)

// Metrics computes every metric in metrics.All for the first sensitive
// attribute. When yPred is nil the target column is used as predictions.
func (d *FairnessDetector) Metrics(table *fio.Table, yPred []bool) (map[metrics.Metric]float64, error) {
	cfg, yTrue, yPred, nums, strs, err := d.inputs(table, yPred)
	if err != nil {
		return nil, err
	}

	var values map[metrics.Metric]float64
	if nums != nil {
		values, err = metrics.ComputeAll(yTrue, yPred, nums)
	} else {
		values, err = metrics.ComputeAll(yTrue, yPred, strs)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "attribute %q", cfg.SensitiveAttributes[0])
	}

	if cfg.Verbose {
		args := make([]any, 0, 2*len(values))
		for _, m := range metrics.All {
			args = append(args, string(m), values[m])
		}
		d.logger.Info("fairness metrics", args...)
	}
	return values, nil
}

// Intervals bootstraps a confidence interval for every metric in
// metrics.All on the first sensitive attribute.
func (d *FairnessDetector) Intervals(table *fio.Table, yPred []bool, opts ...metrics.BootstrapOption) (map[metrics.Metric]metrics.Interval, error) {
	_, yTrue, yPred, nums, strs, err := d.inputs(table, yPred)
	if err != nil {
		return nil, err
	}

	if nums != nil {
		return intervals(yTrue, yPred, nums, opts)
	}
	return intervals(yTrue, yPred, strs, opts)
}

func (d *FairnessDetector) inputs(table *fio.Table, yPred []bool) (Config, []bool, []bool, []float64, []string, error) {
	cfg, table, err := d.resolve(table)
	if err != nil {
		return cfg, nil, nil, nil, nil, err
	}

	yTrue, err := table.Labels(cfg.Target)
	if err != nil {
		return cfg, nil, nil, nil, nil, err
	}
	if yPred == nil {
		yPred = yTrue
	}

	nums, strs, err := groupColumn(table, cfg.SensitiveAttributes[0])
	if err != nil {
		return cfg, nil, nil, nil, nil, err
	}
	return cfg, yTrue, yPred, nums, strs, nil
}

func intervals[G cmp.Ordered](yTrue, yPred []bool, groups []G, opts []metrics.BootstrapOption) (map[metrics.Metric]metrics.Interval, error) {
	funcs := map[metrics.Metric]metrics.MetricFunc[G]{
		metrics.DemographicParity: metrics.Bootstrappable(metrics.DemographicParityDifference[G]),
		metrics.EqualizedOdds:     metrics.EqualizedOddsDifference[G],
		metrics.EqualOpportunity:  metrics.EqualOpportunityDifference[G],
		metrics.DisparateImpact:   metrics.Bootstrappable(metrics.DisparateImpactRatio[G]),
		metrics.AverageOdds:       metrics.AverageOddsDifference[G],
	}

	out := make(map[metrics.Metric]metrics.Interval, len(funcs))
	for _, m := range metrics.All {
		iv, err := metrics.Bootstrap(funcs[m], yTrue, yPred, groups, opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "bootstrap %s", m)
		}
		out[m] = iv
	}
	return out, nil
}
