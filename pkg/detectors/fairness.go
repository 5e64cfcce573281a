package detectors

import (
	"cmp"
	"log/slog"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/hed1ad/gofairml/pkg/compliance"
	"github.com/hed1ad/gofairml/pkg/detectors/sensitive"
	fio "github.com/hed1ad/gofairml/pkg/io"
	"github.com/hed1ad/gofairml/pkg/io/dataset"
	"github.com/hed1ad/gofairml/pkg/metrics"
)

// detectionMetrics are evaluated by DetectBias, in tie-break order.
var detectionMetrics = []metrics.Metric{
	metrics.DemographicParity,
	metrics.EqualizedOdds,
	metrics.EqualOpportunity,
}

// FairnessDetector detects bias in a labelled dataset with respect to its
// sensitive attributes. Results are returned, never cached, so every method
// can be called any number of times.
type FairnessDetector struct {
	mu sync.RWMutex

	cfg       Config
	data      *fio.Table
	logger    *slog.Logger
	sensitive *sensitive.Detector
}

// Option configures a FairnessDetector.
type Option func(*FairnessDetector)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(d *FairnessDetector) {
		d.cfg = cfg.clone()
	}
}

// WithThreshold sets the bias threshold.
func WithThreshold(t float64) Option {
	return func(d *FairnessDetector) {
		d.cfg.Threshold = t
	}
}

// WithVerbose enables verbose logging.
func WithVerbose(v bool) Option {
	return func(d *FairnessDetector) {
		d.cfg.Verbose = v
	}
}

// WithTarget sets the target column.
func WithTarget(target string) Option {
	return func(d *FairnessDetector) {
		d.cfg.Target = target
	}
}

// WithSensitiveAttributes sets the sensitive-attribute columns.
func WithSensitiveAttributes(attrs ...string) Option {
	return func(d *FairnessDetector) {
		d.cfg.SensitiveAttributes = append([]string(nil), attrs...)
	}
}

// WithLogger sets the destination of verbose output.
func WithLogger(l *slog.Logger) Option {
	return func(d *FairnessDetector) {
		d.logger = l
	}
}

// WithSensitiveDetector sets the column-name classifier used by
// SuggestSensitiveAttributes.
func WithSensitiveDetector(s *sensitive.Detector) Option {
	return func(d *FairnessDetector) {
		d.sensitive = s
	}
}

// New creates a FairnessDetector with the given options.
func New(opts ...Option) *FairnessDetector {
	d := &FairnessDetector{
		cfg: DefaultConfig(),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	if d.sensitive == nil {
		d.sensitive = sensitive.New()
	}

	return d
}

// Config returns a copy of the current configuration.
func (d *FairnessDetector) Config() Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg.clone()
}

// SetSensitiveAttributes sets the protected-attribute columns to analyze.
func (d *FairnessDetector) SetSensitiveAttributes(attrs ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cfg.SensitiveAttributes = append([]string(nil), attrs...)
	d.debug("set sensitive attributes", "attributes", attrs)
}

// SetTarget sets the label column.
func (d *FairnessDetector) SetTarget(target string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cfg.Target = target
	d.debug("set target", "target", target)
}

// SetThreshold sets the bias threshold, which must lie in [0, 1].
func (d *FairnessDetector) SetThreshold(t float64) error {
	next := d.Config()
	next.Threshold = t
	if err := next.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.cfg.Threshold = t
	return nil
}

// SetVerbose enables or disables verbose logging.
func (d *FairnessDetector) SetVerbose(v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cfg.Verbose = v
}

// LoadData stores a copy of table for later analyses. Non-empty target and
// attrs replace the configured ones. Every configured column must exist.
func (d *FairnessDetector) LoadData(table *fio.Table, target string, attrs ...string) error {
	if table == nil {
		return ErrNoData
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	cfg := d.cfg.clone()
	if target != "" {
		cfg.Target = target
	}
	if len(attrs) > 0 {
		cfg.SensitiveAttributes = append([]string(nil), attrs...)
	}

	if err := checkColumns(table, cfg.Target, cfg.SensitiveAttributes); err != nil {
		return err
	}

	d.cfg = cfg
	d.data = table.Clone()
	d.debug("loaded data", "rows", table.Len(), "columns", table.Width())
	return nil
}

// LoadFile parses a dataset file (csv, tsv, xlsx, json, jsonl) and loads it
// as LoadData does.
func (d *FairnessDetector) LoadFile(path, target string, attrs ...string) error {
	table, err := dataset.Load(path)
	if err != nil {
		return err
	}
	return d.LoadData(table, target, attrs...)
}

// DetectBias computes demographic parity, equalized odds and equal
// opportunity for the first sensitive attribute.
//
// The table argument takes precedence over loaded data. When yPred is nil
// the target column itself is audited.
func (d *FairnessDetector) DetectBias(table *fio.Table, yPred []bool) (*BiasVerdict, error) {
	cfg, table, err := d.resolve(table)
	if err != nil {
		return nil, err
	}

	v, err := detect(cfg, table, cfg.SensitiveAttributes[0], yPred)
	if err != nil {
		return nil, err
	}
	d.report(cfg, v)
	return v, nil
}

// DetectBiasAll runs DetectBias once per sensitive attribute.
func (d *FairnessDetector) DetectBiasAll(table *fio.Table, yPred []bool) ([]*BiasVerdict, error) {
	cfg, table, err := d.resolve(table)
	if err != nil {
		return nil, err
	}

	out := make([]*BiasVerdict, 0, len(cfg.SensitiveAttributes))
	for _, attr := range cfg.SensitiveAttributes {
		v, err := detect(cfg, table, attr, yPred)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %q", attr)
		}
		d.report(cfg, v)
		out = append(out, v)
	}
	return out, nil
}

// Analyze runs the full bias detection on the target column.
func (d *FairnessDetector) Analyze(table *fio.Table) (*BiasVerdict, error) {
	return d.DetectBias(table, nil)
}

// CheckEEOC applies the EEOC 80% rule to the target column across the groups
// of the first sensitive attribute.
func (d *FairnessDetector) CheckEEOC(table *fio.Table) (*compliance.EEOCResult, error) {
	cfg, table, err := d.resolve(table)
	if err != nil {
		return nil, err
	}

	outcome, err := table.Labels(cfg.Target)
	if err != nil {
		return nil, err
	}
	nums, strs, err := groupColumn(table, cfg.SensitiveAttributes[0])
	if err != nil {
		return nil, err
	}

	var res *compliance.EEOCResult
	if nums != nil {
		res, err = compliance.CheckEEOC(outcome, nums)
	} else {
		res, err = compliance.CheckEEOC(outcome, strs)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Verbose {
		d.logger.Info("eeoc compliance check",
			"impact_ratio", res.ImpactRatio,
			"threshold", res.Threshold,
			"compliant", res.Compliant,
			"failing_groups", res.FailingGroups)
	}
	return res, nil
}

// CheckECOA applies the ECOA disparate impact analysis to the target column
// across the groups of the first sensitive attribute.
func (d *FairnessDetector) CheckECOA(table *fio.Table) (*compliance.ECOAResult, error) {
	cfg, table, err := d.resolve(table)
	if err != nil {
		return nil, err
	}

	outcome, err := table.Labels(cfg.Target)
	if err != nil {
		return nil, err
	}
	nums, strs, err := groupColumn(table, cfg.SensitiveAttributes[0])
	if err != nil {
		return nil, err
	}

	var res *compliance.ECOAResult
	if nums != nil {
		res, err = compliance.CheckECOA(outcome, nums)
	} else {
		res, err = compliance.CheckECOA(outcome, strs)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Verbose {
		d.logger.Info("ecoa compliance check",
			"disparate_impact", res.DisparateImpact,
			"threshold", res.Threshold,
			"compliant", res.Compliant,
			"disadvantaged_groups", res.DisadvantagedGroups)
	}
	return res, nil
}

// SuggestSensitiveAttributes classifies the table's column names. A nil
// table means the loaded data.
func (d *FairnessDetector) SuggestSensitiveAttributes(table *fio.Table) ([]sensitive.Match, error) {
	d.mu.RLock()
	if table == nil {
		table = d.data
	}
	d.mu.RUnlock()

	if table == nil {
		return nil, ErrNoData
	}
	return d.sensitive.Detect(table.Headers()), nil
}

// resolve snapshots the configuration and picks the data source.
func (d *FairnessDetector) resolve(table *fio.Table) (Config, *fio.Table, error) {
	d.mu.RLock()
	cfg := d.cfg.clone()
	if table == nil {
		table = d.data
	}
	d.mu.RUnlock()

	if table == nil {
		return cfg, nil, ErrNoData
	}
	if len(cfg.SensitiveAttributes) == 0 {
		return cfg, nil, errors.Wrap(ErrConfiguration, "no sensitive attributes set")
	}
	if cfg.Target == "" {
		return cfg, nil, errors.Wrap(ErrConfiguration, "no target set")
	}
	if err := checkColumns(table, cfg.Target, cfg.SensitiveAttributes); err != nil {
		return cfg, nil, err
	}
	return cfg, table, nil
}

func (d *FairnessDetector) report(cfg Config, v *BiasVerdict) {
	if !cfg.Verbose {
		return
	}
	d.logger.Info("bias detection",
		"attribute", v.Attribute,
		"has_bias", v.HasBias,
		"bias_type", string(v.BiasType),
		"threshold", cfg.Threshold)
}

// debug logs while the caller holds d.mu.
func (d *FairnessDetector) debug(msg string, args ...any) {
	if d.cfg.Verbose {
		d.logger.Info(msg, args...)
	}
}

func detect(cfg Config, table *fio.Table, attr string, yPred []bool) (*BiasVerdict, error) {
	yTrue, err := table.Labels(cfg.Target)
	if err != nil {
		return nil, err
	}
	if yPred == nil {
		yPred = yTrue
	}

	nums, strs, err := groupColumn(table, attr)
	if err != nil {
		return nil, err
	}

	var values map[metrics.Metric]float64
	if nums != nil {
		values, err = detectionValues(yTrue, yPred, nums)
	} else {
		values, err = detectionValues(yTrue, yPred, strs)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "attribute %q", attr)
	}

	return newVerdict(values, cfg.Threshold, attr, cfg.SensitiveAttributes), nil
}

func detectionValues[G cmp.Ordered](yTrue, yPred []bool, groups []G) (map[metrics.Metric]float64, error) {
	dp, err := metrics.DemographicParityDifference(yPred, groups)
	if err != nil {
		return nil, err
	}
	eo, err := metrics.EqualizedOddsDifference(yTrue, yPred, groups)
	if err != nil {
		return nil, err
	}
	eop, err := metrics.EqualOpportunityDifference(yTrue, yPred, groups)
	if err != nil {
		return nil, err
	}

	return map[metrics.Metric]float64{
		metrics.DemographicParity: dp,
		metrics.EqualizedOdds:     eo,
		metrics.EqualOpportunity:  eop,
	}, nil
}

// groupColumn returns a sensitive column as numbers when every value is
// numeric, so that group order is numeric, and as strings otherwise.
func groupColumn(table *fio.Table, name string) ([]float64, []string, error) {
	nums, ok, err := table.Floats(name)
	if err != nil {
		return nil, nil, err
	}
	if ok && len(nums) > 0 {
		return nums, nil, nil
	}

	strs, err := table.Column(name)
	if err != nil {
		return nil, nil, err
	}
	return nil, strs, nil
}

func checkColumns(table *fio.Table, target string, attrs []string) error {
	if target != "" && !table.HasColumn(target) {
		return errors.Wrapf(ErrSchema, "target column %q", target)
	}
	for _, attr := range attrs {
		if !table.HasColumn(attr) {
			return errors.Wrapf(ErrSchema, "sensitive attribute %q", attr)
		}
	}
	return nil
}
