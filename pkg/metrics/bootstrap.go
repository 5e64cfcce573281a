package metrics

import (
	"cmp"
	"math/rand"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// ErrNoResamples is returned when every bootstrap resample failed.
var ErrNoResamples = errors.New("no successful bootstrap resamples")

// MetricFunc is any metric over labels, predictions and groups.
type MetricFunc[G cmp.Ordered] func(yTrue, yPred []bool, groups []G) (float64, error)

// Interval is a point estimate with a percentile bootstrap confidence interval.
type Interval struct {
	Value      float64
	Lower      float64
	Upper      float64
	Confidence float64
	// Resamples counts the resamples that produced a value.
	Resamples int
}

type bootstrapConfig struct {
	resamples  int
	confidence float64
	rng        *rand.Rand
}

// BootstrapOption configures Bootstrap.
type BootstrapOption func(*bootstrapConfig)

// WithResamples sets the number of bootstrap resamples.
func WithResamples(n int) BootstrapOption {
	return func(c *bootstrapConfig) {
		c.resamples = n
	}
}

// WithConfidence sets the confidence level, e.g. 0.95.
func WithConfidence(level float64) BootstrapOption {
	return func(c *bootstrapConfig) {
		c.confidence = level
	}
}

// WithSeed sets the random seed for reproducibility.
func WithSeed(seed int64) BootstrapOption {
	return func(c *bootstrapConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// Bootstrap evaluates fn on the full sample and on resamples drawn with
// replacement. Resamples on which fn fails, for example because one group
// was not drawn, are skipped.
func Bootstrap[G cmp.Ordered](fn MetricFunc[G], yTrue, yPred []bool, groups []G, opts ...BootstrapOption) (Interval, error) {
	cfg := &bootstrapConfig{
		resamples:  1000,
		confidence: 0.95,
		rng:        rand.New(rand.NewSource(42)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.resamples <= 0 {
		return Interval{}, errors.New("resamples must be positive")
	}
	if cfg.confidence <= 0 || cfg.confidence >= 1 {
		return Interval{}, errors.Errorf("confidence must be in (0, 1), got %v", cfg.confidence)
	}
	if err := checkLengths(len(yTrue), len(yPred), len(groups)); err != nil {
		return Interval{}, err
	}

	value, err := fn(yTrue, yPred, groups)
	if err != nil {
		return Interval{}, err
	}

	n := len(yTrue)
	sTrue := make([]bool, n)
	sPred := make([]bool, n)
	sGroups := make([]G, n)

	values := make([]float64, 0, cfg.resamples)
	for b := 0; b < cfg.resamples; b++ {
		for i := 0; i < n; i++ {
			j := cfg.rng.Intn(n)
			sTrue[i] = yTrue[j]
			sPred[i] = yPred[j]
			sGroups[i] = groups[j]
		}

		v, err := fn(sTrue, sPred, sGroups)
		if err != nil {
			continue
		}
		values = append(values, v)
	}

	if len(values) == 0 {
		return Interval{}, ErrNoResamples
	}

	alpha := 1 - cfg.confidence
	lower, err := stats.PercentileNearestRank(values, 100*alpha/2)
	if err != nil {
		return Interval{}, errors.Wrap(err, "lower percentile")
	}
	upper, err := stats.PercentileNearestRank(values, 100*(1-alpha/2))
	if err != nil {
		return Interval{}, errors.Wrap(err, "upper percentile")
	}

	return Interval{
		Value:      value,
		Lower:      lower,
		Upper:      upper,
		Confidence: cfg.confidence,
		Resamples:  len(values),
	}, nil
}

// Bootstrappable adapts a prediction-only metric to MetricFunc.
func Bootstrappable[G cmp.Ordered](fn func(yPred []bool, groups []G) (float64, error)) MetricFunc[G] {
	return func(_, yPred []bool, groups []G) (float64, error) {
		return fn(yPred, groups)
	}
}
