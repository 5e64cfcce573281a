package metrics

// DefaultThreshold applies to metric names missing from Thresholds.
const DefaultThreshold = 0.1

// Thresholds holds the fairness cutoff commonly used for each metric.
// Difference metrics are fair when |value| <= threshold; disparate impact is
// fair when threshold <= value <= 2-threshold.
var Thresholds = map[Metric]float64{
	DemographicParity: 0.1,
	EqualizedOdds:     0.1,
	EqualOpportunity:  0.1,
	DisparateImpact:   0.8,
	AverageOdds:       0.1,
}

// ThresholdFor returns the cutoff for a metric.
func ThresholdFor(m Metric) float64 {
	if t, ok := Thresholds[m]; ok {
		return t
	}
	return DefaultThreshold
}

// IsFair reports whether value is within the fairness band for metric m.
// Both bounds are inclusive.
func IsFair(value float64, m Metric) bool {
	t := ThresholdFor(m)
	if m == DisparateImpact {
		return t <= value && value <= 2-t
	}
	return abs(value) <= t
}
