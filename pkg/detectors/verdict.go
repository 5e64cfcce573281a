package detectors

import (
	"fmt"
	"math"
	"strings"

	fio "github.com/hed1ad/gofairml/pkg/io"
	"github.com/hed1ad/gofairml/pkg/metrics"
)

// Recommendations are attached to every verdict that reports bias.
var Recommendations = []string{
	"Review data collection process for potential bias",
	"Consider bias mitigation techniques (reweighting, resampling)",
	"Evaluate model fairness across all protected groups",
	"Consult fairness documentation for mitigation strategies",
}

var advice = map[metrics.Metric]string{
	metrics.DemographicParity: "Selection rates differ between groups; consider reweighting or resampling the training data",
	metrics.EqualizedOdds:     "Error rates differ between groups; consider group-specific decision thresholds",
	metrics.EqualOpportunity:  "Qualified members of one group are missed more often; audit features correlated with the sensitive attribute",
	metrics.DisparateImpact:   "The disadvantaged group falls under the four-fifths ratio; review the selection criteria",
	metrics.AverageOdds:       "Average error rates differ between groups; consider post-processing calibration",
}

// BiasVerdict is the outcome of one bias detection run.
type BiasVerdict struct {
	HasBias bool `json:"has_bias"`
	// BiasType is the metric with the largest magnitude. Empty without bias.
	BiasType        metrics.Metric             `json:"bias_type,omitempty"`
	Metrics         map[metrics.Metric]float64 `json:"metrics"`
	SensitiveAttrs  []string                   `json:"sensitive_attrs"`
	Attribute       string                     `json:"attribute"`
	Recommendations []string                   `json:"recommendations"`
	Advice          string                     `json:"advice,omitempty"`
}

func newVerdict(values map[metrics.Metric]float64, threshold float64, attr string, attrs []string) *BiasVerdict {
	v := &BiasVerdict{
		Metrics:         values,
		SensitiveAttrs:  append([]string(nil), attrs...),
		Attribute:       attr,
		Recommendations: []string{},
	}

	worst := -1.0
	for _, m := range detectionMetrics {
		val, ok := values[m]
		if !ok {
			continue
		}
		mag := math.Abs(val)
		if mag > threshold {
			v.HasBias = true
		}
		if mag > worst {
			worst = mag
			v.BiasType = m
		}
	}

	if !v.HasBias {
		v.BiasType = ""
		return v
	}

	v.Recommendations = append(v.Recommendations, Recommendations...)
	v.Advice = advice[v.BiasType]
	return v
}

// Summary renders the verdict as a human-readable report.
func (v *BiasVerdict) Summary() string {
	rule := strings.Repeat("=", 60)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("FAIRNESS ANALYSIS RESULTS\n")
	b.WriteString(rule + "\n")

	if v.HasBias {
		b.WriteString("\nStatus: BIAS DETECTED\n")
	} else {
		b.WriteString("\nStatus: NO BIAS DETECTED\n")
	}
	if v.BiasType != "" {
		fmt.Fprintf(&b, "Bias Type: %s\n", v.BiasType)
	}

	if len(v.Metrics) > 0 {
		b.WriteString("\nFairness Metrics:\n")
		for _, m := range metrics.All {
			if val, ok := v.Metrics[m]; ok {
				fmt.Fprintf(&b, "  - %s: %.4f\n", m, val)
			}
		}
	}

	if len(v.SensitiveAttrs) > 0 {
		fmt.Fprintf(&b, "\nSensitive Attributes: %s\n", strings.Join(v.SensitiveAttrs, ", "))
	}

	if len(v.Recommendations) > 0 {
		b.WriteString("\nRecommendations:\n")
		for i, rec := range v.Recommendations {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, rec)
		}
	}

	b.WriteString(rule)
	return b.String()
}

// Record converts the verdict to a persistable result.
func (v *BiasVerdict) Record() fio.Result {
	values := make(map[string]float64, len(v.Metrics))
	for m, val := range v.Metrics {
		values[string(m)] = val
	}

	meta := map[string]any{
		"sensitive_attrs": v.SensitiveAttrs,
	}
	if v.BiasType != "" {
		meta["bias_type"] = string(v.BiasType)
	}
	if v.Advice != "" {
		meta["advice"] = v.Advice
	}

	return fio.Result{
		Kind:      "bias_detection",
		Attribute: v.Attribute,
		Passed:    !v.HasBias,
		Metrics:   values,
		Metadata:  meta,
	}
}
