// Package report renders fairness results as plain text.
package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hed1ad/gofairml/pkg/compliance"
	"github.com/hed1ad/gofairml/pkg/metrics"
)

var rule = strings.Repeat("=", 60)

// FormatMetric formats a metric value with three decimals, prefixed by name
// when one is given.
func FormatMetric(value float64, name string) string {
	if name == "" {
		return fmt.Sprintf("%.3f", value)
	}
	return fmt.Sprintf("%s: %.3f", name, value)
}

// Summary renders value, threshold and pass/fail status for each metric.
// Known metrics come first in canonical order, any others follow by name.
func Summary(values map[metrics.Metric]float64) string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("FAIRNESS METRICS SUMMARY\n")
	b.WriteString(rule + "\n\n")

	for _, m := range order(values) {
		v := values[m]
		status := "FAIL"
		if metrics.IsFair(v, m) {
			status = "PASS"
		}

		fmt.Fprintf(&b, "%s:\n", m)
		fmt.Fprintf(&b, "  Value: %.4f\n", v)
		fmt.Fprintf(&b, "  Threshold: %.4f\n", metrics.ThresholdFor(m))
		fmt.Fprintf(&b, "  Status: %s\n\n", status)
	}

	b.WriteString(rule)
	return b.String()
}

// EEOC renders an EEOC 80% rule check.
func EEOC(res *compliance.EEOCResult) string {
	var b strings.Builder
	header(&b, res.Regulation, res.Compliant)

	fmt.Fprintf(&b, "Impact Ratio: %.4f (threshold %.2f)\n", res.ImpactRatio, res.Threshold)
	b.WriteString("\nSelection Rates:\n")
	for _, g := range compliance.Groups(res.SelectionRates) {
		iv := res.Intervals[g]
		fmt.Fprintf(&b, "  - %s: %.4f [%.4f, %.4f] (n=%d)\n",
			g, res.SelectionRates[g], iv.Lower, iv.Upper, res.Counts[g])
	}
	if len(res.FailingGroups) > 0 {
		fmt.Fprintf(&b, "\nFailing Groups: %s\n", strings.Join(res.FailingGroups, ", "))
	}

	b.WriteString(rule)
	return b.String()
}

// ECOA renders an ECOA disparate impact analysis.
func ECOA(res *compliance.ECOAResult) string {
	var b strings.Builder
	header(&b, res.Regulation, res.Compliant)

	fmt.Fprintf(&b, "Disparate Impact: %.4f (threshold %.2f)\n", res.DisparateImpact, res.Threshold)
	fmt.Fprintf(&b, "Chi-square: %.4f (p=%.4f)\n", res.ChiSquare, res.PValue)
	b.WriteString("\nApproval Rates:\n")
	for _, g := range compliance.Groups(res.ApprovalRates) {
		fmt.Fprintf(&b, "  - %s: %.4f\n", g, res.ApprovalRates[g])
	}
	if len(res.RateDifferences) > 0 {
		b.WriteString("\nRate Differences:\n")
		for _, k := range compliance.Groups(res.RateDifferences) {
			fmt.Fprintf(&b, "  - %s: %.4f\n", k, res.RateDifferences[k])
		}
	}
	if len(res.DisadvantagedGroups) > 0 {
		fmt.Fprintf(&b, "\nDisadvantaged Groups: %s\n", strings.Join(res.DisadvantagedGroups, ", "))
	}

	b.WriteString(rule)
	return b.String()
}

func header(b *strings.Builder, regulation string, compliant bool) {
	b.WriteString(rule + "\n")
	b.WriteString(strings.ToUpper(regulation) + "\n")
	b.WriteString(rule + "\n\n")

	if compliant {
		b.WriteString("Status: COMPLIANT\n")
	} else {
		b.WriteString("Status: NOT COMPLIANT\n")
	}
}

func order(values map[metrics.Metric]float64) []metrics.Metric {
	var out []metrics.Metric
	for _, m := range metrics.All {
		if _, ok := values[m]; ok {
			out = append(out, m)
		}
	}

	var extra []metrics.Metric
	for m := range values {
		if !slices.Contains(metrics.All, m) {
			extra = append(extra, m)
		}
	}
	slices.Sort(extra)

	return append(out, extra...)
}
