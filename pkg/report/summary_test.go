package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hed1ad/gofairml/pkg/compliance"
	"github.com/hed1ad/gofairml/pkg/metrics"
)

func TestFormatMetric(t *testing.T) {
	assert.Equal(t, "Demographic Parity: 0.154", FormatMetric(0.15432, "Demographic Parity"))
	assert.Equal(t, "-0.500", FormatMetric(-0.5, ""))
}

func TestSummary(t *testing.T) {
	s := Summary(map[metrics.Metric]float64{
		metrics.EqualizedOdds:     0.08,
		metrics.DemographicParity: 0.15,
		metrics.DisparateImpact:   0.9,
		"custom":                  0.01,
	})

	assert.True(t, strings.HasPrefix(s, strings.Repeat("=", 60)+"\nFAIRNESS METRICS SUMMARY\n"))
	assert.Contains(t, s, "demographic_parity:\n  Value: 0.1500\n  Threshold: 0.1000\n  Status: FAIL\n")
	assert.Contains(t, s, "equalized_odds:\n  Value: 0.0800\n  Threshold: 0.1000\n  Status: PASS\n")
	assert.Contains(t, s, "disparate_impact:\n  Value: 0.9000\n  Threshold: 0.8000\n  Status: PASS\n")

	dp := strings.Index(s, "demographic_parity:")
	eo := strings.Index(s, "equalized_odds:")
	di := strings.Index(s, "disparate_impact:")
	custom := strings.Index(s, "custom:")
	assert.Less(t, dp, eo)
	assert.Less(t, eo, di)
	assert.Less(t, di, custom)
}

func TestComplianceReports(t *testing.T) {
	outcome := []bool{true, true, true, true, true, true, false, false}
	groups := []string{"A", "A", "A", "A", "B", "B", "B", "B"}

	eeoc, err := compliance.CheckEEOC(outcome, groups)
	require.NoError(t, err)
	s := EEOC(eeoc)
	assert.Contains(t, s, "EEOC 80% RULE")
	assert.Contains(t, s, "Status: NOT COMPLIANT")
	assert.Contains(t, s, "Impact Ratio: 0.5000")
	assert.Contains(t, s, "  - B: 0.5000")
	assert.Contains(t, s, "Failing Groups: B")

	ecoa, err := compliance.CheckECOA(outcome, groups)
	require.NoError(t, err)
	s = ECOA(ecoa)
	assert.Contains(t, s, "Disparate Impact: 0.5000")
	assert.Contains(t, s, "  - A_vs_B: 0.5000")
	assert.Contains(t, s, "Disadvantaged Groups: B")
}
