package metrics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture: group A selects 3/4, group B selects 1/4.
var (
	fxGroups = []string{"A", "A", "A", "A", "B", "B", "B", "B"}
	fxTrue   = []bool{true, true, false, false, true, true, false, false}
	fxPred   = []bool{true, true, true, false, true, false, false, false}
)

func TestDemographicParityDifference(t *testing.T) {
	tests := []struct {
		name   string
		yPred  []bool
		groups []string
		want   float64
	}{
		{
			name:   "unequal rates",
			yPred:  fxPred,
			groups: fxGroups,
			want:   -0.5,
		},
		{
			name:   "equal rates",
			yPred:  []bool{true, false, true, false},
			groups: []string{"A", "A", "B", "B"},
			want:   0,
		},
		{
			name:   "all negative",
			yPred:  []bool{false, false, false, false},
			groups: []string{"A", "B", "A", "B"},
			want:   0,
		},
		{
			name:   "all positive",
			yPred:  []bool{true, true, true, true, true},
			groups: []string{"A", "B", "A", "B", "B"},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DemographicParityDifference(tt.yPred, tt.groups)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestDemographicParityNumericOrder(t *testing.T) {
	// 9 sorts before 10 numerically, so 9 is the reference group.
	yPred := []bool{true, true, false, false}
	groups := []int{10, 10, 9, 9}

	got, err := DemographicParityDifference(yPred, groups)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	alias, err := StatisticalParityDifference(yPred, groups)
	require.NoError(t, err)
	assert.Equal(t, got, alias)
}

func TestOddsMetrics(t *testing.T) {
	eo, err := EqualizedOddsDifference(fxTrue, fxPred, fxGroups)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, eo, 1e-12)

	eop, err := EqualOpportunityDifference(fxTrue, fxPred, fxGroups)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, eop, 1e-12)

	ao, err := AverageOddsDifference(fxTrue, fxPred, fxGroups)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, ao, 1e-12)

	fpr, err := FalsePositiveRateDifference(fxTrue, fxPred, fxGroups)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, fpr, 1e-12)

	tnr, err := TrueNegativeRateDifference(fxTrue, fxPred, fxGroups)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, tnr, 1e-12)
}

func TestZeroInstanceRate(t *testing.T) {
	// Group B has no positive ground truth, so its TPR counts as 0.
	yTrue := []bool{true, false, false, false}
	yPred := []bool{true, false, true, false}
	groups := []string{"A", "A", "B", "B"}

	tpr, err := TruePositiveRateDifference(yTrue, yPred, groups)
	require.NoError(t, err)
	assert.Equal(t, -1.0, tpr)

	eo, err := EqualizedOddsDifference(yTrue, yPred, groups)
	require.NoError(t, err)
	assert.Equal(t, 1.0, eo)
}

func TestDisparateImpactRatio(t *testing.T) {
	t.Run("ratio", func(t *testing.T) {
		got, err := DisparateImpactRatio(fxPred, fxGroups)
		require.NoError(t, err)
		assert.InDelta(t, 1.0/3.0, got, 1e-12)
	})

	t.Run("swapped group order is reciprocal", func(t *testing.T) {
		swapped := make([]string, len(fxGroups))
		for i, g := range fxGroups {
			if g == "A" {
				swapped[i] = "Z"
			} else {
				swapped[i] = g
			}
		}

		orig, err := DisparateImpactRatio(fxPred, fxGroups)
		require.NoError(t, err)
		rev, err := DisparateImpactRatio(fxPred, swapped)
		require.NoError(t, err)
		assert.InDelta(t, 1/orig, rev, 1e-12)
	})

	t.Run("both rates zero", func(t *testing.T) {
		got, err := DisparateImpactRatio([]bool{false, false}, []string{"A", "B"})
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	})

	t.Run("reference rate zero", func(t *testing.T) {
		got, err := DisparateImpactRatio([]bool{false, true}, []string{"A", "B"})
		require.NoError(t, err)
		assert.True(t, math.IsInf(got, 1))
	})
}

func TestComputeAll(t *testing.T) {
	got, err := ComputeAll(fxTrue, fxPred, fxGroups)
	require.NoError(t, err)

	assert.Len(t, got, 5)
	for _, m := range All {
		assert.Contains(t, got, m)
	}
	assert.InDelta(t, -0.5, got[DemographicParity], 1e-12)
	assert.InDelta(t, 1.0/3.0, got[DisparateImpact], 1e-12)
}

func TestCardinalityErrors(t *testing.T) {
	cases := map[string][]string{
		"one group":    {"A", "A", "A"},
		"three groups": {"A", "B", "C"},
	}

	for name, groups := range cases {
		t.Run(name, func(t *testing.T) {
			yTrue := []bool{true, false, true}
			yPred := []bool{true, true, false}

			_, err := DemographicParityDifference(yPred, groups)
			assert.ErrorIs(t, err, ErrCardinality)
			_, err = EqualizedOddsDifference(yTrue, yPred, groups)
			assert.ErrorIs(t, err, ErrCardinality)
			_, err = EqualOpportunityDifference(yTrue, yPred, groups)
			assert.ErrorIs(t, err, ErrCardinality)
			_, err = DisparateImpactRatio(yPred, groups)
			assert.ErrorIs(t, err, ErrCardinality)
			_, err = AverageOddsDifference(yTrue, yPred, groups)
			assert.ErrorIs(t, err, ErrCardinality)
			_, err = TrueNegativeRateDifference(yTrue, yPred, groups)
			assert.ErrorIs(t, err, ErrCardinality)
			_, err = ComputeAll(yTrue, yPred, groups)
			assert.ErrorIs(t, err, ErrCardinality)
		})
	}
}

func TestLengthMismatch(t *testing.T) {
	_, err := DemographicParityDifference([]bool{true}, []string{"A", "B"})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = EqualizedOddsDifference([]bool{true, false}, []bool{true}, []string{"A", "B"})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	assert.ErrorIs(t, CheckLengths([]bool{true}, []bool{true}, []string{"A", "B"}), ErrLengthMismatch)
	assert.NoError(t, CheckLengths([]bool{true}, []bool{true}, []string{"A"}))
}

func TestIsFair(t *testing.T) {
	tests := []struct {
		value  float64
		metric Metric
		want   bool
	}{
		{0.05, DemographicParity, true},
		{0.1, DemographicParity, true},
		{-0.1, DemographicParity, true},
		{0.1001, DemographicParity, false},
		{-0.5, EqualOpportunity, false},
		{0.8, DisparateImpact, true},
		{1.2, DisparateImpact, true},
		{1.0, DisparateImpact, true},
		{0.79, DisparateImpact, false},
		{1.21, DisparateImpact, false},
		{0.1, Metric("unknown"), true},
		{0.2, Metric("unknown"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsFair(tt.value, tt.metric), "%s=%v", tt.metric, tt.value)
	}
}

func TestValidateGroups(t *testing.T) {
	assert.NoError(t, ValidateGroups([]string{"A", "B", "A"}, false))
	assert.ErrorIs(t, ValidateGroups([]string{"A", "A"}, false), ErrCardinality)
	assert.ErrorIs(t, ValidateGroups([]string{"A", "B", "C"}, false), ErrCardinality)
	assert.NoError(t, ValidateGroups([]string{"A", "B", "C"}, true))
}

func TestGroupStatistics(t *testing.T) {
	got, err := GroupStatistics([]float64{1, 2, 3, 10, 20}, []string{"A", "A", "A", "B", "B"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "A", got[0].Group)
	assert.Equal(t, 3, got[0].Count)
	assert.InDelta(t, 2.0, got[0].Mean, 1e-12)
	assert.InDelta(t, 1.0, got[0].Std, 1e-12)
	assert.Equal(t, 1.0, got[0].Min)
	assert.Equal(t, 3.0, got[0].Max)

	assert.Equal(t, "B", got[1].Group)
	assert.InDelta(t, 15.0, got[1].Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(50), got[1].Std, 1e-9)

	_, err = GroupStatistics(nil, []string{})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestConfusionByGroup(t *testing.T) {
	got, err := ConfusionByGroup(fxTrue, fxPred, fxGroups)
	require.NoError(t, err)

	assert.Equal(t, Confusion{TP: 2, FP: 1, TN: 1, FN: 0}, got["A"])
	assert.Equal(t, Confusion{TP: 1, FP: 0, TN: 2, FN: 1}, got["B"])
	assert.Equal(t, 0.5, got["B"].TPR())
	assert.Equal(t, 0.75, got["A"].SelectionRate())
	assert.Equal(t, 0.75, got["B"].Accuracy())
}

func TestBootstrap(t *testing.T) {
	var yTrue, yPred []bool
	var groups []string
	for i := 0; i < 20; i++ {
		yTrue = append(yTrue, true, true)
		yPred = append(yPred, true, false)
		groups = append(groups, "A", "B")
	}

	iv, err := Bootstrap(Bootstrappable(DemographicParityDifference[string]), yTrue, yPred, groups,
		WithResamples(200), WithSeed(7))
	require.NoError(t, err)

	assert.Equal(t, -1.0, iv.Value)
	assert.Equal(t, -1.0, iv.Lower)
	assert.Equal(t, -1.0, iv.Upper)
	assert.Equal(t, 0.95, iv.Confidence)
	assert.Equal(t, 200, iv.Resamples)

	t.Run("invalid confidence", func(t *testing.T) {
		_, err := Bootstrap(EqualizedOddsDifference[string], yTrue, yPred, groups, WithConfidence(1.5))
		assert.Error(t, err)
	})

	t.Run("metric failure on full sample", func(t *testing.T) {
		_, err := Bootstrap(EqualizedOddsDifference[string], yTrue, yPred, make([]string, len(yTrue)))
		assert.ErrorIs(t, err, ErrCardinality)
	})
}

func BenchmarkComputeAll(b *testing.B) {
	n := 100000
	yTrue := make([]bool, n)
	yPred := make([]bool, n)
	groups := make([]string, n)
	for i := 0; i < n; i++ {
		yTrue[i] = rand.Intn(2) == 1
		yPred[i] = rand.Intn(2) == 1
		groups[i] = []string{"A", "B"}[rand.Intn(2)]
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeAll(yTrue, yPred, groups)
	}
}
