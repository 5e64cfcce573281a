// Package metrics implements group fairness metrics for binary classifiers.
//
// Every metric compares exactly two groups. The groups are the two distinct
// values of the sensitive attribute in natural sort order; groups[0] is the
// reference group and differences are computed as group1 minus group0. The
// sign of a result therefore depends on which value sorts first, not on
// which group is the majority.
package metrics

import (
	"cmp"
	"slices"

	"github.com/pkg/errors"
)

var (
	// ErrCardinality is returned when a sensitive attribute does not have the
	// number of distinct values a metric requires.
	ErrCardinality = errors.New("sensitive attribute cardinality")
	// ErrLengthMismatch is returned when label and group slices differ in length.
	ErrLengthMismatch = errors.New("input lengths do not match")
	// ErrEmpty is returned for empty inputs where at least one row is needed.
	ErrEmpty = errors.New("empty input")
)

// Metric names a fairness metric.
type Metric string

const (
	DemographicParity Metric = "demographic_parity"
	EqualizedOdds     Metric = "equalized_odds"
	EqualOpportunity  Metric = "equal_opportunity"
	DisparateImpact   Metric = "disparate_impact"
	AverageOdds       Metric = "average_odds"
)

// All lists the metrics produced by ComputeAll in their canonical order.
var All = []Metric{
	DemographicParity,
	EqualizedOdds,
	EqualOpportunity,
	DisparateImpact,
	AverageOdds,
}

// DemographicParityDifference returns P(pred=1 | group1) - P(pred=1 | group0).
func DemographicParityDifference[G cmp.Ordered](yPred []bool, groups []G) (float64, error) {
	if err := checkLengths(len(yPred), len(groups)); err != nil {
		return 0, err
	}
	g0, g1, err := binaryGroups(groups)
	if err != nil {
		return 0, err
	}

	return positiveRate(yPred, groups, g1) - positiveRate(yPred, groups, g0), nil
}

// StatisticalParityDifference is an alias for DemographicParityDifference.
func StatisticalParityDifference[G cmp.Ordered](yPred []bool, groups []G) (float64, error) {
	return DemographicParityDifference(yPred, groups)
}

// EqualizedOddsDifference returns max(|ΔTPR|, |ΔFPR|) between the two groups.
func EqualizedOddsDifference[G cmp.Ordered](yTrue, yPred []bool, groups []G) (float64, error) {
	tpr, fpr, err := oddsDifferences(yTrue, yPred, groups)
	if err != nil {
		return 0, err
	}
	return max(abs(tpr), abs(fpr)), nil
}

// EqualOpportunityDifference returns TPR(group1) - TPR(group0).
func EqualOpportunityDifference[G cmp.Ordered](yTrue, yPred []bool, groups []G) (float64, error) {
	return TruePositiveRateDifference(yTrue, yPred, groups)
}

// DisparateImpactRatio returns P(pred=1 | group1) / P(pred=1 | group0).
//
// When group0 has no positive predictions the ratio is 0 if group1 has none
// either and +Inf otherwise. The ratio is not normalized to <= 1; callers
// applying the 80% rule should compare min(r, 1/r).
func DisparateImpactRatio[G cmp.Ordered](yPred []bool, groups []G) (float64, error) {
	if err := checkLengths(len(yPred), len(groups)); err != nil {
		return 0, err
	}
	g0, g1, err := binaryGroups(groups)
	if err != nil {
		return 0, err
	}

	rate0 := positiveRate(yPred, groups, g0)
	rate1 := positiveRate(yPred, groups, g1)

	if rate0 == 0 {
		if rate1 == 0 {
			return 0, nil
		}
		return inf, nil
	}
	return rate1 / rate0, nil
}

// AverageOddsDifference returns (|ΔTPR| + |ΔFPR|) / 2.
func AverageOddsDifference[G cmp.Ordered](yTrue, yPred []bool, groups []G) (float64, error) {
	tpr, fpr, err := oddsDifferences(yTrue, yPred, groups)
	if err != nil {
		return 0, err
	}
	return (abs(tpr) + abs(fpr)) / 2, nil
}

// ComputeAll evaluates every metric in All. Each metric is computed
// independently.
func ComputeAll[G cmp.Ordered](yTrue, yPred []bool, groups []G) (map[Metric]float64, error) {
	dp, err := DemographicParityDifference(yPred, groups)
	if err != nil {
		return nil, err
	}
	eo, err := EqualizedOddsDifference(yTrue, yPred, groups)
	if err != nil {
		return nil, err
	}
	eop, err := EqualOpportunityDifference(yTrue, yPred, groups)
	if err != nil {
		return nil, err
	}
	di, err := DisparateImpactRatio(yPred, groups)
	if err != nil {
		return nil, err
	}
	ao, err := AverageOddsDifference(yTrue, yPred, groups)
	if err != nil {
		return nil, err
	}

	return map[Metric]float64{
		DemographicParity: dp,
		EqualizedOdds:     eo,
		EqualOpportunity:  eop,
		DisparateImpact:   di,
		AverageOdds:       ao,
	}, nil
}

// Unique returns the distinct values of groups in ascending order.
func Unique[G cmp.Ordered](groups []G) []G {
	out := slices.Clone(groups)
	slices.Sort(out)
	return slices.Compact(out)
}

func binaryGroups[G cmp.Ordered](groups []G) (g0, g1 G, err error) {
	uniq := Unique(groups)
	if len(uniq) != 2 {
		return g0, g1, errors.Wrapf(ErrCardinality, "need exactly 2 groups, found %d", len(uniq))
	}
	return uniq[0], uniq[1], nil
}

func oddsDifferences[G cmp.Ordered](yTrue, yPred []bool, groups []G) (tpr, fpr float64, err error) {
	if err := checkLengths(len(yTrue), len(yPred), len(groups)); err != nil {
		return 0, 0, err
	}
	g0, g1, err := binaryGroups(groups)
	if err != nil {
		return 0, 0, err
	}

	tpr = conditionalRate(yTrue, yPred, groups, g1, true) - conditionalRate(yTrue, yPred, groups, g0, true)
	fpr = conditionalRate(yTrue, yPred, groups, g1, false) - conditionalRate(yTrue, yPred, groups, g0, false)
	return tpr, fpr, nil
}

func checkLengths(lengths ...int) error {
	for _, n := range lengths[1:] {
		if n != lengths[0] {
			return errors.Wrapf(ErrLengthMismatch, "lengths %v", lengths)
		}
	}
	return nil
}
