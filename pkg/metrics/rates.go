package metrics

import (
	"cmp"
	"math"
)

var (
	inf = math.Inf(1)
	nan = math.NaN()
)

// TruePositiveRateDifference returns TPR(group1) - TPR(group0).
//
// A group with no positive ground-truth rows is assigned a TPR of 0 rather
// than treated as undefined. This keeps the metric finite but can understate
// the real rate for tiny groups.
func TruePositiveRateDifference[G cmp.Ordered](yTrue, yPred []bool, groups []G) (float64, error) {
	tpr, _, err := oddsDifferences(yTrue, yPred, groups)
	return tpr, err
}

// FalsePositiveRateDifference returns FPR(group1) - FPR(group0), with the same
// zero-instance convention as TruePositiveRateDifference.
func FalsePositiveRateDifference[G cmp.Ordered](yTrue, yPred []bool, groups []G) (float64, error) {
	_, fpr, err := oddsDifferences(yTrue, yPred, groups)
	return fpr, err
}

// TrueNegativeRateDifference returns TNR(group1) - TNR(group0). A group with
// no negative ground-truth rows has a TNR of 0.
func TrueNegativeRateDifference[G cmp.Ordered](yTrue, yPred []bool, groups []G) (float64, error) {
	if err := checkLengths(len(yTrue), len(yPred), len(groups)); err != nil {
		return 0, err
	}
	g0, g1, err := binaryGroups(groups)
	if err != nil {
		return 0, err
	}

	return trueNegativeRate(yTrue, yPred, groups, g1) - trueNegativeRate(yTrue, yPred, groups, g0), nil
}

// positiveRate is the share of positive predictions among rows of group g.
func positiveRate[G cmp.Ordered](yPred []bool, groups []G, g G) float64 {
	var n, pos int
	for i, v := range groups {
		if v != g {
			continue
		}
		n++
		if yPred[i] {
			pos++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(pos) / float64(n)
}

// conditionalRate is P(pred=1 | group=g, true=label), or 0 when no row matches.
func conditionalRate[G cmp.Ordered](yTrue, yPred []bool, groups []G, g G, label bool) float64 {
	var n, pos int
	for i, v := range groups {
		if v != g || yTrue[i] != label {
			continue
		}
		n++
		if yPred[i] {
			pos++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(pos) / float64(n)
}

func trueNegativeRate[G cmp.Ordered](yTrue, yPred []bool, groups []G, g G) float64 {
	var n int
	for i, v := range groups {
		if v == g && !yTrue[i] {
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return 1 - conditionalRate(yTrue, yPred, groups, g, false)
}

func abs(x float64) float64 {
	return math.Abs(x)
}
