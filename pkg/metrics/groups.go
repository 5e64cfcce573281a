package metrics

import (
	"cmp"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// CheckLengths verifies that labels, predictions and groups are aligned.
func CheckLengths[G cmp.Ordered](yTrue, yPred []bool, groups []G) error {
	return checkLengths(len(yTrue), len(yPred), len(groups))
}

// ValidateGroups checks that a sensitive attribute has at least two groups,
// and exactly two unless allowMulticlass is set.
func ValidateGroups[G cmp.Ordered](groups []G, allowMulticlass bool) error {
	n := len(Unique(groups))
	if n < 2 {
		return errors.Wrapf(ErrCardinality, "need at least 2 groups, found %d", n)
	}
	if !allowMulticlass && n > 2 {
		return errors.Wrapf(ErrCardinality, "binary sensitive attribute required, found %d groups", n)
	}
	return nil
}

// GroupStats summarizes a numeric column within one group.
type GroupStats[G cmp.Ordered] struct {
	Group G
	Count int
	Mean  float64
	// Std is the sample standard deviation; NaN for single-row groups.
	Std float64
	Min float64
	Max float64
}

// GroupStatistics computes per-group summary statistics of values, ordered by
// group.
func GroupStatistics[G cmp.Ordered](values []float64, groups []G) ([]GroupStats[G], error) {
	if err := checkLengths(len(values), len(groups)); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrEmpty
	}

	buckets := make(map[G][]float64)
	for i, g := range groups {
		buckets[g] = append(buckets[g], values[i])
	}

	uniq := Unique(groups)
	out := make([]GroupStats[G], 0, len(uniq))
	for _, g := range uniq {
		data := stats.Float64Data(buckets[g])

		mean, err := data.Mean()
		if err != nil {
			return nil, errors.Wrapf(err, "mean of group %v", g)
		}
		lo, err := data.Min()
		if err != nil {
			return nil, errors.Wrapf(err, "min of group %v", g)
		}
		hi, err := data.Max()
		if err != nil {
			return nil, errors.Wrapf(err, "max of group %v", g)
		}

		std := nan
		if len(data) > 1 {
			if std, err = stats.StandardDeviationSample(data); err != nil {
				return nil, errors.Wrapf(err, "std of group %v", g)
			}
		}

		out = append(out, GroupStats[G]{
			Group: g,
			Count: len(data),
			Mean:  mean,
			Std:   std,
			Min:   lo,
			Max:   hi,
		})
	}
	return out, nil
}

// Confusion is a 2x2 confusion matrix.
type Confusion struct {
	TP, FP, TN, FN int
}

// Total returns the number of rows counted.
func (c Confusion) Total() int {
	return c.TP + c.FP + c.TN + c.FN
}

// TPR returns the true positive rate, or 0 without positive rows.
func (c Confusion) TPR() float64 {
	return ratio(c.TP, c.TP+c.FN)
}

// FPR returns the false positive rate, or 0 without negative rows.
func (c Confusion) FPR() float64 {
	return ratio(c.FP, c.FP+c.TN)
}

// SelectionRate returns the share of positive predictions.
func (c Confusion) SelectionRate() float64 {
	return ratio(c.TP+c.FP, c.Total())
}

// Accuracy returns the share of correct predictions.
func (c Confusion) Accuracy() float64 {
	return ratio(c.TP+c.TN, c.Total())
}

// ConfusionByGroup computes a confusion matrix for each group.
func ConfusionByGroup[G cmp.Ordered](yTrue, yPred []bool, groups []G) (map[G]Confusion, error) {
	if err := checkLengths(len(yTrue), len(yPred), len(groups)); err != nil {
		return nil, err
	}

	out := make(map[G]Confusion)
	for i, g := range groups {
		c := out[g]
		switch {
		case yTrue[i] && yPred[i]:
			c.TP++
		case !yTrue[i] && yPred[i]:
			c.FP++
		case !yTrue[i] && !yPred[i]:
			c.TN++
		default:
			c.FN++
		}
		out[g] = c
	}
	return out, nil
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
