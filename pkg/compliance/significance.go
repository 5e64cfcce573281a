package compliance

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Interval is a confidence interval for a proportion.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Wilson returns the Wilson score interval for pos successes out of n trials.
// An empty sample yields [0, 1].
func Wilson(pos, n int, confidence float64) Interval {
	if n == 0 {
		return Interval{Lower: 0, Upper: 1}
	}

	z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
	nf := float64(n)
	p := float64(pos) / nf
	z2 := z * z

	denom := 1 + z2/nf
	center := (p + z2/(2*nf)) / denom
	half := z * math.Sqrt(p*(1-p)/nf+z2/(4*nf*nf)) / denom

	return Interval{
		Lower: math.Max(0, center-half),
		Upper: math.Min(1, center+half),
	}
}

// independence runs Pearson's chi-square test on the groups x outcome
// contingency table. Degenerate tables (one group, or an outcome column
// with no observations) return a statistic of 0 and p = 1.
func independence(groups []groupRate) (chi2, p float64) {
	if len(groups) < 2 {
		return 0, 1
	}

	var total, positives int
	for _, g := range groups {
		total += g.n
		positives += g.pos
	}
	negatives := total - positives
	if positives == 0 || negatives == 0 {
		return 0, 1
	}

	for _, g := range groups {
		expPos := float64(g.n) * float64(positives) / float64(total)
		expNeg := float64(g.n) * float64(negatives) / float64(total)

		dPos := float64(g.pos) - expPos
		dNeg := float64(g.n-g.pos) - expNeg
		chi2 += dPos*dPos/expPos + dNeg*dNeg/expNeg
	}

	dist := distuv.ChiSquared{K: float64(len(groups) - 1)}
	return chi2, dist.Survival(chi2)
}
