// Package compliance implements the EEOC and ECOA four-fifths (80%) rule.
//
// Unlike the metrics package, these checks accept any number of groups: every
// group's rate is compared with the highest rate.
package compliance

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/pkg/errors"

	"github.com/hed1ad/gofairml/pkg/metrics"
)

// Threshold is the minimum acceptable ratio of a group's rate to the
// highest group rate.
const Threshold = 0.8

// ErrEmpty is returned when there are no observations to check.
var ErrEmpty = errors.New("no observations")

// EEOCResult is the outcome of an EEOC selection-rate check.
type EEOCResult struct {
	Compliant      bool                `json:"compliant"`
	ImpactRatio    float64             `json:"impact_ratio"`
	Threshold      float64             `json:"threshold"`
	SelectionRates map[string]float64  `json:"selection_rates"`
	Counts         map[string]int      `json:"counts"`
	Intervals      map[string]Interval `json:"intervals"`
	MaxRate        float64             `json:"max_rate"`
	MinRate        float64             `json:"min_rate"`
	FailingGroups  []string            `json:"failing_groups"`
	Regulation     string              `json:"regulation"`
	Description    string              `json:"description"`
}

// ECOAResult is the outcome of an ECOA approval-rate check.
type ECOAResult struct {
	Compliant           bool                `json:"compliant"`
	DisparateImpact     float64             `json:"disparate_impact"`
	Threshold           float64             `json:"threshold"`
	ApprovalRates       map[string]float64  `json:"approval_rates"`
	Counts              map[string]int      `json:"counts"`
	Intervals           map[string]Interval `json:"intervals"`
	RateDifferences     map[string]float64  `json:"rate_differences"`
	MaxRate             float64             `json:"max_rate"`
	MinRate             float64             `json:"min_rate"`
	DisadvantagedGroups []string            `json:"disadvantaged_groups"`
	ChiSquare           float64             `json:"chi_square"`
	PValue              float64             `json:"p_value"`
	Regulation          string              `json:"regulation"`
	Description         string              `json:"description"`
	Notes               string              `json:"notes"`
}

// CheckEEOC applies the EEOC 80% rule to hiring or selection outcomes.
// When no group has any selection the ratio is 1 and the check passes.
func CheckEEOC[G cmp.Ordered](selected []bool, groups []G) (*EEOCResult, error) {
	a, err := analyze(selected, groups)
	if err != nil {
		return nil, err
	}

	return &EEOCResult{
		Compliant:      a.compliant(),
		ImpactRatio:    a.ratio,
		Threshold:      Threshold,
		SelectionRates: a.rateMap(),
		Counts:         a.countMap(),
		Intervals:      a.intervals(),
		MaxRate:        a.max,
		MinRate:        a.min,
		FailingGroups:  a.below(),
		Regulation:     "EEOC 80% Rule",
		Description:    "Selection rate for any group should be at least 80% of the highest rate",
	}, nil
}

// CheckECOA applies the same four-fifths test to credit approvals. It also
// reports each group's gap to the highest-rate group and a chi-square test
// of independence between group and approval.
func CheckECOA[G cmp.Ordered](approved []bool, groups []G) (*ECOAResult, error) {
	a, err := analyze(approved, groups)
	if err != nil {
		return nil, err
	}

	top := a.top()
	diffs := make(map[string]float64, len(a.groups)-1)
	for _, g := range a.groups {
		if g.key == top.key {
			continue
		}
		diffs[fmt.Sprintf("%s_vs_%s", top.key, g.key)] = top.rate - g.rate
	}

	chi2, p := independence(a.groups)

	return &ECOAResult{
		Compliant:           a.compliant(),
		DisparateImpact:     a.ratio,
		Threshold:           Threshold,
		ApprovalRates:       a.rateMap(),
		Counts:              a.countMap(),
		Intervals:           a.intervals(),
		RateDifferences:     diffs,
		MaxRate:             a.max,
		MinRate:             a.min,
		DisadvantagedGroups: a.below(),
		ChiSquare:           chi2,
		PValue:              p,
		Regulation:          "ECOA (Equal Credit Opportunity Act)",
		Description:         "Prohibits discrimination in credit decisions based on protected characteristics",
		Notes:               "Uses disparate impact analysis with 80% rule as guideline",
	}, nil
}

type groupRate struct {
	key  string
	n    int
	pos  int
	rate float64
}

type analysis struct {
	groups []groupRate
	max    float64
	min    float64
	ratio  float64
}

func analyze[G cmp.Ordered](outcome []bool, groups []G) (*analysis, error) {
	if len(outcome) != len(groups) {
		return nil, errors.Wrapf(metrics.ErrLengthMismatch, "outcome=%d groups=%d", len(outcome), len(groups))
	}
	if len(outcome) == 0 {
		return nil, ErrEmpty
	}

	uniq := metrics.Unique(groups)
	index := make(map[G]int, len(uniq))
	rates := make([]groupRate, len(uniq))
	for i, g := range uniq {
		index[g] = i
		rates[i].key = fmt.Sprint(g)
	}

	for i, g := range groups {
		r := &rates[index[g]]
		r.n++
		if outcome[i] {
			r.pos++
		}
	}

	a := &analysis{groups: rates}
	for i := range rates {
		rates[i].rate = float64(rates[i].pos) / float64(rates[i].n)
		if i == 0 || rates[i].rate > a.max {
			a.max = rates[i].rate
		}
		if i == 0 || rates[i].rate < a.min {
			a.min = rates[i].rate
		}
	}

	if a.max == 0 {
		a.ratio = 1
	} else {
		a.ratio = a.min / a.max
	}
	return a, nil
}

func (a *analysis) compliant() bool {
	return a.ratio >= Threshold
}

// below lists every group under 80% of the highest rate, in group order.
func (a *analysis) below() []string {
	cutoff := Threshold * a.max
	out := []string{}
	for _, g := range a.groups {
		if g.rate < cutoff {
			out = append(out, g.key)
		}
	}
	return out
}

// top returns the first group holding the highest rate.
func (a *analysis) top() groupRate {
	i := slices.IndexFunc(a.groups, func(g groupRate) bool { return g.rate == a.max })
	return a.groups[i]
}

func (a *analysis) rateMap() map[string]float64 {
	out := make(map[string]float64, len(a.groups))
	for _, g := range a.groups {
		out[g.key] = g.rate
	}
	return out
}

func (a *analysis) countMap() map[string]int {
	out := make(map[string]int, len(a.groups))
	for _, g := range a.groups {
		out[g.key] = g.n
	}
	return out
}

func (a *analysis) intervals() map[string]Interval {
	out := make(map[string]Interval, len(a.groups))
	for _, g := range a.groups {
		out[g.key] = Wilson(g.pos, g.n, 0.95)
	}
	return out
}

// Groups returns the group keys of a result map in sorted order.
func Groups[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
