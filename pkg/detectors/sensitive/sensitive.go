// Package sensitive suggests protected-attribute columns from column names.
package sensitive

import (
	"strings"
)

// Category groups the keywords that identify one kind of protected attribute.
type Category struct {
	Name     string
	Keywords []string
}

// DefaultCategories are checked in order; the first matching category wins.
var DefaultCategories = []Category{
	{Name: "race", Keywords: []string{"race", "ethnicity", "ethnic", "raca", "etnia", "color"}},
	{Name: "gender", Keywords: []string{"gender", "sex", "genero", "sexo", "male", "female"}},
	{Name: "age", Keywords: []string{"age", "birth", "birthday", "anos", "idade", "dob"}},
	{Name: "religion", Keywords: []string{"religion", "religious", "faith", "religiao"}},
	{Name: "disability", Keywords: []string{"disability", "disabled", "handicap", "deficiencia"}},
	{Name: "nationality", Keywords: []string{"nationality", "national", "country", "nation"}},
	{Name: "marital", Keywords: []string{"marital", "married", "marriage", "civil"}},
	{Name: "veteran", Keywords: []string{"veteran", "military", "service"}},
	{Name: "orientation", Keywords: []string{"orientation", "sexual", "lgbt"}},
}

// substringScore is the confidence assigned when a keyword appears verbatim
// inside a column name.
const substringScore = 0.9

// Match is a column classified as a protected attribute.
type Match struct {
	Column     string  `json:"column"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Detector classifies column names by fuzzy keyword matching.
type Detector struct {
	threshold  float64
	categories []Category
}

// Option configures a Detector.
type Option func(*Detector)

// WithThreshold sets the minimum confidence for a match.
func WithThreshold(t float64) Option {
	return func(d *Detector) {
		d.threshold = t
	}
}

// WithCategories replaces the keyword categories.
func WithCategories(c []Category) Option {
	return func(d *Detector) {
		d.categories = c
	}
}

// New creates a Detector with the given options.
func New(opts ...Option) *Detector {
	d := &Detector{
		threshold:  0.75,
		categories: DefaultCategories,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Detect returns at most one match per column, in column order.
func (d *Detector) Detect(columns []string) []Match {
	var out []Match
	seen := make(map[string]bool, len(columns))

	for _, column := range columns {
		if seen[column] {
			continue
		}
		if m, ok := d.classify(column); ok {
			out = append(out, m)
			seen[column] = true
		}
	}
	return out
}

// Score returns the confidence that column refers to keyword.
func Score(column, keyword string) float64 {
	col := strings.ToLower(strings.TrimSpace(column))
	score := Similarity(normalize(col), normalize(keyword))
	if strings.Contains(col, keyword) {
		score = max(score, substringScore)
	}
	return score
}

func (d *Detector) classify(column string) (Match, bool) {
	for _, cat := range d.categories {
		for _, kw := range cat.Keywords {
			if s := Score(column, kw); s >= d.threshold {
				return Match{Column: column, Category: cat.Name, Confidence: s}, true
			}
		}
	}
	return Match{}, false
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", " ", "").Replace(s)
}

// Similarity returns the Ratcliff/Obershelp ratio 2*M/T, where M is the
// number of matching characters found by recursively taking the longest
// common substring and T is the combined length.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matching(ra, rb)) / float64(total)
}

func matching(a, b []rune) int {
	i, j, n := longestCommon(a, b)
	if n == 0 {
		return 0
	}
	return n + matching(a[:i], b[:j]) + matching(a[i+n:], b[j+n:])
}

// longestCommon finds the longest common substring, preferring the earliest
// start in a and then in b.
func longestCommon(a, b []rune) (bestI, bestJ, bestN int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				k := cur[j]
				if k > bestN || (k == bestN && i-k < bestI) {
					bestI, bestJ, bestN = i-k, j-k, k
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return bestI, bestJ, bestN
}
