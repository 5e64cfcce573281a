package sensitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"race", "race", 1.0},
		{"", "", 1.0},
		{"abc", "", 0.0},
		{"abcd", "bcda", 0.75},
		{"abc", "xyz", 0.0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-12, "%q vs %q", tt.a, tt.b)
	}
}

func TestScore(t *testing.T) {
	assert.Equal(t, 1.0, Score("Race", "race"))
	assert.Equal(t, 1.0, Score("marital_status ", "maritalstatus"))
	assert.Equal(t, 0.9, Score("age_group", "age"))
	assert.Less(t, Score("income", "nation"), 0.75)
}

func TestDetect(t *testing.T) {
	columns := []string{"id", "race", "Gender", "age_group", "income", "hired", "race"}

	tests := []struct {
		name string
		opts []Option
		want []Match
	}{
		{
			name: "default threshold",
			opts: nil,
			want: []Match{
				{Column: "race", Category: "race", Confidence: 1.0},
				{Column: "Gender", Category: "gender", Confidence: 1.0},
				{Column: "age_group", Category: "age", Confidence: 0.9},
			},
		},
		{
			name: "strict threshold drops substring matches",
			opts: []Option{WithThreshold(0.95)},
			want: []Match{
				{Column: "race", Category: "race", Confidence: 1.0},
				{Column: "Gender", Category: "gender", Confidence: 1.0},
			},
		},
		{
			name: "custom categories",
			opts: []Option{WithCategories([]Category{{Name: "income", Keywords: []string{"income"}}})},
			want: []Match{
				{Column: "income", Category: "income", Confidence: 1.0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.opts...).Detect(columns)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectNothing(t *testing.T) {
	assert.Empty(t, New().Detect([]string{"feature", "target", "score"}))
}
