package io

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable(
		[]string{"gender", "score", "hired"},
		[][]string{
			{"A", "0.5", "1"},
			{"B", "1.5", "no"},
			{"A", "2", "TRUE"},
		},
	)
	require.NoError(t, err)
	return tbl
}

func TestNewTable(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		rows    [][]string
		wantErr bool
	}{
		{name: "valid", headers: []string{"a", "b"}, rows: [][]string{{"1", "2"}}},
		{name: "no rows", headers: []string{"a"}, rows: nil},
		{name: "duplicate header", headers: []string{"a", "a"}, rows: nil, wantErr: true},
		{name: "ragged row", headers: []string{"a", "b"}, rows: [][]string{{"1"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.headers, tt.rows)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedTable)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTableAccess(t *testing.T) {
	tbl := sample(t)

	assert.Equal(t, []string{"gender", "score", "hired"}, tbl.Headers())
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, 3, tbl.Width())
	assert.True(t, tbl.HasColumn("score"))
	assert.False(t, tbl.HasColumn("race"))

	col, err := tbl.Column("gender")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "A"}, col)

	col[0] = "mutated"
	again, _ := tbl.Column("gender")
	assert.Equal(t, "A", again[0])

	_, err = tbl.Column("race")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestFloats(t *testing.T) {
	tbl := sample(t)

	nums, ok, err := tbl.Floats("score")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []float64{0.5, 1.5, 2}, nums)

	_, ok, err = tbl.Floats("gender")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = tbl.Floats("race")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestFloatsRejectsNaN(t *testing.T) {
	tbl, err := NewTable([]string{"group", "score"}, [][]string{
		{"1", "Inf"},
		{"NaN", "-Inf"},
	})
	require.NoError(t, err)

	_, ok, err := tbl.Floats("group")
	require.NoError(t, err)
	assert.False(t, ok)

	nums, ok, err := tbl.Floats("score")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, math.IsInf(nums[0], 1))
	assert.True(t, math.IsInf(nums[1], -1))
}

func TestLabels(t *testing.T) {
	tbl := sample(t)

	labels, err := tbl.Labels("hired")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, labels)

	_, err = tbl.Labels("score")
	assert.ErrorIs(t, err, ErrNotBinary)
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{in: "1", want: true},
		{in: "0", want: false},
		{in: "1.0", want: true},
		{in: " Yes ", want: true},
		{in: "n", want: false},
		{in: "False", want: false},
		{in: "2", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseLabel(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrNotBinary, "%q", tt.in)
			continue
		}
		require.NoError(t, err, "%q", tt.in)
		assert.Equal(t, tt.want, got, "%q", tt.in)
	}
}

func TestSelectAndClone(t *testing.T) {
	tbl := sample(t)

	sel, err := tbl.Select("hired", "gender")
	require.NoError(t, err)
	assert.Equal(t, []string{"hired", "gender"}, sel.Headers())
	assert.Equal(t, 3, sel.Len())

	_, err = tbl.Select("race")
	assert.ErrorIs(t, err, ErrColumnNotFound)

	clone := tbl.Clone()
	clone.rows[0][0] = "Z"
	col, _ := tbl.Column("gender")
	assert.Equal(t, "A", col[0])
}

func TestFromColumns(t *testing.T) {
	tbl, err := FromColumns([]string{"x", "y"}, map[string][]string{
		"x": {"1", "2"},
		"y": {"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())

	_, err = FromColumns([]string{"x", "y"}, map[string][]string{
		"x": {"1", "2"},
		"y": {"a"},
	})
	assert.ErrorIs(t, err, ErrMalformedTable)

	_, err = FromColumns([]string{"x"}, map[string][]string{})
	assert.ErrorIs(t, err, ErrColumnNotFound)
}
