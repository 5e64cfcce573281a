package io

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrColumnNotFound is returned when a named column is absent from a table.
	ErrColumnNotFound = errors.New("column not found")
	// ErrNotBinary is returned when a label column holds values other than 0/1.
	ErrNotBinary = errors.New("labels must be binary (0 or 1)")
	// ErrMalformedTable is returned for duplicate headers or ragged rows.
	ErrMalformedTable = errors.New("malformed table")
)

// Table is an in-memory tabular dataset. Cells are kept as raw strings and
// converted on access.
type Table struct {
	headers []string
	rows    [][]string
	index   map[string]int
}

// NewTable builds a table from headers and rows. Every row must have exactly
// len(headers) cells.
func NewTable(headers []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, dup := index[h]; dup {
			return nil, errors.Wrapf(ErrMalformedTable, "duplicate column %q", h)
		}
		index[h] = i
	}

	for i, row := range rows {
		if len(row) != len(headers) {
			return nil, errors.Wrapf(ErrMalformedTable, "row %d has %d cells, want %d", i, len(row), len(headers))
		}
	}

	return &Table{
		headers: headers,
		rows:    rows,
		index:   index,
	}, nil
}

// FromColumns builds a table from named columns of equal length. Column order
// follows names.
func FromColumns(names []string, columns map[string][]string) (*Table, error) {
	n := -1
	for _, name := range names {
		col, ok := columns[name]
		if !ok {
			return nil, errors.Wrapf(ErrColumnNotFound, "%q", name)
		}
		if n >= 0 && len(col) != n {
			return nil, errors.Wrapf(ErrMalformedTable, "column %q has %d values, want %d", name, len(col), n)
		}
		n = len(col)
	}
	if n < 0 {
		n = 0
	}

	rows := make([][]string, n)
	for i := range rows {
		row := make([]string, len(names))
		for j, name := range names {
			row[j] = columns[name][i]
		}
		rows[i] = row
	}

	return NewTable(append([]string(nil), names...), rows)
}

// Headers returns the column names in order.
func (t *Table) Headers() []string {
	return append([]string(nil), t.headers...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.headers)
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the raw values of a column.
func (t *Table) Column(name string) ([]string, error) {
	idx, ok := t.index[name]
	if !ok {
		return nil, errors.Wrapf(ErrColumnNotFound, "%q", name)
	}

	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Floats parses a column as numbers. The boolean result is false when any
// cell is not numeric or is NaN, since NaN never equals itself and cannot
// serve as a group key.
func (t *Table) Floats(name string) ([]float64, bool, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, false, err
	}

	out := make([]float64, len(col))
	for i, v := range col {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) {
			return nil, false, nil
		}
		out[i] = f
	}
	return out, true, nil
}

// Labels parses a column as binary labels. Accepted spellings are 1/0,
// 1.0/0.0, true/false, yes/no and y/n, case-insensitively.
func (t *Table) Labels(name string) ([]bool, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}

	out := make([]bool, len(col))
	for i, v := range col {
		b, err := ParseLabel(v)
		if err != nil {
			return nil, errors.Wrapf(err, "column %q row %d", name, i)
		}
		out[i] = b
	}
	return out, nil
}

// ParseLabel converts a single cell to a binary label.
func ParseLabel(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "1.0", "true", "t", "yes", "y":
		return true, nil
	case "0", "0.0", "false", "f", "no", "n":
		return false, nil
	}
	return false, errors.Wrapf(ErrNotBinary, "found %q", v)
}

// Select returns a new table restricted to the named columns.
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make(map[string][]string, len(names))
	for _, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols[name] = col
	}
	return FromColumns(names, cols)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	rows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		rows[i] = append([]string(nil), row...)
	}

	index := make(map[string]int, len(t.index))
	for k, v := range t.index {
		index[k] = v
	}

	return &Table{
		headers: append([]string(nil), t.headers...),
		rows:    rows,
		index:   index,
	}
}
