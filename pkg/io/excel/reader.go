// Package excel reads tabular datasets from xlsx workbooks.
package excel

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	fio "github.com/hed1ad/gofairml/pkg/io"
)

// Reader reads one sheet of a workbook. The first row is the header.
type Reader struct {
	file  *excelize.File
	sheet string
}

// Option configures an Excel reader.
type Option func(*Reader)

// WithSheet selects the sheet to read. Defaults to the first sheet.
func WithSheet(name string) Option {
	return func(r *Reader) {
		r.sheet = name
	}
}

// NewReader opens a workbook from disk.
func NewReader(filename string, opts ...Option) (*Reader, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open workbook %s", filename)
	}
	return newReader(f, opts...), nil
}

// FromReader opens a workbook from a stream.
func FromReader(src io.Reader, opts ...Option) (*Reader, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	return newReader(f, opts...), nil
}

func newReader(f *excelize.File, opts ...Option) *Reader {
	r := &Reader{file: f}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read returns the selected sheet as a table. Short rows are padded with
// empty cells, since excelize trims trailing blanks.
func (r *Reader) Read() (*fio.Table, error) {
	sheet := r.sheet
	if sheet == "" {
		sheets := r.file.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := r.file.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %s", sheet)
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("sheet %s is empty", sheet)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		if len(row) > len(headers) {
			row = row[:len(headers)]
		}
		padded := make([]string, len(headers))
		copy(padded, row)
		data = append(data, padded)
	}

	return fio.NewTable(headers, data)
}

// Close releases resources.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ReadFile opens, reads and closes a workbook.
func ReadFile(filename string, opts ...Option) (*fio.Table, error) {
	r, err := NewReader(filename, opts...)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return r.Read()
}
