// Package csv provides delimited file reading for tabular datasets.
package csv

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	fio "github.com/hed1ad/gofairml/pkg/io"
)

// Reader reads datasets from delimited files.
type Reader struct {
	file      io.Closer
	reader    *csv.Reader
	hasHeader bool
	comma     rune
}

// Option configures a CSV reader.
type Option func(*Reader)

// WithHeader indicates the CSV has a header row.
func WithHeader(has bool) Option {
	return func(r *Reader) {
		r.hasHeader = has
	}
}

// WithDelimiter sets the field delimiter.
func WithDelimiter(c rune) Option {
	return func(r *Reader) {
		r.comma = c
	}
}

// NewReader opens a delimited file. Files ending in .tsv default to a tab
// delimiter.
func NewReader(filename string, opts ...Option) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(filename), ".tsv") {
		opts = append([]Option{WithDelimiter('\t')}, opts...)
	}

	r := FromReader(file, opts...)
	r.file = file
	return r, nil
}

// FromReader wraps an already open stream.
func FromReader(src io.Reader, opts ...Option) *Reader {
	r := &Reader{
		reader:    csv.NewReader(src),
		hasHeader: true,
		comma:     ',',
	}

	for _, opt := range opts {
		opt(r)
	}

	r.reader.Comma = r.comma
	r.reader.TrimLeadingSpace = true

	return r
}

// Read returns the whole file as a table. Without a header row, columns are
// named by their zero-based position.
func (r *Reader) Read() (*fio.Table, error) {
	records, err := r.reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(records) == 0 {
		return nil, errors.New("empty csv input")
	}

	var headers []string
	if r.hasHeader {
		headers = records[0]
		records = records[1:]
	} else {
		headers = make([]string, len(records[0]))
		for i := range headers {
			headers[i] = strconv.Itoa(i)
		}
	}

	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	return fio.NewTable(headers, records)
}

// Close releases resources.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ReadFile is a convenience wrapper that opens, reads and closes a file.
func ReadFile(filename string, opts ...Option) (*fio.Table, error) {
	r, err := NewReader(filename, opts...)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return r.Read()
}

