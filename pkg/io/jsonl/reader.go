// Package jsonl reads datasets stored as JSON records and writes analysis
// results as JSON lines.
package jsonl

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	fio "github.com/hed1ad/gofairml/pkg/io"
)

// Reader reads either a JSON array of objects or one object per line.
// Columns are ordered by first appearance; missing keys become empty cells.
type Reader struct {
	src    io.Reader
	closer io.Closer
}

// NewReader opens a JSON or JSON-lines file.
func NewReader(filename string) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	return &Reader{src: file, closer: file}, nil
}

// FromReader wraps an already open stream.
func FromReader(src io.Reader) *Reader {
	return &Reader{src: src}
}

// Read parses all records into a table.
func (r *Reader) Read() (*fio.Table, error) {
	raw, err := io.ReadAll(r.src)
	if err != nil {
		return nil, errors.Wrap(err, "read json")
	}

	var records []gjson.Result
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if !gjson.ValidBytes(trimmed) {
			return nil, errors.New("invalid json array")
		}
		records = gjson.ParseBytes(trimmed).Array()
	} else {
		sc := bufio.NewScanner(bytes.NewReader(trimmed))
		sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		line := 0
		for sc.Scan() {
			line++
			text := bytes.TrimSpace(sc.Bytes())
			if len(text) == 0 {
				continue
			}
			if !gjson.ValidBytes(text) {
				return nil, errors.Errorf("invalid json on line %d", line)
			}
			records = append(records, gjson.ParseBytes(text))
		}
		if err := sc.Err(); err != nil {
			return nil, errors.Wrap(err, "scan json lines")
		}
	}

	if len(records) == 0 {
		return nil, errors.New("no json records")
	}

	var headers []string
	seen := make(map[string]int)
	cells := make([]map[string]string, len(records))

	for i, rec := range records {
		if !rec.IsObject() {
			return nil, errors.Errorf("record %d is not an object", i)
		}
		row := make(map[string]string)
		rec.ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			if _, ok := seen[k]; !ok {
				seen[k] = len(headers)
				headers = append(headers, k)
			}
			row[k] = cellString(value)
			return true
		})
		cells[i] = row
	}

	rows := make([][]string, len(cells))
	for i, m := range cells {
		row := make([]string, len(headers))
		for j, h := range headers {
			row[j] = m[h]
		}
		rows[i] = row
	}

	return fio.NewTable(headers, rows)
}

// cellString renders a JSON value the way a CSV cell would hold it.
func cellString(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.True:
		return "1"
	case gjson.False:
		return "0"
	case gjson.Number:
		return v.Raw
	default:
		return v.String()
	}
}

// Close releases resources.
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// ReadFile opens, reads and closes a JSON dataset.
func ReadFile(filename string) (*fio.Table, error) {
	r, err := NewReader(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return r.Read()
}
