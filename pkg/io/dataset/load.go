// Package dataset opens tabular dataset files by extension.
package dataset

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	fio "github.com/hed1ad/gofairml/pkg/io"
	"github.com/hed1ad/gofairml/pkg/io/csv"
	"github.com/hed1ad/gofairml/pkg/io/excel"
	"github.com/hed1ad/gofairml/pkg/io/jsonl"
)

// ErrUnsupportedFormat is returned for file extensions with no reader.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Load reads a .csv, .tsv, .xlsx, .json or .jsonl file into a table.
func Load(path string) (*fio.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "dataset %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".tsv", ".txt":
		return csv.ReadFile(path)
	case ".xlsx":
		return excel.ReadFile(path)
	case ".json", ".jsonl", ".ndjson":
		return jsonl.ReadFile(path)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}
}
