package jsonl

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	fio "github.com/hed1ad/gofairml/pkg/io"
)

// Writer appends results as one JSON object per line. Results without an ID
// or timestamp get a fresh UUID and the current time.
type Writer struct {
	mu     sync.Mutex
	enc    *json.Encoder
	closer io.Closer
	now    func() time.Time
}

// NewWriter opens filename for appending, creating parent directories.
func NewWriter(filename string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, errors.Wrap(err, "create output directory")
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}

	w := ToWriter(file)
	w.closer = file
	return w, nil
}

// ToWriter wraps an already open stream.
func ToWriter(dst io.Writer) *Writer {
	return &Writer{
		enc: json.NewEncoder(dst),
		now: time.Now,
	}
}

// Write outputs a single result.
func (w *Writer) Write(result fio.Result) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.write(result)
}

// WriteAll outputs multiple results in order.
func (w *Writer) WriteAll(results []fio.Result) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, r := range results {
		if err := w.write(r); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) write(result fio.Result) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if result.Timestamp.IsZero() {
		result.Timestamp = w.now().UTC()
	}
	return errors.Wrap(w.enc.Encode(result), "encode result")
}

// Close releases resources.
func (w *Writer) Close() error {
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}
