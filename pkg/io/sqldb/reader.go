// Package sqldb loads datasets from SQL query results.
package sqldb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	fio "github.com/hed1ad/gofairml/pkg/io"
)

// Reader runs one query and returns its result set as a table.
type Reader struct {
	db    *sqlx.DB
	ctx   context.Context
	query string
	args  []any
	owned bool
}

// Open connects with the given driver and DSN. The caller must have
// registered the driver, e.g. by importing github.com/lib/pq.
func Open(ctx context.Context, driver, dsn, query string, args ...any) (*Reader, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "connect %s", driver)
	}
	r := NewReader(ctx, db, query, args...)
	r.owned = true
	return r, nil
}

// NewReader wraps an existing connection pool. Close does not close db.
func NewReader(ctx context.Context, db *sqlx.DB, query string, args ...any) *Reader {
	return &Reader{
		db:    db,
		ctx:   ctx,
		query: query,
		args:  args,
	}
}

// Read executes the query.
func (r *Reader) Read() (*fio.Table, error) {
	rows, err := r.db.QueryxContext(r.ctx, r.query, r.args...)
	if err != nil {
		return nil, errors.Wrap(err, "query dataset")
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "read columns")
	}

	var records [][]any
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, errors.Wrap(err, "scan row")
		}
		records = append(records, values)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate rows")
	}

	return fromRecords(columns, records)
}

// Close releases the connection pool when the reader opened it.
func (r *Reader) Close() error {
	if r.owned && r.db != nil {
		return r.db.Close()
	}
	return nil
}

func fromRecords(columns []string, records [][]any) (*fio.Table, error) {
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(rec))
		for j, v := range rec {
			row[j] = cellString(v)
		}
		rows[i] = row
	}
	return fio.NewTable(columns, rows)
}

// cellString converts a driver value to its table representation.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
