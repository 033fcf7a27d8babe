// Package sqlsource runs the fixed review query against a relational database.
package sqlsource

import (
	"context"
	"fmt"
	"time"

	"revreview/domain/report"
	"revreview/internal"
	"revreview/internal/errors"

	"github.com/jmoiron/sqlx"
)

// ConnectFunc opens and verifies a database handle
type ConnectFunc func(ctx context.Context, driverName, dsn string) (*sqlx.DB, error)

// Source fetches the report rows. Each Fetch opens its own connection and
// closes it before returning.
type Source struct {
	driverName string
	dsn        string
	query      string
	connect    ConnectFunc
	logger     *internal.Logger
}

// NewSource creates a source that runs query over driverName/dsn
func NewSource(driverName, dsn, query string, logger *internal.Logger) *Source {
	return &Source{
		driverName: driverName,
		dsn:        dsn,
		query:      query,
		connect:    sqlx.ConnectContext,
		logger:     logger,
	}
}

// WithConnect replaces the connection opener
func (s *Source) WithConnect(connect ConnectFunc) *Source {
	s.connect = connect
	return s
}

// Fetch connects, runs the query and returns the full result set. Either all
// rows are returned or an error; partial results are discarded.
func (s *Source) Fetch(ctx context.Context) (*report.Result, error) {
	start := time.Now()
	db, err := s.connect(ctx, s.driverName, s.dsn)
	if err != nil {
		return nil, errors.Connection(err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			s.logger.Warn("[Source] closing connection: %v", cerr)
		}
	}()
	s.logger.Debug("[Source] connected via %s in %s", s.driverName, time.Since(start).Round(time.Millisecond))
	s.logger.Trace("[Source] running query:\n%s", s.query)

	result, err := s.runQuery(ctx, db)
	if err != nil {
		return nil, errors.Query(err)
	}

	s.logger.Info("[Source] fetched %d rows (%d columns) in %s",
		len(result.Rows), len(result.Columns), time.Since(start).Round(time.Millisecond))
	return result, nil
}

func (s *Source) runQuery(ctx context.Context, db *sqlx.DB) (*report.Result, error) {
	rows, err := db.QueryxContext(ctx, s.query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	result := &report.Result{Columns: columns, Rows: []report.Row{}}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("scanning row %d: %w", len(result.Rows)+1, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, report.Row(values))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
