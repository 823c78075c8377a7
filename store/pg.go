// Package store stages admission records in PostgreSQL and exports the
// transformed analysis frame as Parquet. The Session is the single
// data-source handle for a run: opened once at start, closed once at
// the end, including on error.
package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"losreport/dataset"
)

//go:embed sql/schema.sql
var schema string

// Session owns the connection pool for one report run.
type Session struct {
	pool *pgxpool.Pool
}

// Open connects, pings, and ensures the staging schema exists.
func Open(ctx context.Context, connStr string) (*Session, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection: %w", err)
	}
	poolConfig.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Session{pool: pool}, nil
}

// Close releases the pool. Safe to call more than once.
func (s *Session) Close() {
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}
}

// LoadAdmissions bulk-inserts records via COPY and returns the row
// count written.
func (s *Session) LoadAdmissions(ctx context.Context, recs []dataset.Record) (int64, error) {
	copied, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"admissions"},
		[]string{"type_of_admission", "illness_severity", "bed_grade",
			"patient_visitors", "available_extra_rooms", "stay_days"},
		pgx.CopyFromSlice(len(recs), func(i int) ([]any, error) {
			r := recs[i]
			return []any{
				r.Admission.String(),
				r.Severity.String(),
				r.BedGrade,
				r.Visitors,
				r.AvailableRooms,
				r.Stay.String(),
			}, nil
		}),
	)
	if err != nil {
		return copied, fmt.Errorf("copy admissions: %w", err)
	}
	return copied, nil
}

// ReadAdmissions reads back all staged records in insertion order,
// re-validating categorical values through the same parsers used at
// CSV ingestion.
func (s *Session) ReadAdmissions(ctx context.Context) ([]dataset.Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT type_of_admission, illness_severity, bed_grade,
		       patient_visitors, available_extra_rooms, stay_days
		FROM admissions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query admissions: %w", err)
	}
	defer rows.Close()

	var recs []dataset.Record
	for rows.Next() {
		var (
			admission, severity, stay string
			bedGrade                  *float64
			visitors, rooms           int
		)
		if err := rows.Scan(&admission, &severity, &bedGrade, &visitors, &rooms, &stay); err != nil {
			return nil, fmt.Errorf("scan admission: %w", err)
		}

		var rec dataset.Record
		if rec.Admission, err = dataset.ParseAdmissionType(admission); err != nil {
			return nil, fmt.Errorf("row %d: %w", len(recs)+1, err)
		}
		if rec.Severity, err = dataset.ParseSeverity(severity); err != nil {
			return nil, fmt.Errorf("row %d: %w", len(recs)+1, err)
		}
		if rec.Stay, err = dataset.ParseStayBucket(stay); err != nil {
			return nil, fmt.Errorf("row %d: %w", len(recs)+1, err)
		}
		rec.BedGrade = bedGrade
		rec.Visitors = visitors
		rec.AvailableRooms = rooms
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read admissions: %w", err)
	}
	return recs, nil
}

// CountAdmissions returns the staged row count.
func (s *Session) CountAdmissions(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM admissions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count admissions: %w", err)
	}
	return n, nil
}
