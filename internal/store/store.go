// Package store keeps a local history of generated reports in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a report id has no row.
var ErrNotFound = errors.New("report not found")

const maxListLimit = 500

// ReportRecord is a stored report row. Body holds the full Markdown
// document; list queries leave it empty.
type ReportRecord struct {
	ID           string
	MachineLabel string
	Hostname     string
	GeneratedAt  time.Time
	Path         string
	Domains      []string
	IncludeAll   bool
	Detailed     bool
	SizeBytes    int64
	Body         string
}

// Filter holds optional query parameters for listing reports.
type Filter struct {
	Hostname string
	Limit    int
	Offset   int
}

// Store provides report history persistence.
type Store struct {
	db *sql.DB
}

// New opens the SQLite database at path and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveReport inserts a report row.
func (s *Store) SaveReport(ctx context.Context, rec *ReportRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reports (id, machine_label, hostname, generated_at, path, domains, include_all, detailed, size_bytes, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.MachineLabel,
		rec.Hostname,
		rec.GeneratedAt.UTC().Format(time.RFC3339),
		rec.Path,
		strings.Join(rec.Domains, ","),
		boolToInt(rec.IncludeAll),
		boolToInt(rec.Detailed),
		rec.SizeBytes,
		rec.Body,
	)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// GetReport retrieves a full report row by id.
func (s *Store) GetReport(ctx context.Context, id string) (*ReportRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, machine_label, hostname, generated_at, path, domains, include_all, detailed, size_bytes, body
		 FROM reports WHERE id = ?`, id)

	rec, err := scanReport(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

// ListReports returns report summaries matching the filter, newest
// first. Bodies are not loaded.
func (s *Store) ListReports(ctx context.Context, f Filter) ([]ReportRecord, error) {
	limit := f.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, machine_label, hostname, generated_at, path, domains, include_all, detailed, size_bytes, ''
		FROM reports`
	var args []any
	if f.Hostname != "" {
		query += " WHERE hostname = ?"
		args = append(args, f.Hostname)
	}
	query += " ORDER BY generated_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var records []ReportRecord
	for rows.Next() {
		rec, err := scanReport(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// CountReports returns the number of stored reports.
func (s *Store) CountReports(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return n, nil
}

// PurgeBefore deletes reports generated before the cutoff and returns
// how many rows went away.
func (s *Store) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM reports WHERE generated_at < ?`,
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("purge reports: %w", err)
	}
	return result.RowsAffected()
}

func scanReport(scan func(dest ...any) error) (*ReportRecord, error) {
	var rec ReportRecord
	var generatedAt, domains string
	var includeAll, detailed int
	err := scan(&rec.ID, &rec.MachineLabel, &rec.Hostname, &generatedAt, &rec.Path,
		&domains, &includeAll, &detailed, &rec.SizeBytes, &rec.Body)
	if err != nil {
		return nil, err
	}

	rec.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)
	if domains != "" {
		rec.Domains = strings.Split(domains, ",")
	}
	rec.IncludeAll = includeAll != 0
	rec.Detailed = detailed != 0

	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
