package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS requests (
			request_id TEXT PRIMARY KEY,
			endpoint TEXT NOT NULL,
			session_id TEXT,
			pdf_url TEXT,
			question_count INTEGER NOT NULL DEFAULT 0,
			latency_ms INTEGER NOT NULL DEFAULT 0,
			success INTEGER NOT NULL,
			error TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_endpoint ON requests(endpoint, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// RecordRequest inserts one audit record.
func (s *SQLiteStore) RecordRequest(ctx context.Context, rec *RequestRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO requests (request_id, endpoint, session_id, pdf_url, question_count, latency_ms, success, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RequestID, rec.Endpoint, rec.SessionID, rec.PDFURL,
		rec.QuestionCount, rec.LatencyMs, rec.Success, rec.Error, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}
	return nil
}

// Stats aggregates totals over the audit log.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByEndpoint: make(map[string]int64)}

	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0) FROM requests`)
	if err := row.Scan(&stats.TotalRequests, &stats.TotalFailures); err != nil {
		return nil, fmt.Errorf("failed to query totals: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT endpoint, COUNT(*) FROM requests GROUP BY endpoint`)
	if err != nil {
		return nil, fmt.Errorf("failed to query endpoints: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var endpoint string
		var count int64
		if err := rows.Scan(&endpoint, &count); err != nil {
			return nil, fmt.Errorf("failed to scan endpoint row: %w", err)
		}
		stats.ByEndpoint[endpoint] = count
	}
	return stats, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
