// Package store persists a request-audit log. Session state itself is never
// persisted; only per-request outcomes are recorded for the stats endpoint.
package store

import (
	"context"
	"time"
)

// RequestRecord is one handled request.
type RequestRecord struct {
	RequestID     string    `json:"request_id"`
	Endpoint      string    `json:"endpoint"`
	SessionID     string    `json:"session_id,omitempty"`
	PDFURL        string    `json:"pdf_url,omitempty"`
	QuestionCount int       `json:"question_count"`
	LatencyMs     int64     `json:"latency_ms"`
	Success       bool      `json:"success"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Stats aggregates the audit log.
type Stats struct {
	TotalRequests int64            `json:"total_requests"`
	TotalFailures int64            `json:"total_failures"`
	ByEndpoint    map[string]int64 `json:"by_endpoint"`
}

// Store is the audit log interface.
type Store interface {
	RecordRequest(ctx context.Context, rec *RequestRecord) error
	Stats(ctx context.Context) (*Stats, error)
	Close() error
}
