package dto

import (
	"time"

	"github.com/noah-isme/pem-portal-api/internal/models"
)

// SessionResponse pairs a session handle with its current ledger summary.
type SessionResponse struct {
	Session models.LedgerSession `json:"session"`
	Summary models.LedgerSummary `json:"summary"`
}

// AppendEventResponse returns the recorded event, the updated summary and any
// non-blocking advisory about the behaviour description.
type AppendEventResponse struct {
	Event           models.PointEvent    `json:"event"`
	Summary         models.LedgerSummary `json:"summary"`
	Advisory        string               `json:"advisory,omitempty"`
	JudgmentalTerms []string             `json:"judgmental_terms,omitempty"`
}

// PointCard is a point-in-time copy of a session used for exports.
type PointCard struct {
	Session models.LedgerSession `json:"session"`
	Events  []models.PointEvent  `json:"events"`
	Summary models.LedgerSummary `json:"summary"`
}

// MetricsSnapshot summarises process-level counters for admin views.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	LedgerEvents             uint64    `json:"ledger_events"`
	ActiveSessions           int       `json:"active_sessions"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

// AdminSessionsResponse lists active sessions with process metrics.
type AdminSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Metrics  MetricsSnapshot   `json:"metrics"`
}
