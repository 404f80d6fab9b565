package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/pem-portal-api/internal/models"
)

// LedgerRepository persists sessions and their append-only point event log.
type LedgerRepository struct {
	db *sqlx.DB
}

// NewLedgerRepository constructs a new repository.
func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// CreateSession inserts a session row.
func (r *LedgerRepository) CreateSession(ctx context.Context, session *models.LedgerSession) error {
	query := `INSERT INTO ledger_sessions (id, owner_id, created_at, ended_at)
VALUES (:id, :owner_id, :created_at, :ended_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create ledger session: %w", err)
	}
	return nil
}

// GetSession returns the session or nil when it does not exist.
func (r *LedgerRepository) GetSession(ctx context.Context, id string) (*models.LedgerSession, error) {
	var session models.LedgerSession
	err := r.db.GetContext(ctx, &session, `SELECT id, owner_id, created_at, ended_at FROM ledger_sessions WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger session: %w", err)
	}
	return &session, nil
}

// EndSession stamps ended_at once; ending an ended session is a no-op.
func (r *LedgerRepository) EndSession(ctx context.Context, id string, endedAt time.Time) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE ledger_sessions SET ended_at = $2 WHERE id = $1 AND ended_at IS NULL`, id, endedAt); err != nil {
		return fmt.Errorf("end ledger session: %w", err)
	}
	return nil
}

// AppendEvent inserts one point event.
func (r *LedgerRepository) AppendEvent(ctx context.Context, event *models.PointEvent) error {
	query := `INSERT INTO point_events (id, session_id, seq, recorded_at, skill, interaction_type, behavior, target_skill, polarity, points)
VALUES (:id, :session_id, :seq, :recorded_at, :skill, :interaction_type, :behavior, :target_skill, :polarity, :points)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("append point event: %w", err)
	}
	return nil
}

// ListEvents returns a session's events in insertion order.
func (r *LedgerRepository) ListEvents(ctx context.Context, sessionID string) ([]models.PointEvent, error) {
	query := `SELECT id, session_id, seq, recorded_at, skill, interaction_type, behavior, target_skill, polarity, points
FROM point_events WHERE session_id = $1 ORDER BY seq ASC`
	var events []models.PointEvent
	if err := r.db.SelectContext(ctx, &events, query, sessionID); err != nil {
		return nil, fmt.Errorf("list point events: %w", err)
	}
	return events, nil
}

// DeleteEvents removes every event of a session.
func (r *LedgerRepository) DeleteEvents(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM point_events WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("delete point events: %w", err)
	}
	return nil
}

// TotalPoints sums the persisted log for a session.
func (r *LedgerRepository) TotalPoints(ctx context.Context, sessionID string) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(points), 0) FROM point_events WHERE session_id = $1`, sessionID); err != nil {
		return 0, fmt.Errorf("sum point events: %w", err)
	}
	return total, nil
}
