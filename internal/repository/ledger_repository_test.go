package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pem-portal-api/internal/models"
)

func newLedgerRepoMock(t *testing.T) (*LedgerRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
	}
	return NewLedgerRepository(sqlxDB), mock, cleanup
}

func TestLedgerRepositoryCreateSession(t *testing.T) {
	repo, mock, cleanup := newLedgerRepoMock(t)
	defer cleanup()

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ledger_sessions")).
		WithArgs("sess-1", "staff-1", created, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateSession(context.Background(), &models.LedgerSession{ID: "sess-1", OwnerID: "staff-1", CreatedAt: created})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepositoryGetSessionMissing(t *testing.T) {
	repo, mock, cleanup := newLedgerRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, owner_id, created_at, ended_at FROM ledger_sessions")).
		WithArgs("sess-9").
		WillReturnError(sql.ErrNoRows)

	session, err := repo.GetSession(context.Background(), "sess-9")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestLedgerRepositoryGetSession(t *testing.T) {
	repo, mock, cleanup := newLedgerRepoMock(t)
	defer cleanup()

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "owner_id", "created_at", "ended_at"}).
		AddRow("sess-1", "staff-1", created, nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM ledger_sessions WHERE id = $1")).
		WithArgs("sess-1").
		WillReturnRows(rows)

	session, err := repo.GetSession(context.Background(), "sess-1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "staff-1", session.OwnerID)
	assert.Nil(t, session.EndedAt)
}

func TestLedgerRepositoryAppendEvent(t *testing.T) {
	repo, mock, cleanup := newLedgerRepoMock(t)
	defer cleanup()

	recorded := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	event := &models.PointEvent{
		ID:              "evt-1",
		SessionID:       "sess-1",
		Sequence:        1,
		RecordedAt:      recorded,
		Skill:           models.SkillSelfControl,
		InteractionType: models.InteractionEffectivePraise,
		Behavior:        "took a deep breath",
		TargetSkill:     true,
		Polarity:        models.PolarityPositive,
		Points:          100,
	}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO point_events")).
		WithArgs("evt-1", "sess-1", 1, recorded, "self_control", "effective_praise", "took a deep breath", true, "positive", 100).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AppendEvent(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepositoryAppendEventError(t *testing.T) {
	repo, mock, cleanup := newLedgerRepoMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO point_events")).
		WillReturnError(errors.New("boom"))

	err := repo.AppendEvent(context.Background(), &models.PointEvent{ID: "evt-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "append point event")
}

func TestLedgerRepositoryListEvents(t *testing.T) {
	repo, mock, cleanup := newLedgerRepoMock(t)
	defer cleanup()

	recorded := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "session_id", "seq", "recorded_at", "skill", "interaction_type", "behavior", "target_skill", "polarity", "points"}).
		AddRow("evt-1", "sess-1", 1, recorded, "self_control", "effective_praise", "calm voice", true, "positive", 100).
		AddRow("evt-2", "sess-1", 2, recorded, "task_completion", "corrective_teaching", "left chores", false, "negative", -100)
	mock.ExpectQuery(regexp.QuoteMeta("FROM point_events WHERE session_id = $1 ORDER BY seq ASC")).
		WithArgs("sess-1").
		WillReturnRows(rows)

	events, err := repo.ListEvents(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.SkillSelfControl, events[0].Skill)
	assert.Equal(t, -100, events[1].Points)
	assert.Equal(t, models.PolarityNegative, events[1].Polarity)
}

func TestLedgerRepositoryDeleteAndEnd(t *testing.T) {
	repo, mock, cleanup := newLedgerRepoMock(t)
	defer cleanup()

	ended := time.Date(2026, 1, 2, 5, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM point_events WHERE session_id = $1")).
		WithArgs("sess-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE ledger_sessions SET ended_at = $2 WHERE id = $1 AND ended_at IS NULL")).
		WithArgs("sess-1", ended).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteEvents(context.Background(), "sess-1"))
	require.NoError(t, repo.EndSession(context.Background(), "sess-1", ended))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepositoryTotalPoints(t *testing.T) {
	repo, mock, cleanup := newLedgerRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(points), 0) FROM point_events")).
		WithArgs("sess-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(-150))

	total, err := repo.TotalPoints(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, -150, total)
}
