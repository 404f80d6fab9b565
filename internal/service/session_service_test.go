package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/pem-portal-api/internal/models"
	appErrors "github.com/noah-isme/pem-portal-api/pkg/errors"
)

type fakeLedgerStore struct {
	mu        sync.Mutex
	sessions  map[string]*models.LedgerSession
	events    map[string][]models.PointEvent
	appendErr error
	ended     []string
	deleted   []string
	// totalSkew is added to the summed log to simulate a drifted store.
	totalSkew int
}

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{
		sessions: make(map[string]*models.LedgerSession),
		events:   make(map[string][]models.PointEvent),
	}
}

func (f *fakeLedgerStore) CreateSession(ctx context.Context, session *models.LedgerSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeLedgerStore) GetSession(ctx context.Context, id string) (*models.LedgerSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (f *fakeLedgerStore) EndSession(ctx context.Context, id string, endedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if session, ok := f.sessions[id]; ok {
		session.EndedAt = &endedAt
	}
	f.ended = append(f.ended, id)
	return nil
}

func (f *fakeLedgerStore) AppendEvent(ctx context.Context, event *models.PointEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.events[event.SessionID] = append(f.events[event.SessionID], *event)
	return nil
}

func (f *fakeLedgerStore) ListEvents(ctx context.Context, sessionID string) ([]models.PointEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.PointEvent(nil), f.events[sessionID]...), nil
}

func (f *fakeLedgerStore) DeleteEvents(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.events, sessionID)
	f.deleted = append(f.deleted, sessionID)
	return nil
}

func (f *fakeLedgerStore) TotalPoints(ctx context.Context, sessionID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := f.totalSkew
	for _, event := range f.events[sessionID] {
		total += event.Points
	}
	return total, nil
}

func praise(skill models.Skill, target bool) AppendEventRequest {
	return AppendEventRequest{
		Skill:           string(skill),
		InteractionType: string(models.InteractionEffectivePraise),
		Behavior:        "followed the instruction right away",
		TargetSkill:     target,
		Polarity:        string(models.PolarityPositive),
	}
}

func correction(skill models.Skill, target bool, behavior string) AppendEventRequest {
	return AppendEventRequest{
		Skill:           string(skill),
		InteractionType: string(models.InteractionCorrectiveTeaching),
		Behavior:        behavior,
		TargetSkill:     target,
		Polarity:        string(models.PolarityNegative),
	}
}

func newTestSessionService(store ledgerStore, cfg SessionConfig) *SessionService {
	return NewSessionService(store, nil, zap.NewNop(), NewMetricsService(), cfg)
}

func TestSessionServiceAppendAndSummary(t *testing.T) {
	svc := newTestSessionService(nil, SessionConfig{})
	ctx := context.Background()

	created, err := svc.Create(ctx, Actor{})
	require.NoError(t, err)
	assert.Equal(t, 0, created.Summary.TotalPoints)
	assert.Equal(t, models.StatusActive, created.Summary.Status)
	id := created.Session.ID

	resp, err := svc.AppendEvent(ctx, Actor{}, id, praise(models.SkillFollowingInstructions, true))
	require.NoError(t, err)
	assert.Equal(t, 100, resp.Event.Points)
	assert.Equal(t, id, resp.Event.SessionID)
	assert.Empty(t, resp.Advisory)

	resp, err = svc.AppendEvent(ctx, Actor{}, id, correction(models.SkillSelfControl, false, "raised voice"))
	require.NoError(t, err)
	assert.Equal(t, -100, resp.Event.Points)
	assert.Equal(t, 0, resp.Summary.TotalPoints)
	assert.Equal(t, 2, resp.Event.Sequence)

	summary, err := svc.Summary(ctx, Actor{}, id)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Summary.TotalPoints)
	assert.Equal(t, 2, summary.Summary.EventCount)
	assert.Equal(t, id, summary.Summary.SessionID)
}

func TestSessionServiceAdvisoryDoesNotBlock(t *testing.T) {
	svc := newTestSessionService(nil, SessionConfig{})
	ctx := context.Background()
	created, err := svc.Create(ctx, Actor{})
	require.NoError(t, err)

	resp, err := svc.AppendEvent(ctx, Actor{}, created.Session.ID, correction(models.SkillSelfControl, true, "He was being Rude and lazy"))
	require.NoError(t, err)
	assert.Equal(t, -200, resp.Event.Points)
	assert.NotEmpty(t, resp.Advisory)
	assert.ElementsMatch(t, []string{"rude", "lazy"}, resp.JudgmentalTerms)
	assert.Equal(t, "He was being Rude and lazy", resp.Event.Behavior)
}

func TestSessionServiceRejectsUnknownEnumValues(t *testing.T) {
	svc := newTestSessionService(nil, SessionConfig{})
	ctx := context.Background()
	created, err := svc.Create(ctx, Actor{})
	require.NoError(t, err)
	id := created.Session.ID

	bad := []AppendEventRequest{
		{Skill: "juggling", InteractionType: "effective_praise", Polarity: "positive"},
		{Skill: "self_control", InteractionType: "lecture", Polarity: "positive"},
		{Skill: "self_control", InteractionType: "effective_praise", Polarity: "neutral"},
	}
	for _, req := range bad {
		_, err := svc.AppendEvent(ctx, Actor{}, id, req)
		require.Error(t, err)
		assert.True(t, appErrors.Is(err, appErrors.ErrInvalidInput), "request %+v", req)
	}

	_, err = svc.AppendEvent(ctx, Actor{}, id, AppendEventRequest{Skill: "self_control", InteractionType: "effective_praise"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	summary, err := svc.Summary(ctx, Actor{}, id)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Summary.EventCount)
	assert.Equal(t, 0, summary.Summary.TotalPoints)
}

func TestSessionServiceStoreFailureLeavesLedgerUnchanged(t *testing.T) {
	store := newFakeLedgerStore()
	svc := newTestSessionService(store, SessionConfig{})
	ctx := context.Background()
	created, err := svc.Create(ctx, Actor{})
	require.NoError(t, err)

	store.appendErr = errors.New("connection reset")
	_, err = svc.AppendEvent(ctx, Actor{}, created.Session.ID, praise(models.SkillTaskCompletion, false))
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInternal))

	summary, err := svc.Summary(ctx, Actor{}, created.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Summary.EventCount)
}

func TestSessionServiceEventLimit(t *testing.T) {
	svc := newTestSessionService(nil, SessionConfig{MaxEvents: 2})
	ctx := context.Background()
	created, err := svc.Create(ctx, Actor{})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := svc.AppendEvent(ctx, Actor{}, created.Session.ID, praise(models.SkillTaskCompletion, false))
		require.NoError(t, err)
	}
	_, err = svc.AppendEvent(ctx, Actor{}, created.Session.ID, praise(models.SkillTaskCompletion, false))
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestSessionServiceResetAndEnd(t *testing.T) {
	store := newFakeLedgerStore()
	svc := newTestSessionService(store, SessionConfig{})
	ctx := context.Background()
	created, err := svc.Create(ctx, Actor{})
	require.NoError(t, err)
	id := created.Session.ID

	_, err = svc.AppendEvent(ctx, Actor{}, id, praise(models.SkillAcceptingCriticism, true))
	require.NoError(t, err)

	reset, err := svc.Reset(ctx, Actor{}, id)
	require.NoError(t, err)
	assert.Equal(t, 0, reset.Summary.TotalPoints)
	assert.Equal(t, 0, reset.Summary.EventCount)
	assert.Equal(t, []string{id}, store.deleted)

	require.NoError(t, svc.End(ctx, Actor{}, id))
	assert.Equal(t, []string{id}, store.ended)

	_, err = svc.Summary(ctx, Actor{}, id)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	err = svc.End(ctx, Actor{}, id)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestSessionServiceUnknownSession(t *testing.T) {
	svc := newTestSessionService(newFakeLedgerStore(), SessionConfig{})
	ctx := context.Background()

	_, err := svc.Summary(ctx, Actor{}, "not-a-uuid")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	_, err = svc.Summary(ctx, Actor{}, "6f1c1f5e-4b5e-4d55-9a57-2a4b8e8c1d11")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestSessionServiceOwnership(t *testing.T) {
	svc := newTestSessionService(nil, SessionConfig{})
	ctx := context.Background()
	owner := Actor{UserID: "trainee-1", Role: models.RoleTrainee}

	created, err := svc.Create(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "trainee-1", created.Session.OwnerID)

	_, err = svc.Summary(ctx, Actor{UserID: "trainee-2", Role: models.RoleTrainee}, created.Session.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	_, err = svc.Summary(ctx, Actor{}, created.Session.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	_, err = svc.Summary(ctx, Actor{UserID: "admin-1", Role: models.RoleAdmin}, created.Session.ID)
	assert.NoError(t, err)

	_, err = svc.Summary(ctx, owner, created.Session.ID)
	assert.NoError(t, err)
}

func TestSessionServiceRestoresEvictedSession(t *testing.T) {
	store := newFakeLedgerStore()
	svc := newTestSessionService(store, SessionConfig{IdleTTL: time.Minute})
	ctx := context.Background()

	created, err := svc.Create(ctx, Actor{})
	require.NoError(t, err)
	id := created.Session.ID
	_, err = svc.AppendEvent(ctx, Actor{}, id, praise(models.SkillFollowingInstructions, true))
	require.NoError(t, err)
	_, err = svc.AppendEvent(ctx, Actor{}, id, correction(models.SkillSelfControl, true, "kicked the chair"))
	require.NoError(t, err)

	evicted := svc.EvictIdle(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 1, evicted)
	assert.Empty(t, svc.List(ctx))

	summary, err := svc.Summary(ctx, Actor{}, id)
	require.NoError(t, err)
	assert.Equal(t, -100, summary.Summary.TotalPoints)
	assert.Equal(t, models.StatusSuspended, summary.Summary.Status)
	assert.Equal(t, 2, summary.Summary.EventCount)
	assert.Len(t, svc.List(ctx), 1)
}

func TestSessionServiceEndedSessionIsNotRestored(t *testing.T) {
	store := newFakeLedgerStore()
	svc := newTestSessionService(store, SessionConfig{IdleTTL: time.Minute})
	ctx := context.Background()

	created, err := svc.Create(ctx, Actor{})
	require.NoError(t, err)
	id := created.Session.ID
	require.NoError(t, svc.End(ctx, Actor{}, id))

	_, err = svc.Summary(ctx, Actor{}, id)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestSessionServiceEvictIdleKeepsActiveSessions(t *testing.T) {
	svc := newTestSessionService(nil, SessionConfig{IdleTTL: time.Hour})
	ctx := context.Background()
	_, err := svc.Create(ctx, Actor{})
	require.NoError(t, err)

	assert.Equal(t, 0, svc.EvictIdle(time.Now()))
	assert.Len(t, svc.List(ctx), 1)

	disabled := newTestSessionService(nil, SessionConfig{})
	_, err = disabled.Create(ctx, Actor{})
	require.NoError(t, err)
	assert.Equal(t, 0, disabled.EvictIdle(time.Now().Add(24*time.Hour)))
}

func TestSessionServiceEventsPagination(t *testing.T) {
	svc := newTestSessionService(nil, SessionConfig{})
	ctx := context.Background()
	created, err := svc.Create(ctx, Actor{})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := svc.AppendEvent(ctx, Actor{}, created.Session.ID, praise(models.SkillTaskCompletion, false))
		require.NoError(t, err)
	}

	events, pagination, err := svc.Events(ctx, Actor{}, created.Session.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 3, events[0].Sequence)
	assert.Equal(t, 5, pagination.TotalCount)

	events, _, err = svc.Events(ctx, Actor{}, created.Session.ID, 9, 2)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSessionServiceConcurrentAppends(t *testing.T) {
	store := newFakeLedgerStore()
	svc := newTestSessionService(store, SessionConfig{})
	ctx := context.Background()
	created, err := svc.Create(ctx, Actor{})
	require.NoError(t, err)
	id := created.Session.ID

	const workers = 40
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := praise(models.SkillFollowingInstructions, i%2 == 0)
			_, err := svc.AppendEvent(ctx, Actor{}, id, req)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	card, err := svc.PointCard(ctx, Actor{}, id)
	require.NoError(t, err)
	require.Len(t, card.Events, workers)
	sum := 0
	for i, event := range card.Events {
		assert.Equal(t, i+1, event.Sequence)
		sum += event.Points
	}
	assert.Equal(t, workers/2*100+workers/2*50, sum)
	assert.Equal(t, sum, card.Summary.TotalPoints)

	persisted, err := store.ListEvents(ctx, id)
	require.NoError(t, err)
	for i, event := range persisted {
		assert.Equal(t, i+1, event.Sequence)
	}
}

func TestMapValidationPassesThroughNil(t *testing.T) {
	assert.NoError(t, mapValidation(nil, enumTags))
}

func TestSessionServiceReadsKeepSessionAlive(t *testing.T) {
	svc := newTestSessionService(nil, SessionConfig{IdleTTL: time.Hour})
	ctx := context.Background()
	clock := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	created, err := svc.Create(ctx, Actor{})
	require.NoError(t, err)
	id := created.Session.ID
	_, err = svc.AppendEvent(ctx, Actor{}, id, praise(models.SkillFollowingInstructions, true))
	require.NoError(t, err)

	for _, offset := range []time.Duration{30 * time.Minute, 60 * time.Minute, 90 * time.Minute} {
		clock = created.Session.CreatedAt.Add(offset)
		_, err := svc.Summary(ctx, Actor{}, id)
		require.NoError(t, err)
		_, _, err = svc.Events(ctx, Actor{}, id, 1, 10)
		require.NoError(t, err)
	}

	assert.Equal(t, 0, svc.EvictIdle(clock.Add(time.Second)))
	summary, err := svc.Summary(ctx, Actor{}, id)
	require.NoError(t, err)
	assert.Equal(t, 100, summary.Summary.TotalPoints)

	assert.Equal(t, 1, svc.EvictIdle(clock.Add(2*time.Hour)))
}

func TestSessionServiceClearHooksRunOnResetAndEnd(t *testing.T) {
	svc := newTestSessionService(nil, SessionConfig{})
	ctx := context.Background()
	var cleared []string
	svc.OnClear(func(ctx context.Context, sessionID string) {
		cleared = append(cleared, sessionID)
	})

	created, err := svc.Create(ctx, Actor{})
	require.NoError(t, err)
	id := created.Session.ID

	_, err = svc.Reset(ctx, Actor{}, id)
	require.NoError(t, err)
	require.NoError(t, svc.End(ctx, Actor{}, id))
	assert.Equal(t, []string{id, id}, cleared)

	_, err = svc.Reset(ctx, Actor{}, id)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	assert.Len(t, cleared, 2)
}

func TestSessionServiceRestoreRejectsDriftedTotal(t *testing.T) {
	store := newFakeLedgerStore()
	svc := newTestSessionService(store, SessionConfig{IdleTTL: time.Minute})
	ctx := context.Background()

	created, err := svc.Create(ctx, Actor{})
	require.NoError(t, err)
	id := created.Session.ID
	_, err = svc.AppendEvent(ctx, Actor{}, id, praise(models.SkillTaskCompletion, false))
	require.NoError(t, err)
	require.Equal(t, 1, svc.EvictIdle(time.Now().Add(2*time.Minute)))

	store.totalSkew = 50
	_, err = svc.Summary(ctx, Actor{}, id)
	assert.True(t, appErrors.Is(err, appErrors.ErrInternal))

	store.totalSkew = 0
	summary, err := svc.Summary(ctx, Actor{}, id)
	require.NoError(t, err)
	assert.Equal(t, 50, summary.Summary.TotalPoints)
}
