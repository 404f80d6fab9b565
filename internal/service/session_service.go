package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/pem-portal-api/internal/content"
	"github.com/noah-isme/pem-portal-api/internal/dto"
	"github.com/noah-isme/pem-portal-api/internal/ledger"
	"github.com/noah-isme/pem-portal-api/internal/models"
	appErrors "github.com/noah-isme/pem-portal-api/pkg/errors"
)

type ledgerStore interface {
	CreateSession(ctx context.Context, session *models.LedgerSession) error
	GetSession(ctx context.Context, id string) (*models.LedgerSession, error)
	EndSession(ctx context.Context, id string, endedAt time.Time) error
	AppendEvent(ctx context.Context, event *models.PointEvent) error
	ListEvents(ctx context.Context, sessionID string) ([]models.PointEvent, error)
	DeleteEvents(ctx context.Context, sessionID string) error
	TotalPoints(ctx context.Context, sessionID string) (int, error)
}

// SessionHook runs after a session's log has been cleared by reset or end.
type SessionHook func(ctx context.Context, sessionID string)

// SessionConfig tunes session lifetime.
type SessionConfig struct {
	IdleTTL   time.Duration
	MaxEvents int
}

// Actor identifies who is calling. An empty UserID is an anonymous trainee.
type Actor struct {
	UserID string
	Role   models.UserRole
}

// AppendEventRequest describes one manual point entry.
type AppendEventRequest struct {
	Skill           string `json:"skill" validate:"required,skill"`
	InteractionType string `json:"interaction_type" validate:"required,interaction_type"`
	Behavior        string `json:"behavior" validate:"max=500"`
	TargetSkill     bool   `json:"target_skill"`
	Polarity        string `json:"polarity" validate:"required,polarity"`
}

type sessionEntry struct {
	mu      sync.Mutex
	session models.LedgerSession
	ledger  *ledger.Ledger
	ended   bool
	evicted bool
}

// SessionService owns ledger sessions. Each session has one ledger, guarded by
// its own mutex; the session map has a separate lock that is always taken
// before an entry lock, never after.
type SessionService struct {
	mu        sync.Mutex
	sessions  map[string]*sessionEntry
	store     ledgerStore
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	cfg       SessionConfig
	now       func() time.Time
	onClear   []SessionHook
}

var enumTags = map[string]struct{}{"skill": {}, "interaction_type": {}, "polarity": {}}

// NewSessionService constructs the service. store may be nil, in which case
// sessions live only in memory.
func NewSessionService(store ledgerStore, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, cfg SessionConfig) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &SessionService{
		sessions:  make(map[string]*sessionEntry),
		store:     store,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		cfg:       cfg,
		now:       time.Now,
	}
	svc.validator.RegisterValidation("skill", func(fl validator.FieldLevel) bool {
		return models.Skill(fl.Field().String()).Valid()
	})
	svc.validator.RegisterValidation("interaction_type", func(fl validator.FieldLevel) bool {
		return models.InteractionType(fl.Field().String()).Valid()
	})
	svc.validator.RegisterValidation("polarity", func(fl validator.FieldLevel) bool {
		return models.Polarity(fl.Field().String()).Valid()
	})
	return svc
}

// OnClear registers fn to run after Reset or End. Register hooks before the
// service starts handling requests.
func (s *SessionService) OnClear(fn SessionHook) {
	if fn != nil {
		s.onClear = append(s.onClear, fn)
	}
}

// Create opens a new session with an empty ledger.
func (s *SessionService) Create(ctx context.Context, actor Actor) (*dto.SessionResponse, error) {
	now := s.now().UTC()
	entry := &sessionEntry{
		session: models.LedgerSession{
			ID:           uuid.NewString(),
			OwnerID:      actor.UserID,
			CreatedAt:    now,
			LastActiveAt: now,
		},
		ledger: ledger.New(s.now),
	}
	if s.store != nil {
		start := time.Now()
		err := s.store.CreateSession(ctx, &entry.session)
		s.metrics.ObserveDBQuery("create_session", time.Since(start))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
		}
	}

	s.mu.Lock()
	s.sessions[entry.session.ID] = entry
	active := len(s.sessions)
	s.mu.Unlock()
	s.metrics.SetActiveSessions(active)

	s.logger.Info("ledger session created", zap.String("session_id", entry.session.ID), zap.String("owner_id", actor.UserID))
	return &dto.SessionResponse{Session: entry.session, Summary: summaryOf(entry)}, nil
}

// Summary returns the session handle and derived ledger values.
func (s *SessionService) Summary(ctx context.Context, actor Actor, id string) (*dto.SessionResponse, error) {
	entry, err := s.acquire(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	defer entry.mu.Unlock()
	return &dto.SessionResponse{Session: entry.session, Summary: summaryOf(entry)}, nil
}

// AppendEvent records one point entry. Invalid skills, interaction types or
// polarities are rejected with INVALID_INPUT and leave the ledger untouched.
// Judgmental behaviour descriptions are accepted with an advisory.
func (s *SessionService) AppendEvent(ctx context.Context, actor Actor, id string, req AppendEventRequest) (*dto.AppendEventResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	entry, err := s.acquire(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	defer entry.mu.Unlock()

	if s.cfg.MaxEvents > 0 && entry.ledger.Len() >= s.cfg.MaxEvents {
		return nil, appErrors.Clone(appErrors.ErrConflict, "session has reached its event limit")
	}

	event, err := entry.ledger.NewEvent(models.Skill(req.Skill), models.InteractionType(req.InteractionType), req.Behavior, req.TargetSkill, models.Polarity(req.Polarity))
	if err != nil {
		return nil, err
	}
	event.SessionID = id

	if s.store != nil {
		start := time.Now()
		err := s.store.AppendEvent(ctx, &event)
		s.metrics.ObserveDBQuery("append_event", time.Since(start))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record point event")
		}
	}

	recorded, err := entry.ledger.Record(event)
	if err != nil {
		return nil, err
	}
	entry.session.LastActiveAt = s.now().UTC()
	s.metrics.RecordLedgerEvent(string(recorded.Polarity), recorded.TargetSkill)

	resp := &dto.AppendEventResponse{Event: recorded, Summary: summaryOf(entry)}
	if terms := content.JudgmentalTerms(req.Behavior); len(terms) > 0 {
		resp.Advisory = content.JudgmentalAdvisory
		resp.JudgmentalTerms = terms
		s.metrics.RecordAdvisory()
	}

	s.logger.Info("point event recorded",
		zap.String("session_id", id),
		zap.String("skill", string(recorded.Skill)),
		zap.Int("points", recorded.Points),
		zap.Int("total", entry.ledger.Total()),
	)
	return resp, nil
}

// Events returns a page of the session log in insertion order.
func (s *SessionService) Events(ctx context.Context, actor Actor, id string, page, pageSize int) ([]models.PointEvent, *models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 50
	}
	entry, err := s.acquire(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}
	events := entry.ledger.Events()
	entry.mu.Unlock()

	total := len(events)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return events[start:end], &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Reset clears the session's log and total.
func (s *SessionService) Reset(ctx context.Context, actor Actor, id string) (*dto.SessionResponse, error) {
	entry, err := s.acquire(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		start := time.Now()
		err := s.store.DeleteEvents(ctx, id)
		s.metrics.ObserveDBQuery("delete_events", time.Since(start))
		if err != nil {
			entry.mu.Unlock()
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset session")
		}
	}
	cleared := entry.ledger.Len()
	entry.ledger.Reset()
	resp := &dto.SessionResponse{Session: entry.session, Summary: summaryOf(entry)}
	entry.mu.Unlock()

	s.metrics.RecordLedgerReset()
	s.runClearHooks(ctx, id)
	s.logger.Info("ledger reset", zap.String("session_id", id), zap.Int("cleared_events", cleared))
	return resp, nil
}

// PointCard copies the session for export.
func (s *SessionService) PointCard(ctx context.Context, actor Actor, id string) (*dto.PointCard, error) {
	entry, err := s.acquire(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	defer entry.mu.Unlock()
	return &dto.PointCard{Session: entry.session, Events: entry.ledger.Events(), Summary: summaryOf(entry)}, nil
}

// End destroys the session. Later calls with the same handle get NOT_FOUND.
func (s *SessionService) End(ctx context.Context, actor Actor, id string) error {
	entry, err := s.acquire(ctx, actor, id)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	if s.store != nil {
		start := time.Now()
		err := s.store.EndSession(ctx, id, now)
		s.metrics.ObserveDBQuery("end_session", time.Since(start))
		if err != nil {
			entry.mu.Unlock()
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to end session")
		}
	}
	entry.ended = true
	entry.session.EndedAt = &now
	entry.ledger.Reset()
	entry.mu.Unlock()

	s.mu.Lock()
	if s.sessions[id] == entry {
		delete(s.sessions, id)
	}
	active := len(s.sessions)
	s.mu.Unlock()
	s.metrics.SetActiveSessions(active)

	s.runClearHooks(ctx, id)
	s.logger.Info("ledger session ended", zap.String("session_id", id))
	return nil
}

func (s *SessionService) runClearHooks(ctx context.Context, id string) {
	for _, fn := range s.onClear {
		fn(ctx, id)
	}
}

// List returns every in-memory session, oldest first.
func (s *SessionService) List(ctx context.Context) []dto.SessionResponse {
	s.mu.Lock()
	entries := make([]*sessionEntry, 0, len(s.sessions))
	for _, entry := range s.sessions {
		entries = append(entries, entry)
	}
	s.mu.Unlock()

	out := make([]dto.SessionResponse, 0, len(entries))
	for _, entry := range entries {
		entry.mu.Lock()
		if !entry.ended {
			out = append(out, dto.SessionResponse{Session: entry.session, Summary: summaryOf(entry)})
		}
		entry.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Session.CreatedAt.Before(out[j].Session.CreatedAt)
	})
	return out
}

// EvictIdle drops sessions idle for longer than the configured TTL from
// memory. Persisted sessions can still be restored from their log.
func (s *SessionService) EvictIdle(now time.Time) int {
	if s.cfg.IdleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-s.cfg.IdleTTL)

	s.mu.Lock()
	evicted := 0
	for id, entry := range s.sessions {
		entry.mu.Lock()
		if entry.session.LastActiveAt.Before(cutoff) {
			entry.evicted = true
			delete(s.sessions, id)
			evicted++
		}
		entry.mu.Unlock()
	}
	active := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(active)
	s.metrics.RecordEvictions(evicted)
	if evicted > 0 {
		s.logger.Info("idle sessions evicted", zap.Int("count", evicted), zap.Int("active", active))
	}
	return evicted
}

// acquire finds the session, restoring it from the store if needed, checks
// ownership, and returns it locked. Callers must unlock entry.mu.
func (s *SessionService) acquire(ctx context.Context, actor Actor, id string) (*sessionEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}

	for {
		entry, err := s.lookup(ctx, id)
		if err != nil {
			return nil, err
		}

		entry.mu.Lock()
		if entry.evicted {
			// Swept between lookup and lock; the next lookup restores it.
			entry.mu.Unlock()
			continue
		}
		if entry.ended {
			entry.mu.Unlock()
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		if err := authorize(actor, entry.session); err != nil {
			entry.mu.Unlock()
			return nil, err
		}
		entry.session.LastActiveAt = s.now().UTC()
		return entry, nil
	}
}

func (s *SessionService) lookup(ctx context.Context, id string) (*sessionEntry, error) {
	s.mu.Lock()
	entry := s.sessions[id]
	s.mu.Unlock()
	if entry != nil {
		return entry, nil
	}

	restored, err := s.restore(ctx, id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if existing := s.sessions[id]; existing != nil {
		entry = existing
	} else {
		s.sessions[id] = restored
		entry = restored
	}
	active := len(s.sessions)
	s.mu.Unlock()
	s.metrics.SetActiveSessions(active)
	return entry, nil
}

func (s *SessionService) restore(ctx context.Context, id string) (*sessionEntry, error) {
	if s.store == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	start := time.Now()
	session, err := s.store.GetSession(ctx, id)
	s.metrics.ObserveDBQuery("get_session", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if session == nil || session.EndedAt != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}

	start = time.Now()
	events, err := s.store.ListEvents(ctx, id)
	s.metrics.ObserveDBQuery("list_events", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load point events")
	}

	l := ledger.New(s.now)
	if err := l.Restore(events); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "persisted point log is inconsistent")
	}

	start = time.Now()
	stored, err := s.store.TotalPoints(ctx, id)
	s.metrics.ObserveDBQuery("total_points", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load point total")
	}
	if stored != l.Total() {
		s.logger.Error("restored total drifted from stored log",
			zap.String("session_id", id), zap.Int("stored_total", stored), zap.Int("replayed_total", l.Total()))
		return nil, appErrors.Clone(appErrors.ErrInternal, "persisted point total does not match its log")
	}
	session.LastActiveAt = s.now().UTC()
	s.logger.Info("ledger session restored", zap.String("session_id", id), zap.Int("events", l.Len()), zap.Int("total", l.Total()))
	return &sessionEntry{session: *session, ledger: l}, nil
}

func (s *SessionService) validate(req AppendEventRequest) error {
	return mapValidation(s.validator.Struct(req), enumTags)
}

// mapValidation turns validator output into an app error. Failures on a
// closed-set tag mean the caller sent a value outside the enumeration.
func mapValidation(err error, closedSets map[string]struct{}) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if _, ok := closedSets[fe.Tag()]; ok {
				return appErrors.Wrap(err, appErrors.ErrInvalidInput.Code, appErrors.ErrInvalidInput.Status, "unknown "+fe.Tag()+" value")
			}
		}
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
}

func authorize(actor Actor, session models.LedgerSession) error {
	if session.OwnerID == "" || actor.Role == models.RoleAdmin || actor.UserID == session.OwnerID {
		return nil
	}
	return appErrors.Clone(appErrors.ErrForbidden, "session belongs to another user")
}

func summaryOf(entry *sessionEntry) models.LedgerSummary {
	summary := entry.ledger.Summary()
	summary.SessionID = entry.session.ID
	return summary
}
