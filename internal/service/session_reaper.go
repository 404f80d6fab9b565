package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type idleEvicter interface {
	EvictIdle(now time.Time) int
}

// SessionReaper periodically drops idle sessions from memory.
type SessionReaper struct {
	sessions idleEvicter
	schedule string
	logger   *zap.Logger
	now      func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

// NewSessionReaper builds a reaper running on a cron schedule such as
// "@every 1m".
func NewSessionReaper(sessions idleEvicter, schedule string, logger *zap.Logger) *SessionReaper {
	if logger == nil {
		logger = zap.NewNop()
	}
	if schedule == "" {
		schedule = "@every 1m"
	}
	return &SessionReaper{sessions: sessions, schedule: schedule, logger: logger, now: time.Now}
}

// Start schedules the sweep. Calling Start twice is a no-op.
func (r *SessionReaper) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron != nil {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(r.schedule, func() { r.Sweep() }); err != nil {
		return fmt.Errorf("schedule session sweep %q: %w", r.schedule, err)
	}
	c.Start()
	r.cron = c
	r.logger.Info("session reaper started", zap.String("schedule", r.schedule))
	return nil
}

// Sweep evicts idle sessions once.
func (r *SessionReaper) Sweep() int {
	evicted := r.sessions.EvictIdle(r.now())
	if evicted > 0 {
		r.logger.Debug("session sweep finished", zap.Int("evicted", evicted))
	}
	return evicted
}

// Stop halts scheduling and waits for a running sweep to finish.
func (r *SessionReaper) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	r.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
	r.logger.Info("session reaper stopped")
}
