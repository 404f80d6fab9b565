// Package ledger implements the session point card: an append-only log of
// point events, the running total kept in step with it, and the level and
// privilege status derived from that total.
//
// A Ledger has a single owner and is not safe for concurrent use.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/pem-portal-api/internal/models"
	appErrors "github.com/noah-isme/pem-portal-api/pkg/errors"
)

// Level thresholds are closed below: a total equal to the threshold is already
// on the higher level.
const (
	LevelIIThreshold  = 50000
	LevelIIIThreshold = 75000
)

const (
	targetPositive    = 100
	targetNegative    = 200
	nonTargetPositive = 50
	nonTargetNegative = 100
)

// Ledger holds one session's point events and running total.
type Ledger struct {
	events   []models.PointEvent
	total    int
	revision uint64
	now      func() time.Time
}

// New returns an empty ledger. A nil clock falls back to time.Now.
func New(now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{now: now}
}

// Delta returns the signed point change for an entry.
func Delta(targetSkill bool, polarity models.Polarity) (int, error) {
	switch polarity {
	case models.PolarityPositive:
		if targetSkill {
			return targetPositive, nil
		}
		return nonTargetPositive, nil
	case models.PolarityNegative:
		if targetSkill {
			return -targetNegative, nil
		}
		return -nonTargetNegative, nil
	default:
		return 0, invalid("unknown polarity %q", polarity)
	}
}

// NewEvent validates an entry and builds the event that Append would record,
// without touching the ledger.
func (l *Ledger) NewEvent(skill models.Skill, interaction models.InteractionType, behavior string, targetSkill bool, polarity models.Polarity) (models.PointEvent, error) {
	if !skill.Valid() {
		return models.PointEvent{}, invalid("unknown skill %q", skill)
	}
	if !interaction.Valid() {
		return models.PointEvent{}, invalid("unknown interaction type %q", interaction)
	}
	delta, err := Delta(targetSkill, polarity)
	if err != nil {
		return models.PointEvent{}, err
	}
	return models.PointEvent{
		ID:              uuid.NewString(),
		Sequence:        len(l.events) + 1,
		RecordedAt:      l.now().UTC(),
		Skill:           skill,
		InteractionType: interaction,
		Behavior:        behavior,
		TargetSkill:     targetSkill,
		Polarity:        polarity,
		Points:          delta,
	}, nil
}

// Record appends a prepared event and adds its points to the total.
func (l *Ledger) Record(event models.PointEvent) (models.PointEvent, error) {
	if err := validateEvent(event); err != nil {
		return models.PointEvent{}, err
	}
	event.Sequence = len(l.events) + 1
	l.events = append(l.events, event)
	l.total += event.Points
	l.revision++
	return event, nil
}

// Append validates, builds and records an entry in one step.
func (l *Ledger) Append(skill models.Skill, interaction models.InteractionType, behavior string, targetSkill bool, polarity models.Polarity) (models.PointEvent, error) {
	event, err := l.NewEvent(skill, interaction, behavior, targetSkill, polarity)
	if err != nil {
		return models.PointEvent{}, err
	}
	return l.Record(event)
}

// Reset clears every event and zeroes the total.
func (l *Ledger) Reset() {
	l.events = nil
	l.total = 0
	l.revision++
}

// Restore replaces the ledger content with a previously persisted log. The
// total is rebuilt from the log, never carried over.
func (l *Ledger) Restore(events []models.PointEvent) error {
	for i := range events {
		if err := validateEvent(events[i]); err != nil {
			return fmt.Errorf("restore event %d: %w", i+1, err)
		}
	}
	l.events = make([]models.PointEvent, 0, len(events))
	l.total = 0
	for _, event := range events {
		event.Sequence = len(l.events) + 1
		l.events = append(l.events, event)
		l.total += event.Points
	}
	l.revision++
	return nil
}

// Events returns a copy of the log in insertion order.
func (l *Ledger) Events() []models.PointEvent {
	out := make([]models.PointEvent, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of recorded events.
func (l *Ledger) Len() int {
	return len(l.events)
}

// Total returns the running total.
func (l *Ledger) Total() int {
	return l.total
}

// Revision increases on every mutation.
func (l *Ledger) Revision() uint64 {
	return l.revision
}

// Recompute sums the log independently of the running total.
func (l *Ledger) Recompute() int {
	sum := 0
	for _, event := range l.events {
		sum += event.Points
	}
	return sum
}

// CurrentLevel derives the level from the running total.
func (l *Ledger) CurrentLevel() models.Level {
	return LevelFor(l.total)
}

// StatusLabel applies the Zero Rule to the running total.
func (l *Ledger) StatusLabel() models.PrivilegeStatus {
	return StatusFor(l.total)
}

// Summary collects the derived values for display.
func (l *Ledger) Summary() models.LedgerSummary {
	summary := models.LedgerSummary{
		TotalPoints: l.total,
		Level:       LevelFor(l.total),
		Status:      StatusFor(l.total),
		Progress:    ProgressFor(l.total),
		EventCount:  len(l.events),
		Revision:    l.revision,
	}
	summary.ProgressPercent = int(summary.Progress * 100)
	for _, event := range l.events {
		if event.Points > 0 {
			summary.PositiveCount++
		} else {
			summary.NegativeCount++
		}
	}
	return summary
}

// LevelFor maps a total onto Level I, II or III.
func LevelFor(total int) models.Level {
	switch {
	case total >= LevelIIIThreshold:
		return models.LevelIII
	case total >= LevelIIThreshold:
		return models.LevelII
	default:
		return models.LevelI
	}
}

// StatusFor returns Active for non-negative totals.
func StatusFor(total int) models.PrivilegeStatus {
	if total >= 0 {
		return models.StatusActive
	}
	return models.StatusSuspended
}

// ProgressFor is the fraction of the Level II threshold reached, in [0, 1].
func ProgressFor(total int) float64 {
	if total <= 0 {
		return 0
	}
	if total >= LevelIIThreshold {
		return 1
	}
	return float64(total) / float64(LevelIIThreshold)
}

func validateEvent(event models.PointEvent) error {
	if !event.Skill.Valid() {
		return invalid("unknown skill %q", event.Skill)
	}
	if !event.InteractionType.Valid() {
		return invalid("unknown interaction type %q", event.InteractionType)
	}
	if !event.Polarity.Valid() {
		return invalid("unknown polarity %q", event.Polarity)
	}
	if event.Points == 0 {
		return invalid("point change must not be zero")
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return appErrors.Clone(appErrors.ErrInvalidInput, fmt.Sprintf(format, args...))
}
