package models

import "time"

// Skill is one of the fixed skills a point card entry can credit.
type Skill string

const (
	SkillFollowingInstructions Skill = "following_instructions"
	SkillAcceptingCriticism    Skill = "accepting_criticism"
	SkillTaskCompletion        Skill = "task_completion"
	SkillSelfControl           Skill = "self_control"
)

var skillLabels = map[Skill]string{
	SkillFollowingInstructions: "Following Instructions",
	SkillAcceptingCriticism:    "Accepting Criticism",
	SkillTaskCompletion:        "Task Completion",
	SkillSelfControl:           "Self-Control",
}

// Skills lists the point card skills in display order.
func Skills() []Skill {
	return []Skill{SkillFollowingInstructions, SkillAcceptingCriticism, SkillTaskCompletion, SkillSelfControl}
}

// Valid reports whether s belongs to the closed skill set.
func (s Skill) Valid() bool {
	_, ok := skillLabels[s]
	return ok
}

// Label returns the human readable skill name.
func (s Skill) Label() string {
	if label, ok := skillLabels[s]; ok {
		return label
	}
	return string(s)
}

// InteractionType names the teaching interaction that produced an entry.
type InteractionType string

const (
	InteractionProactiveTeaching  InteractionType = "proactive_teaching"
	InteractionEffectivePraise    InteractionType = "effective_praise"
	InteractionCorrectiveTeaching InteractionType = "corrective_teaching"
)

var interactionLabels = map[InteractionType]string{
	InteractionProactiveTeaching:  "Proactive Teaching",
	InteractionEffectivePraise:    "Effective Praise",
	InteractionCorrectiveTeaching: "Corrective Teaching",
}

// InteractionTypes lists the interaction types in display order.
func InteractionTypes() []InteractionType {
	return []InteractionType{InteractionProactiveTeaching, InteractionEffectivePraise, InteractionCorrectiveTeaching}
}

// Valid reports whether t belongs to the closed interaction set.
func (t InteractionType) Valid() bool {
	_, ok := interactionLabels[t]
	return ok
}

// Label returns the human readable interaction name.
func (t InteractionType) Label() string {
	if label, ok := interactionLabels[t]; ok {
		return label
	}
	return string(t)
}

// Polarity decides whether an entry earns or costs points.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
)

// Polarities lists both polarities, earning first.
func Polarities() []Polarity {
	return []Polarity{PolarityPositive, PolarityNegative}
}

// Label returns the form wording for p.
func (p Polarity) Label() string {
	switch p {
	case PolarityPositive:
		return "Positive (Earn)"
	case PolarityNegative:
		return "Negative (Lose)"
	}
	return string(p)
}

// Valid reports whether p is positive or negative.
func (p Polarity) Valid() bool {
	return p == PolarityPositive || p == PolarityNegative
}

// PointEvent is one recorded point card entry. Points is never zero.
type PointEvent struct {
	ID              string          `db:"id" json:"id"`
	SessionID       string          `db:"session_id" json:"session_id,omitempty"`
	Sequence        int             `db:"seq" json:"sequence"`
	RecordedAt      time.Time       `db:"recorded_at" json:"recorded_at"`
	Skill           Skill           `db:"skill" json:"skill"`
	InteractionType InteractionType `db:"interaction_type" json:"interaction_type"`
	Behavior        string          `db:"behavior" json:"behavior"`
	TargetSkill     bool            `db:"target_skill" json:"target_skill"`
	Polarity        Polarity        `db:"polarity" json:"polarity"`
	Points          int             `db:"points" json:"points"`
}

// Level is the motivation-system tier derived from a point total.
type Level string

const (
	LevelI   Level = "Level I"
	LevelII  Level = "Level II"
	LevelIII Level = "Level III"
)

// Rank orders levels so callers can compare them.
func (l Level) Rank() int {
	switch l {
	case LevelI:
		return 1
	case LevelII:
		return 2
	case LevelIII:
		return 3
	default:
		return 0
	}
}

// PrivilegeStatus is the Zero Rule outcome for a total.
type PrivilegeStatus string

const (
	StatusActive    PrivilegeStatus = "Active"
	StatusSuspended PrivilegeStatus = "Privileges Suspended"
)

// LedgerSummary carries the derived values a dashboard renders.
type LedgerSummary struct {
	SessionID       string          `json:"session_id"`
	TotalPoints     int             `json:"total_points"`
	Level           Level           `json:"level"`
	Status          PrivilegeStatus `json:"status"`
	Progress        float64         `json:"progress"`
	ProgressPercent int             `json:"progress_percent"`
	EventCount      int             `json:"event_count"`
	PositiveCount   int             `json:"positive_count"`
	NegativeCount   int             `json:"negative_count"`
	Revision        uint64          `json:"revision"`
}
