package dto

import "github.com/noah-isme/pem-portal-api/internal/content"

// ABCAnalysisResponse is the ABC analyzer outcome.
type ABCAnalysisResponse struct {
	Analysis        string   `json:"analysis"`
	Advisory        string   `json:"advisory,omitempty"`
	JudgmentalTerms []string `json:"judgmental_terms,omitempty"`
}

// LanguageCheckResponse reports judgmental words in free text.
type LanguageCheckResponse struct {
	Judgmental bool     `json:"judgmental"`
	Terms      []string `json:"terms,omitempty"`
	Advisory   string   `json:"advisory,omitempty"`
}

// RationaleResponse carries a generated rationale.
type RationaleResponse struct {
	Skill     string `json:"skill"`
	Type      string `json:"type"`
	Rationale string `json:"rationale"`
}

// RationaleOptionsResponse lists the generator's choices.
type RationaleOptionsResponse struct {
	Skills []content.Option `json:"skills"`
	Types  []content.Option `json:"types"`
}

// PointValue is the signed delta for one target/polarity combination.
type PointValue struct {
	TargetSkill bool   `json:"target_skill"`
	Polarity    string `json:"polarity"`
	Points      int    `json:"points"`
}

// PointCardOptionsResponse lists the choices of a manual point entry.
type PointCardOptionsResponse struct {
	Skills           []content.Option `json:"skills"`
	InteractionTypes []content.Option `json:"interaction_types"`
	Polarities       []content.Option `json:"polarities"`
	Values           []PointValue     `json:"values"`
	LevelIIThreshold int              `json:"level_ii_threshold"`
}

// QuizTopicsResponse lists the topics that carry a quiz.
type QuizTopicsResponse struct {
	Topics []string `json:"topics"`
}

// QuizResult grades one quiz submission.
type QuizResult struct {
	Topic   string `json:"topic"`
	Correct []bool `json:"correct"`
	Score   int    `json:"score"`
	Total   int    `json:"total"`
	Passed  bool   `json:"passed"`
}
