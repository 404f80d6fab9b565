package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/pem-portal-api/internal/content"
	"github.com/noah-isme/pem-portal-api/internal/dto"
	"github.com/noah-isme/pem-portal-api/internal/ledger"
	"github.com/noah-isme/pem-portal-api/internal/models"
	appErrors "github.com/noah-isme/pem-portal-api/pkg/errors"
)

// quizPassRatio is the share of correct answers needed to pass a quiz.
const quizPassRatio = 0.8

// LanguageCheckRequest carries free text to screen.
type LanguageCheckRequest struct {
	Text string `json:"text" validate:"max=2000"`
}

// ABCAnalysisRequest is one ABC analyzer submission.
type ABCAnalysisRequest struct {
	Antecedent  string `json:"antecedent" validate:"required,antecedent"`
	Behavior    string `json:"behavior" validate:"required,max=500"`
	Consequence string `json:"consequence" validate:"required,consequence"`
}

// RationaleRequest selects a skill and rationale angle.
type RationaleRequest struct {
	Skill string `json:"skill" validate:"required,rationale_skill"`
	Type  string `json:"type" validate:"required,rationale_type"`
}

// QuizSubmission holds one chosen option index per question.
type QuizSubmission struct {
	Answers []int `json:"answers" validate:"required,dive,min=0"`
}

// CurriculumService runs the interactive curriculum tools.
type CurriculumService struct {
	validator *validator.Validate
	logger    *zap.Logger
}

var curriculumEnumTags = map[string]struct{}{
	"antecedent": {}, "consequence": {}, "rationale_skill": {}, "rationale_type": {},
}

// NewCurriculumService constructs the service and registers its enum checks.
func NewCurriculumService(validate *validator.Validate, logger *zap.Logger) *CurriculumService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	validate.RegisterValidation("antecedent", func(fl validator.FieldLevel) bool {
		return content.Antecedent(fl.Field().String()).Valid()
	})
	validate.RegisterValidation("consequence", func(fl validator.FieldLevel) bool {
		return content.ConsequenceType(fl.Field().String()).Valid()
	})
	validate.RegisterValidation("rationale_skill", func(fl validator.FieldLevel) bool {
		return content.RationaleSkill(fl.Field().String()).Valid()
	})
	validate.RegisterValidation("rationale_type", func(fl validator.FieldLevel) bool {
		return content.RationaleType(fl.Field().String()).Valid()
	})
	return &CurriculumService{validator: validate, logger: logger}
}

// CheckLanguage flags judgmental words in text.
func (s *CurriculumService) CheckLanguage(req LanguageCheckRequest) (*dto.LanguageCheckResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	terms := content.JudgmentalTerms(req.Text)
	resp := &dto.LanguageCheckResponse{Judgmental: len(terms) > 0, Terms: terms}
	if resp.Judgmental {
		resp.Advisory = content.JudgmentalAdvisory
	}
	return resp, nil
}

// AnalyzePattern phrases an ABC pattern back to the trainee. Judgmental
// behaviour text still gets an analysis, with an advisory attached.
func (s *CurriculumService) AnalyzePattern(req ABCAnalysisRequest) (*dto.ABCAnalysisResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	behavior := strings.TrimSpace(req.Behavior)
	if behavior == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "behavior is required")
	}
	resp := &dto.ABCAnalysisResponse{
		Analysis: content.Analysis(content.Antecedent(req.Antecedent), behavior, content.ConsequenceType(req.Consequence)),
	}
	if terms := content.JudgmentalTerms(behavior); len(terms) > 0 {
		resp.Advisory = content.JudgmentalAdvisory
		resp.JudgmentalTerms = terms
	}
	return resp, nil
}

// GenerateRationale returns the example rationale for the selection.
func (s *CurriculumService) GenerateRationale(req RationaleRequest) (*dto.RationaleResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	return &dto.RationaleResponse{
		Skill:     req.Skill,
		Type:      req.Type,
		Rationale: content.Rationale(content.RationaleSkill(req.Skill), content.RationaleType(req.Type)),
	}, nil
}

// RationaleOptions lists the generator's choices.
func (s *CurriculumService) RationaleOptions() dto.RationaleOptionsResponse {
	skills, kinds := content.RationaleOptions()
	return dto.RationaleOptionsResponse{Skills: skills, Types: kinds}
}

// PointCardOptions lists the skills, interaction types and polarities a point
// entry accepts, with the point value of every target/polarity pair.
func (s *CurriculumService) PointCardOptions() dto.PointCardOptionsResponse {
	resp := dto.PointCardOptionsResponse{LevelIIThreshold: ledger.LevelIIThreshold}
	for _, skill := range models.Skills() {
		resp.Skills = append(resp.Skills, content.Option{Value: string(skill), Label: skill.Label()})
	}
	for _, kind := range models.InteractionTypes() {
		resp.InteractionTypes = append(resp.InteractionTypes, content.Option{Value: string(kind), Label: kind.Label()})
	}
	for _, polarity := range models.Polarities() {
		resp.Polarities = append(resp.Polarities, content.Option{Value: string(polarity), Label: polarity.Label()})
	}
	for _, target := range []bool{true, false} {
		for _, polarity := range models.Polarities() {
			points, err := ledger.Delta(target, polarity)
			if err != nil {
				continue
			}
			resp.Values = append(resp.Values, dto.PointValue{TargetSkill: target, Polarity: string(polarity), Points: points})
		}
	}
	return resp
}

// QuizTopics lists the topics that carry a quiz.
func (s *CurriculumService) QuizTopics() dto.QuizTopicsResponse {
	return dto.QuizTopicsResponse{Topics: content.QuizTopics()}
}

// Quiz returns a topic's questions without answers.
func (s *CurriculumService) Quiz(topic string) (*content.Quiz, error) {
	quiz, ok := content.QuizFor(topic)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "quiz not found")
	}
	return &quiz, nil
}

// GradeQuiz scores a submission. One answer is required per question.
func (s *CurriculumService) GradeQuiz(topic string, sub QuizSubmission) (*dto.QuizResult, error) {
	quiz, ok := content.QuizFor(topic)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "quiz not found")
	}
	if err := s.validate(sub); err != nil {
		return nil, err
	}
	if len(sub.Answers) != len(quiz.Questions) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "answer count does not match question count")
	}

	result := &dto.QuizResult{Topic: quiz.Topic, Correct: make([]bool, len(quiz.Questions)), Total: len(quiz.Questions)}
	for i, q := range quiz.Questions {
		if sub.Answers[i] == q.Answer {
			result.Correct[i] = true
			result.Score++
		}
	}
	result.Passed = result.Total > 0 && float64(result.Score) >= quizPassRatio*float64(result.Total)
	s.logger.Debug("quiz graded", zap.String("topic", topic), zap.Int("score", result.Score), zap.Int("total", result.Total))
	return result, nil
}

func (s *CurriculumService) validate(req interface{}) error {
	return mapValidation(s.validator.Struct(req), curriculumEnumTags)
}
