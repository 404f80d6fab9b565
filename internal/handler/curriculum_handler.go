package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pem-portal-api/internal/content"
	"github.com/noah-isme/pem-portal-api/internal/dto"
	"github.com/noah-isme/pem-portal-api/internal/models"
	"github.com/noah-isme/pem-portal-api/internal/service"
	appErrors "github.com/noah-isme/pem-portal-api/pkg/errors"
	"github.com/noah-isme/pem-portal-api/pkg/response"
)

type curriculumService interface {
	CheckLanguage(req service.LanguageCheckRequest) (*dto.LanguageCheckResponse, error)
	AnalyzePattern(req service.ABCAnalysisRequest) (*dto.ABCAnalysisResponse, error)
	GenerateRationale(req service.RationaleRequest) (*dto.RationaleResponse, error)
	RationaleOptions() dto.RationaleOptionsResponse
	PointCardOptions() dto.PointCardOptionsResponse
	QuizTopics() dto.QuizTopicsResponse
	Quiz(topic string) (*content.Quiz, error)
	GradeQuiz(topic string, sub service.QuizSubmission) (*dto.QuizResult, error)
}

// CurriculumHandler serves the training modules and their interactive tools.
type CurriculumHandler struct {
	service curriculumService
}

// NewCurriculumHandler builds a curriculum handler.
func NewCurriculumHandler(service curriculumService) *CurriculumHandler {
	return &CurriculumHandler{service: service}
}

// Modules godoc
// @Summary List curriculum modules
// @Tags Curriculum
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /curriculum/modules [get]
func (h *CurriculumHandler) Modules(c *gin.Context) {
	response.JSON(c, http.StatusOK, content.Modules(), nil)
}

// Foundations godoc
// @Summary Foundations and hallmarks
// @Tags Curriculum
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /curriculum/foundations [get]
func (h *CurriculumHandler) Foundations(c *gin.Context) {
	response.JSON(c, http.StatusOK, content.FoundationsContent(), nil)
}

// ABC godoc
// @Summary ABC reference material
// @Tags Curriculum
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /curriculum/abc [get]
func (h *CurriculumHandler) ABC(c *gin.Context) {
	response.JSON(c, http.StatusOK, content.ABC(), nil)
}

// Levels godoc
// @Summary Motivation system levels
// @Tags Curriculum
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /curriculum/levels [get]
func (h *CurriculumHandler) Levels(c *gin.Context) {
	response.JSON(c, http.StatusOK, content.Levels(), nil)
}

// Professionalism godoc
// @Summary Professionalism and boundaries
// @Tags Curriculum
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /curriculum/professionalism [get]
func (h *CurriculumHandler) Professionalism(c *gin.Context) {
	response.JSON(c, http.StatusOK, content.ProfessionalismContent(), nil)
}

// Interaction godoc
// @Summary Teaching interaction steps
// @Tags Curriculum
// @Produce json
// @Param type path string true "proactive_teaching, effective_praise or corrective_teaching"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /curriculum/interactions/{type} [get]
func (h *CurriculumHandler) Interaction(c *gin.Context) {
	guide, ok := content.Interaction(models.InteractionType(c.Param("type")))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "interaction type not found"))
		return
	}
	response.JSON(c, http.StatusOK, guide, nil)
}

// LanguageCheck godoc
// @Summary Screen text for judgmental language
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param payload body service.LanguageCheckRequest true "Text"
// @Success 200 {object} response.Envelope
// @Router /curriculum/language-check [post]
func (h *CurriculumHandler) LanguageCheck(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.LanguageCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid language check payload"))
		return
	}
	resp, err := h.service.CheckLanguage(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// AnalyzeABC godoc
// @Summary Analyze an ABC pattern
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param payload body service.ABCAnalysisRequest true "Pattern"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /curriculum/abc/analyze [post]
func (h *CurriculumHandler) AnalyzeABC(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.ABCAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid ABC payload"))
		return
	}
	resp, err := h.service.AnalyzePattern(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// RationaleOptions godoc
// @Summary Rationale generator choices
// @Tags Curriculum
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /curriculum/rationale [get]
func (h *CurriculumHandler) RationaleOptions(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	response.JSON(c, http.StatusOK, h.service.RationaleOptions(), nil)
}

// GenerateRationale godoc
// @Summary Generate a rationale
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param payload body service.RationaleRequest true "Selection"
// @Success 200 {object} response.Envelope
// @Router /curriculum/rationale [post]
func (h *CurriculumHandler) GenerateRationale(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.RationaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rationale payload"))
		return
	}
	resp, err := h.service.GenerateRationale(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// PointCardOptions godoc
// @Summary Point entry choices and values
// @Description Skills, interaction types and polarities accepted by a point entry, with the value of each target/polarity pair
// @Tags Curriculum
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /curriculum/point-card [get]
func (h *CurriculumHandler) PointCardOptions(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	response.JSON(c, http.StatusOK, h.service.PointCardOptions(), nil)
}

// QuizTopics godoc
// @Summary List quiz topics
// @Tags Curriculum
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /curriculum/quizzes [get]
func (h *CurriculumHandler) QuizTopics(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	response.JSON(c, http.StatusOK, h.service.QuizTopics(), nil)
}

// Quiz godoc
// @Summary Get a knowledge check
// @Tags Curriculum
// @Produce json
// @Param topic path string true "Quiz topic"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /curriculum/quizzes/{topic} [get]
func (h *CurriculumHandler) Quiz(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	quiz, err := h.service.Quiz(c.Param("topic"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quiz, nil)
}

// GradeQuiz godoc
// @Summary Grade a knowledge check
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param topic path string true "Quiz topic"
// @Param payload body service.QuizSubmission true "Answers"
// @Success 200 {object} response.Envelope
// @Router /curriculum/quizzes/{topic}/grade [post]
func (h *CurriculumHandler) GradeQuiz(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var sub service.QuizSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid quiz submission"))
		return
	}
	result, err := h.service.GradeQuiz(c.Param("topic"), sub)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
