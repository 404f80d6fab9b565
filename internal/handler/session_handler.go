package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pem-portal-api/internal/dto"
	"github.com/noah-isme/pem-portal-api/internal/middleware"
	"github.com/noah-isme/pem-portal-api/internal/models"
	"github.com/noah-isme/pem-portal-api/internal/service"
	appErrors "github.com/noah-isme/pem-portal-api/pkg/errors"
	"github.com/noah-isme/pem-portal-api/pkg/response"
)

type sessionService interface {
	Create(ctx context.Context, actor service.Actor) (*dto.SessionResponse, error)
	Summary(ctx context.Context, actor service.Actor, id string) (*dto.SessionResponse, error)
	AppendEvent(ctx context.Context, actor service.Actor, id string, req service.AppendEventRequest) (*dto.AppendEventResponse, error)
	Events(ctx context.Context, actor service.Actor, id string, page, pageSize int) ([]models.PointEvent, *models.Pagination, error)
	Reset(ctx context.Context, actor service.Actor, id string) (*dto.SessionResponse, error)
	End(ctx context.Context, actor service.Actor, id string) error
}

type pointCardExporter interface {
	PointCard(ctx context.Context, actor service.Actor, id string, format service.ExportFormat) (*service.ExportResult, error)
}

// ResetRequest must confirm the destructive reset explicitly.
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// SessionHandler exposes the point ledger.
type SessionHandler struct {
	sessions sessionService
	exports  pointCardExporter
}

// NewSessionHandler builds a session handler.
func NewSessionHandler(sessions sessionService, exports pointCardExporter) *SessionHandler {
	return &SessionHandler{sessions: sessions, exports: exports}
}

// Create godoc
// @Summary Open a ledger session
// @Tags Sessions
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	if h.sessions == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	resp, err := h.sessions.Create(c.Request.Context(), actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Get godoc
// @Summary Get session summary
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	if h.sessions == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	resp, err := h.sessions.Summary(c.Request.Context(), actorFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// AppendEvent godoc
// @Summary Record a point entry
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body service.AppendEventRequest true "Point entry"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sessions/{id}/events [post]
func (h *SessionHandler) AppendEvent(c *gin.Context) {
	if h.sessions == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.AppendEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid point entry payload"))
		return
	}
	resp, err := h.sessions.AppendEvent(c.Request.Context(), actorFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// ListEvents godoc
// @Summary List the point log
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/events [get]
func (h *SessionHandler) ListEvents(c *gin.Context) {
	if h.sessions == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	events, pagination, err := h.sessions.Events(c.Request.Context(), actorFromContext(c), c.Param("id"), queryInt(c, "page", 1), queryInt(c, "page_size", 50))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, pagination)
}

// Reset godoc
// @Summary Clear the point log
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body ResetRequest true "Confirmation"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sessions/{id}/reset [post]
func (h *SessionHandler) Reset(c *gin.Context) {
	if h.sessions == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reset payload"))
		return
	}
	if !req.Confirm {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "reset must be confirmed"))
		return
	}
	resp, err := h.sessions.Reset(c.Request.Context(), actorFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// End godoc
// @Summary End a session
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204
// @Router /sessions/{id} [delete]
func (h *SessionHandler) End(c *gin.Context) {
	if h.sessions == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	if err := h.sessions.End(c.Request.Context(), actorFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Download the point card
// @Tags Sessions
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Session ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /sessions/{id}/export [get]
func (h *SessionHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV)))
	result, err := h.exports.PointCard(c.Request.Context(), actorFromContext(c), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, result.CacheHit)
	cacheState := "MISS"
	if result.CacheHit {
		cacheState = "HIT"
	}
	c.Header("X-Cache", cacheState)
	response.Attachment(c, result.Filename, result.ContentType, result.Payload)
}
