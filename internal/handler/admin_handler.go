package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pem-portal-api/internal/dto"
	"github.com/noah-isme/pem-portal-api/internal/middleware"
	appErrors "github.com/noah-isme/pem-portal-api/pkg/errors"
	"github.com/noah-isme/pem-portal-api/pkg/response"
)

type sessionLister interface {
	List(ctx context.Context) []dto.SessionResponse
}

type metricsSnapshotter interface {
	Snapshot() dto.MetricsSnapshot
}

// AdminHandler exposes operator views.
type AdminHandler struct {
	sessions sessionLister
	metrics  metricsSnapshotter
}

// NewAdminHandler builds an admin handler.
func NewAdminHandler(sessions sessionLister, metrics metricsSnapshotter) *AdminHandler {
	return &AdminHandler{sessions: sessions, metrics: metrics}
}

// Sessions godoc
// @Summary List in-memory sessions
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/sessions [get]
func (h *AdminHandler) Sessions(c *gin.Context) {
	if h.sessions == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	resp := dto.AdminSessionsResponse{Sessions: h.sessions.List(c.Request.Context())}
	if h.metrics != nil {
		resp.Metrics = h.metrics.Snapshot()
	}
	response.JSON(c, http.StatusOK, resp, nil, middleware.ExtractMeta(c))
}
