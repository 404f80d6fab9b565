package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pem-portal-api/internal/dto"
	"github.com/noah-isme/pem-portal-api/internal/models"
	"github.com/noah-isme/pem-portal-api/internal/service"
)

type listerMock struct{}

func (listerMock) List(ctx context.Context) []dto.SessionResponse {
	return []dto.SessionResponse{{Session: models.LedgerSession{ID: "s1"}}}
}

func TestAdminHandlerSessions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	metrics.SetActiveSessions(1)
	h := NewAdminHandler(listerMock{}, metrics)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/sessions", nil)
	h.Sessions(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data dto.AdminSessionsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Sessions, 1)
	assert.Equal(t, 1, envelope.Data.Metrics.ActiveSessions)
}

func TestMetricsHandlerReady(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ok := NewMetricsHandler(nil, map[string]ReadinessCheck{"postgres": func(ctx context.Context) error { return nil }})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
	ok.Ready(c)
	assert.Equal(t, http.StatusOK, w.Code)

	down := NewMetricsHandler(nil, map[string]ReadinessCheck{"redis": func(ctx context.Context) error { return errors.New("dial tcp: refused") }})
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
	down.Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "refused")
}

func TestMetricsHandlerPrometheus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMetricsHandler(service.NewMetricsService(), nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	h.Prometheus(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goroutines_total")
}
