package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/pem-portal-api/internal/dto"
	appErrors "github.com/noah-isme/pem-portal-api/pkg/errors"
	"github.com/noah-isme/pem-portal-api/pkg/export"
)

// ExportFormat is a point card rendering.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

var pointCardHeaders = []string{"#", "Recorded At", "Skill", "Interaction", "Behavior", "Target", "Points"}

type pointCardSource interface {
	PointCard(ctx context.Context, actor Actor, id string) (*dto.PointCard, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportResult is a rendered point card ready to stream.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
	CacheHit    bool
}

// ExportService renders point cards and caches the output.
type ExportService struct {
	sessions pointCardSource
	cache    *CacheService
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(sessions pointCardSource, cache *CacheService, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{sessions: sessions, cache: cache, csv: csv, pdf: pdf, logger: logger}
}

// PointCard renders the session's point card in the requested format.
func (s *ExportService) PointCard(ctx context.Context, actor Actor, id string, format ExportFormat) (*ExportResult, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrInvalidInput, "format must be csv or pdf")
	}
	card, err := s.sessions.PointCard(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	payload, hit, err := s.cache.Remember(ctx, exportCacheKey(card, format), func() ([]byte, error) {
		return s.render(card, format)
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render point card")
	}

	s.logger.Debug("point card exported", zap.String("session_id", id), zap.String("format", string(format)), zap.Bool("cache_hit", hit))
	return &ExportResult{
		Filename:    fmt.Sprintf("point-card-%s.%s", card.Session.ID, format),
		ContentType: contentTypeFor(format),
		Payload:     payload,
		CacheHit:    hit,
	}, nil
}

// InvalidateSession drops every cached point card of a session. It matches
// SessionHook so it can run when a session's log is cleared.
func (s *ExportService) InvalidateSession(ctx context.Context, sessionID string) {
	if err := s.cache.Invalidate(ctx, exportCachePrefix(sessionID)+"*"); err != nil {
		s.logger.Warn("point card cache not invalidated", zap.String("session_id", sessionID), zap.Error(err))
	}
}

func (s *ExportService) render(card *dto.PointCard, format ExportFormat) ([]byte, error) {
	data := pointCardDataset(card)
	if format == ExportFormatPDF {
		return s.pdf.Render(data)
	}
	return s.csv.Render(data)
}

func pointCardDataset(card *dto.PointCard) export.Dataset {
	summary := card.Summary
	data := export.Dataset{
		Title: "PEM Point Card",
		Summary: []export.Field{
			{Label: "Session", Value: card.Session.ID},
			{Label: "Opened", Value: card.Session.CreatedAt.UTC().Format(time.RFC3339)},
			{Label: "Total Points", Value: strconv.Itoa(summary.TotalPoints)},
			{Label: "Level", Value: string(summary.Level)},
			{Label: "Status", Value: string(summary.Status)},
			{Label: "Progress to Level II", Value: strconv.Itoa(summary.ProgressPercent) + "%"},
		},
		Headers: pointCardHeaders,
		Rows:    make([]map[string]string, 0, len(card.Events)),
	}
	for _, event := range card.Events {
		target := "no"
		if event.TargetSkill {
			target = "yes"
		}
		data.Rows = append(data.Rows, map[string]string{
			"#":           strconv.Itoa(event.Sequence),
			"Recorded At": event.RecordedAt.UTC().Format(time.RFC3339),
			"Skill":       event.Skill.Label(),
			"Interaction": event.InteractionType.Label(),
			"Behavior":    event.Behavior,
			"Target":      target,
			"Points":      signed(event.Points),
		})
	}
	return data
}

// exportCacheKey identifies the log content rather than the revision
// counter, which restarts when a session is restored from storage. Event IDs
// are never reused, so count plus last ID pins the log.
func exportCacheKey(card *dto.PointCard, format ExportFormat) string {
	last := "empty"
	if n := len(card.Events); n > 0 {
		last = card.Events[n-1].ID
	}
	return fmt.Sprintf("%s%d:%s:%s", exportCachePrefix(card.Session.ID), len(card.Events), last, format)
}

func exportCachePrefix(sessionID string) string {
	return "export:" + sessionID + ":"
}

func contentTypeFor(format ExportFormat) string {
	if format == ExportFormatPDF {
		return "application/pdf"
	}
	return "text/csv; charset=utf-8"
}

func signed(points int) string {
	if points > 0 {
		return "+" + strconv.Itoa(points)
	}
	return strconv.Itoa(points)
}

