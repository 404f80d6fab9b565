package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pem-portal-api/internal/dto"
	"github.com/noah-isme/pem-portal-api/internal/models"
	appErrors "github.com/noah-isme/pem-portal-api/pkg/errors"
	"github.com/noah-isme/pem-portal-api/pkg/export"
)

type countingPDF struct {
	calls int
	last  export.Dataset
}

func (c *countingPDF) Render(data export.Dataset) ([]byte, error) {
	c.calls++
	c.last = data
	return []byte("%PDF-fake"), nil
}

type stubCardSource struct {
	card *dto.PointCard
	err  error
}

func (s *stubCardSource) PointCard(ctx context.Context, actor Actor, id string) (*dto.PointCard, error) {
	return s.card, s.err
}

func seededSessionService(t *testing.T) (*SessionService, string) {
	t.Helper()
	svc := newTestSessionService(nil, SessionConfig{})
	ctx := context.Background()
	created, err := svc.Create(ctx, Actor{})
	require.NoError(t, err)
	_, err = svc.AppendEvent(ctx, Actor{}, created.Session.ID, praise(models.SkillFollowingInstructions, true))
	require.NoError(t, err)
	_, err = svc.AppendEvent(ctx, Actor{}, created.Session.ID, correction(models.SkillSelfControl, false, "threw a pencil, then apologised"))
	require.NoError(t, err)
	return svc, created.Session.ID
}

func TestExportServiceCSV(t *testing.T) {
	sessions, id := seededSessionService(t)
	svc := NewExportService(sessions, nil, nil, nil, nil)

	result, err := svc.PointCard(context.Background(), Actor{}, id, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "point-card-"+id+".csv", result.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", result.ContentType)
	assert.False(t, result.CacheHit)

	records, err := csv.NewReader(bytes.NewReader(result.Payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, pointCardHeaders, records[0])
	assert.Equal(t, "Following Instructions", records[1][2])
	assert.Equal(t, "+100", records[1][6])
	assert.Equal(t, "threw a pencil, then apologised", records[2][4])
	assert.Equal(t, "-100", records[2][6])
}

func TestExportServicePDFIsCachedByLogContent(t *testing.T) {
	sessions, id := seededSessionService(t)
	pdf := &countingPDF{}
	cache := NewCacheService(newMemoryCacheRepo(), nil, 0, nil, true)
	svc := NewExportService(sessions, cache, nil, nil, pdf)
	ctx := context.Background()

	first, err := svc.PointCard(ctx, Actor{}, id, ExportFormatPDF)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	assert.Equal(t, "application/pdf", first.ContentType)
	assert.Equal(t, "PEM Point Card", pdf.last.Title)

	second, err := svc.PointCard(ctx, Actor{}, id, ExportFormatPDF)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Payload, second.Payload)
	assert.Equal(t, 1, pdf.calls)

	_, err = sessions.AppendEvent(ctx, Actor{}, id, praise(models.SkillTaskCompletion, false))
	require.NoError(t, err)
	third, err := svc.PointCard(ctx, Actor{}, id, ExportFormatPDF)
	require.NoError(t, err)
	assert.False(t, third.CacheHit)
	assert.Equal(t, 2, pdf.calls)
}

func TestExportServiceInvalidatedOnResetAndEnd(t *testing.T) {
	sessions, id := seededSessionService(t)
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, nil, 0, nil, true)
	svc := NewExportService(sessions, cache, nil, nil, &countingPDF{})
	sessions.OnClear(svc.InvalidateSession)
	ctx := context.Background()

	other, err := sessions.Create(ctx, Actor{})
	require.NoError(t, err)
	_, err = svc.PointCard(ctx, Actor{}, id, ExportFormatCSV)
	require.NoError(t, err)
	_, err = svc.PointCard(ctx, Actor{}, other.Session.ID, ExportFormatCSV)
	require.NoError(t, err)
	require.Len(t, repo.items, 2)

	_, err = sessions.Reset(ctx, Actor{}, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"export:" + id + ":*"}, repo.deleted)
	assert.Len(t, repo.items, 1)

	require.NoError(t, sessions.End(ctx, Actor{}, other.Session.ID))
	assert.Empty(t, repo.items)
	assert.Len(t, repo.deleted, 2)
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&stubCardSource{}, nil, nil, nil, nil)
	_, err := svc.PointCard(context.Background(), Actor{}, "id", ExportFormat("xlsx"))
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidInput))
}

func TestExportServicePropagatesSessionErrors(t *testing.T) {
	svc := NewExportService(&stubCardSource{err: appErrors.Clone(appErrors.ErrNotFound, "session not found")}, nil, nil, nil, nil)
	_, err := svc.PointCard(context.Background(), Actor{}, "id", ExportFormatCSV)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestExportCacheKeyChangesAfterReset(t *testing.T) {
	card := &dto.PointCard{Session: models.LedgerSession{ID: "s1"}, Events: []models.PointEvent{{ID: "e1"}}}
	before := exportCacheKey(card, ExportFormatCSV)
	card.Events = []models.PointEvent{{ID: "e2"}}
	assert.NotEqual(t, before, exportCacheKey(card, ExportFormatCSV))
	card.Events = nil
	assert.Equal(t, "export:s1:0:empty:csv", exportCacheKey(card, ExportFormatCSV))
}

func TestSigned(t *testing.T) {
	assert.Equal(t, "+50", signed(50))
	assert.Equal(t, "-200", signed(-200))
}
