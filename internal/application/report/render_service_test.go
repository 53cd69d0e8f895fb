package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kvk/backend/internal/domain/report"
	"github.com/kvk/backend/internal/domain/shared"
	"github.com/kvk/backend/internal/infrastructure/rendering"
	"github.com/kvk/backend/internal/infrastructure/storage"
)

// fakePDFRenderer captures the HTML it was asked to render.
type fakePDFRenderer struct {
	lastHTML string
	fail     bool
}

func (f *fakePDFRenderer) Render(ctx context.Context, req *rendering.RenderRequest) (*rendering.RenderResult, error) {
	if f.fail {
		return nil, rendering.NewRenderError(rendering.ErrCodeRenderFailed, "browser crashed", nil)
	}
	f.lastHTML = req.HTML
	return &rendering.RenderResult{PDFData: []byte("%PDF-1.7 fake"), PageCount: 2}, nil
}

func (f *fakePDFRenderer) Close() error { return nil }

func newRenderService(t *testing.T, w *testWorld, store *fakeSectionStore, pdf *fakePDFRenderer) (*RenderService, *storage.StubReportArchive) {
	t.Helper()
	builder, err := rendering.NewHTMLBuilder()
	require.NoError(t, err)
	archive := storage.NewStubReportArchive("reports")
	svc := NewRenderService(newService(w, store), builder, pdf, archive, time.Minute, zap.NewNop())
	return svc, archive
}

func TestRenderReport(t *testing.T) {
	w := newTestWorld()
	joined := time.Date(2021, time.April, 5, 0, 0, 0, 0, time.UTC)
	born := time.Date(1980, time.January, 2, 0, 0, 0, 0, time.UTC)

	seed := func() *fakeSectionStore {
		store := newFakeSectionStore()
		store.employees[w.kvk1.ID] = []report.EmployeeRecord{
			{Name: "A Kaur", Designation: "SMS", DateOfJoining: &joined, DateOfBirth: &born},
		}
		return store
	}

	t.Run("inline pdf delivery", func(t *testing.T) {
		pdf := &fakePDFRenderer{}
		svc, _ := newRenderService(t, w, seed(), pdf)

		resp, err := svc.RenderReport(context.Background(), adminCaller(), RenderRequest{
			GenerateRequest: GenerateRequest{SectionIDs: []string{"1.3"}},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Data)
		assert.Equal(t, "application/pdf", resp.ContentType)
		assert.Equal(t, 2, resp.PageCount)
		assert.Empty(t, resp.DownloadURL)
		assert.Contains(t, pdf.lastHTML, "A Kaur")
	})

	t.Run("html format skips the pdf renderer", func(t *testing.T) {
		pdf := &fakePDFRenderer{}
		svc, _ := newRenderService(t, w, seed(), pdf)

		resp, err := svc.RenderReport(context.Background(), adminCaller(), RenderRequest{
			GenerateRequest: GenerateRequest{SectionIDs: []string{"1.3"}},
			Format:          "html",
		})
		require.NoError(t, err)
		assert.Equal(t, "text/html; charset=utf-8", resp.ContentType)
		assert.Contains(t, string(resp.Data), "A Kaur")
		assert.Empty(t, pdf.lastHTML)
	})

	t.Run("html format cannot be archived", func(t *testing.T) {
		svc, _ := newRenderService(t, w, seed(), &fakePDFRenderer{})

		_, err := svc.RenderReport(context.Background(), adminCaller(), RenderRequest{
			GenerateRequest: GenerateRequest{SectionIDs: []string{"1.3"}},
			Format:          "html",
			Archive:         true,
		})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("archived delivery returns a download url", func(t *testing.T) {
		pdf := &fakePDFRenderer{}
		svc, archive := newRenderService(t, w, seed(), pdf)

		resp, err := svc.RenderReport(context.Background(), adminCaller(), RenderRequest{
			GenerateRequest: GenerateRequest{SectionIDs: []string{"1.3"}},
			Archive:         true,
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Data)
		assert.NotEmpty(t, resp.ArchiveKey)
		assert.Contains(t, resp.DownloadURL, resp.ArchiveKey)

		data, ok := archive.Get(resp.ArchiveKey)
		require.True(t, ok)
		assert.Equal(t, []byte("%PDF-1.7 fake"), data)
	})

	t.Run("renderer failure maps to render error", func(t *testing.T) {
		svc, _ := newRenderService(t, w, seed(), &fakePDFRenderer{fail: true})

		_, err := svc.RenderReport(context.Background(), adminCaller(), RenderRequest{
			GenerateRequest: GenerateRequest{SectionIDs: []string{"1.3"}},
		})
		assert.ErrorIs(t, err, shared.ErrRenderFailed)
	})

	t.Run("generation errors pass through untouched", func(t *testing.T) {
		svc, _ := newRenderService(t, w, seed(), &fakePDFRenderer{})

		_, err := svc.RenderReport(context.Background(), districtCaller(w.districtA.ID), RenderRequest{
			GenerateRequest: GenerateRequest{
				SectionIDs: []string{"1.3"},
				Scope:      report.ScopeRequest{KvkIDs: []uuid.UUID{w.kvkOther.ID}},
			},
		})
		assert.ErrorIs(t, err, shared.ErrScopeForbidden)
	})
}
