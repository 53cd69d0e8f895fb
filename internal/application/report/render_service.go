package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kvk/backend/internal/domain/report"
	"github.com/kvk/backend/internal/domain/shared"
	"github.com/kvk/backend/internal/infrastructure/rendering"
	"github.com/kvk/backend/internal/infrastructure/storage"
)

// RenderService turns generated report documents into PDFs and optionally
// archives them.
type RenderService struct {
	reports     *ReportService
	htmlBuilder *rendering.HTMLBuilder
	pdfRenderer rendering.PDFRenderer
	archive     storage.ReportArchive
	timeout     time.Duration
	logger      *zap.Logger
}

// NewRenderService creates a new RenderService
func NewRenderService(
	reports *ReportService,
	htmlBuilder *rendering.HTMLBuilder,
	pdfRenderer rendering.PDFRenderer,
	archive storage.ReportArchive,
	timeout time.Duration,
	logger *zap.Logger,
) *RenderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RenderService{
		reports:     reports,
		htmlBuilder: htmlBuilder,
		pdfRenderer: pdfRenderer,
		archive:     archive,
		timeout:     timeout,
		logger:      logger,
	}
}

// RenderRequest is the report rendering request.
type RenderRequest struct {
	GenerateRequest
	// Format selects pdf (default) or html output
	Format string `json:"format" binding:"omitempty,oneof=pdf html"`
	// Orientation selects portrait (default) or landscape output
	Orientation string `json:"orientation"`
	// Archive stores the rendered PDF and returns a download URL instead
	// of inline bytes. Not available for html output.
	Archive bool `json:"archive"`
}

// RenderResponse carries the rendered output. Data is set for inline
// delivery; ArchiveKey and DownloadURL when archiving was requested.
type RenderResponse struct {
	ReportID    uuid.UUID `json:"report_id"`
	Data        []byte    `json:"-"`
	ContentType string    `json:"-"`
	PageCount   int       `json:"page_count"`
	ArchiveKey  string    `json:"archive_key,omitempty"`
	DownloadURL string    `json:"download_url,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
	FailedKvks  int       `json:"failed_kvks"`
	KvkCount    int       `json:"kvk_count"`
}

// RenderReport generates the document, renders it to PDF and optionally
// archives the result.
func (s *RenderService) RenderReport(ctx context.Context, caller report.Caller, req RenderRequest) (*RenderResponse, error) {
	doc, err := s.reports.GenerateReport(ctx, caller, req.GenerateRequest)
	if err != nil {
		return nil, err
	}

	html, err := s.htmlBuilder.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrRenderFailed, err)
	}

	if req.Format == "html" {
		if req.Archive {
			return nil, fmt.Errorf("%w: html output cannot be archived", shared.ErrInvalidInput)
		}
		return &RenderResponse{
			ReportID:    uuid.New(),
			Data:        []byte(html),
			ContentType: "text/html; charset=utf-8",
			FailedKvks:  doc.Metadata.FailedKvks,
			KvkCount:    doc.Metadata.KvkCount,
		}, nil
	}

	orientation := rendering.OrientationPortrait
	if req.Orientation == "landscape" {
		orientation = rendering.OrientationLandscape
	}
	result, err := s.pdfRenderer.Render(ctx, &rendering.RenderRequest{
		HTML:        html,
		PaperSize:   rendering.PaperSizeA4,
		Orientation: orientation,
		Margins:     rendering.DefaultMargins(),
		Title:       doc.Metadata.Title,
		Timeout:     s.timeout,
	})
	if err != nil {
		var renderErr *rendering.RenderError
		if errors.As(err, &renderErr) {
			s.logger.Error("pdf rendering failed",
				zap.String("code", renderErr.Code),
				zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrRenderFailed, err)
	}

	resp := &RenderResponse{
		ReportID:   uuid.New(),
		PageCount:  result.PageCount,
		FailedKvks: doc.Metadata.FailedKvks,
		KvkCount:   doc.Metadata.KvkCount,
	}

	if !req.Archive {
		resp.Data = result.PDFData
		resp.ContentType = "application/pdf"
		return resp, nil
	}

	stored, err := s.archive.Store(ctx, &storage.StoreRequest{
		ReportID:    resp.ReportID,
		PDFData:     result.PDFData,
		GeneratedAt: doc.Metadata.GeneratedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrArchiveFailed, err)
	}
	url, expiresAt, err := s.archive.GenerateDownloadURL(ctx, stored.Key, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrArchiveFailed, err)
	}

	resp.ArchiveKey = stored.Key
	resp.DownloadURL = url
	resp.ExpiresAt = expiresAt

	s.logger.Info("report rendered and archived",
		zap.String("report_id", resp.ReportID.String()),
		zap.String("archive_key", stored.Key),
		zap.Int("pages", result.PageCount))
	return resp, nil
}
