// Package storage provides archive backends for rendered report PDFs.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReportArchive defines the interface for persisting rendered reports
type ReportArchive interface {
	// Store saves a rendered PDF and returns its archive key
	Store(ctx context.Context, req *StoreRequest) (*StoreResult, error)
	// GenerateDownloadURL returns a time-limited URL for a stored report
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
	// Delete removes an archived report
	Delete(ctx context.Context, key string) error
	// Exists checks whether an archived report is present
	Exists(ctx context.Context, key string) (bool, error)
}

// StoreRequest contains the parameters for archiving a rendered report
type StoreRequest struct {
	// ReportID identifies this rendering run
	ReportID uuid.UUID
	// PDFData is the raw PDF content
	PDFData []byte
	// GeneratedAt places the report in the year/month key layout
	GeneratedAt time.Time
}

// StoreResult contains the result of archiving a report
type StoreResult struct {
	// Key is the archive key the report was stored under
	Key string
	// Size is the stored size in bytes
	Size int64
}

// ArchiveKey builds the archive key for a report:
// {prefix}/{yyyy}/{mm}/{report_id}.pdf
func ArchiveKey(prefix string, reportID uuid.UUID, generatedAt time.Time) string {
	return fmt.Sprintf("%s/%d/%02d/%s.pdf", prefix, generatedAt.Year(), generatedAt.Month(), reportID)
}
