package storage

import (
	"context"
	"errors"
	"sync"
	"time"
)

// StubReportArchive keeps archived reports in memory. Use this for
// development and tests until a real backend (S3, MinIO, etc.) is wired.
type StubReportArchive struct {
	// BaseURL is the base URL for generated download URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
	prefix  string
}

// NewStubReportArchive creates a new StubReportArchive
func NewStubReportArchive(keyPrefix string) *StubReportArchive {
	return &StubReportArchive{
		BaseURL: "https://archive.example.com",
		objects: make(map[string][]byte),
		prefix:  keyPrefix,
	}
}

// Ensure StubReportArchive implements ReportArchive
var _ ReportArchive = (*StubReportArchive)(nil)

// Store keeps the PDF in memory under the year/month key layout
func (s *StubReportArchive) Store(ctx context.Context, req *StoreRequest) (*StoreResult, error) {
	if req == nil {
		return nil, errors.New("store request is nil")
	}
	if len(req.PDFData) == 0 {
		return nil, errors.New("pdf data is empty")
	}
	generatedAt := req.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	key := ArchiveKey(s.prefix, req.ReportID, generatedAt)

	s.mu.Lock()
	s.objects[key] = req.PDFData
	s.mu.Unlock()

	return &StoreResult{Key: key, Size: int64(len(req.PDFData))}, nil
}

// GenerateDownloadURL returns a stub URL for a stored report
func (s *StubReportArchive) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("archive key is required")
	}
	if expiresIn <= 0 {
		expiresIn = 15 * time.Minute
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/" + key + "?expires=" + expiresAt.Format(time.RFC3339), expiresAt, nil
}

// Delete removes a stored report
func (s *StubReportArchive) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("archive key is required")
	}
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// Exists reports whether a key was stored
func (s *StubReportArchive) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("archive key is required")
	}
	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	return ok, nil
}

// Get returns a stored report's bytes, for tests
func (s *StubReportArchive) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	data, ok := s.objects[key]
	s.mu.RUnlock()
	return data, ok
}
