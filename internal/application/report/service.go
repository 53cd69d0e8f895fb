package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kvk/backend/internal/domain/hierarchy"
	"github.com/kvk/backend/internal/domain/report"
	"github.com/kvk/backend/internal/domain/shared"
)

// ReportService orchestrates report generation: section validation, scope
// resolution, per-section aggregation, and document assembly.
type ReportService struct {
	registry   *report.Registry
	resolver   *ScopeResolver
	aggregator *Aggregator
	hier       hierarchy.Repository
	loc        *time.Location
	logger     *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	registry *report.Registry,
	resolver *ScopeResolver,
	aggregator *Aggregator,
	hier hierarchy.Repository,
	loc *time.Location,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		registry:   registry,
		resolver:   resolver,
		aggregator: aggregator,
		hier:       hier,
		loc:        loc,
		logger:     logger,
	}
}

// GenerateRequest is the report generation request.
type GenerateRequest struct {
	Title      string              `json:"title"`
	SectionIDs []string            `json:"section_ids" binding:"required,min=1"`
	Scope      report.ScopeRequest `json:"scope"`
	Filter     report.RawFilter    `json:"filter"`
}

// SectionConfigResponse describes one catalog section for scope/filter UIs.
type SectionConfigResponse struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Format     string   `json:"format"`
	Columns    []string `json:"columns"`
	GroupBy    string   `json:"group_by,omitempty"`
	DateFields []string `json:"date_fields,omitempty"`
	YearFields []string `json:"year_fields,omitempty"`
}

// GetConfig returns the section catalog in catalog order.
func (s *ReportService) GetConfig() []SectionConfigResponse {
	sections := s.registry.List()
	out := make([]SectionConfigResponse, len(sections))
	for i, d := range sections {
		out[i] = SectionConfigResponse{
			ID:         d.ID,
			Title:      d.Title,
			Format:     string(d.Format),
			Columns:    d.Columns(),
			GroupBy:    d.GroupBy,
			DateFields: d.Filterable.DateFields,
			YearFields: d.Filterable.YearFields,
		}
	}
	return out
}

// GetScope returns the caller's authorized scope.
func (s *ReportService) GetScope(ctx context.Context, caller report.Caller) (*report.AuthorizedScope, error) {
	return s.resolver.AuthorizedScope(ctx, caller)
}

// ListChildren returns the authorized child options of the given level for
// cascading scope selection.
func (s *ReportService) ListChildren(ctx context.Context, caller report.Caller, level string, parentIDs []uuid.UUID) ([]hierarchy.Option, error) {
	lvl, ok := hierarchy.ParseLevel(level)
	if !ok {
		return nil, shared.ErrUnknownHierarchy
	}
	auth, err := s.resolver.AuthorizedScope(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.resolver.FilteredChildren(ctx, auth, lvl, parentIDs)
}

// ListKvks returns the caller's authorized KVKs in canonical order,
// optionally narrowed to a partial scope selection.
func (s *ReportService) ListKvks(ctx context.Context, caller report.Caller, scopeReq report.ScopeRequest) ([]hierarchy.Option, error) {
	auth, err := s.resolver.AuthorizedScope(ctx, caller)
	if err != nil {
		return nil, err
	}

	var kvks []hierarchy.Kvk
	if scopeReq.IsEmpty() {
		kvks, err = s.resolver.AuthorizedKvks(ctx, auth)
	} else {
		var scope *report.ResolvedScope
		scope, err = s.resolver.Resolve(ctx, auth, scopeReq)
		if err != nil {
			return nil, err
		}
		kvks, err = s.loadScopedKvks(ctx, auth, scope)
	}
	if err != nil {
		return nil, err
	}
	opts := make([]hierarchy.Option, len(kvks))
	for i, k := range kvks {
		opts[i] = hierarchy.Option{ID: k.ID, Name: k.Name}
	}
	return opts, nil
}

// GenerateReport assembles a report document for the caller. Unknown
// section ids and out-of-scope requests abort before any data is fetched;
// per-KVK fetch failures are recorded in the affected sections instead.
func (s *ReportService) GenerateReport(ctx context.Context, caller report.Caller, req GenerateRequest) (*report.Document, error) {
	if err := s.registry.ValidateIDs(req.SectionIDs); err != nil {
		return nil, err
	}

	auth, err := s.resolver.AuthorizedScope(ctx, caller)
	if err != nil {
		return nil, err
	}
	scope, err := s.resolver.Resolve(ctx, auth, req.Scope)
	if err != nil {
		return nil, err
	}
	kvks, err := s.loadScopedKvks(ctx, auth, scope)
	if err != nil {
		return nil, err
	}

	s.logger.Info("generating report",
		zap.String("user_id", caller.UserID.String()),
		zap.Strings("section_ids", req.SectionIDs),
		zap.Int("kvk_count", len(kvks)),
	)

	doc := &report.Document{
		Sections: make([]report.SectionPayload, 0, len(req.SectionIDs)),
	}
	for _, id := range req.SectionIDs {
		d, _ := s.registry.Get(id)
		filter := report.Normalize(req.Filter, d)
		payload, err := s.aggregator.AggregateSection(ctx, d, kvks, filter)
		if err != nil {
			return nil, err
		}
		doc.Sections = append(doc.Sections, *payload)
	}

	title := req.Title
	if title == "" {
		title = "KVK Report"
	}
	doc.Metadata = report.Metadata{
		Title:        title,
		GeneratedAt:  time.Now().In(s.loc),
		GeneratedBy:  caller.Name,
		ScopeSummary: scope.Summary(),
		KvkCount:     len(kvks),
	}
	doc.Metadata.FailedKvks = doc.FailedKvkCount()
	return doc, nil
}

// loadScopedKvks loads the resolved KVK entities preserving the canonical
// order of the resolved scope.
func (s *ReportService) loadScopedKvks(ctx context.Context, auth *report.AuthorizedScope, scope *report.ResolvedScope) ([]hierarchy.Kvk, error) {
	all, err := s.resolver.AuthorizedKvks(ctx, auth)
	if err != nil {
		return nil, fmt.Errorf("load scoped kvks: %w", err)
	}
	byID := make(map[uuid.UUID]hierarchy.Kvk, len(all))
	for _, k := range all {
		byID[k.ID] = k
	}
	kvks := make([]hierarchy.Kvk, 0, len(scope.KvkIDs))
	for _, id := range scope.KvkIDs {
		if k, ok := byID[id]; ok {
			kvks = append(kvks, k)
		}
	}
	return kvks, nil
}
