package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appreport "github.com/kvk/backend/internal/application/report"
	"github.com/kvk/backend/internal/domain/report"
)

// ScopeHandler serves the caller's authorized scope and the cascading
// hierarchy options used to build a scope selection.
type ScopeHandler struct {
	BaseHandler
	reports *appreport.ReportService
}

// NewScopeHandler creates a new ScopeHandler
func NewScopeHandler(reports *appreport.ReportService) *ScopeHandler {
	return &ScopeHandler{reports: reports}
}

// RegisterRoutes registers scope routes on the given group
func (h *ScopeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	scope := rg.Group("/reports")
	{
		scope.GET("/scope", h.GetScope)
		scope.GET("/hierarchy/children", h.ListChildren)
		scope.GET("/kvks", h.ListKvks)
	}
}

// GetScope returns the caller's full authorized scope.
func (h *ScopeHandler) GetScope(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	scope, err := h.reports.GetScope(c.Request.Context(), caller)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, scope)
}

// ListChildren returns the authorized children of the given hierarchy
// level, optionally restricted to the given parents. The level names the
// level of the returned options, e.g. level=state&parent_ids=<zone-id>.
func (h *ScopeHandler) ListChildren(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	level := c.Query("level")
	if level == "" {
		h.BadRequest(c, "level query parameter is required")
		return
	}
	parentIDs, err := parseIDList(c.Query("parent_ids"))
	if err != nil {
		h.BadRequest(c, "parent_ids must be a comma-separated list of UUIDs")
		return
	}

	options, err := h.reports.ListChildren(c.Request.Context(), caller, level, parentIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, options)
}

// ListKvks returns the caller's authorized KVKs in canonical order,
// optionally narrowed by zone_ids/state_ids/district_ids/org_ids query
// parameters for partially-selected scopes.
func (h *ScopeHandler) ListKvks(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var scopeReq report.ScopeRequest
	var err error
	for param, dst := range map[string]*[]uuid.UUID{
		"zone_ids":     &scopeReq.ZoneIDs,
		"state_ids":    &scopeReq.StateIDs,
		"district_ids": &scopeReq.DistrictIDs,
		"org_ids":      &scopeReq.OrgIDs,
	} {
		if *dst, err = parseIDList(c.Query(param)); err != nil {
			h.BadRequest(c, param+" must be a comma-separated list of UUIDs")
			return
		}
	}

	options, err := h.reports.ListKvks(c.Request.Context(), caller, scopeReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, options)
}

// parseIDList splits a comma-separated UUID list. Empty input yields nil,
// which downstream code treats as "all authorized parents".
func parseIDList(raw string) ([]uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
