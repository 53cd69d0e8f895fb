package report

import (
	"fmt"

	"github.com/google/uuid"
)

// Role names carried in the caller context.
const (
	RoleAdmin        = "admin"
	RoleZone         = "zone"
	RoleState        = "state"
	RoleDistrict     = "district"
	RoleOrganization = "organization"
	RoleKvk          = "kvk"
)

// Caller is the resolved authentication context this subsystem consumes.
// Only the home id matching the role is expected to be set; an admin has
// no home node.
type Caller struct {
	UserID         uuid.UUID  `json:"user_id"`
	Name           string     `json:"name"`
	Role           string     `json:"role"`
	HomeZoneID     *uuid.UUID `json:"home_zone_id,omitempty"`
	HomeStateID    *uuid.UUID `json:"home_state_id,omitempty"`
	HomeDistrictID *uuid.UUID `json:"home_district_id,omitempty"`
	HomeOrgID      *uuid.UUID `json:"home_org_id,omitempty"`
	HomeKvkID      *uuid.UUID `json:"home_kvk_id,omitempty"`
}

// ScopeRequest is a sparse selection over the hierarchy. The most specific
// populated level wins for KVK derivation.
type ScopeRequest struct {
	ZoneIDs     []uuid.UUID `json:"zone_ids,omitempty"`
	StateIDs    []uuid.UUID `json:"state_ids,omitempty"`
	DistrictIDs []uuid.UUID `json:"district_ids,omitempty"`
	OrgIDs      []uuid.UUID `json:"org_ids,omitempty"`
	KvkIDs      []uuid.UUID `json:"kvk_ids,omitempty"`
}

// IsEmpty reports whether no level was supplied.
func (r ScopeRequest) IsEmpty() bool {
	return len(r.ZoneIDs) == 0 && len(r.StateIDs) == 0 && len(r.DistrictIDs) == 0 &&
		len(r.OrgIDs) == 0 && len(r.KvkIDs) == 0
}

// AuthorizedScope is the set of hierarchy nodes a caller may query,
// derived once per request from role and home node.
type AuthorizedScope struct {
	Role        string      `json:"role"`
	ZoneIDs     []uuid.UUID `json:"zone_ids"`
	StateIDs    []uuid.UUID `json:"state_ids"`
	DistrictIDs []uuid.UUID `json:"district_ids"`
	OrgIDs      []uuid.UUID `json:"org_ids"`
	KvkIDs      []uuid.UUID `json:"kvk_ids"`
}

// AllowsKvk reports whether the KVK is inside the authorized scope.
func (a *AuthorizedScope) AllowsKvk(id uuid.UUID) bool {
	for _, k := range a.KvkIDs {
		if k == id {
			return true
		}
	}
	return false
}

// ResolvedScope is the flattened KVK target set of a report request plus
// the audit record of which levels derived it.
type ResolvedScope struct {
	// KvkIDs is the deduplicated target set in canonical order. Row
	// ordering of every aggregated section follows this order.
	KvkIDs []uuid.UUID `json:"kvk_ids"`
	// DerivedFrom names the hierarchy level whose ids were used for
	// expansion ("" when the request was empty and the whole authorized
	// scope was taken).
	DerivedFrom string `json:"derived_from,omitempty"`
	// Requested retains the original request for audit/display, including
	// less specific levels that were ignored for derivation.
	Requested ScopeRequest `json:"requested"`
}

// Summary renders a short human-readable description for report metadata.
func (s *ResolvedScope) Summary() string {
	if s.DerivedFrom == "" {
		return fmt.Sprintf("full authorized scope (%d KVKs)", len(s.KvkIDs))
	}
	return fmt.Sprintf("%d KVKs selected by %s", len(s.KvkIDs), s.DerivedFrom)
}
