package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kvk/backend/internal/domain/hierarchy"
	"github.com/kvk/backend/internal/domain/report"
	"github.com/kvk/backend/internal/domain/shared"
)

// ScopeResolver expands caller authorization and report scope requests
// into concrete KVK target sets.
type ScopeResolver struct {
	hier hierarchy.Repository
}

// NewScopeResolver creates a new ScopeResolver
func NewScopeResolver(hier hierarchy.Repository) *ScopeResolver {
	return &ScopeResolver{hier: hier}
}

// AuthorizedScope materializes the set of hierarchy nodes the caller may
// query, walking down from the caller's home node. Admins get the full
// hierarchy. Levels above the home node stay empty: the caller holds no
// authorization there, so Resolve rejects requests pinned above home. The
// KVK list comes back in canonical order (name ascending), which every
// report reuses for row ordering.
func (r *ScopeResolver) AuthorizedScope(ctx context.Context, caller report.Caller) (*report.AuthorizedScope, error) {
	var zoneIDs, stateIDs, districtIDs, orgIDs []uuid.UUID

	switch caller.Role {
	case report.RoleAdmin:
		zones, err := r.hier.ListZones(ctx)
		if err != nil {
			return nil, fmt.Errorf("list zones: %w", err)
		}
		zoneIDs = zoneUUIDs(zones)
	case report.RoleZone:
		if caller.HomeZoneID == nil {
			return nil, shared.ErrUnauthorized
		}
		zoneIDs = []uuid.UUID{*caller.HomeZoneID}
	case report.RoleState:
		if caller.HomeStateID == nil {
			return nil, shared.ErrUnauthorized
		}
		stateIDs = []uuid.UUID{*caller.HomeStateID}
	case report.RoleDistrict:
		if caller.HomeDistrictID == nil {
			return nil, shared.ErrUnauthorized
		}
		districtIDs = []uuid.UUID{*caller.HomeDistrictID}
	case report.RoleOrganization:
		if caller.HomeOrgID == nil {
			return nil, shared.ErrUnauthorized
		}
		orgIDs = []uuid.UUID{*caller.HomeOrgID}
	case report.RoleKvk:
		if caller.HomeKvkID == nil {
			return nil, shared.ErrUnauthorized
		}
		kvk, err := r.hier.GetKvk(ctx, *caller.HomeKvkID)
		if err != nil {
			return nil, fmt.Errorf("load home kvk: %w", err)
		}
		return &report.AuthorizedScope{
			Role:   caller.Role,
			OrgIDs: []uuid.UUID{kvk.OrganizationID},
			KvkIDs: []uuid.UUID{kvk.ID},
		}, nil
	default:
		return nil, shared.ErrUnauthorized
	}

	// Walk the remaining levels down to KVKs. Each step expands a level
	// only from a populated parent level: the repository treats an empty
	// parent list as "all parents", which must never leak into the walk.
	// An empty subtree therefore stops the walk with an empty KVK set.
	if len(stateIDs) == 0 && len(zoneIDs) > 0 {
		states, err := r.hier.ListStates(ctx, zoneIDs)
		if err != nil {
			return nil, fmt.Errorf("list states: %w", err)
		}
		stateIDs = stateUUIDs(states)
	}
	if len(districtIDs) == 0 && len(stateIDs) > 0 {
		districts, err := r.hier.ListDistricts(ctx, stateIDs)
		if err != nil {
			return nil, fmt.Errorf("list districts: %w", err)
		}
		districtIDs = districtUUIDs(districts)
	}
	if len(orgIDs) == 0 && len(districtIDs) > 0 {
		orgs, err := r.hier.ListOrganizations(ctx, districtIDs)
		if err != nil {
			return nil, fmt.Errorf("list organizations: %w", err)
		}
		orgIDs = orgUUIDs(orgs)
	}
	var kvkIDs []uuid.UUID
	if len(orgIDs) > 0 {
		kvks, err := r.hier.ListKvks(ctx, orgIDs)
		if err != nil {
			return nil, fmt.Errorf("list kvks: %w", err)
		}
		kvkIDs = kvkUUIDs(kvks)
	}

	return &report.AuthorizedScope{
		Role:        caller.Role,
		ZoneIDs:     zoneIDs,
		StateIDs:    stateIDs,
		DistrictIDs: districtIDs,
		OrgIDs:      orgIDs,
		KvkIDs:      kvkIDs,
	}, nil
}

// Resolve expands a scope request into the flattened KVK target set. The
// most specific populated level wins; less specific levels are retained
// for audit but ignored for derivation. Requested ids are intersected
// with the caller's authorization at the requested level: a request with
// no authorized nodes at all is rejected, a partially authorized one is
// silently narrowed, and an authorized subtree that happens to contain
// zero KVKs resolves to an empty target set so the caller gets an empty
// report rather than an error.
func (r *ScopeResolver) Resolve(ctx context.Context, auth *report.AuthorizedScope, req report.ScopeRequest) (*report.ResolvedScope, error) {
	if req.IsEmpty() {
		return &report.ResolvedScope{
			KvkIDs:    auth.KvkIDs,
			Requested: req,
		}, nil
	}

	var (
		candidates  []uuid.UUID
		derivedFrom hierarchy.Level
		err         error
	)
	switch {
	case len(req.KvkIDs) > 0:
		derivedFrom = hierarchy.LevelKvk
		candidates = intersectIDs(req.KvkIDs, auth.KvkIDs)
		if len(candidates) == 0 {
			return nil, shared.ErrScopeForbidden
		}
	case len(req.OrgIDs) > 0:
		derivedFrom = hierarchy.LevelOrganization
		allowed := intersectIDs(req.OrgIDs, auth.OrgIDs)
		if len(allowed) == 0 {
			return nil, shared.ErrScopeForbidden
		}
		candidates, err = r.expandKvks(ctx, allowed)
	case len(req.DistrictIDs) > 0:
		derivedFrom = hierarchy.LevelDistrict
		allowed := intersectIDs(req.DistrictIDs, auth.DistrictIDs)
		if len(allowed) == 0 {
			return nil, shared.ErrScopeForbidden
		}
		candidates, err = r.expandFromDistricts(ctx, allowed)
	case len(req.StateIDs) > 0:
		derivedFrom = hierarchy.LevelState
		allowed := intersectIDs(req.StateIDs, auth.StateIDs)
		if len(allowed) == 0 {
			return nil, shared.ErrScopeForbidden
		}
		candidates, err = r.expandFromStates(ctx, allowed)
	case len(req.ZoneIDs) > 0:
		derivedFrom = hierarchy.LevelZone
		allowed := intersectIDs(req.ZoneIDs, auth.ZoneIDs)
		if len(allowed) == 0 {
			return nil, shared.ErrScopeForbidden
		}
		candidates, err = r.expandFromZones(ctx, allowed)
	}
	if err != nil {
		return nil, err
	}

	// Intersect with the authorized KVK set, preserving the canonical
	// order of the authorized list so siblings always appear in the same
	// sequence.
	requested := idSet(candidates)
	var kvkIDs []uuid.UUID
	for _, id := range auth.KvkIDs {
		if _, ok := requested[id]; ok {
			kvkIDs = append(kvkIDs, id)
		}
	}

	return &report.ResolvedScope{
		KvkIDs:      kvkIDs,
		DerivedFrom: string(derivedFrom),
		Requested:   req,
	}, nil
}

// FilteredChildren lists the children of the given parent nodes that fall
// inside the authorized scope, for cascading scope dropdowns. An empty
// parent list means all authorized parents.
func (r *ScopeResolver) FilteredChildren(ctx context.Context, auth *report.AuthorizedScope, level hierarchy.Level, parentIDs []uuid.UUID) ([]hierarchy.Option, error) {
	child, ok := level.Child()
	if !ok {
		return nil, shared.ErrUnknownHierarchy
	}

	switch child {
	case hierarchy.LevelState:
		parents := intersectIDs(parentIDs, auth.ZoneIDs)
		if len(parents) == 0 {
			return nil, nil
		}
		states, err := r.hier.ListStates(ctx, parents)
		if err != nil {
			return nil, err
		}
		allowed := idSet(auth.StateIDs)
		var opts []hierarchy.Option
		for _, s := range states {
			if _, ok := allowed[s.ID]; ok {
				opts = append(opts, hierarchy.Option{ID: s.ID, Name: s.Name})
			}
		}
		return opts, nil
	case hierarchy.LevelDistrict:
		parents := intersectIDs(parentIDs, auth.StateIDs)
		if len(parents) == 0 {
			return nil, nil
		}
		districts, err := r.hier.ListDistricts(ctx, parents)
		if err != nil {
			return nil, err
		}
		allowed := idSet(auth.DistrictIDs)
		var opts []hierarchy.Option
		for _, d := range districts {
			if _, ok := allowed[d.ID]; ok {
				opts = append(opts, hierarchy.Option{ID: d.ID, Name: d.Name})
			}
		}
		return opts, nil
	case hierarchy.LevelOrganization:
		parents := intersectIDs(parentIDs, auth.DistrictIDs)
		if len(parents) == 0 {
			return nil, nil
		}
		orgs, err := r.hier.ListOrganizations(ctx, parents)
		if err != nil {
			return nil, err
		}
		allowed := idSet(auth.OrgIDs)
		var opts []hierarchy.Option
		for _, o := range orgs {
			if _, ok := allowed[o.ID]; ok {
				opts = append(opts, hierarchy.Option{ID: o.ID, Name: o.Name})
			}
		}
		return opts, nil
	case hierarchy.LevelKvk:
		parents := intersectIDs(parentIDs, auth.OrgIDs)
		if len(parents) == 0 {
			return nil, nil
		}
		kvks, err := r.hier.ListKvks(ctx, parents)
		if err != nil {
			return nil, err
		}
		allowed := idSet(auth.KvkIDs)
		var opts []hierarchy.Option
		for _, k := range kvks {
			if _, ok := allowed[k.ID]; ok {
				opts = append(opts, hierarchy.Option{ID: k.ID, Name: k.Name})
			}
		}
		return opts, nil
	}
	return nil, shared.ErrUnknownHierarchy
}

// AuthorizedKvks loads the KVK entities of the authorized scope in
// canonical order.
func (r *ScopeResolver) AuthorizedKvks(ctx context.Context, auth *report.AuthorizedScope) ([]hierarchy.Kvk, error) {
	if len(auth.OrgIDs) == 0 {
		return nil, nil
	}
	kvks, err := r.hier.ListKvks(ctx, auth.OrgIDs)
	if err != nil {
		return nil, err
	}
	allowed := idSet(auth.KvkIDs)
	out := make([]hierarchy.Kvk, 0, len(kvks))
	for _, k := range kvks {
		if _, ok := allowed[k.ID]; ok {
			out = append(out, k)
		}
	}
	return out, nil
}

func (r *ScopeResolver) expandFromZones(ctx context.Context, zoneIDs []uuid.UUID) ([]uuid.UUID, error) {
	states, err := r.hier.ListStates(ctx, zoneIDs)
	if err != nil {
		return nil, err
	}
	return r.expandFromStates(ctx, stateUUIDs(states))
}

func (r *ScopeResolver) expandFromStates(ctx context.Context, stateIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(stateIDs) == 0 {
		return nil, nil
	}
	districts, err := r.hier.ListDistricts(ctx, stateIDs)
	if err != nil {
		return nil, err
	}
	return r.expandFromDistricts(ctx, districtUUIDs(districts))
}

func (r *ScopeResolver) expandFromDistricts(ctx context.Context, districtIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(districtIDs) == 0 {
		return nil, nil
	}
	orgs, err := r.hier.ListOrganizations(ctx, districtIDs)
	if err != nil {
		return nil, err
	}
	return r.expandKvks(ctx, orgUUIDs(orgs))
}

func (r *ScopeResolver) expandKvks(ctx context.Context, orgIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(orgIDs) == 0 {
		return nil, nil
	}
	kvks, err := r.hier.ListKvks(ctx, orgIDs)
	if err != nil {
		return nil, err
	}
	return kvkUUIDs(kvks), nil
}

func zoneUUIDs(zs []hierarchy.Zone) []uuid.UUID {
	out := make([]uuid.UUID, len(zs))
	for i, z := range zs {
		out[i] = z.ID
	}
	return out
}

func stateUUIDs(ss []hierarchy.State) []uuid.UUID {
	out := make([]uuid.UUID, len(ss))
	for i, s := range ss {
		out[i] = s.ID
	}
	return out
}

func districtUUIDs(ds []hierarchy.District) []uuid.UUID {
	out := make([]uuid.UUID, len(ds))
	for i, d := range ds {
		out[i] = d.ID
	}
	return out
}

func orgUUIDs(os []hierarchy.Organization) []uuid.UUID {
	out := make([]uuid.UUID, len(os))
	for i, o := range os {
		out[i] = o.ID
	}
	return out
}

func kvkUUIDs(ks []hierarchy.Kvk) []uuid.UUID {
	out := make([]uuid.UUID, len(ks))
	for i, k := range ks {
		out[i] = k.ID
	}
	return out
}

func idSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// intersectIDs keeps the requested ids that are also allowed. An empty
// request means the whole allowed set.
func intersectIDs(requested, allowed []uuid.UUID) []uuid.UUID {
	if len(requested) == 0 {
		return allowed
	}
	set := idSet(allowed)
	var out []uuid.UUID
	for _, id := range requested {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
