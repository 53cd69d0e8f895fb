package report

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvk/backend/internal/domain/hierarchy"
	"github.com/kvk/backend/internal/domain/report"
	"github.com/kvk/backend/internal/domain/shared"
)

func TestAuthorizedScope(t *testing.T) {
	w := newTestWorld()
	resolver := NewScopeResolver(w.hier)
	ctx := context.Background()

	t.Run("admin sees the whole hierarchy", func(t *testing.T) {
		auth, err := resolver.AuthorizedScope(ctx, adminCaller())
		require.NoError(t, err)
		assert.Len(t, auth.ZoneIDs, 2)
		assert.Len(t, auth.KvkIDs, 4)
	})

	t.Run("district caller sees only own subtree", func(t *testing.T) {
		auth, err := resolver.AuthorizedScope(ctx, districtCaller(w.districtA.ID))
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{w.districtA.ID}, auth.DistrictIDs)
		assert.Len(t, auth.KvkIDs, 3)
		assert.False(t, auth.AllowsKvk(w.kvkOther.ID))
	})

	t.Run("district caller holds no authorization above home", func(t *testing.T) {
		auth, err := resolver.AuthorizedScope(ctx, districtCaller(w.districtA.ID))
		require.NoError(t, err)
		assert.Empty(t, auth.ZoneIDs)
		assert.Empty(t, auth.StateIDs)
	})

	t.Run("caller homed in an empty subtree gets no kvks", func(t *testing.T) {
		w2 := newTestWorld()
		bareZone := hierarchy.Zone{ID: uuid.New(), Name: "Zone XI"}
		bareState := hierarchy.State{ID: uuid.New(), ZoneID: w2.zoneB.ID, Name: "Goa"}
		bareDistrict := hierarchy.District{ID: uuid.New(), StateID: w2.stateA.ID, Name: "Moga"}
		bareOrg := hierarchy.Organization{ID: uuid.New(), DistrictID: w2.districtA.ID, Name: "GADVASU"}
		w2.hier.zones = append(w2.hier.zones, bareZone)
		w2.hier.states = append(w2.hier.states, bareState)
		w2.hier.districts = append(w2.hier.districts, bareDistrict)
		w2.hier.orgs = append(w2.hier.orgs, bareOrg)
		resolver2 := NewScopeResolver(w2.hier)

		callers := []struct {
			name   string
			caller report.Caller
		}{
			{"zone without states", report.Caller{UserID: uuid.New(), Role: report.RoleZone, HomeZoneID: &bareZone.ID}},
			{"state without districts", report.Caller{UserID: uuid.New(), Role: report.RoleState, HomeStateID: &bareState.ID}},
			{"district without organizations", report.Caller{UserID: uuid.New(), Role: report.RoleDistrict, HomeDistrictID: &bareDistrict.ID}},
			{"organization without kvks", report.Caller{UserID: uuid.New(), Role: report.RoleOrganization, HomeOrgID: &bareOrg.ID}},
		}
		for _, tc := range callers {
			t.Run(tc.name, func(t *testing.T) {
				auth, err := resolver2.AuthorizedScope(ctx, tc.caller)
				require.NoError(t, err)
				assert.Empty(t, auth.KvkIDs)
			})
		}

		// The walk must stop at the empty level, not restart below it.
		auth, err := resolver2.AuthorizedScope(ctx, callers[0].caller)
		require.NoError(t, err)
		assert.Empty(t, auth.StateIDs)
		assert.Empty(t, auth.DistrictIDs)
		assert.Empty(t, auth.OrgIDs)
	})

	t.Run("kvk caller sees exactly one kvk", func(t *testing.T) {
		id := w.kvk2.ID
		caller := report.Caller{UserID: uuid.New(), Role: report.RoleKvk, HomeKvkID: &id}
		auth, err := resolver.AuthorizedScope(ctx, caller)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{w.kvk2.ID}, auth.KvkIDs)
	})

	t.Run("role without home node is rejected", func(t *testing.T) {
		caller := report.Caller{UserID: uuid.New(), Role: report.RoleDistrict}
		_, err := resolver.AuthorizedScope(ctx, caller)
		assert.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}

func TestResolve(t *testing.T) {
	w := newTestWorld()
	resolver := NewScopeResolver(w.hier)
	ctx := context.Background()

	admin, err := resolver.AuthorizedScope(ctx, adminCaller())
	require.NoError(t, err)
	district, err := resolver.AuthorizedScope(ctx, districtCaller(w.districtA.ID))
	require.NoError(t, err)

	t.Run("empty request takes full authorized scope", func(t *testing.T) {
		scope, err := resolver.Resolve(ctx, district, report.ScopeRequest{})
		require.NoError(t, err)
		assert.Len(t, scope.KvkIDs, 3)
		assert.Empty(t, scope.DerivedFrom)
	})

	t.Run("most specific populated level wins", func(t *testing.T) {
		scope, err := resolver.Resolve(ctx, admin, report.ScopeRequest{
			ZoneIDs: []uuid.UUID{w.zoneA.ID, w.zoneB.ID},
			KvkIDs:  []uuid.UUID{w.kvk3.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, string(hierarchy.LevelKvk), scope.DerivedFrom)
		assert.Equal(t, []uuid.UUID{w.kvk3.ID}, scope.KvkIDs)
	})

	t.Run("org level beats a state it is not even under", func(t *testing.T) {
		scope, err := resolver.Resolve(ctx, admin, report.ScopeRequest{
			StateIDs: []uuid.UUID{w.stateA.ID},
			OrgIDs:   []uuid.UUID{w.orgB.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, string(hierarchy.LevelOrganization), scope.DerivedFrom)
		assert.Equal(t, []uuid.UUID{w.kvkOther.ID}, scope.KvkIDs)
	})

	t.Run("zone selection expands to all descendant kvks", func(t *testing.T) {
		scope, err := resolver.Resolve(ctx, admin, report.ScopeRequest{
			ZoneIDs: []uuid.UUID{w.zoneA.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, string(hierarchy.LevelZone), scope.DerivedFrom)
		assert.Len(t, scope.KvkIDs, 3)
	})

	t.Run("expansion keeps canonical kvk order", func(t *testing.T) {
		scope, err := resolver.Resolve(ctx, admin, report.ScopeRequest{
			KvkIDs: []uuid.UUID{w.kvk3.ID, w.kvk1.ID, w.kvk2.ID},
		})
		require.NoError(t, err)
		// Name order, not request order.
		assert.Equal(t, []uuid.UUID{w.kvk1.ID, w.kvk2.ID, w.kvk3.ID}, scope.KvkIDs)
	})

	t.Run("out of scope request is rejected", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, district, report.ScopeRequest{
			KvkIDs: []uuid.UUID{w.kvkOther.ID},
		})
		assert.ErrorIs(t, err, shared.ErrScopeForbidden)
	})

	t.Run("district caller cannot pin scope above home", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, district, report.ScopeRequest{
			StateIDs: []uuid.UUID{w.stateB.ID},
		})
		assert.ErrorIs(t, err, shared.ErrScopeForbidden)
	})

	t.Run("authorized zone with no kvks yields an empty scope", func(t *testing.T) {
		emptyZone := hierarchy.Zone{ID: uuid.New(), Name: "Zone XI"}
		w2 := newTestWorld()
		w2.hier.zones = append(w2.hier.zones, emptyZone)
		resolver2 := NewScopeResolver(w2.hier)

		admin2, err := resolver2.AuthorizedScope(ctx, adminCaller())
		require.NoError(t, err)
		scope, err := resolver2.Resolve(ctx, admin2, report.ScopeRequest{
			ZoneIDs: []uuid.UUID{emptyZone.ID},
		})
		require.NoError(t, err)
		assert.Empty(t, scope.KvkIDs)
	})

	t.Run("partially out of scope request keeps the allowed part", func(t *testing.T) {
		scope, err := resolver.Resolve(ctx, district, report.ScopeRequest{
			KvkIDs: []uuid.UUID{w.kvk1.ID, w.kvkOther.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{w.kvk1.ID}, scope.KvkIDs)
	})
}

func TestFilteredChildren(t *testing.T) {
	w := newTestWorld()
	resolver := NewScopeResolver(w.hier)
	ctx := context.Background()

	admin, err := resolver.AuthorizedScope(ctx, adminCaller())
	require.NoError(t, err)
	district, err := resolver.AuthorizedScope(ctx, districtCaller(w.districtA.ID))
	require.NoError(t, err)

	t.Run("admin zone children lists all states of the zone", func(t *testing.T) {
		opts, err := resolver.FilteredChildren(ctx, admin, hierarchy.LevelZone, []uuid.UUID{w.zoneA.ID})
		require.NoError(t, err)
		require.Len(t, opts, 1)
		assert.Equal(t, "Punjab", opts[0].Name)
	})

	t.Run("district caller cannot see foreign organizations", func(t *testing.T) {
		opts, err := resolver.FilteredChildren(ctx, district, hierarchy.LevelDistrict, nil)
		require.NoError(t, err)
		require.Len(t, opts, 1)
		assert.Equal(t, w.orgA.ID, opts[0].ID)
	})

	t.Run("district caller cannot enumerate foreign states", func(t *testing.T) {
		opts, err := resolver.FilteredChildren(ctx, district, hierarchy.LevelZone, nil)
		require.NoError(t, err)
		assert.Empty(t, opts)
	})

	t.Run("leaf level has no children", func(t *testing.T) {
		_, err := resolver.FilteredChildren(ctx, admin, hierarchy.LevelKvk, nil)
		assert.ErrorIs(t, err, shared.ErrUnknownHierarchy)
	})
}
