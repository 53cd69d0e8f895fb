package cache

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kvk/backend/internal/domain/hierarchy"
)

// CachedHierarchyRepository is a read-through decorator over the hierarchy
// repository. The hierarchy changes rarely (new KVKs are sanctioned a few
// times a year) so listings tolerate a short TTL; GetKvk stays uncached
// since it sits on the authorization path.
type CachedHierarchyRepository struct {
	inner  hierarchy.Repository
	cache  OptionCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedHierarchyRepository wraps a hierarchy repository with caching
func NewCachedHierarchyRepository(inner hierarchy.Repository, cache OptionCache, ttl time.Duration, logger *zap.Logger) *CachedHierarchyRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedHierarchyRepository{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

// listKey builds a cache key from the level name and the sorted parent
// ids, so the same selection always hits the same entry.
func listKey(level string, parentIDs []uuid.UUID) string {
	if len(parentIDs) == 0 {
		return "hierarchy:" + level + ":all"
	}
	ids := make([]string, len(parentIDs))
	for i, id := range parentIDs {
		ids[i] = id.String()
	}
	sort.Strings(ids)
	return "hierarchy:" + level + ":" + strings.Join(ids, ",")
}

func (r *CachedHierarchyRepository) ListZones(ctx context.Context) ([]hierarchy.Zone, error) {
	return cachedList(ctx, r, listKey("zones", nil), func() ([]hierarchy.Zone, error) {
		return r.inner.ListZones(ctx)
	})
}

func (r *CachedHierarchyRepository) ListStates(ctx context.Context, zoneIDs []uuid.UUID) ([]hierarchy.State, error) {
	return cachedList(ctx, r, listKey("states", zoneIDs), func() ([]hierarchy.State, error) {
		return r.inner.ListStates(ctx, zoneIDs)
	})
}

func (r *CachedHierarchyRepository) ListDistricts(ctx context.Context, stateIDs []uuid.UUID) ([]hierarchy.District, error) {
	return cachedList(ctx, r, listKey("districts", stateIDs), func() ([]hierarchy.District, error) {
		return r.inner.ListDistricts(ctx, stateIDs)
	})
}

func (r *CachedHierarchyRepository) ListOrganizations(ctx context.Context, districtIDs []uuid.UUID) ([]hierarchy.Organization, error) {
	return cachedList(ctx, r, listKey("organizations", districtIDs), func() ([]hierarchy.Organization, error) {
		return r.inner.ListOrganizations(ctx, districtIDs)
	})
}

func (r *CachedHierarchyRepository) ListKvks(ctx context.Context, organizationIDs []uuid.UUID) ([]hierarchy.Kvk, error) {
	return cachedList(ctx, r, listKey("kvks", organizationIDs), func() ([]hierarchy.Kvk, error) {
		return r.inner.ListKvks(ctx, organizationIDs)
	})
}

// GetKvk always goes to the source of truth.
func (r *CachedHierarchyRepository) GetKvk(ctx context.Context, id uuid.UUID) (*hierarchy.Kvk, error) {
	return r.inner.GetKvk(ctx, id)
}

// cachedList runs the read-through: cached bytes when present, otherwise
// load, serialize, store. Cache failures degrade to direct loads.
func cachedList[T any](ctx context.Context, r *CachedHierarchyRepository, key string, load func() ([]T, error)) ([]T, error) {
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("hierarchy cache read failed", zap.String("key", key), zap.Error(err))
	} else if data != nil {
		var out []T
		if err := json.Unmarshal(data, &out); err == nil {
			return out, nil
		}
		// Corrupted entry, drop it and reload.
		_ = r.cache.Delete(ctx, key)
	}

	out, err := load()
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(out); err == nil {
		if err := r.cache.Set(ctx, key, data, r.ttl); err != nil {
			r.logger.Warn("hierarchy cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}

// Ensure CachedHierarchyRepository implements hierarchy.Repository
var _ hierarchy.Repository = (*CachedHierarchyRepository)(nil)
