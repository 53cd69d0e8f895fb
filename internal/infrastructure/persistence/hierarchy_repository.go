package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kvk/backend/internal/domain/hierarchy"
	"github.com/kvk/backend/internal/domain/shared"
	"github.com/kvk/backend/internal/infrastructure/persistence/models"
)

// GormHierarchyRepository implements hierarchy.Repository using GORM.
type GormHierarchyRepository struct {
	db *gorm.DB
}

// NewGormHierarchyRepository creates a new GormHierarchyRepository.
func NewGormHierarchyRepository(db *gorm.DB) *GormHierarchyRepository {
	return &GormHierarchyRepository{db: db}
}

// ListZones returns every zone ordered by name.
func (r *GormHierarchyRepository) ListZones(ctx context.Context) ([]hierarchy.Zone, error) {
	var rows []models.ZoneModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	zones := make([]hierarchy.Zone, len(rows))
	for i, m := range rows {
		zones[i] = m.ToDomain()
	}
	return zones, nil
}

// ListStates returns the states under the given zones, or all states when
// no zone is given.
func (r *GormHierarchyRepository) ListStates(ctx context.Context, zoneIDs []uuid.UUID) ([]hierarchy.State, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if len(zoneIDs) > 0 {
		q = q.Where("zone_id IN ?", zoneIDs)
	}
	var rows []models.StateModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	states := make([]hierarchy.State, len(rows))
	for i, m := range rows {
		states[i] = m.ToDomain()
	}
	return states, nil
}

// ListDistricts returns the districts under the given states.
func (r *GormHierarchyRepository) ListDistricts(ctx context.Context, stateIDs []uuid.UUID) ([]hierarchy.District, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if len(stateIDs) > 0 {
		q = q.Where("state_id IN ?", stateIDs)
	}
	var rows []models.DistrictModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	districts := make([]hierarchy.District, len(rows))
	for i, m := range rows {
		districts[i] = m.ToDomain()
	}
	return districts, nil
}

// ListOrganizations returns the host organizations under the given districts.
func (r *GormHierarchyRepository) ListOrganizations(ctx context.Context, districtIDs []uuid.UUID) ([]hierarchy.Organization, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if len(districtIDs) > 0 {
		q = q.Where("district_id IN ?", districtIDs)
	}
	var rows []models.OrganizationModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	orgs := make([]hierarchy.Organization, len(rows))
	for i, m := range rows {
		orgs[i] = m.ToDomain()
	}
	return orgs, nil
}

// ListKvks returns the KVKs under the given organizations. Ordering is by
// name so repeated scope expansions see the same canonical sequence.
func (r *GormHierarchyRepository) ListKvks(ctx context.Context, organizationIDs []uuid.UUID) ([]hierarchy.Kvk, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if len(organizationIDs) > 0 {
		q = q.Where("organization_id IN ?", organizationIDs)
	}
	var rows []models.KvkModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list kvks: %w", err)
	}
	kvks := make([]hierarchy.Kvk, len(rows))
	for i, m := range rows {
		kvks[i] = m.ToDomain()
	}
	return kvks, nil
}

// GetKvk returns a single KVK by id.
func (r *GormHierarchyRepository) GetKvk(ctx context.Context, id uuid.UUID) (*hierarchy.Kvk, error) {
	var row models.KvkModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("get kvk %s: %w", id, err)
	}
	kvk := row.ToDomain()
	return &kvk, nil
}
