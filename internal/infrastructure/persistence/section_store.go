package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kvk/backend/internal/domain/report"
	"github.com/kvk/backend/internal/domain/shared"
	"github.com/kvk/backend/internal/infrastructure/persistence/models"
)

// GormSectionStore implements report.SectionStore using GORM. Temporal
// predicates are pushed into SQL: a date range is OR-ed across the
// section's declared date columns, a calendar year is an equality on the
// year column.
type GormSectionStore struct {
	db *gorm.DB
}

// NewGormSectionStore creates a new GormSectionStore.
func NewGormSectionStore(db *gorm.DB) *GormSectionStore {
	return &GormSectionStore{db: db}
}

// GetKvkProfile returns the profile read model for one KVK, joined up the
// hierarchy for the relation-derived display fields.
func (s *GormSectionStore) GetKvkProfile(ctx context.Context, kvkID uuid.UUID) (*report.KvkProfileRecord, error) {
	var rec report.KvkProfileRecord
	err := s.db.WithContext(ctx).
		Table("kvk_profiles p").
		Select(`k.id AS kvk_id, k.name AS kvk_name, o.name AS host_organization,
			p.address, d.name AS district_name, st.name AS state_name, z.name AS zone_name,
			p.sanctioned_year, p.email, p.phone`).
		Joins("JOIN kvks k ON k.id = p.kvk_id").
		Joins("JOIN organizations o ON o.id = k.organization_id").
		Joins("JOIN districts d ON d.id = o.district_id").
		Joins("JOIN states st ON st.id = d.state_id").
		Joins("JOIN zones z ON z.id = st.zone_id").
		Where("p.kvk_id = ?", kvkID).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("get kvk profile %s: %w", kvkID, err)
	}
	return &rec, nil
}

// ListBankAccounts returns the bank accounts of one KVK.
func (s *GormSectionStore) ListBankAccounts(ctx context.Context, kvkID uuid.UUID) ([]report.BankAccountRecord, error) {
	var rows []models.BankAccountModel
	if err := s.db.WithContext(ctx).
		Where("kvk_id = ?", kvkID).
		Order("bank_name ASC, account_number ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	records := make([]report.BankAccountRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToRecord()
	}
	return records, nil
}

// ListEmployees returns the staff of one KVK. A date-range filter matches
// when the joining date OR the birth date falls inside the range.
func (s *GormSectionStore) ListEmployees(ctx context.Context, kvkID uuid.UUID, f report.Filter) ([]report.EmployeeRecord, error) {
	q := s.db.WithContext(ctx).Where("kvk_id = ?", kvkID)
	if f.Kind == report.FilterDateRange {
		q = q.Where(
			"(date_of_joining BETWEEN ? AND ?) OR (date_of_birth BETWEEN ? AND ?)",
			f.Start, f.End, f.Start, f.End,
		)
	}
	var rows []models.EmployeeModel
	if err := q.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	records := make([]report.EmployeeRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToRecord()
	}
	return records, nil
}

// ListInfrastructureProjects returns the projects of one KVK.
func (s *GormSectionStore) ListInfrastructureProjects(ctx context.Context, kvkID uuid.UUID, f report.Filter) ([]report.InfrastructureProjectRecord, error) {
	q := s.db.WithContext(ctx).Where("kvk_id = ?", kvkID)
	if f.Kind == report.FilterDateRange {
		q = q.Where("completion_date BETWEEN ? AND ?", f.Start, f.End)
	}
	var rows []models.InfrastructureProjectModel
	if err := q.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list infrastructure projects: %w", err)
	}
	records := make([]report.InfrastructureProjectRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToRecord()
	}
	return records, nil
}

// ListVehicles returns the vehicles of one KVK, ordered for the grouped
// rendering (purchase year descending, then registration).
func (s *GormSectionStore) ListVehicles(ctx context.Context, kvkID uuid.UUID, f report.Filter) ([]report.VehicleRecord, error) {
	q := s.db.WithContext(ctx).Where("kvk_id = ?", kvkID)
	if f.Kind == report.FilterCalendarYear {
		q = q.Where("purchase_year = ?", f.Year)
	}
	var rows []models.VehicleModel
	if err := q.Order("purchase_year DESC, registration_number ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	records := make([]report.VehicleRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToRecord()
	}
	return records, nil
}

// ListEquipment returns the equipment of one KVK.
func (s *GormSectionStore) ListEquipment(ctx context.Context, kvkID uuid.UUID, f report.Filter) ([]report.EquipmentRecord, error) {
	q := s.db.WithContext(ctx).Where("kvk_id = ?", kvkID)
	if f.Kind == report.FilterCalendarYear {
		q = q.Where("purchase_year = ?", f.Year)
	}
	var rows []models.EquipmentModel
	if err := q.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	records := make([]report.EquipmentRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToRecord()
	}
	return records, nil
}

// ListLandRecords returns the land parcels of one KVK.
func (s *GormSectionStore) ListLandRecords(ctx context.Context, kvkID uuid.UUID) ([]report.LandRecord, error) {
	var rows []models.LandRecordModel
	if err := s.db.WithContext(ctx).
		Where("kvk_id = ?", kvkID).
		Order("survey_number ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list land records: %w", err)
	}
	records := make([]report.LandRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToRecord()
	}
	return records, nil
}

// ListTrainings returns the training programs of one KVK.
func (s *GormSectionStore) ListTrainings(ctx context.Context, kvkID uuid.UUID, f report.Filter) ([]report.TrainingRecord, error) {
	q := s.db.WithContext(ctx).Where("kvk_id = ?", kvkID)
	if f.Kind == report.FilterDateRange {
		q = q.Where("start_date BETWEEN ? AND ?", f.Start, f.End)
	}
	var rows []models.TrainingModel
	if err := q.Order("start_date DESC, title ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}
	records := make([]report.TrainingRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToRecord()
	}
	return records, nil
}
