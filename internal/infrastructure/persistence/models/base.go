// Package models contains the GORM persistence models for the hierarchy
// and for every section data source.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel provides common persistence fields for all models.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns an id if none was set.
func (m *BaseModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// All returns every model for schema automigration in tests.
func All() []any {
	return []any{
		&ZoneModel{},
		&StateModel{},
		&DistrictModel{},
		&OrganizationModel{},
		&KvkModel{},
		&KvkProfileModel{},
		&BankAccountModel{},
		&EmployeeModel{},
		&InfrastructureProjectModel{},
		&VehicleModel{},
		&EquipmentModel{},
		&LandRecordModel{},
		&TrainingModel{},
	}
}
