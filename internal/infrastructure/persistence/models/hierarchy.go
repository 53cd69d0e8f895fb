package models

import (
	"github.com/google/uuid"

	"github.com/kvk/backend/internal/domain/hierarchy"
)

// ZoneModel is the persistence model for a zone.
type ZoneModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null;uniqueIndex"`
}

func (ZoneModel) TableName() string { return "zones" }

// ToDomain converts the persistence model to a domain Zone.
func (m *ZoneModel) ToDomain() hierarchy.Zone {
	return hierarchy.Zone{ID: m.ID, Name: m.Name}
}

// StateModel is the persistence model for a state.
type StateModel struct {
	BaseModel
	ZoneID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name   string    `gorm:"type:varchar(200);not null"`
}

func (StateModel) TableName() string { return "states" }

// ToDomain converts the persistence model to a domain State.
func (m *StateModel) ToDomain() hierarchy.State {
	return hierarchy.State{ID: m.ID, ZoneID: m.ZoneID, Name: m.Name}
}

// DistrictModel is the persistence model for a district.
type DistrictModel struct {
	BaseModel
	StateID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name    string    `gorm:"type:varchar(200);not null"`
}

func (DistrictModel) TableName() string { return "districts" }

// ToDomain converts the persistence model to a domain District.
func (m *DistrictModel) ToDomain() hierarchy.District {
	return hierarchy.District{ID: m.ID, StateID: m.StateID, Name: m.Name}
}

// OrganizationModel is the persistence model for a host organization.
type OrganizationModel struct {
	BaseModel
	DistrictID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(200);not null"`
}

func (OrganizationModel) TableName() string { return "organizations" }

// ToDomain converts the persistence model to a domain Organization.
func (m *OrganizationModel) ToDomain() hierarchy.Organization {
	return hierarchy.Organization{ID: m.ID, DistrictID: m.DistrictID, Name: m.Name}
}

// KvkModel is the persistence model for a KVK.
type KvkModel struct {
	BaseModel
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(200);not null"`
}

func (KvkModel) TableName() string { return "kvks" }

// ToDomain converts the persistence model to a domain Kvk.
func (m *KvkModel) ToDomain() hierarchy.Kvk {
	return hierarchy.Kvk{ID: m.ID, OrganizationID: m.OrganizationID, Name: m.Name}
}
