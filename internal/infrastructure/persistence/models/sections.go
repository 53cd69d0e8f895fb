package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kvk/backend/internal/domain/report"
)

// KvkProfileModel is the one-row profile of a KVK.
type KvkProfileModel struct {
	BaseModel
	KvkID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	HostOrganization string    `gorm:"type:varchar(300);not null"`
	Address          string    `gorm:"type:text"`
	SanctionedYear   int       `gorm:"not null"`
	Email            string    `gorm:"type:varchar(200)"`
	Phone            string    `gorm:"type:varchar(50)"`
}

func (KvkProfileModel) TableName() string { return "kvk_profiles" }

// BankAccountModel is one bank account held by a KVK.
type BankAccountModel struct {
	BaseModel
	KvkID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	BankName      string           `gorm:"type:varchar(200);not null"`
	Branch        string           `gorm:"type:varchar(200);not null"`
	AccountNumber string           `gorm:"type:varchar(50);not null"`
	IfscCode      string           `gorm:"type:varchar(20);not null"`
	AccountType   string           `gorm:"type:varchar(50);not null"`
	Balance       *decimal.Decimal `gorm:"type:decimal(18,2)"`
}

func (BankAccountModel) TableName() string { return "bank_accounts" }

// ToRecord converts the model to its section read model.
func (m *BankAccountModel) ToRecord() report.BankAccountRecord {
	return report.BankAccountRecord{
		BankName:      m.BankName,
		Branch:        m.Branch,
		AccountNumber: m.AccountNumber,
		IfscCode:      m.IfscCode,
		AccountType:   m.AccountType,
		Balance:       m.Balance,
	}
}

// EmployeeModel is one staff member of a KVK.
type EmployeeModel struct {
	BaseModel
	KvkID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name          string     `gorm:"type:varchar(200);not null"`
	Designation   string     `gorm:"type:varchar(100);not null"`
	Discipline    string     `gorm:"type:varchar(100)"`
	PayLevel      string     `gorm:"type:varchar(50)"`
	DateOfJoining *time.Time `gorm:"type:date"`
	DateOfBirth   *time.Time `gorm:"type:date"`
	Permanent     bool       `gorm:"not null;default:false"`
}

func (EmployeeModel) TableName() string { return "employees" }

// ToRecord converts the model to its section read model.
func (m *EmployeeModel) ToRecord() report.EmployeeRecord {
	return report.EmployeeRecord{
		Name:          m.Name,
		Designation:   m.Designation,
		Discipline:    m.Discipline,
		PayLevel:      m.PayLevel,
		DateOfJoining: m.DateOfJoining,
		DateOfBirth:   m.DateOfBirth,
		Permanent:     m.Permanent,
	}
}

// InfrastructureProjectModel is one building/works project of a KVK.
type InfrastructureProjectModel struct {
	BaseModel
	KvkID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name             string          `gorm:"type:varchar(300);not null"`
	ProjectType      string          `gorm:"type:varchar(100);not null"`
	Status           string          `gorm:"type:varchar(50);not null"`
	SanctionedAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CompletionDate   *time.Time      `gorm:"type:date"`
}

func (InfrastructureProjectModel) TableName() string { return "infrastructure_projects" }

// ToRecord converts the model to its section read model.
func (m *InfrastructureProjectModel) ToRecord() report.InfrastructureProjectRecord {
	return report.InfrastructureProjectRecord{
		Name:             m.Name,
		ProjectType:      m.ProjectType,
		Status:           m.Status,
		SanctionedAmount: m.SanctionedAmount,
		CompletionDate:   m.CompletionDate,
	}
}

// VehicleModel is one vehicle owned by a KVK.
type VehicleModel struct {
	BaseModel
	KvkID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	VehicleType        string          `gorm:"type:varchar(100);not null"`
	RegistrationNumber string          `gorm:"type:varchar(50);not null"`
	PurchaseYear       int             `gorm:"not null;index"`
	Cost               decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Running            bool            `gorm:"not null;default:true"`
}

func (VehicleModel) TableName() string { return "vehicles" }

// ToRecord converts the model to its section read model.
func (m *VehicleModel) ToRecord() report.VehicleRecord {
	return report.VehicleRecord{
		VehicleType:        m.VehicleType,
		RegistrationNumber: m.RegistrationNumber,
		PurchaseYear:       m.PurchaseYear,
		Cost:               m.Cost,
		Running:            m.Running,
	}
}

// EquipmentModel is one piece of farm/lab equipment.
type EquipmentModel struct {
	BaseModel
	KvkID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Category     string          `gorm:"type:varchar(100);not null"`
	PurchaseYear int             `gorm:"not null;index"`
	Cost         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Working      bool            `gorm:"not null;default:true"`
}

func (EquipmentModel) TableName() string { return "equipment" }

// ToRecord converts the model to its section read model.
func (m *EquipmentModel) ToRecord() report.EquipmentRecord {
	return report.EquipmentRecord{
		Name:         m.Name,
		Category:     m.Category,
		PurchaseYear: m.PurchaseYear,
		Cost:         m.Cost,
		Working:      m.Working,
	}
}

// LandRecordModel is one land parcel held by a KVK.
type LandRecordModel struct {
	BaseModel
	KvkID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	SurveyNumber string          `gorm:"type:varchar(100);not null"`
	UsageType    string          `gorm:"type:varchar(100);not null"`
	AreaHectares decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	Irrigated    bool            `gorm:"not null;default:false"`
}

func (LandRecordModel) TableName() string { return "land_records" }

// ToRecord converts the model to its section read model.
func (m *LandRecordModel) ToRecord() report.LandRecord {
	return report.LandRecord{
		SurveyNumber: m.SurveyNumber,
		UsageType:    m.UsageType,
		AreaHectares: m.AreaHectares,
		Irrigated:    m.Irrigated,
	}
}

// TrainingModel is one training program conducted by a KVK.
type TrainingModel struct {
	BaseModel
	KvkID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title        string     `gorm:"type:varchar(300);not null"`
	Discipline   string     `gorm:"type:varchar(100);not null"`
	StartDate    *time.Time `gorm:"type:date;index"`
	EndDate      *time.Time `gorm:"type:date"`
	Participants int        `gorm:"not null;default:0"`
	Category     string     `gorm:"type:varchar(100)"`
}

func (TrainingModel) TableName() string { return "trainings" }

// ToRecord converts the model to its section read model.
func (m *TrainingModel) ToRecord() report.TrainingRecord {
	return report.TrainingRecord{
		Title:        m.Title,
		Discipline:   m.Discipline,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Participants: m.Participants,
		Category:     m.Category,
	}
}
