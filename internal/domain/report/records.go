package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read models for section data, one per data source. These are CQRS-style
// query results already joined across the hierarchy where a section needs
// relation-derived display fields.

// KvkProfileRecord is the single-row profile of a KVK.
type KvkProfileRecord struct {
	KvkID            uuid.UUID `json:"kvk_id"`
	KvkName          string    `json:"kvk_name"`
	HostOrganization string    `json:"host_organization"`
	Address          string    `json:"address"`
	DistrictName     string    `json:"district_name"`
	StateName        string    `json:"state_name"`
	ZoneName         string    `json:"zone_name"`
	SanctionedYear   int       `json:"sanctioned_year"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
}

// BankAccountRecord is one bank account of a KVK.
type BankAccountRecord struct {
	BankName      string           `json:"bank_name"`
	Branch        string           `json:"branch"`
	AccountNumber string           `json:"account_number"`
	IfscCode      string           `json:"ifsc_code"`
	AccountType   string           `json:"account_type"`
	Balance       *decimal.Decimal `json:"balance,omitempty"`
}

// EmployeeRecord is one staff member of a KVK.
type EmployeeRecord struct {
	Name          string     `json:"name"`
	Designation   string     `json:"designation"`
	Discipline    string     `json:"discipline"`
	PayLevel      string     `json:"pay_level"`
	DateOfJoining *time.Time `json:"date_of_joining,omitempty"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	Permanent     bool       `json:"permanent"`
}

// InfrastructureProjectRecord is one building/works project of a KVK.
type InfrastructureProjectRecord struct {
	Name             string          `json:"name"`
	ProjectType      string          `json:"project_type"`
	Status           string          `json:"status"`
	SanctionedAmount decimal.Decimal `json:"sanctioned_amount"`
	CompletionDate   *time.Time      `json:"completion_date,omitempty"`
}

// VehicleRecord is one vehicle owned by a KVK.
type VehicleRecord struct {
	VehicleType        string          `json:"vehicle_type"`
	RegistrationNumber string          `json:"registration_number"`
	PurchaseYear       int             `json:"purchase_year"`
	Cost               decimal.Decimal `json:"cost"`
	Running            bool            `json:"running"`
}

// EquipmentRecord is one piece of farm/lab equipment.
type EquipmentRecord struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	PurchaseYear int             `json:"purchase_year"`
	Cost         decimal.Decimal `json:"cost"`
	Working      bool            `json:"working"`
}

// LandRecord is one land parcel held by a KVK.
type LandRecord struct {
	SurveyNumber string          `json:"survey_number"`
	UsageType    string          `json:"usage_type"`
	AreaHectares decimal.Decimal `json:"area_hectares"`
	Irrigated    bool            `json:"irrigated"`
}

// TrainingRecord is one training program conducted by a KVK.
type TrainingRecord struct {
	Title        string     `json:"title"`
	Discipline   string     `json:"discipline"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Participants int        `json:"participants"`
	Category     string     `json:"category"`
}

// SectionStore is the query interface the section fetcher runs against.
// Implementations apply the normalized filter's predicate in the query
// (date ranges OR-ed across the section's declared date fields, calendar
// years as equality on the year column) and must not leak records of
// other KVKs.
type SectionStore interface {
	GetKvkProfile(ctx context.Context, kvkID uuid.UUID) (*KvkProfileRecord, error)
	ListBankAccounts(ctx context.Context, kvkID uuid.UUID) ([]BankAccountRecord, error)
	ListEmployees(ctx context.Context, kvkID uuid.UUID, f Filter) ([]EmployeeRecord, error)
	ListInfrastructureProjects(ctx context.Context, kvkID uuid.UUID, f Filter) ([]InfrastructureProjectRecord, error)
	ListVehicles(ctx context.Context, kvkID uuid.UUID, f Filter) ([]VehicleRecord, error)
	ListEquipment(ctx context.Context, kvkID uuid.UUID, f Filter) ([]EquipmentRecord, error)
	ListLandRecords(ctx context.Context, kvkID uuid.UUID) ([]LandRecord, error)
	ListTrainings(ctx context.Context, kvkID uuid.UUID, f Filter) ([]TrainingRecord, error)
}
