package report

import (
	"fmt"
	"strings"
)

// Data source names resolved by the section fetcher to concrete queries.
const (
	SourceKvkProfile             = "kvk_profile"
	SourceBankAccounts           = "bank_accounts"
	SourceEmployees              = "employees"
	SourceInfrastructureProjects = "infrastructure_projects"
	SourceVehicles               = "vehicles"
	SourceEquipment              = "equipment"
	SourceLandRecords            = "land_records"
	SourceTrainings              = "trainings"
)

// UnknownSectionsError is returned when a request names section ids that
// are not in the catalog. The offending ids are enumerated so the caller
// sees exactly what was rejected instead of a silently thinner report.
type UnknownSectionsError struct {
	IDs []string
}

func (e *UnknownSectionsError) Error() string {
	return fmt.Sprintf("unknown report sections: %s", strings.Join(e.IDs, ", "))
}

// Registry is the static catalog of report sections. It is built once at
// startup and is safe for unsynchronized concurrent reads.
type Registry struct {
	sections []SectionDescriptor
	byID     map[string]SectionDescriptor
}

// NewRegistry builds the section catalog.
func NewRegistry() *Registry {
	sections := []SectionDescriptor{
		{
			ID:         "1.1",
			Title:      "KVK Profile",
			DataSource: SourceKvkProfile,
			Format:     FormatNarrative,
			Fields: []Field{
				{SourceField: "kvk_name", DisplayName: "KVK Name", Type: TypeString},
				{SourceField: "host_organization", DisplayName: "Host Organization", Type: TypeString},
				{SourceField: "address", DisplayName: "Address", Type: TypeString},
				{SourceField: "district_name", DisplayName: "District", Type: TypeString},
				{SourceField: "state_name", DisplayName: "State", Type: TypeString},
				{SourceField: "zone_name", DisplayName: "Zone", Type: TypeString},
				{SourceField: "sanctioned_year", DisplayName: "Year of Sanction", Type: TypeInt},
				{SourceField: "email", DisplayName: "Email", Type: TypeString, Optional: true},
				{SourceField: "phone", DisplayName: "Phone", Type: TypeString, Optional: true},
			},
		},
		{
			ID:         "1.2",
			Title:      "Bank Account Details",
			DataSource: SourceBankAccounts,
			Format:     FormatTable,
			Fields: []Field{
				{SourceField: "bank_name", DisplayName: "Bank Name", Type: TypeString},
				{SourceField: "branch", DisplayName: "Branch", Type: TypeString},
				{SourceField: "account_number", DisplayName: "Account Number", Type: TypeString},
				{SourceField: "ifsc_code", DisplayName: "IFSC Code", Type: TypeString},
				{SourceField: "account_type", DisplayName: "Account Type", Type: TypeString},
				{SourceField: "balance", DisplayName: "Balance", Type: TypeCurrency, Optional: true},
			},
		},
		{
			ID:         "1.3",
			Title:      "Employee Details",
			DataSource: SourceEmployees,
			Format:     FormatTable,
			Fields: []Field{
				{SourceField: "name", DisplayName: "Name", Type: TypeString},
				{SourceField: "designation", DisplayName: "Designation", Type: TypeString},
				{SourceField: "discipline", DisplayName: "Discipline", Type: TypeString, Optional: true},
				{SourceField: "pay_level", DisplayName: "Pay Level", Type: TypeString, Optional: true},
				{SourceField: "date_of_joining", DisplayName: "Date of Joining", Type: TypeDate},
				{SourceField: "date_of_birth", DisplayName: "Date of Birth", Type: TypeDate},
				{SourceField: "permanent", DisplayName: "Permanent", Type: TypeBool},
			},
			Filterable: FilterableFields{
				DateFields: []string{"date_of_joining", "date_of_birth"},
			},
		},
		{
			ID:         "1.4",
			Title:      "Infrastructure Projects",
			DataSource: SourceInfrastructureProjects,
			Format:     FormatTable,
			Fields: []Field{
				{SourceField: "name", DisplayName: "Project Name", Type: TypeString},
				{SourceField: "project_type", DisplayName: "Type", Type: TypeString},
				{SourceField: "status", DisplayName: "Status", Type: TypeString},
				{SourceField: "sanctioned_amount", DisplayName: "Sanctioned Amount", Type: TypeCurrency},
				{SourceField: "completion_date", DisplayName: "Completion Date", Type: TypeDate, Optional: true},
			},
			Filterable: FilterableFields{
				DateFields: []string{"completion_date"},
			},
		},
		{
			ID:         "2.1",
			Title:      "Vehicle Details",
			DataSource: SourceVehicles,
			Format:     FormatGroupedTable,
			GroupBy:    "Year of Purchase",
			Fields: []Field{
				{SourceField: "vehicle_type", DisplayName: "Vehicle Type", Type: TypeString},
				{SourceField: "registration_number", DisplayName: "Registration Number", Type: TypeString},
				{SourceField: "purchase_year", DisplayName: "Year of Purchase", Type: TypeInt},
				{SourceField: "cost", DisplayName: "Cost", Type: TypeCurrency},
				{SourceField: "running", DisplayName: "Running", Type: TypeBool},
			},
			Filterable: FilterableFields{
				YearFields: []string{"purchase_year"},
			},
		},
		{
			ID:         "2.2",
			Title:      "Equipment Details",
			DataSource: SourceEquipment,
			Format:     FormatTable,
			Fields: []Field{
				{SourceField: "name", DisplayName: "Equipment Name", Type: TypeString},
				{SourceField: "category", DisplayName: "Category", Type: TypeString},
				{SourceField: "purchase_year", DisplayName: "Year of Purchase", Type: TypeInt},
				{SourceField: "cost", DisplayName: "Cost", Type: TypeCurrency},
				{SourceField: "working", DisplayName: "Working", Type: TypeBool},
			},
			Filterable: FilterableFields{
				YearFields: []string{"purchase_year"},
			},
		},
		{
			ID:         "3.1",
			Title:      "Land Records",
			DataSource: SourceLandRecords,
			Format:     FormatTable,
			Fields: []Field{
				{SourceField: "survey_number", DisplayName: "Survey Number", Type: TypeString},
				{SourceField: "usage_type", DisplayName: "Usage", Type: TypeString},
				{SourceField: "area_hectares", DisplayName: "Area (ha)", Type: TypeDecimal},
				{SourceField: "irrigated", DisplayName: "Irrigated", Type: TypeBool},
			},
		},
		{
			ID:         "4.1",
			Title:      "Training Programs",
			DataSource: SourceTrainings,
			Format:     FormatTable,
			Fields: []Field{
				{SourceField: "title", DisplayName: "Title", Type: TypeString},
				{SourceField: "discipline", DisplayName: "Discipline", Type: TypeString},
				{SourceField: "start_date", DisplayName: "Start Date", Type: TypeDate},
				{SourceField: "end_date", DisplayName: "End Date", Type: TypeDate},
				{SourceField: "participants", DisplayName: "Participants", Type: TypeInt},
				{SourceField: "category", DisplayName: "Category", Type: TypeString, Optional: true},
			},
			Filterable: FilterableFields{
				DateFields: []string{"start_date"},
			},
		},
	}

	byID := make(map[string]SectionDescriptor, len(sections))
	for _, s := range sections {
		byID[s.ID] = s
	}
	return &Registry{sections: sections, byID: byID}
}

// Get returns the descriptor for a section id.
func (r *Registry) Get(id string) (SectionDescriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// List returns all descriptors in catalog order.
func (r *Registry) List() []SectionDescriptor {
	out := make([]SectionDescriptor, len(r.sections))
	copy(out, r.sections)
	return out
}

// ValidateIDs checks that every id exists in the catalog. Unknown ids are
// returned together in a single UnknownSectionsError.
func (r *Registry) ValidateIDs(ids []string) error {
	var unknown []string
	for _, id := range ids {
		if _, ok := r.byID[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return &UnknownSectionsError{IDs: unknown}
	}
	return nil
}
