package report

import (
	"context"
	"fmt"

	"github.com/kvk/backend/internal/domain/hierarchy"
	"github.com/kvk/backend/internal/domain/report"
)

// FetchResult is the outcome of fetching one section for one KVK.
type FetchResult struct {
	Rows     []report.Row
	Warnings []string
}

// SectionFetcher resolves a section descriptor's data source to a typed
// query and shapes the records into display rows. Each data source has a
// dedicated extraction path; there is no reflection over record structs.
type SectionFetcher struct {
	store report.SectionStore
}

// NewSectionFetcher creates a new SectionFetcher
func NewSectionFetcher(store report.SectionStore) *SectionFetcher {
	return &SectionFetcher{store: store}
}

// Fetch loads the section's records for one KVK and formats them into
// rows. A missing value in a required field produces a warning, not a
// failure; the row is kept with the value blank.
func (f *SectionFetcher) Fetch(ctx context.Context, d report.SectionDescriptor, kvk hierarchy.Kvk, filter report.Filter) (*FetchResult, error) {
	var values []map[string]string

	switch d.DataSource {
	case report.SourceKvkProfile:
		p, err := f.store.GetKvkProfile(ctx, kvk.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch kvk profile: %w", err)
		}
		if p != nil {
			values = append(values, extractKvkProfile(p))
		}
	case report.SourceBankAccounts:
		recs, err := f.store.ListBankAccounts(ctx, kvk.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch bank accounts: %w", err)
		}
		for i := range recs {
			values = append(values, extractBankAccount(&recs[i]))
		}
	case report.SourceEmployees:
		recs, err := f.store.ListEmployees(ctx, kvk.ID, filter)
		if err != nil {
			return nil, fmt.Errorf("fetch employees: %w", err)
		}
		for i := range recs {
			values = append(values, extractEmployee(&recs[i]))
		}
	case report.SourceInfrastructureProjects:
		recs, err := f.store.ListInfrastructureProjects(ctx, kvk.ID, filter)
		if err != nil {
			return nil, fmt.Errorf("fetch infrastructure projects: %w", err)
		}
		for i := range recs {
			values = append(values, extractInfrastructureProject(&recs[i]))
		}
	case report.SourceVehicles:
		recs, err := f.store.ListVehicles(ctx, kvk.ID, filter)
		if err != nil {
			return nil, fmt.Errorf("fetch vehicles: %w", err)
		}
		for i := range recs {
			values = append(values, extractVehicle(&recs[i]))
		}
	case report.SourceEquipment:
		recs, err := f.store.ListEquipment(ctx, kvk.ID, filter)
		if err != nil {
			return nil, fmt.Errorf("fetch equipment: %w", err)
		}
		for i := range recs {
			values = append(values, extractEquipment(&recs[i]))
		}
	case report.SourceLandRecords:
		recs, err := f.store.ListLandRecords(ctx, kvk.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch land records: %w", err)
		}
		for i := range recs {
			values = append(values, extractLandRecord(&recs[i]))
		}
	case report.SourceTrainings:
		recs, err := f.store.ListTrainings(ctx, kvk.ID, filter)
		if err != nil {
			return nil, fmt.Errorf("fetch trainings: %w", err)
		}
		for i := range recs {
			values = append(values, extractTraining(&recs[i]))
		}
	default:
		return nil, fmt.Errorf("unknown data source %q for section %s", d.DataSource, d.ID)
	}

	result := &FetchResult{Rows: make([]report.Row, 0, len(values))}
	for _, v := range values {
		result.Rows = append(result.Rows, report.Row{
			KvkID:   kvk.ID,
			KvkName: kvk.Name,
			Values:  v,
		})
	}
	result.Warnings = missingFieldWarnings(d, kvk.Name, values)
	return result, nil
}

// missingFieldWarnings flags blank values in required columns. Optional
// fields render blank without comment.
func missingFieldWarnings(d report.SectionDescriptor, kvkName string, values []map[string]string) []string {
	var warnings []string
	for i, v := range values {
		for _, field := range d.Fields {
			if field.Optional {
				continue
			}
			if v[field.DisplayName] == "" {
				warnings = append(warnings, fmt.Sprintf(
					"%s: record %d has no value for required field %q", kvkName, i+1, field.DisplayName))
			}
		}
	}
	return warnings
}

func extractKvkProfile(p *report.KvkProfileRecord) map[string]string {
	return map[string]string{
		"KVK Name":          p.KvkName,
		"Host Organization": p.HostOrganization,
		"Address":           p.Address,
		"District":          p.DistrictName,
		"State":             p.StateName,
		"Zone":              p.ZoneName,
		"Year of Sanction":  report.FormatInt(p.SanctionedYear),
		"Email":             p.Email,
		"Phone":             p.Phone,
	}
}

func extractBankAccount(r *report.BankAccountRecord) map[string]string {
	v := map[string]string{
		"Bank Name":      r.BankName,
		"Branch":         r.Branch,
		"Account Number": r.AccountNumber,
		"IFSC Code":      r.IfscCode,
		"Account Type":   r.AccountType,
		"Balance":        "",
	}
	if r.Balance != nil {
		v["Balance"] = report.FormatCurrency(*r.Balance)
	}
	return v
}

func extractEmployee(r *report.EmployeeRecord) map[string]string {
	return map[string]string{
		"Name":            r.Name,
		"Designation":     r.Designation,
		"Discipline":      r.Discipline,
		"Pay Level":       r.PayLevel,
		"Date of Joining": report.FormatDate(r.DateOfJoining),
		"Date of Birth":   report.FormatDate(r.DateOfBirth),
		"Permanent":       report.FormatBool(r.Permanent),
	}
}

func extractInfrastructureProject(r *report.InfrastructureProjectRecord) map[string]string {
	return map[string]string{
		"Project Name":      r.Name,
		"Type":              r.ProjectType,
		"Status":            r.Status,
		"Sanctioned Amount": report.FormatCurrency(r.SanctionedAmount),
		"Completion Date":   report.FormatDate(r.CompletionDate),
	}
}

func extractVehicle(r *report.VehicleRecord) map[string]string {
	return map[string]string{
		"Vehicle Type":        r.VehicleType,
		"Registration Number": r.RegistrationNumber,
		"Year of Purchase":    report.FormatInt(r.PurchaseYear),
		"Cost":                report.FormatCurrency(r.Cost),
		"Running":             report.FormatBool(r.Running),
	}
}

func extractEquipment(r *report.EquipmentRecord) map[string]string {
	return map[string]string{
		"Equipment Name":   r.Name,
		"Category":         r.Category,
		"Year of Purchase": report.FormatInt(r.PurchaseYear),
		"Cost":             report.FormatCurrency(r.Cost),
		"Working":          report.FormatBool(r.Working),
	}
}

func extractLandRecord(r *report.LandRecord) map[string]string {
	return map[string]string{
		"Survey Number": r.SurveyNumber,
		"Usage":         r.UsageType,
		"Area (ha)":     report.FormatDecimal(r.AreaHectares),
		"Irrigated":     report.FormatBool(r.Irrigated),
	}
}

func extractTraining(r *report.TrainingRecord) map[string]string {
	return map[string]string{
		"Title":        r.Title,
		"Discipline":   r.Discipline,
		"Start Date":   report.FormatDate(r.StartDate),
		"End Date":     report.FormatDate(r.EndDate),
		"Participants": report.FormatInt(r.Participants),
		"Category":     r.Category,
	}
}
