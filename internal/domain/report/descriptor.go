// Package report defines the declarative section catalog, the normalized
// temporal filter, and the assembled report document model.
package report

// RenderFormat selects how a section is laid out in the rendered document.
type RenderFormat string

const (
	// FormatNarrative renders one key->value block (single-entity sections).
	FormatNarrative RenderFormat = "narrative"
	// FormatTable renders one row per record with a serial-number column.
	FormatTable RenderFormat = "table"
	// FormatGroupedTable renders a table partitioned by a grouping column.
	FormatGroupedTable RenderFormat = "grouped-table"
)

// ValueType describes how a source field is formatted into a display value.
type ValueType string

const (
	TypeString   ValueType = "string"
	TypeInt      ValueType = "int"
	TypeDate     ValueType = "date"
	TypeBool     ValueType = "bool"
	TypeCurrency ValueType = "currency"
	TypeDecimal  ValueType = "decimal"
)

// Field maps one source field to a display column.
type Field struct {
	SourceField string    `json:"source_field"`
	DisplayName string    `json:"display_name"`
	Type        ValueType `json:"type"`
	Optional    bool      `json:"optional"`
}

// FilterableFields declares which temporal filters a section accepts.
// A section with both lists empty ignores any supplied filter.
type FilterableFields struct {
	// DateFields are the source date columns a DateRange filter matches
	// against. A record matches when ANY declared field falls in range.
	DateFields []string `json:"date_fields"`
	// YearFields are the source integer-year columns a CalendarYear
	// filter matches against.
	YearFields []string `json:"year_fields"`
}

// SectionDescriptor is the immutable schema of one report section.
type SectionDescriptor struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	DataSource string           `json:"data_source"`
	Format     RenderFormat     `json:"format"`
	Fields     []Field          `json:"fields"`
	Filterable FilterableFields `json:"filterable"`
	// GroupBy is the display name of the grouping column for
	// grouped-table sections, empty otherwise.
	GroupBy string `json:"group_by,omitempty"`
}

// Columns returns the display names of the section's fields in declared order.
func (d SectionDescriptor) Columns() []string {
	cols := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		cols[i] = f.DisplayName
	}
	return cols
}

// AcceptsFilter reports whether the section declares any temporal filter field.
func (d SectionDescriptor) AcceptsFilter() bool {
	return len(d.Filterable.DateFields) > 0 || len(d.Filterable.YearFields) > 0
}
