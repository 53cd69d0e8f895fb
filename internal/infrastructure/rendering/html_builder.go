package rendering

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/kvk/backend/internal/domain/report"
)

// HTMLBuilder renders a report document into the HTML handed to the PDF
// renderer. The view model is computed here so the template stays a plain
// layout with no logic beyond ranging.
type HTMLBuilder struct {
	tmpl *template.Template
}

// NewHTMLBuilder parses the report template once at construction.
func NewHTMLBuilder() (*HTMLBuilder, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "failed to parse report template", err)
	}
	return &HTMLBuilder{tmpl: tmpl}, nil
}

// serialColumn heads every tabular section.
const serialColumn = "S.No."

// noRecordsPlaceholder is shown for sections with no rows.
const noRecordsPlaceholder = "No records available for the selected scope."

type documentView struct {
	Title        string
	GeneratedAt  string
	GeneratedBy  string
	ScopeSummary string
	KvkCount     int
	FailedKvks   int
	Sections     []sectionView
}

type sectionView struct {
	ID        string
	Title     string
	Narrative bool
	Grouped   bool
	Empty     bool

	// Narrative sections: one block of field/value pairs per KVK.
	Blocks []narrativeBlock
	// Table sections: header plus data rows with serial numbers.
	Header []string
	Rows   [][]string
	// Grouped sections partition the rows under group sub-headers.
	Groups []groupView

	Placeholder string
	Warnings    []string
	KvkErrors   []string
}

type narrativeBlock struct {
	KvkName string
	Fields  []fieldView
}

type fieldView struct {
	Name  string
	Value string
}

type groupView struct {
	Key  string
	Rows [][]string
}

// Build renders the document to HTML.
func (b *HTMLBuilder) Build(doc *report.Document) (string, error) {
	view := documentView{
		Title:        doc.Metadata.Title,
		GeneratedAt:  doc.Metadata.GeneratedAt.Format("02-01-2006 15:04"),
		GeneratedBy:  doc.Metadata.GeneratedBy,
		ScopeSummary: doc.Metadata.ScopeSummary,
		KvkCount:     doc.Metadata.KvkCount,
		FailedKvks:   doc.Metadata.FailedKvks,
	}
	for i := range doc.Sections {
		view.Sections = append(view.Sections, buildSectionView(&doc.Sections[i]))
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, view); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute report template", err)
	}
	return buf.String(), nil
}

func buildSectionView(p *report.SectionPayload) sectionView {
	v := sectionView{
		ID:       p.SectionID,
		Title:    p.Title,
		Warnings: p.Warnings,
	}
	for _, e := range p.PerKvkErrors {
		v.KvkErrors = append(v.KvkErrors, "Data unavailable for one unit: "+e.Reason)
	}
	if len(p.Rows) == 0 {
		v.Empty = true
		v.Placeholder = noRecordsPlaceholder
		return v
	}

	switch p.Format {
	case report.FormatNarrative:
		v.Narrative = true
		for _, row := range p.Rows {
			block := narrativeBlock{KvkName: row.KvkName}
			for _, col := range p.Columns {
				block.Fields = append(block.Fields, fieldView{Name: col, Value: row.Values[col]})
			}
			v.Blocks = append(v.Blocks, block)
		}
	case report.FormatGroupedTable:
		v.Grouped = true
		v.Header = tableHeader(p)
		v.Groups = groupRows(p)
	default:
		v.Header = tableHeader(p)
		for i, row := range p.Rows {
			v.Rows = append(v.Rows, tableRow(p, i+1, row))
		}
	}
	return v
}

// tableHeader prepends the serial and KVK columns to the section columns.
// The grouping column is omitted from grouped tables since it becomes the
// sub-header.
func tableHeader(p *report.SectionPayload) []string {
	header := []string{serialColumn, "KVK"}
	for _, col := range p.Columns {
		if p.Format == report.FormatGroupedTable && col == p.GroupBy {
			continue
		}
		header = append(header, col)
	}
	return header
}

func tableRow(p *report.SectionPayload, serial int, row report.Row) []string {
	out := []string{strconv.Itoa(serial), row.KvkName}
	for _, col := range p.Columns {
		if p.Format == report.FormatGroupedTable && col == p.GroupBy {
			continue
		}
		out = append(out, row.Values[col])
	}
	return out
}

// groupRows partitions the rows by the grouping column, keeping groups in
// first-appearance order and restarting serial numbers per group.
func groupRows(p *report.SectionPayload) []groupView {
	var groups []groupView
	index := make(map[string]int)
	for _, row := range p.Rows {
		key := row.Values[p.GroupBy]
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, groupView{Key: key})
		}
		groups[i].Rows = append(groups[i].Rows, tableRow(p, len(groups[i].Rows)+1, row))
	}
	return groups
}
