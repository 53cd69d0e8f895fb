package rendering

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvk/backend/internal/domain/report"
)

func testDocument() *report.Document {
	kvkID := uuid.New()
	return &report.Document{
		Metadata: report.Metadata{
			Title:        "Annual Report",
			GeneratedAt:  time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC),
			GeneratedBy:  "DDO Ludhiana",
			ScopeSummary: "2 KVKs selected by district",
			KvkCount:     2,
		},
		Sections: []report.SectionPayload{
			{
				SectionID: "1.3",
				Title:     "Employee Details",
				Format:    report.FormatTable,
				Columns:   []string{"Name", "Designation"},
				Rows: []report.Row{
					{KvkID: kvkID, KvkName: "KVK Amritsar", Values: map[string]string{"Name": "A Kaur", "Designation": "SMS"}},
					{KvkID: kvkID, KvkName: "KVK Amritsar", Values: map[string]string{"Name": "B Singh", "Designation": "Driver"}},
				},
			},
		},
	}
}

func TestHTMLBuilderBuild(t *testing.T) {
	builder, err := NewHTMLBuilder()
	require.NoError(t, err)

	t.Run("table section carries serial and kvk columns", func(t *testing.T) {
		html, err := builder.Build(testDocument())
		require.NoError(t, err)
		assert.Contains(t, html, "<th>S.No.</th>")
		assert.Contains(t, html, "<th>KVK</th>")
		assert.Contains(t, html, "<td>1</td><td>KVK Amritsar</td><td>A Kaur</td>")
		assert.Contains(t, html, "<td>2</td><td>KVK Amritsar</td><td>B Singh</td>")
		assert.Contains(t, html, "Generated on 15-03-2026 10:30 by DDO Ludhiana")
	})

	t.Run("empty section renders the placeholder", func(t *testing.T) {
		doc := testDocument()
		doc.Sections = []report.SectionPayload{{
			SectionID: "3.1",
			Title:     "Land Records",
			Format:    report.FormatTable,
			Columns:   []string{"Survey Number"},
		}}
		html, err := builder.Build(doc)
		require.NoError(t, err)
		assert.Contains(t, html, noRecordsPlaceholder)
		assert.NotContains(t, html, "<th>Survey Number</th>")
	})

	t.Run("narrative section renders one block per kvk", func(t *testing.T) {
		doc := testDocument()
		doc.Sections = []report.SectionPayload{{
			SectionID: "1.1",
			Title:     "KVK Profile",
			Format:    report.FormatNarrative,
			Columns:   []string{"KVK Name", "Host Organization"},
			Rows: []report.Row{
				{KvkName: "KVK Amritsar", Values: map[string]string{"KVK Name": "KVK Amritsar", "Host Organization": "PAU"}},
				{KvkName: "KVK Bathinda", Values: map[string]string{"KVK Name": "KVK Bathinda", "Host Organization": "PAU"}},
			},
		}}
		html, err := builder.Build(doc)
		require.NoError(t, err)
		assert.Contains(t, html, "<h3>KVK Amritsar</h3>")
		assert.Contains(t, html, "<h3>KVK Bathinda</h3>")
		assert.Contains(t, html, "<td>Host Organization</td><td>PAU</td>")
		assert.NotContains(t, html, "S.No.")
	})

	t.Run("grouped table nests rows under group headers", func(t *testing.T) {
		doc := testDocument()
		doc.Sections = []report.SectionPayload{{
			SectionID: "2.1",
			Title:     "Vehicle Details",
			Format:    report.FormatGroupedTable,
			GroupBy:   "Year of Purchase",
			Columns:   []string{"Vehicle Type", "Year of Purchase", "Running"},
			Rows: []report.Row{
				{KvkName: "KVK Amritsar", Values: map[string]string{"Vehicle Type": "Tractor", "Year of Purchase": "2022", "Running": "Yes"}},
				{KvkName: "KVK Amritsar", Values: map[string]string{"Vehicle Type": "Jeep", "Year of Purchase": "2022", "Running": "Yes"}},
				{KvkName: "KVK Bathinda", Values: map[string]string{"Vehicle Type": "Van", "Year of Purchase": "2019", "Running": "No"}},
			},
		}}
		html, err := builder.Build(doc)
		require.NoError(t, err)
		// Grouping column moves to sub-headers; serial restarts per group.
		assert.NotContains(t, html, "<th>Year of Purchase</th>")
		assert.Contains(t, html, `<td colspan="4">2022</td>`)
		assert.Contains(t, html, `<td colspan="4">2019</td>`)
		assert.Contains(t, html, "<td>1</td><td>KVK Amritsar</td><td>Tractor</td>")
		assert.Contains(t, html, "<td>2</td><td>KVK Amritsar</td><td>Jeep</td>")
		assert.Contains(t, html, "<td>1</td><td>KVK Bathinda</td><td>Van</td>")
	})

	t.Run("warnings and per-kvk errors are listed under the section", func(t *testing.T) {
		doc := testDocument()
		doc.Sections[0].Warnings = []string{"KVK Amritsar: record 1 has no value for required field \"Date of Joining\""}
		doc.Sections[0].PerKvkErrors = []report.KvkError{{KvkID: uuid.New(), Reason: "store unavailable"}}
		html, err := builder.Build(doc)
		require.NoError(t, err)
		assert.Contains(t, html, "Data unavailable for one unit: store unavailable")
		assert.Contains(t, html, "required field")
	})

	t.Run("values are html escaped", func(t *testing.T) {
		doc := testDocument()
		doc.Sections[0].Rows[0].Values["Name"] = `<script>alert("x")</script>`
		html, err := builder.Build(doc)
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>alert")
	})
}
