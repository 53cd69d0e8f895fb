package report

import (
	"time"

	"github.com/google/uuid"
)

// Row is one record of a section payload, already formatted for display.
// Values are keyed by the descriptor's display names; column order comes
// from the descriptor, not the map.
type Row struct {
	KvkID   uuid.UUID         `json:"kvk_id"`
	KvkName string            `json:"kvk_name"`
	Values  map[string]string `json:"values"`
}

// KvkError records a per-KVK fetch failure that did not abort the section.
type KvkError struct {
	KvkID  uuid.UUID `json:"kvk_id"`
	Reason string    `json:"reason"`
}

// SectionPayload is one populated section of a report document.
type SectionPayload struct {
	SectionID    string       `json:"section_id"`
	Title        string       `json:"title"`
	Format       RenderFormat `json:"format"`
	Columns      []string     `json:"columns"`
	GroupBy      string       `json:"group_by,omitempty"`
	Rows         []Row        `json:"rows"`
	PerKvkErrors []KvkError   `json:"per_kvk_errors,omitempty"`
	Warnings     []string     `json:"warnings,omitempty"`
}

// Metadata describes the report as a whole.
type Metadata struct {
	Title        string    `json:"title"`
	GeneratedAt  time.Time `json:"generated_at"`
	GeneratedBy  string    `json:"generated_by"`
	ScopeSummary string    `json:"scope_summary"`
	KvkCount     int       `json:"kvk_count"`
	FailedKvks   int       `json:"failed_kvks"`
}

// Document is the assembled report handed to the renderer. It is
// constructed fresh per request and never mutated afterwards.
type Document struct {
	Metadata Metadata         `json:"metadata"`
	Sections []SectionPayload `json:"sections"`
}

// FailedKvkCount counts distinct KVKs that failed in at least one section.
func (d *Document) FailedKvkCount() int {
	seen := make(map[uuid.UUID]struct{})
	for _, s := range d.Sections {
		for _, e := range s.PerKvkErrors {
			seen[e.KvkID] = struct{}{}
		}
	}
	return len(seen)
}
