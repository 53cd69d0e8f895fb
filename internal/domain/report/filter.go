package report

import "time"

// RawFilter is the caller-supplied temporal filter before normalization.
type RawFilter struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Year      *int       `json:"year,omitempty"`
}

// FilterKind discriminates the normalized filter union.
type FilterKind string

const (
	FilterNone         FilterKind = "none"
	FilterDateRange    FilterKind = "date_range"
	FilterCalendarYear FilterKind = "calendar_year"
)

// Filter is the closed normalized form of a temporal filter. Exactly one
// kind is active; Start/End are populated only for FilterDateRange and
// Year only for FilterCalendarYear.
type Filter struct {
	Kind  FilterKind `json:"kind"`
	Start time.Time  `json:"start,omitempty"`
	End   time.Time  `json:"end,omitempty"`
	Year  int        `json:"year,omitempty"`
}

// NoFilter is the inactive filter.
var NoFilter = Filter{Kind: FilterNone}

// Normalize projects a raw filter onto what the section actually accepts.
// A declared year filter takes precedence over a date range when the
// caller supplies both; a section with no filterable fields ignores the
// filter entirely rather than erroring.
func Normalize(raw RawFilter, d SectionDescriptor) Filter {
	if raw.Year != nil && len(d.Filterable.YearFields) > 0 {
		return Filter{Kind: FilterCalendarYear, Year: *raw.Year}
	}
	if (raw.StartDate != nil || raw.EndDate != nil) && len(d.Filterable.DateFields) > 0 {
		f := Filter{Kind: FilterDateRange}
		if raw.StartDate != nil {
			f.Start = *raw.StartDate
		}
		f.End = farFuture
		if raw.EndDate != nil {
			f.End = *raw.EndDate
		}
		return f
	}
	return NoFilter
}

// AsRaw projects a normalized filter back to its raw form. Normalization
// is idempotent through this projection: Normalize(f.AsRaw(), d) == f for
// any f produced by Normalize against the same descriptor.
func (f Filter) AsRaw() RawFilter {
	switch f.Kind {
	case FilterCalendarYear:
		y := f.Year
		return RawFilter{Year: &y}
	case FilterDateRange:
		start, end := f.Start, f.End
		raw := RawFilter{EndDate: &end}
		if !start.IsZero() {
			raw.StartDate = &start
		}
		return raw
	}
	return RawFilter{}
}

// MatchesAnyDate reports whether any of the candidate dates falls inside
// the date range. Sections declaring several date fields use OR semantics
// so a record is never under-returned. Nil entries are skipped.
func (f Filter) MatchesAnyDate(dates ...*time.Time) bool {
	if f.Kind != FilterDateRange {
		return true
	}
	for _, d := range dates {
		if d == nil {
			continue
		}
		if !d.Before(f.Start) && !d.After(f.End) {
			return true
		}
	}
	return false
}

// MatchesYear reports whether the record year equals the filter year.
func (f Filter) MatchesYear(year int) bool {
	if f.Kind != FilterCalendarYear {
		return true
	}
	return year == f.Year
}

// farFuture caps an open-ended date range.
var farFuture = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
