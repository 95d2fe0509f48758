// Package report defines the canonical in-memory form of a validation
// error report: the summary, the category/group/row hierarchy and the raw
// row data that error rows point at. Everything downstream (the compact
// codec, pagination, the correction ledger) works against these types.
package report

import (
	"fmt"
	"strings"
)

// SequenceCategory is the canonical name of the flight sequence category.
const SequenceCategory = "SEQUENCE_ERRORS"

// SequenceRunLength is the number of physical rows that make up one
// logical flight sequence error (departure and arrival of two legs).
const SequenceRunLength = 4

// ErrorReport is a full validation report for one uploaded file.
// Category order is meaningful and preserved end to end.
type ErrorReport struct {
	Summary    Summary         `json:"summary"`
	Categories []ErrorCategory `json:"categories"`
}

// Summary carries the aggregate counts shown before any page of errors is
// fetched. TotalErrors counts logical errors, not physical rows.
type Summary struct {
	TotalErrors    int            `json:"total_errors"`
	ErrorRows      int            `json:"error_rows"`
	CategoryCounts map[string]int `json:"category_counts"`
}

// ErrorCategory is one kind of validation failure, such as date errors or
// flight sequence errors, holding its groups in display order.
type ErrorCategory struct {
	Name   string       `json:"name"`
	Groups []ErrorGroup `json:"groups"`
}

// ErrorGroup collects the rows that failed for the same reason.
type ErrorGroup struct {
	Reason string     `json:"reason"`
	Rows   []ErrorRow `json:"rows"`
}

// ErrorRow is a single offending row: where it is, what the validator said
// about it, and which columns the user may edit to fix it.
type ErrorRow struct {
	Location        RowLocation `json:"location"`
	Diagnostic      string      `json:"diagnostic_text"`
	EditableColumns []string    `json:"editable_columns,omitempty"`
}

// RowDataMap holds the raw cell values of the source rows referenced by
// error rows, keyed by row index. It is sparse: only referenced rows are
// present, and a missing entry is not an error.
type RowDataMap map[int]map[string]interface{}

// Correction is one pending cell edit, keyed by (Location, Column).
type Correction struct {
	Location RowLocation `json:"location"`
	Column   string      `json:"column"`
	OldValue interface{} `json:"old_value"`
	NewValue interface{} `json:"new_value"`
}

// SequenceDiagnostic is the parsed form of a flight sequence error text,
// such as "TCCOH : LTAF -> LTAI".
type SequenceDiagnostic struct {
	Code        string `json:"code"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// Key returns the deduplication key for a diagnostic. Two diagnostics with
// the same key describe the same underlying sequence failure.
func (d SequenceDiagnostic) Key() string {
	return d.Code + "|" + d.Origin + "|" + d.Destination
}

// IsSequenceCategory reports whether a category holds flight sequence
// errors, which count four physical rows as one logical error.
func IsSequenceCategory(name string) bool {
	return strings.Contains(strings.ToLower(name), "sequence")
}

// GroupLogicalErrors returns the number of logical errors in a group. For
// sequence groups a trailing short run still counts as one error.
func GroupLogicalErrors(g ErrorGroup, sequence bool) int {
	if sequence {
		return (len(g.Rows) + SequenceRunLength - 1) / SequenceRunLength
	}
	return len(g.Rows)
}

// CategoryLogicalErrors returns the number of logical errors in a
// category under its own counting rule.
func CategoryLogicalErrors(c ErrorCategory) int {
	sequence := IsSequenceCategory(c.Name)
	n := 0
	for _, g := range c.Groups {
		n += GroupLogicalErrors(g, sequence)
	}
	return n
}

// Summarize recomputes the Summary implied by a set of categories.
// ErrorRows counts distinct numeric row indices; file-level rows do not
// contribute.
func Summarize(categories []ErrorCategory) Summary {
	s := Summary{CategoryCounts: make(map[string]int, len(categories))}
	seen := make(map[int]struct{})
	for _, c := range categories {
		n := CategoryLogicalErrors(c)
		s.CategoryCounts[c.Name] += n
		s.TotalErrors += n
		for _, g := range c.Groups {
			for _, r := range g.Rows {
				if idx, ok := r.Location.Index(); ok {
					seen[idx] = struct{}{}
				}
			}
		}
	}
	s.ErrorRows = len(seen)
	return s
}

// Validate checks the report's counts against its categories. A report
// whose summary disagrees with its own contents is rejected rather than
// silently repaired.
func (r *ErrorReport) Validate() error {
	if r.Summary.TotalErrors < 0 {
		return &ValidationError{Reason: fmt.Sprintf("total_errors is negative: %d", r.Summary.TotalErrors)}
	}
	if r.Summary.ErrorRows < 0 {
		return &ValidationError{Reason: fmt.Sprintf("error_rows is negative: %d", r.Summary.ErrorRows)}
	}
	for name, n := range r.Summary.CategoryCounts {
		if n < 0 {
			return &ValidationError{Reason: fmt.Sprintf("category %q count is negative: %d", name, n)}
		}
	}
	want := Summarize(r.Categories)
	for _, c := range r.Categories {
		if got, wantN := r.Summary.CategoryCounts[c.Name], want.CategoryCounts[c.Name]; got != wantN {
			return &ValidationError{Reason: fmt.Sprintf("category %q count is %d but its groups hold %d logical errors", c.Name, got, wantN)}
		}
	}
	if r.Summary.TotalErrors != want.TotalErrors {
		return &ValidationError{Reason: fmt.Sprintf("total_errors is %d but categories hold %d logical errors", r.Summary.TotalErrors, want.TotalErrors)}
	}
	for name, n := range r.Summary.CategoryCounts {
		if _, ok := want.CategoryCounts[name]; !ok && n != 0 {
			return &ValidationError{Reason: fmt.Sprintf("category_counts references unknown category %q", name)}
		}
	}
	return nil
}
