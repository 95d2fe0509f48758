package validation

import (
	"fmt"
	"regexp"
)

var reportIDRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._:-]*$`)

const (
	maxReportIDLength = 128
	maxColumnLength   = 256
)

// ValidateReportID returns an error if the ID cannot serve as a report
// key. IDs travel as storage keys and URL path segments, so the alphabet
// is kept narrow.
func ValidateReportID(id string) error {
	if id == "" {
		return fmt.Errorf("report id is required")
	}
	if len(id) > maxReportIDLength {
		return fmt.Errorf("report id is too long: %d characters", len(id))
	}
	if !reportIDRe.MatchString(id) {
		return fmt.Errorf("report id contains invalid characters: %q", id)
	}
	return nil
}

// ValidateColumn returns an error if a correction's column name is
// unusable. Column names come from CSV headers and may contain spaces, so
// only empty and oversized names are rejected.
func ValidateColumn(name string) error {
	if name == "" {
		return fmt.Errorf("column is required")
	}
	if len(name) > maxColumnLength {
		return fmt.Errorf("column name is too long: %d characters", len(name))
	}
	return nil
}
