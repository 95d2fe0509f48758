package report

import "fmt"

// FormatError reports an encoded payload whose structure cannot be
// understood at all: non-JSON input, a missing field map, or an envelope
// field of the wrong shape.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "malformed report payload: " + e.Reason
}

// DecompressionError reports a payload that was flagged as compressed but
// could not be expanded.
type DecompressionError struct {
	Err error
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("failed to decompress report payload: %v", e.Err)
}

func (e *DecompressionError) Unwrap() error { return e.Err }

// ValidationError reports a structurally well-formed report whose contents
// violate an invariant, such as negative or inconsistent counts.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid report: " + e.Reason
}

// NotFoundError reports a lookup of a report, category or page that does
// not exist.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// StaleReportError reports an access through a generation that has been
// invalidated, typically because corrections were flushed and the source
// file is being revalidated. Callers should refetch metadata to pick up
// the replacement generation.
type StaleReportError struct {
	ReportID   string
	Generation string
}

func (e *StaleReportError) Error() string {
	if e.Generation == "" {
		return fmt.Sprintf("report %s is stale", e.ReportID)
	}
	return fmt.Sprintf("report %s generation %s is stale", e.ReportID, e.Generation)
}
