package model

import (
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/page"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/report"
)

// ErrorEnvelope wraps ErrorDetail in {"error": {...}} for API responses.
type ErrorEnvelope struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents the error detail inside the envelope.
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// NewError creates an ErrorEnvelope for API responses.
func NewError(code, message string, details interface{}) ErrorEnvelope {
	return ErrorEnvelope{
		Error: ErrorDetail{Code: code, Message: message, Details: details},
	}
}

// Error codes returned in the envelope.
const (
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeFormatError        = "FORMAT_ERROR"
	CodeDecompressionError = "DECOMPRESSION_ERROR"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeStaleReport        = "STALE_REPORT"
	CodeFlushInProgress    = "FLUSH_IN_PROGRESS"
	CodeInternal           = "INTERNAL"
)

// IngestRequest carries an encoded report produced by the validator. The
// payload is opaque text; Compressed tells the codec which decode path to
// run. ReportID is optional and assigned by the server when empty.
type IngestRequest struct {
	ReportID   string `json:"report_id,omitempty"`
	Compressed bool   `json:"compressed"`
	Payload    string `json:"payload"`
}

// IngestResponse confirms the stored report and its fresh generation.
type IngestResponse struct {
	ReportID        string   `json:"report_id"`
	Generation      string   `json:"generation"`
	TotalErrors     int      `json:"total_errors"`
	ErrorRows       int      `json:"error_rows"`
	ErrorCategories int      `json:"error_categories"`
	Warnings        []string `json:"warnings,omitempty"`
}

// MetadataResponse is the category listing served before any page fetch.
type MetadataResponse struct {
	ReportID   string `json:"report_id"`
	Generation string `json:"generation"`
	page.Metadata
}

// PageResponse is one self-contained page of one category. For sequence
// categories it also carries the correlation outputs for the rows on the
// page.
type PageResponse struct {
	ReportID   string `json:"report_id"`
	Generation string `json:"generation"`
	page.Page
	Highlights      []report.RowLocation                 `json:"highlights,omitempty"`
	SequenceSummary map[string]report.SequenceDiagnostic `json:"sequence_summary,omitempty"`
}

// SequenceResponse is the whole-report correlation output: every
// highlighted row location and the deduplicated flight summary.
type SequenceResponse struct {
	ReportID   string                               `json:"report_id"`
	Generation string                               `json:"generation"`
	Highlights []report.RowLocation                 `json:"highlights"`
	Summary    map[string]report.SequenceDiagnostic `json:"summary"`
}

// CorrectionsRequest carries one or more pending cell edits.
type CorrectionsRequest struct {
	Corrections []report.Correction `json:"corrections"`
}

// CorrectionsResponse reports the ledger after an add.
type CorrectionsResponse struct {
	ReportID string `json:"report_id"`
	Pending  int    `json:"pending"`
	State    string `json:"state"`
}

// ListCorrectionsResponse lists the pending corrections in stable order.
type ListCorrectionsResponse struct {
	ReportID    string              `json:"report_id"`
	State       string              `json:"state"`
	Corrections []report.Correction `json:"corrections"`
}

// FlushResponse reports a completed flush. GenerationStale tells the
// client the snapshot was invalidated and metadata must be refetched.
type FlushResponse struct {
	ReportID        string `json:"report_id"`
	Saved           int    `json:"saved"`
	State           string `json:"state"`
	GenerationStale bool   `json:"generation_stale"`
}

// ExportResponse returns the stored whole-report payload in its compact
// wire form.
type ExportResponse struct {
	ReportID   string `json:"report_id"`
	Generation string `json:"generation"`
	Compressed bool   `json:"compressed"`
	Payload    string `json:"payload"`
}

// APIError is a typed error that handlers can map to specific HTTP responses.
type APIError struct {
	Status  int
	Code    string
	Msg     string
	Details interface{}
}

func (e *APIError) Error() string {
	return e.Msg
}
