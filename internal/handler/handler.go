package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/config"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/ledger"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/model"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/report"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/service"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	svc *service.Service
	cfg *config.Config
}

// Register sets up all API routes.
func Register(r chi.Router, svc *service.Service, cfg *config.Config) {
	h := &Handler{svc: svc, cfg: cfg}

	r.Route("/api/v1", func(r chi.Router) {
		// Reports
		r.Post("/reports", h.IngestReport)
		r.Get("/reports/{reportID}/metadata", h.GetMetadata)
		r.Get("/reports/{reportID}/errors", h.GetErrorPage)
		r.Get("/reports/{reportID}/sequence", h.GetSequence)
		r.Get("/reports/{reportID}/export", h.ExportReport)

		// Corrections
		r.Post("/reports/{reportID}/corrections", h.AddCorrections)
		r.Get("/reports/{reportID}/corrections", h.ListCorrections)
		r.Post("/reports/{reportID}/corrections/flush", h.FlushCorrections)
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, model.NewError(code, message, nil))
}

func writeErrorWithDetails(w http.ResponseWriter, status int, code, message string, details interface{}) {
	writeJSON(w, status, model.NewError(code, message, details))
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// handleServiceError maps service-layer errors to HTTP responses. Typed
// domain errors carry their own status; anything unrecognized is a 500.
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Details != nil {
			writeErrorWithDetails(w, apiErr.Status, apiErr.Code, apiErr.Msg, apiErr.Details)
		} else {
			writeError(w, apiErr.Status, apiErr.Code, apiErr.Msg)
		}
		return
	}

	var notFound *report.NotFoundError
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, model.CodeNotFound, notFound.Error())
		return
	}

	var stale *report.StaleReportError
	if errors.As(err, &stale) {
		writeErrorWithDetails(w, http.StatusConflict, model.CodeStaleReport, stale.Error(), map[string]string{
			"report_id":  stale.ReportID,
			"generation": stale.Generation,
			"hint":       "refresh_metadata",
		})
		return
	}

	var format *report.FormatError
	if errors.As(err, &format) {
		writeError(w, http.StatusBadRequest, model.CodeFormatError, format.Error())
		return
	}

	var decomp *report.DecompressionError
	if errors.As(err, &decomp) {
		writeError(w, http.StatusBadRequest, model.CodeDecompressionError, decomp.Error())
		return
	}

	var invalid *report.ValidationError
	if errors.As(err, &invalid) {
		writeError(w, http.StatusBadRequest, model.CodeValidationError, invalid.Error())
		return
	}

	if errors.Is(err, ledger.ErrFlushInProgress) {
		writeError(w, http.StatusConflict, model.CodeFlushInProgress, err.Error())
		return
	}

	writeError(w, http.StatusInternalServerError, model.CodeInternal, err.Error())
}
