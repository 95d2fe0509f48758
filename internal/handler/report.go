package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/model"
)

func (h *Handler) IngestReport(w http.ResponseWriter, r *http.Request) {
	var req model.IngestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeInvalidArgument, "invalid request body")
		return
	}

	resp, err := h.svc.Ingest(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	resp, err := h.svc.Metadata(r.Context(), reportID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetSequence(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	resp, err := h.svc.Sequence(r.Context(), reportID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	resp, err := h.svc.Export(r.Context(), reportID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
