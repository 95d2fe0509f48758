package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/model"
)

func (h *Handler) AddCorrections(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	var req model.CorrectionsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, model.CodeInvalidArgument, "invalid request body")
		return
	}

	resp, err := h.svc.AddCorrections(r.Context(), reportID, req.Corrections)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListCorrections(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	resp, err := h.svc.ListCorrections(r.Context(), reportID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) FlushCorrections(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")

	resp, err := h.svc.Flush(r.Context(), reportID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
