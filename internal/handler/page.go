package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/model"
)

func (h *Handler) GetErrorPage(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportID")
	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, http.StatusBadRequest, model.CodeInvalidArgument, "category is required")
		return
	}

	// Out-of-range pages are decided downstream, where the category's page
	// count is known; only a malformed number is rejected here.
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		v, err := strconv.Atoi(p)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.CodeInvalidArgument, "invalid page number")
			return
		}
		page = v
	}
	generation := r.URL.Query().Get("generation")

	resp, err := h.svc.Page(r.Context(), reportID, category, page, generation)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if r.URL.Query().Get("compress") == "true" {
		body, err := json.Marshal(resp)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		sealed, err := h.svc.Seal(string(body))
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sealed)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
