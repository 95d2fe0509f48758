package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/x/metadata", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var env model.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, model.CodeInternal, env.Error.Code)
}

func TestCORS(t *testing.T) {
	called := false
	h := CORS("https://reports.example.com")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	t.Run("preflight short-circuits", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/reports", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://reports.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.False(t, called)
	})

	t.Run("normal requests pass through with headers", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil))
		assert.True(t, called)
		assert.Equal(t, "https://reports.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestAuditPreservesStatus(t *testing.T) {
	h := Audit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reports/x/corrections/flush", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
