package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func performRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
	return out
}

const validEstimateBody = `{
	"id": "est-1",
	"customer": {"name": "Anna Petrova"},
	"pax": 2,
	"tour_start": "2026-01-10",
	"tour_end": "2026-01-15",
	"services": [{"name": "Hotel", "day": 1, "price": 100, "markup_pct": 10}],
	"pricing": {"hidden_markup_pct": 3, "partner_commission_pct": 2, "currency": "USD"},
	"version": "1.0.0"
}`
