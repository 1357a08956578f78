package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/astritdwi/smartbudget/internal/core"
	"github.com/astritdwi/smartbudget/internal/services"
	"github.com/astritdwi/smartbudget/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := storage.NewMemoryStore()
	now := func() time.Time {
		return time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	}
	budget := services.NewBudgetService(store, now)
	budget.Load(context.Background())
	settings := services.NewSettingsService(store, "light", "id")
	srv := NewServer(":0", budget, settings, nil)
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func validTransactionBody() map[string]any {
	return map[string]any{
		"type":        "expense",
		"amount":      25000,
		"category":    "Food & Drink",
		"description": "makan siang",
		"date":        "2025-08-20",
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want ok", rec.Body.String())
	}
}

func TestCreateTransaction(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/transactions", validTransactionBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected assigned ID")
	}
	if created.Amount.Rupiah != 25000 {
		t.Errorf("amount = %d, want 25000", created.Amount.Rupiah)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	srv := newTestServer(t)

	body := validTransactionBody()
	body["description"] = ""
	rec := doJSON(t, srv, http.MethodPost, "/api/transactions", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateTransactionUnknownField(t *testing.T) {
	srv := newTestServer(t)

	body := validTransactionBody()
	body["bogus"] = true
	rec := doJSON(t, srv, http.MethodPost, "/api/transactions", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestListTransactions(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, srv, http.MethodPost, "/api/transactions", validTransactionBody())

	rec := doJSON(t, srv, http.MethodGet, "/api/transactions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var txs []core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &txs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(txs) != 1 {
		t.Errorf("expected 1 transaction, got %d", len(txs))
	}
}

func TestUpdateTransaction(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/transactions", validTransactionBody())
	var created core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	body := validTransactionBody()
	body["amount"] = 40000
	rec = doJSON(t, srv, http.MethodPut, "/api/transactions/"+jsonID(created.ID), body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var updated core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.Amount.Rupiah != 40000 {
		t.Errorf("amount = %d, want 40000", updated.Amount.Rupiah)
	}
}

func TestUpdateTransactionNotFound(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPut, "/api/transactions/42", validTransactionBody())
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteTransaction(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/transactions", validTransactionBody())
	var created core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/transactions/"+jsonID(created.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodDelete, "/api/transactions/"+jsonID(created.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestTransactionBadID(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodDelete, "/api/transactions/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGoalLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/goals", map[string]any{
		"name":     "Dana Darurat",
		"target":   1000000,
		"deadline": "2025-12-31",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var created core.Goal
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/goals/"+jsonID(created.ID), map[string]any{
		"name":     "Dana Darurat",
		"target":   1000000,
		"deadline": "2025-12-31",
		"saved":    500000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/goals/"+jsonID(created.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
}

func TestClassify(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/classify?q=beli+bensin+di+SPBU", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp classifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Category != "Transportation" {
		t.Errorf("category = %q, want Transportation", resp.Category)
	}
	if resp.Suggestion == "" {
		t.Error("expected suggestion text")
	}
}

func TestDashboardAndCacheInvalidation(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/dashboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	empty := rec.Body.String()

	doJSON(t, srv, http.MethodPost, "/api/transactions", validTransactionBody())

	rec = doJSON(t, srv, http.MethodGet, "/api/dashboard", nil)
	if rec.Body.String() == empty {
		t.Error("dashboard unchanged after mutation, cache not invalidated")
	}
}

func TestInsights(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, srv, http.MethodPost, "/api/transactions", validTransactionBody())

	rec := doJSON(t, srv, http.MethodGet, "/api/insights?balance=1000000", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/insights?balance=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid balance status = %d, want 400", rec.Code)
	}
}

func TestSettings(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/settings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got services.Settings
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Theme != "light" || got.Language != "id" {
		t.Errorf("defaults = %+v, want light/id", got)
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/settings", services.Settings{Theme: "dark"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Theme != "dark" || got.Language != "id" {
		t.Errorf("after update = %+v, want dark/id", got)
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/settings", services.Settings{Theme: "sepia"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid theme status = %d, want 400", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/dashboard", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
