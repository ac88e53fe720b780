package invoiceapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"glowdesk-backend/internal/domain/invoice"
	"glowdesk-backend/internal/domain/payroll"
)

var (
	_ invoice.Service    = (*Client)(nil)
	_ payroll.LineSource = (*Client)(nil)
	_ payroll.RuleLookup = (*Client)(nil)
)

const orgID = "11111111111111111111111111111111"

func TestRefundInvoice_SendsOrgHeaderAndBody(t *testing.T) {
	var gotPath, gotOrg string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotOrg = r.Header.Get("X-Organization-Id")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	err := c.RefundInvoice(context.Background(), orgID, "inv123", 250_000, "client complaint")
	if err != nil {
		t.Fatalf("RefundInvoice: %v", err)
	}
	if gotPath != "/v1/invoices/inv123/refund" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotOrg != orgID {
		t.Fatalf("org header = %q", gotOrg)
	}
	if gotBody["amount"] != float64(250_000) || gotBody["reason"] != "client complaint" {
		t.Fatalf("body = %+v", gotBody)
	}
}

func TestCancelInvoice_SurfacesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"invoice already cancelled"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	err := c.CancelInvoice(context.Background(), orgID, "inv123", "duplicate")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "409") || !strings.Contains(err.Error(), "already cancelled") {
		t.Fatalf("error = %v", err)
	}
}

func TestConfirmedLines_DecodesAndForwardsWindow(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("from") != from.Format(time.RFC3339) || q.Get("to") != to.Format(time.RFC3339) {
			t.Errorf("window not forwarded: %v", q)
		}
		if q.Get("branch_id") != "" {
			t.Errorf("branch_id should be absent, got %q", q.Get("branch_id"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"lines": []map[string]any{{
				"invoice_id": "inv123",
				"staff_id":   "stf1",
				"item_type":  "service",
				"item_id":    "svc1",
				"quantity":   2,
				"line_total": 800_000,
			}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	lines, err := c.ConfirmedLines(context.Background(), orgID, nil, from, to)
	if err != nil {
		t.Fatalf("ConfirmedLines: %v", err)
	}
	if len(lines) != 1 || lines[0].LineTotal != 800_000 || lines[0].ItemType != payroll.ItemService {
		t.Fatalf("lines = %+v", lines)
	}
}

func TestFindRule_404MeansNoRule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	rule, err := c.FindRule(context.Background(), orgID, "stf1", payroll.ItemService, "svc1")
	if err != nil {
		t.Fatalf("FindRule: %v", err)
	}
	if rule != nil {
		t.Fatalf("expected nil rule, got %+v", rule)
	}
}

func TestFindRule_MapsRule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("staff_id") != "stf1" || q.Get("item_type") != "service" || q.Get("item_id") != "svc1" {
			t.Errorf("lookup triple not forwarded: %v", q)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"staff_id":  "stf1",
			"item_type": "service",
			"item_id":   "svc1",
			"mode":      "percent",
			"value":     10,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zerolog.Nop())
	rule, err := c.FindRule(context.Background(), orgID, "stf1", payroll.ItemService, "svc1")
	if err != nil {
		t.Fatalf("FindRule: %v", err)
	}
	if rule == nil || rule.Mode != payroll.RulePercent || rule.Value != 10 {
		t.Fatalf("rule = %+v", rule)
	}
	if got := rule.Commission(800_000, 2); got != 80_000 {
		t.Fatalf("commission = %d", got)
	}
}
