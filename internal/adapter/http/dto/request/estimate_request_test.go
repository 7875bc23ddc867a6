package request

import (
	"encoding/json"
	"testing"
)

func TestEstimateRequest_ToEntity(t *testing.T) {
	var r EstimateRequest
	body := `{
		"id": " est-1 ",
		"customer": {"name": " Anna ", "email": "anna@example.com"},
		"pax": 2,
		"tour_start": "2026-01-10",
		"tour_end": "2026-01-15",
		"services": [{"name": "Hotel", "day": 1, "price": 100.5, "markup_pct": 10}, {"name": "Guide", "day": 1, "price": "abc"}],
		"pricing": {"hidden_markup_pct": 3, "currency": "usd"},
		"version": "1.0.2"
	}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e, err := r.ToEntity()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID != "est-1" || e.Customer.Name != "Anna" || e.Pricing.Currency != "USD" {
		t.Fatalf("unexpected mapped fields: %+v", e)
	}
	if e.Version.String() != "1.0.2" {
		t.Fatalf("expected version 1.0.2, got %s", e.Version)
	}
	if !e.Services[0].Price.IsNumeric() || e.Services[0].Price.Decimal().String() != "100.5" {
		t.Fatalf("unexpected price %+v", e.Services[0].Price)
	}
	if e.Services[1].Price.IsNumeric() || e.Services[1].Price.IsMissing() {
		t.Fatalf("non-numeric price must be kept for validation")
	}
}

func TestEstimateRequest_ToEntityRejectsBadVersion(t *testing.T) {
	r := EstimateRequest{Version: "one"}
	if _, err := r.ToEntity(); err == nil {
		t.Fatalf("expected version error")
	}
}

func TestEstimateRequest_NewEstimateHasNoVersion(t *testing.T) {
	e, err := EstimateRequest{ID: "est-1"}.ToEntity()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.Version.IsZero() || e.Services == nil {
		t.Fatalf("unexpected entity %+v", e)
	}
}

func TestCalculateRequest(t *testing.T) {
	r := CalculateRequest{
		Services: []ServiceRequest{{Name: " Hotel ", Day: 1}},
		Pricing:  PricingRequest{Currency: " eur "},
		Pax:      3,
	}
	if items := r.Items(); len(items) != 1 || items[0].Name != "Hotel" {
		t.Fatalf("unexpected items %+v", items)
	}
	if r.Settings().Currency != "EUR" {
		t.Fatalf("unexpected settings %+v", r.Settings())
	}
}

func TestBatchSaveRequest_ToEntities(t *testing.T) {
	var r BatchSaveRequest
	body := `{"items": [
		{"id": " est-1 ", "data": {"id": "ignored", "pax": 1, "version": "1.0.3"}},
		{"data": {"id": "est-2", "pax": 2}}
	]}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := r.ToEntities()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "est-1" || got[1].ID != "est-2" {
		t.Fatalf("unexpected ids %+v", got)
	}
	if got[0].Version.String() != "1.0.3" || !got[1].Version.IsZero() {
		t.Fatalf("unexpected versions %s %s", got[0].Version, got[1].Version)
	}

	r.Items = append(r.Items, BatchItemRequest{ID: "est-3", Data: EstimateRequest{Version: "v1"}})
	if _, err := r.ToEntities(); err == nil {
		t.Fatalf("expected version error")
	}
}
