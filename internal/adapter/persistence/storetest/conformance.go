// Package storetest holds the behaviour every storage backend must share.
// Backend packages call Run from their own tests.
package storetest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase/interfaces"
)

// SampleEstimate returns a valid estimate at the given version.
func SampleEstimate(id string, version string) entities.Estimate {
	return entities.Estimate{
		ID:        id,
		Customer:  entities.Customer{Name: "Anna Petrova", Phone: "+7 999 123-45-67", Email: "anna@example.com"},
		Pax:       2,
		TourStart: "2026-01-10",
		TourEnd:   "2026-01-15",
		Services: []entities.ServiceItem{
			{Name: "Hotel", Description: "Double room", Company: "Grand", Day: 1, Price: entities.AmountFromFloat(100), MarkupPct: 10},
			{Name: "Transfer", Company: "Cars", Day: 2, Price: entities.AmountFromFloat(200), MarkupPct: 5},
		},
		Pricing:          entities.PricingSettings{HiddenMarkupPct: 3, PartnerCommissionPct: 2, Currency: "USD"},
		InternalComments: "vip",
		Version:          entities.MustParseVersion(version),
		UpdatedAt:        time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Run exercises the repository contract against a fresh store.
func Run(t *testing.T, newStore func(t *testing.T) interfaces.IStore) {
	t.Run("estimate get missing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Estimates().Get(context.Background(), "missing")
		if !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("odd ids read as missing", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		v := entities.MustParseVersion("1.0.0")
		for _, id := range []string{"a.b", "../etc/passwd", "with space"} {
			if _, err := s.Estimates().Get(ctx, id); !errors.Is(err, entities.ErrNotFound) {
				t.Fatalf("get %q: expected ErrNotFound, got %v", id, err)
			}
			if err := s.Estimates().Delete(ctx, id); !errors.Is(err, entities.ErrNotFound) {
				t.Fatalf("delete %q: expected ErrNotFound, got %v", id, err)
			}
			if _, err := s.Backups().Get(ctx, id, v); !errors.Is(err, entities.ErrNotFound) {
				t.Fatalf("backup get %q: expected ErrNotFound, got %v", id, err)
			}
			list, err := s.Backups().ListByEstimateID(ctx, id)
			if err != nil || len(list) != 0 {
				t.Fatalf("backup list %q: expected empty, got %v %v", id, list, err)
			}
		}
	})

	t.Run("estimate put and get round trip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		in := SampleEstimate("est-1", "1.0.0")
		if err := s.Estimates().Put(ctx, in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out, err := s.Estimates().Get(ctx, "est-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mustJSON(t, in) != mustJSON(t, out) {
			t.Fatalf("round trip changed estimate:\n%s\n%s", mustJSON(t, in), mustJSON(t, out))
		}
	})

	t.Run("estimate put rejects older or equal version", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		if err := s.Estimates().Put(ctx, SampleEstimate("est-1", "1.0.1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, v := range []string{"1.0.1", "1.0.0"} {
			if err := s.Estimates().Put(ctx, SampleEstimate("est-1", v)); !errors.Is(err, entities.ErrConflict) {
				t.Fatalf("version %s: expected ErrConflict, got %v", v, err)
			}
		}
		if err := s.Estimates().Put(ctx, SampleEstimate("est-1", "1.0.2")); err != nil {
			t.Fatalf("newer version must be accepted: %v", err)
		}
		got, _ := s.Estimates().Get(ctx, "est-1")
		if got.Version.String() != "1.0.2" {
			t.Fatalf("expected 1.0.2, got %s", got.Version)
		}
	})

	t.Run("estimate replace ignores version order", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		_ = s.Estimates().Put(ctx, SampleEstimate("est-1", "1.0.5"))
		if err := s.Estimates().Replace(ctx, SampleEstimate("est-1", "1.0.1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := s.Estimates().Get(ctx, "est-1")
		if got.Version.String() != "1.0.1" {
			t.Fatalf("expected 1.0.1, got %s", got.Version)
		}
	})

	t.Run("estimate list newest first", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		older := SampleEstimate("a", "1.0.0")
		newer := SampleEstimate("b", "1.0.0")
		newer.UpdatedAt = older.UpdatedAt.Add(time.Hour)
		_ = s.Estimates().Put(ctx, older)
		_ = s.Estimates().Put(ctx, newer)
		list, err := s.Estimates().List(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != 2 || list[0].ID != "b" || list[1].ID != "a" {
			t.Fatalf("unexpected list: %+v", list)
		}
		if list[0].ClientName != "Anna Petrova" || list[0].Pax != 2 {
			t.Fatalf("unexpected summary: %+v", list[0])
		}
	})

	t.Run("estimate delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		_ = s.Estimates().Put(ctx, SampleEstimate("est-1", "1.0.0"))
		if err := s.Estimates().Delete(ctx, "est-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.Estimates().Delete(ctx, "est-1"); !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
		if _, err := s.Estimates().Get(ctx, "est-1"); !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("backups are append only", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		snap := sampleSnapshot(t, "est-1", "1.0.0")
		if err := s.Backups().Append(ctx, snap); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.Backups().Append(ctx, snap); !errors.Is(err, entities.ErrConflict) {
			t.Fatalf("expected ErrConflict on duplicate, got %v", err)
		}
		got, err := s.Backups().Get(ctx, "est-1", entities.MustParseVersion("1.0.0"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got.Body) != string(snap.Body) || got.ID != snap.ID {
			t.Fatalf("snapshot changed: %+v", got)
		}
		if _, err := s.Backups().Get(ctx, "est-1", entities.MustParseVersion("9.9.9")); !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("backups list ordered and discard", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		for _, v := range []string{"1.0.2", "1.0.0", "1.0.10"} {
			if err := s.Backups().Append(ctx, sampleSnapshot(t, "est-1", v)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		_ = s.Backups().Append(ctx, sampleSnapshot(t, "est-0", "1.0.0"))

		list, err := s.Backups().ListByEstimateID(ctx, "est-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != 3 || list[0].Version.String() != "1.0.0" || list[2].Version.String() != "1.0.10" {
			t.Fatalf("unexpected order: %+v", list)
		}

		all, err := s.Backups().ListAll(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(all) != 4 || all[0].EstimateID != "est-0" {
			t.Fatalf("unexpected list all: %+v", all)
		}

		if err := s.Backups().Discard(ctx, "est-1", entities.MustParseVersion("1.0.2")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		list, _ = s.Backups().ListByEstimateID(ctx, "est-1")
		if len(list) != 2 {
			t.Fatalf("expected 2 after discard, got %d", len(list))
		}
		if err := s.Backups().Discard(ctx, "est-1", entities.MustParseVersion("1.0.2")); err != nil {
			t.Fatalf("discard must be idempotent: %v", err)
		}
	})

	t.Run("catalogs", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		c := entities.Catalog{Name: "Патагония / south", Data: json.RawMessage(`{"templates":[1,2]}`)}
		if err := s.Catalogs().Put(ctx, c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		c.Data = json.RawMessage(`{"templates":[3]}`)
		if err := s.Catalogs().Put(ctx, c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := s.Catalogs().Get(ctx, c.Name)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got.Data) != `{"templates":[3]}` {
			t.Fatalf("unexpected catalog data: %s", got.Data)
		}
		list, _ := s.Catalogs().List(ctx)
		if len(list) != 1 {
			t.Fatalf("expected 1 catalog, got %d", len(list))
		}
		if err := s.Catalogs().Delete(ctx, c.Name); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := s.Catalogs().Get(ctx, c.Name); !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func sampleSnapshot(t *testing.T, id, version string) entities.BackupSnapshot {
	t.Helper()
	body, err := json.Marshal(SampleEstimate(id, version))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return entities.BackupSnapshot{
		ID:         id + "-" + version,
		EstimateID: id,
		Version:    entities.MustParseVersion(version),
		Body:       body,
		CreatedAt:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}
