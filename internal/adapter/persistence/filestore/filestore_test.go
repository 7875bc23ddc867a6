package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quote_calculator/internal/adapter/persistence/storetest"
	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase/interfaces"
)

func newTestStore(t *testing.T) interfaces.IStore {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestFileStore_Conformance(t *testing.T) {
	storetest.Run(t, newTestStore)
}

func TestFileStore_RejectsPathTraversal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e := storetest.SampleEstimate("../escape", "1.0.0")
	if err := s.Estimates().Put(ctx, e); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey on put, got %v", err)
	}
	if err := s.Estimates().Replace(ctx, e); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey on replace, got %v", err)
	}
	snap := entities.BackupSnapshot{EstimateID: "../escape", Version: entities.MustParseVersion("1.0.0"), Body: []byte(`{}`)}
	if err := s.Backups().Append(ctx, snap); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey on append, got %v", err)
	}
	if _, err := s.Estimates().Get(ctx, "../etc/passwd"); !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	s, err := New(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	if err := s.Estimates().Put(ctx, storetest.SampleEstimate("est-1", "1.0.0")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Estimates().Put(ctx, storetest.SampleEstimate("est-1", "1.0.1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "estimate"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "est-1.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("unexpected files: %s", strings.Join(names, ","))
	}
}

func TestFileStore_ListSkipsCorruptFiles(t *testing.T) {
	root := t.TempDir()
	s, err := New(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	_ = s.Estimates().Put(ctx, storetest.SampleEstimate("good", "1.0.0"))
	if err := os.WriteFile(filepath.Join(root, "estimate", "bad.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, err := s.Estimates().List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].ID != "good" {
		t.Fatalf("unexpected list: %+v", list)
	}
}
