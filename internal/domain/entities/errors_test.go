package entities

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	var verr ValidationError
	if verr.OrNil() != nil {
		t.Fatalf("empty validation error must be nil")
	}
	verr.Add("pax", "must be a positive integer")
	verr.Add("services[1].price", "is required")
	err := verr.OrNil()
	if err == nil {
		t.Fatalf("expected error")
	}
	want := "validation failed: pax: must be a positive integer; services[1].price: is required"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	storage := fmt.Errorf("commit: %w", &InsufficientStorageError{FreeBytes: 50 << 20, MinFreeBytes: 100 << 20})
	if !errors.Is(storage, ErrInsufficientStorage) {
		t.Fatalf("expected ErrInsufficientStorage match")
	}
	var se *InsufficientStorageError
	if !errors.As(storage, &se) || se.FreeBytes != 50<<20 {
		t.Fatalf("expected typed storage error, got %v", storage)
	}
	if se.Error() != "insufficient storage: 50 MB free, 100 MB required" {
		t.Fatalf("unexpected message %q", se.Error())
	}

	conflict := &ImportConflictError{Records: []RecordError{{Section: "estimates", Index: 0, Message: "stale"}}}
	if !errors.Is(conflict, ErrConflict) {
		t.Fatalf("expected ErrConflict match")
	}
}
