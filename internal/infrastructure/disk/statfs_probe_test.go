package disk

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStatfsProbe(t *testing.T) {
	t.Run("reports the temp volume", func(t *testing.T) {
		dir := t.TempDir()
		st, err := NewStatfsProbe(dir).Status(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if st.TotalBytes == 0 || st.FreeBytes > st.TotalBytes {
			t.Fatalf("implausible status: %+v", st)
		}
		if st.Path != dir {
			t.Fatalf("expected path %s, got %s", dir, st.Path)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := NewStatfsProbe(filepath.Join(t.TempDir(), "nope", "deeper")).Status(context.Background())
		if err == nil {
			t.Fatalf("expected error for missing path")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := NewStatfsProbe(t.TempDir()).Status(ctx); err == nil {
			t.Fatalf("expected context error")
		}
	})
}
