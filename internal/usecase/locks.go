package usecase

import (
	"context"
	"sort"
	"sync"
)

// LockTable hands out one exclusive lock per estimate id. Waiters queue on
// a buffered channel of size one, which the runtime serves in arrival
// order. Entries are dropped once nobody holds or waits for them.
type LockTable struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	sem  chan struct{}
	refs int
}

func NewLockTable() *LockTable {
	return &LockTable{entries: map[string]*lockEntry{}}
}

// Acquire blocks until the lock for id is held or ctx is done. The returned
// release func is safe to call more than once.
func (t *LockTable) Acquire(ctx context.Context, id string) (func(), error) {
	e := t.ref(id)
	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		t.unref(id)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			t.unref(id)
		})
	}, nil
}

// AcquireMany locks every id in ascending order. On failure nothing stays
// locked.
func (t *LockTable) AcquireMany(ctx context.Context, ids []string) (func(), error) {
	sorted := uniqueSorted(ids)
	releases := make([]func(), 0, len(sorted))
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
	for _, id := range sorted {
		release, err := t.Acquire(ctx, id)
		if err != nil {
			releaseAll()
			return nil, err
		}
		releases = append(releases, release)
	}
	return releaseAll, nil
}

// Len reports how many ids currently have holders or waiters.
func (t *LockTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

func (t *LockTable) ref(id string) *lockEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	if !ok {
		e = &lockEntry{sem: make(chan struct{}, 1)}
		t.entries[id] = e
	}
	e.refs++
	return e
}

func (t *LockTable) unref(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[id]
	if !ok {
		return
	}
	e.refs--
	if e.refs == 0 {
		delete(t.entries, id)
	}
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
