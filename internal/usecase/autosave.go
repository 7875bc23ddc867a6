package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"quote_calculator/internal/domain/entities"
)

type saveFunc func(ctx context.Context, e entities.Estimate) (CommitResult, error)

// autosaver coalesces edits per estimate id. Every edit restarts the quiet
// period; when it elapses the last body received is saved exactly once.
type autosaver struct {
	quiet time.Duration
	save  saveFunc

	mu      sync.Mutex
	pending map[string]*pendingSave
	running sync.WaitGroup
}

type pendingSave struct {
	gen   uint64
	body  entities.Estimate
	timer *time.Timer
}

func newAutosaver(quiet time.Duration, save saveFunc) *autosaver {
	return &autosaver{quiet: quiet, save: save, pending: map[string]*pendingSave{}}
}

func (a *autosaver) schedule(id string, body entities.Estimate) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p, ok := a.pending[id]
	if !ok {
		p = &pendingSave{}
		a.pending[id] = p
	} else {
		p.timer.Stop()
	}
	p.gen++
	p.body = body
	gen := p.gen
	p.timer = time.AfterFunc(a.quiet, func() { a.fire(id, gen) })
}

func (a *autosaver) fire(id string, gen uint64) {
	a.mu.Lock()
	p, ok := a.pending[id]
	if !ok || p.gen != gen {
		// superseded by a later edit or already flushed
		a.mu.Unlock()
		return
	}
	delete(a.pending, id)
	a.running.Add(1)
	a.mu.Unlock()

	defer a.running.Done()
	a.run(context.Background(), id, p.body)
}

func (a *autosaver) run(ctx context.Context, id string, body entities.Estimate) {
	res, err := a.save(ctx, body)
	if err != nil {
		log.Printf("[autosave][usecase] save failed estimate_id=%s err=%v", id, err)
		return
	}
	log.Printf("[autosave][usecase] saved estimate_id=%s version=%s", id, res.Version)
}

// flush saves every pending body immediately and waits for saves already
// in flight.
func (a *autosaver) flush(ctx context.Context) {
	a.mu.Lock()
	bodies := make(map[string]entities.Estimate, len(a.pending))
	for id, p := range a.pending {
		p.timer.Stop()
		bodies[id] = p.body
	}
	a.pending = map[string]*pendingSave{}
	a.mu.Unlock()

	for id, body := range bodies {
		a.run(ctx, id, body)
	}
	a.running.Wait()
}

func (a *autosaver) pendingCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}
