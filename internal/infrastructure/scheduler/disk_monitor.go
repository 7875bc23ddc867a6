package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"quote_calculator/internal/domain/entities"

	"github.com/robfig/cron/v3"
)

// StatusSource is the part of the disk guard the monitor polls.
type StatusSource interface {
	Status(ctx context.Context) (entities.DiskStatus, error)
}

// DiskMonitor periodically logs the free space of the data volume so an
// operator sees it shrinking before the guard starts refusing writes.
type DiskMonitor struct {
	source StatusSource
	spec   string
	cron   *cron.Cron

	mu   sync.Mutex
	last entities.DiskStatus
	runs int
}

func NewDiskMonitor(source StatusSource, spec string) *DiskMonitor {
	return &DiskMonitor{
		source: source,
		spec:   spec,
		cron:   cron.New(),
	}
}

// Start runs one check immediately and schedules the rest.
func (m *DiskMonitor) Start() error {
	if _, err := m.cron.AddFunc(m.spec, m.Check); err != nil {
		return fmt.Errorf("disk monitor schedule %q: %w", m.spec, err)
	}
	m.Check()
	m.cron.Start()
	log.Printf("[disk][scheduler] monitor started spec=%q", m.spec)
	return nil
}

// Stop waits for a running check to finish.
func (m *DiskMonitor) Stop() {
	<-m.cron.Stop().Done()
	log.Printf("[disk][scheduler] monitor stopped")
}

func (m *DiskMonitor) Check() {
	st, err := m.source.Status(context.Background())
	if err != nil {
		log.Printf("[disk][scheduler] status unavailable err=%v", err)
		return
	}

	m.mu.Lock()
	m.last = st
	m.runs++
	m.mu.Unlock()

	switch {
	case !st.Healthy:
		log.Printf("[disk][scheduler] below minimum, writes refused path=%s free_mb=%d required_mb=%d",
			st.Path, st.FreeMB(), st.MinFreeBytes/(1024*1024))
	case st.Warning:
		log.Printf("[disk][scheduler] free space low path=%s free_mb=%d", st.Path, st.FreeMB())
	}
}

// Last returns the most recent successful measurement and how many were taken.
func (m *DiskMonitor) Last() (entities.DiskStatus, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.runs
}
