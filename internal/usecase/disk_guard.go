package usecase

import (
	"context"
	"log"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase/interfaces"
)

//go:generate mockgen -source=disk_guard.go -destination=../adapter/http/handlers/mocks/disk_guard_mock.go -package=mocks

// IDiskGuard is the admission check every mutating path passes through.
type IDiskGuard interface {
	Check(ctx context.Context) error
	Status(ctx context.Context) (entities.DiskStatus, error)
}

// DiskSpaceGuard rejects writes while free space on the data volume is
// below MinFreeBytes. It keeps no state between calls and never queues.
//
// A failing probe does not block writes; it is logged and the write
// proceeds. A cancelled or expired ctx is not a probe failure and rejects
// the write.
type DiskSpaceGuard struct {
	probe     interfaces.IDiskProbe
	minFree   uint64
	warnBelow uint64
}

var _ IDiskGuard = (*DiskSpaceGuard)(nil)

func NewDiskSpaceGuard(probe interfaces.IDiskProbe, minFreeBytes, warnBelowBytes uint64) *DiskSpaceGuard {
	return &DiskSpaceGuard{probe: probe, minFree: minFreeBytes, warnBelow: warnBelowBytes}
}

func (g *DiskSpaceGuard) Status(ctx context.Context) (entities.DiskStatus, error) {
	st, err := g.probe.Status(ctx)
	if err != nil {
		return entities.DiskStatus{MinFreeBytes: g.minFree, Healthy: true}, err
	}
	st.MinFreeBytes = g.minFree
	st.Healthy = st.FreeBytes >= g.minFree
	st.Warning = st.Healthy && st.FreeBytes < g.warnBelow
	return st, nil
}

func (g *DiskSpaceGuard) Check(ctx context.Context) error {
	if bypassesGuard(ctx) {
		return nil
	}
	st, err := g.Status(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return timeoutOr(ctxErr, "disk check")
		}
		log.Printf("[disk][guard] probe failed, allowing write err=%v", err)
		return nil
	}
	if !st.Healthy {
		log.Printf("[disk][guard] write rejected free_mb=%d required_mb=%d", st.FreeMB(), g.minFree/(1024*1024))
		return &entities.InsufficientStorageError{FreeBytes: st.FreeBytes, MinFreeBytes: g.minFree}
	}
	if st.Warning {
		log.Printf("[disk][guard] low disk space free_mb=%d", st.FreeMB())
	}
	return nil
}

type guardBypassKey struct{}

// withoutGuard marks ctx for compensating writes that restore a prior
// state; those must not be blocked by the guard that caused the rollback.
func withoutGuard(ctx context.Context) context.Context {
	return context.WithValue(ctx, guardBypassKey{}, true)
}

func bypassesGuard(ctx context.Context) bool {
	v, _ := ctx.Value(guardBypassKey{}).(bool)
	return v
}

// GuardStore wraps every repository of store so that writes consult guard
// first. Reads and Discard pass straight through.
func GuardStore(store interfaces.IStore, guard IDiskGuard) interfaces.IStore {
	return &guardedStore{
		inner:     store,
		estimates: &guardedEstimateRepository{inner: store.Estimates(), guard: guard},
		backups:   &guardedBackupRepository{inner: store.Backups(), guard: guard},
		catalogs:  &guardedCatalogRepository{inner: store.Catalogs(), guard: guard},
	}
}

type guardedStore struct {
	inner     interfaces.IStore
	estimates interfaces.IEstimateRepository
	backups   interfaces.IBackupRepository
	catalogs  interfaces.ICatalogRepository
}

func (s *guardedStore) Estimates() interfaces.IEstimateRepository { return s.estimates }
func (s *guardedStore) Backups() interfaces.IBackupRepository     { return s.backups }
func (s *guardedStore) Catalogs() interfaces.ICatalogRepository   { return s.catalogs }
func (s *guardedStore) Kind() string                              { return s.inner.Kind() }
func (s *guardedStore) Close() error                              { return s.inner.Close() }

type guardedEstimateRepository struct {
	inner interfaces.IEstimateRepository
	guard IDiskGuard
}

func (r *guardedEstimateRepository) Get(ctx context.Context, id string) (entities.Estimate, error) {
	return r.inner.Get(ctx, id)
}

func (r *guardedEstimateRepository) Put(ctx context.Context, e entities.Estimate) error {
	if err := r.guard.Check(ctx); err != nil {
		return err
	}
	return r.inner.Put(ctx, e)
}

func (r *guardedEstimateRepository) Replace(ctx context.Context, e entities.Estimate) error {
	if err := r.guard.Check(ctx); err != nil {
		return err
	}
	return r.inner.Replace(ctx, e)
}

func (r *guardedEstimateRepository) List(ctx context.Context) ([]entities.EstimateSummary, error) {
	return r.inner.List(ctx)
}

func (r *guardedEstimateRepository) Delete(ctx context.Context, id string) error {
	if err := r.guard.Check(ctx); err != nil {
		return err
	}
	return r.inner.Delete(ctx, id)
}

type guardedBackupRepository struct {
	inner interfaces.IBackupRepository
	guard IDiskGuard
}

func (r *guardedBackupRepository) Append(ctx context.Context, s entities.BackupSnapshot) error {
	if err := r.guard.Check(ctx); err != nil {
		return err
	}
	return r.inner.Append(ctx, s)
}

func (r *guardedBackupRepository) Get(ctx context.Context, estimateID string, version entities.Version) (entities.BackupSnapshot, error) {
	return r.inner.Get(ctx, estimateID, version)
}

func (r *guardedBackupRepository) ListByEstimateID(ctx context.Context, estimateID string) ([]entities.BackupSnapshot, error) {
	return r.inner.ListByEstimateID(ctx, estimateID)
}

func (r *guardedBackupRepository) ListAll(ctx context.Context) ([]entities.BackupSnapshot, error) {
	return r.inner.ListAll(ctx)
}

func (r *guardedBackupRepository) Discard(ctx context.Context, estimateID string, version entities.Version) error {
	return r.inner.Discard(ctx, estimateID, version)
}

type guardedCatalogRepository struct {
	inner interfaces.ICatalogRepository
	guard IDiskGuard
}

func (r *guardedCatalogRepository) Get(ctx context.Context, name string) (entities.Catalog, error) {
	return r.inner.Get(ctx, name)
}

func (r *guardedCatalogRepository) Put(ctx context.Context, c entities.Catalog) error {
	if err := r.guard.Check(ctx); err != nil {
		return err
	}
	return r.inner.Put(ctx, c)
}

func (r *guardedCatalogRepository) List(ctx context.Context) ([]entities.Catalog, error) {
	return r.inner.List(ctx)
}

func (r *guardedCatalogRepository) Delete(ctx context.Context, name string) error {
	if err := r.guard.Check(ctx); err != nil {
		return err
	}
	return r.inner.Delete(ctx, name)
}
