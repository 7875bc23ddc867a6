package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase/interfaces"

	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=transfer_usecase.go -destination=../adapter/http/handlers/mocks/transfer_usecase_mock.go -package=mocks

const exportReadConcurrency = 8

// ImportResult counts what an import changed.
type ImportResult struct {
	EstimatesCreated   int `json:"estimates_created"`
	EstimatesUpdated   int `json:"estimates_updated"`
	EstimatesUnchanged int `json:"estimates_unchanged"`
	BackupsAdded       int `json:"backups_added"`
	BackupsSkipped     int `json:"backups_skipped"`
	CatalogsWritten    int `json:"catalogs_written"`
}

// ITransferUseCase moves every estimate, catalog and backup in and out as
// one JSON document.
type ITransferUseCase interface {
	Export(ctx context.Context) (entities.TransferPayload, error)
	Import(ctx context.Context, raw []byte) (ImportResult, error)
}

type TransferUseCase struct {
	store     interfaces.IStore
	backups   *BackupUseCase
	guard     IDiskGuard
	validator *ImportValidator
	locks     *LockTable
	now       func() time.Time
}

var _ ITransferUseCase = (*TransferUseCase)(nil)

func NewTransferUseCase(store interfaces.IStore, backups *BackupUseCase, guard IDiskGuard, validator *ImportValidator, locks *LockTable) *TransferUseCase {
	return &TransferUseCase{
		store:     store,
		backups:   backups,
		guard:     guard,
		validator: validator,
		locks:     locks,
		now:       time.Now,
	}
}

// Export reads a consistent view: every listed estimate is locked, in
// ascending id order, for the duration of the read.
func (u *TransferUseCase) Export(ctx context.Context) (entities.TransferPayload, error) {
	summaries, err := u.store.Estimates().List(ctx)
	if err != nil {
		return entities.TransferPayload{}, err
	}
	ids := make([]string, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, s.ID)
	}
	sort.Strings(ids)

	release, err := u.locks.AcquireMany(ctx, ids)
	if err != nil {
		return entities.TransferPayload{}, timeoutOr(err, "export: lock")
	}
	defer release()

	estimates := make([]*entities.Estimate, len(ids))
	var (
		backups  []entities.BackupSnapshot
		catalogs []entities.Catalog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(exportReadConcurrency)
	g.Go(func() error {
		var err error
		backups, err = u.store.Backups().ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		catalogs, err = u.store.Catalogs().List(gctx)
		return err
	})
	for i, id := range ids {
		g.Go(func() error {
			e, err := u.store.Estimates().Get(gctx, id)
			if errors.Is(err, entities.ErrNotFound) {
				// deleted between list and lock
				return nil
			}
			if err != nil {
				return fmt.Errorf("export %s: %w", id, err)
			}
			estimates[i] = &e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return entities.TransferPayload{}, err
	}

	stored := make(map[string]entities.Version, len(estimates))
	for _, e := range estimates {
		if e != nil {
			stored[e.ID] = e.Version
		}
	}
	live := make([]entities.BackupSnapshot, 0, len(backups))
	for _, b := range backups {
		if !isOrphan(b, stored[b.EstimateID]) {
			live = append(live, b)
		}
	}

	now := u.now().UTC()
	out := entities.TransferPayload{
		FormatVersion: entities.TransferFormatVersion,
		ExportedAt:    &now,
		StorageType:   u.store.Kind(),
		Estimates:     make([]entities.Estimate, 0, len(ids)),
		Catalogs:      catalogs,
		Backups:       live,
	}
	for _, e := range estimates {
		if e != nil {
			out.Estimates = append(out.Estimates, *e)
		}
	}
	if out.Catalogs == nil {
		out.Catalogs = []entities.Catalog{}
	}
	if out.Backups == nil {
		out.Backups = []entities.BackupSnapshot{}
	}
	sort.Slice(out.Catalogs, func(i, j int) bool { return out.Catalogs[i].Name < out.Catalogs[j].Name })
	sort.Slice(out.Backups, func(i, j int) bool {
		a, b := out.Backups[i], out.Backups[j]
		if a.EstimateID != b.EstimateID {
			return a.EstimateID < b.EstimateID
		}
		return a.Version.Compare(b.Version) < 0
	})

	log.Printf("[transfer][usecase] exported estimates=%d catalogs=%d backups=%d", len(out.Estimates), len(out.Catalogs), len(out.Backups))
	return out, nil
}

type estimatePlan struct {
	incoming entities.Estimate
	prior    entities.Estimate
	exists   bool
}

// Import validates the whole payload, then applies it under the locks of
// every estimate id it touches. A failure while applying undoes what was
// already written, so the batch lands entirely or not at all.
//
// Version rules per estimate: newer than stored replaces it (the stored body
// is backed up first), equal and identical is a no-op, anything else is a
// conflict.
func (u *TransferUseCase) Import(ctx context.Context, raw []byte) (ImportResult, error) {
	payload, err := u.validator.Decode(raw)
	if err != nil {
		log.Printf("[transfer][usecase] import rejected err=%v", err)
		return ImportResult{}, err
	}
	if err := u.guard.Check(ctx); err != nil {
		return ImportResult{}, err
	}

	ids := make([]string, 0, len(payload.Estimates)+len(payload.Backups))
	for _, e := range payload.Estimates {
		ids = append(ids, e.ID)
	}
	for _, b := range payload.Backups {
		ids = append(ids, b.EstimateID)
	}
	release, err := u.locks.AcquireMany(ctx, ids)
	if err != nil {
		return ImportResult{}, timeoutOr(err, "import: lock")
	}
	defer release()

	var (
		res       ImportResult
		plans     []estimatePlan
		conflicts []entities.RecordError
	)
	for i, e := range payload.Estimates {
		stored, err := u.store.Estimates().Get(ctx, e.ID)
		switch {
		case errors.Is(err, entities.ErrNotFound):
			plans = append(plans, estimatePlan{incoming: e})
			continue
		case err != nil:
			return ImportResult{}, fmt.Errorf("import %s: %w", e.ID, err)
		}
		switch cmp := e.Version.Compare(stored.Version); {
		case cmp > 0:
			plans = append(plans, estimatePlan{incoming: e, prior: stored, exists: true})
		case cmp == 0 && sameEstimate(e, stored):
			res.EstimatesUnchanged++
		default:
			conflicts = append(conflicts, entities.RecordError{
				Section: sectionEstimates, Index: i, ID: e.ID, Field: "version",
				Message: fmt.Sprintf("version %s conflicts with stored %s", e.Version, stored.Version),
			})
		}
	}
	if len(conflicts) > 0 {
		return ImportResult{}, &entities.ImportConflictError{Records: conflicts}
	}

	// Writes run to completion once started.
	wctx := context.WithoutCancel(ctx)
	var undo []func(context.Context) error
	rollback := func(cause error) (ImportResult, error) {
		uctx := withoutGuard(wctx)
		for i := len(undo) - 1; i >= 0; i-- {
			if err := undo[i](uctx); err != nil {
				log.Printf("[transfer][usecase] import compensation failed err=%v", err)
			}
		}
		log.Printf("[transfer][usecase] import rolled back err=%v", cause)
		return ImportResult{}, cause
	}

	estimates := u.store.Estimates()
	for _, p := range plans {
		if p.exists {
			snap, created, err := u.backups.Snapshot(wctx, p.prior)
			if err != nil {
				return rollback(err)
			}
			if created {
				undo = append(undo, func(c context.Context) error { return u.backups.Discard(c, snap) })
			}
			if err := estimates.Replace(wctx, p.incoming); err != nil {
				return rollback(fmt.Errorf("import %s: %w", p.incoming.ID, err))
			}
			prior := p.prior
			undo = append(undo, func(c context.Context) error { return estimates.Replace(c, prior) })
			res.EstimatesUpdated++
			continue
		}
		if err := estimates.Replace(wctx, p.incoming); err != nil {
			return rollback(fmt.Errorf("import %s: %w", p.incoming.ID, err))
		}
		id := p.incoming.ID
		undo = append(undo, func(c context.Context) error { return estimates.Delete(c, id) })
		res.EstimatesCreated++
	}

	backups := u.store.Backups()
	for _, s := range payload.Backups {
		if s.ID == "" {
			s.ID = fmt.Sprintf("%s@%s", s.EstimateID, s.Version)
		}
		err := backups.Append(wctx, s)
		switch {
		case errors.Is(err, entities.ErrConflict):
			res.BackupsSkipped++
			continue
		case err != nil:
			return rollback(fmt.Errorf("import backup %s@%s: %w", s.EstimateID, s.Version, err))
		}
		snap := s
		undo = append(undo, func(c context.Context) error { return backups.Discard(c, snap.EstimateID, snap.Version) })
		res.BackupsAdded++
	}

	catalogs := u.store.Catalogs()
	for _, c := range payload.Catalogs {
		prior, err := catalogs.Get(wctx, c.Name)
		existed := err == nil
		if err != nil && !errors.Is(err, entities.ErrNotFound) {
			return rollback(fmt.Errorf("import catalog %s: %w", c.Name, err))
		}
		if err := catalogs.Put(wctx, c); err != nil {
			return rollback(fmt.Errorf("import catalog %s: %w", c.Name, err))
		}
		name := c.Name
		if existed {
			undo = append(undo, func(ctx context.Context) error { return catalogs.Put(ctx, prior) })
		} else {
			undo = append(undo, func(ctx context.Context) error { return catalogs.Delete(ctx, name) })
		}
		res.CatalogsWritten++
	}

	log.Printf("[transfer][usecase] imported created=%d updated=%d unchanged=%d backups_added=%d backups_skipped=%d catalogs=%d",
		res.EstimatesCreated, res.EstimatesUpdated, res.EstimatesUnchanged, res.BackupsAdded, res.BackupsSkipped, res.CatalogsWritten)
	return res, nil
}

func sameEstimate(a, b entities.Estimate) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ab) == string(bb)
}
