package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/domain/pricing"
	"quote_calculator/internal/usecase/interfaces"

	"github.com/google/uuid"
)

//go:generate mockgen -source=save_transaction_usecase.go -destination=../adapter/http/handlers/mocks/save_transaction_usecase_mock.go -package=mocks

type TxState string

const (
	TxIdle       TxState = "idle"
	TxPreparing  TxState = "preparing"
	TxValidated  TxState = "validated"
	TxBackedUp   TxState = "backed_up"
	TxCommitted  TxState = "committed"
	TxRolledBack TxState = "rolled_back"
)

type PrepareResult struct {
	TransactionID string
	EstimateID    string
	State         TxState
	BaseVersion   entities.Version
	Estimate      entities.Estimate
	Breakdown     pricing.Breakdown
}

type CommitResult struct {
	TransactionID   string
	EstimateID      string
	State           TxState
	Version         entities.Version
	PreviousVersion entities.Version
	BackupVersion   entities.Version
	Estimate        entities.Estimate
	Breakdown       pricing.Breakdown
}

type RollbackResult struct {
	TransactionID string
	EstimateID    string
	State         TxState
	Message       string
}

// MaxBatchItems caps how many estimates one batch save may carry.
const MaxBatchItems = 100

type TransactionOptions struct {
	PrepareTimeout time.Duration
	CommitTimeout  time.Duration
	// TxTTL bounds how long a validated transaction may hold its lock
	// waiting for commit or rollback.
	TxTTL time.Duration
}

func DefaultTransactionOptions() TransactionOptions {
	return TransactionOptions{
		PrepareTimeout: 10 * time.Second,
		CommitTimeout:  30 * time.Second,
		TxTTL:          2 * time.Minute,
	}
}

// ISaveTransactionUseCase is the save protocol of an estimate.
//
//	idle -> preparing -> validated -> backed_up -> committed
//	any non-terminal failure -> rolled_back
type ISaveTransactionUseCase interface {
	Prepare(ctx context.Context, candidate entities.Estimate) (PrepareResult, error)
	Commit(ctx context.Context, transactionID string) (CommitResult, error)
	Rollback(ctx context.Context, transactionID string) RollbackResult
	Save(ctx context.Context, candidate entities.Estimate) (CommitResult, error)
	SaveBatch(ctx context.Context, candidates []entities.Estimate) ([]CommitResult, error)
	Restore(ctx context.Context, estimateID string, version entities.Version) (CommitResult, error)
	Autosave(ctx context.Context, estimateID string, body entities.Estimate) error
	Flush(ctx context.Context)
}

type saveTransaction struct {
	id        string
	estimate  entities.Estimate
	base      entities.Version
	breakdown pricing.Breakdown
	release   func()
	expiry    *time.Timer
}

// SaveTransactionUseCase coordinates guard, validation, backup and commit
// for one estimate at a time. A prepared transaction owns the estimate's
// lock until it is committed, rolled back or expires.
type SaveTransactionUseCase struct {
	estimates interfaces.IEstimateRepository
	backups   *BackupUseCase
	guard     IDiskGuard
	validator *EstimateValidator
	locks     *LockTable
	opts      TransactionOptions
	autosave  *autosaver
	now       func() time.Time

	mu  sync.Mutex
	txs map[string]*saveTransaction
}

var _ ISaveTransactionUseCase = (*SaveTransactionUseCase)(nil)

func NewSaveTransactionUseCase(
	estimates interfaces.IEstimateRepository,
	backups *BackupUseCase,
	guard IDiskGuard,
	validator *EstimateValidator,
	locks *LockTable,
	opts TransactionOptions,
	autosaveQuiet time.Duration,
) *SaveTransactionUseCase {
	u := &SaveTransactionUseCase{
		estimates: estimates,
		backups:   backups,
		guard:     guard,
		validator: validator,
		locks:     locks,
		opts:      opts,
		now:       time.Now,
		txs:       map[string]*saveTransaction{},
	}
	u.autosave = newAutosaver(autosaveQuiet, u.saveRebased)
	return u
}

func (u *SaveTransactionUseCase) Prepare(ctx context.Context, candidate entities.Estimate) (PrepareResult, error) {
	return u.prepare(ctx, candidate, false)
}

// prepare runs the guard, validation and pricing under the estimate lock.
// With rebase set the candidate takes the stored version instead of being
// checked against it.
func (u *SaveTransactionUseCase) prepare(ctx context.Context, candidate entities.Estimate, rebase bool) (PrepareResult, error) {
	ctx, cancel := context.WithTimeout(ctx, u.opts.PrepareTimeout)
	defer cancel()

	candidate.ID = strings.TrimSpace(candidate.ID)
	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	id := candidate.ID

	release, err := u.locks.Acquire(ctx, id)
	if err != nil {
		return PrepareResult{}, timeoutOr(err, "prepare %s: lock", id)
	}

	fail := func(err error) (PrepareResult, error) {
		release()
		log.Printf("[save][usecase] prepare rolled back estimate_id=%s err=%v", id, err)
		return PrepareResult{}, err
	}

	if err := u.guard.Check(ctx); err != nil {
		return fail(err)
	}
	if err := u.validator.Validate(candidate); err != nil {
		return fail(err)
	}
	breakdown, err := pricing.CalculateEstimate(candidate)
	if err != nil {
		return fail(err)
	}

	var base entities.Version
	stored, err := u.estimates.Get(ctx, id)
	switch {
	case err == nil:
		base = stored.Version
		if rebase {
			candidate.Version = stored.Version
		} else if candidate.Version != stored.Version {
			return fail(fmt.Errorf("estimate %s: editing version %q, stored is %s: %w",
				id, candidate.Version, stored.Version, entities.ErrConflict))
		}
	case errors.Is(err, entities.ErrNotFound):
		candidate.Version = entities.Version{}
	default:
		return fail(timeoutOr(err, "prepare %s: read", id))
	}
	if err := ctx.Err(); err != nil {
		return fail(timeoutOr(err, "prepare %s", id))
	}

	tx := &saveTransaction{
		id:        uuid.NewString(),
		estimate:  candidate,
		base:      base,
		breakdown: breakdown,
		release:   release,
	}
	u.mu.Lock()
	u.txs[tx.id] = tx
	tx.expiry = time.AfterFunc(u.opts.TxTTL, func() { u.expire(tx.id) })
	u.mu.Unlock()

	log.Printf("[save][usecase] prepared transaction_id=%s estimate_id=%s base_version=%s", tx.id, id, base)
	return PrepareResult{
		TransactionID: tx.id,
		EstimateID:    id,
		State:         TxValidated,
		BaseVersion:   base,
		Estimate:      candidate,
		Breakdown:     breakdown,
	}, nil
}

// Commit snapshots the stored body, then writes the candidate with the next
// version. Both succeed or the stored estimate is left as it was. Once
// started it is not cancelled by the caller, only bounded by CommitTimeout.
func (u *SaveTransactionUseCase) Commit(ctx context.Context, transactionID string) (CommitResult, error) {
	tx := u.take(transactionID)
	if tx == nil {
		return CommitResult{}, fmt.Errorf("commit %s: %w", transactionID, entities.ErrTransactionNotFound)
	}
	defer tx.release()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.opts.CommitTimeout)
	defer cancel()

	id := tx.estimate.ID
	fail := func(err error) (CommitResult, error) {
		log.Printf("[save][usecase] commit rolled back transaction_id=%s estimate_id=%s err=%v", tx.id, id, err)
		return CommitResult{}, err
	}

	if err := u.guard.Check(ctx); err != nil {
		return fail(err)
	}

	prior, err := u.estimates.Get(ctx, id)
	exists := err == nil
	if err != nil && !errors.Is(err, entities.ErrNotFound) {
		return fail(timeoutOr(err, "commit %s: read", id))
	}
	if exists && prior.Version != tx.base {
		return fail(fmt.Errorf("estimate %s changed since prepare: %w", id, entities.ErrConflict))
	}

	w, err := u.write(ctx, tx.estimate, prior, exists)
	if err != nil {
		return fail(err)
	}

	log.Printf("[save][usecase] committed transaction_id=%s estimate_id=%s version=%s previous=%s", tx.id, id, w.estimate.Version, prior.Version)
	return CommitResult{
		TransactionID:   tx.id,
		EstimateID:      id,
		State:           TxCommitted,
		Version:         w.estimate.Version,
		PreviousVersion: prior.Version,
		BackupVersion:   w.snap.Version,
		Estimate:        w.estimate,
		Breakdown:       tx.breakdown,
	}, nil
}

type written struct {
	estimate entities.Estimate
	snap     entities.BackupSnapshot
	created  bool
}

// write snapshots prior when it exists, then stores e with the next
// version. A failed store discards the snapshot it created.
func (u *SaveTransactionUseCase) write(ctx context.Context, e, prior entities.Estimate, exists bool) (written, error) {
	id := e.ID
	latest, err := u.backups.LatestVersion(ctx, id)
	if err != nil {
		return written{}, timeoutOr(err, "commit %s: backups", id)
	}
	next := prior.Version
	if latest.Compare(next) > 0 {
		next = latest
	}

	var w written
	if exists {
		w.snap, w.created, err = u.backups.Snapshot(ctx, prior)
		if err != nil {
			return written{}, timeoutOr(err, "commit %s: snapshot", id)
		}
	}

	e.Version = next.Next()
	e.UpdatedAt = u.now().UTC()
	if err := u.estimates.Put(ctx, e); err != nil {
		if w.created {
			_ = u.backups.Discard(ctx, w.snap)
		}
		return written{}, timeoutOr(err, "commit %s: write", id)
	}
	w.estimate = e
	return w, nil
}

// Rollback always succeeds. Unknown, expired, already rolled back or
// already committing transactions are confirmed without effect.
func (u *SaveTransactionUseCase) Rollback(_ context.Context, transactionID string) RollbackResult {
	tx := u.take(transactionID)
	if tx == nil {
		return RollbackResult{
			TransactionID: transactionID,
			State:         TxRolledBack,
			Message:       "no active transaction; nothing to roll back",
		}
	}
	tx.release()
	log.Printf("[save][usecase] rolled back transaction_id=%s estimate_id=%s", tx.id, tx.estimate.ID)
	return RollbackResult{
		TransactionID: tx.id,
		EstimateID:    tx.estimate.ID,
		State:         TxRolledBack,
		Message:       "transaction rolled back",
	}
}

func (u *SaveTransactionUseCase) Save(ctx context.Context, candidate entities.Estimate) (CommitResult, error) {
	p, err := u.Prepare(ctx, candidate)
	if err != nil {
		return CommitResult{}, err
	}
	return u.Commit(ctx, p.TransactionID)
}

// SaveBatch saves every candidate or none of them. All candidates are
// validated and checked against their stored versions under one set of
// locks before anything is written; a failure while writing undoes the
// items already stored.
func (u *SaveTransactionUseCase) SaveBatch(ctx context.Context, candidates []entities.Estimate) ([]CommitResult, error) {
	if len(candidates) == 0 || len(candidates) > MaxBatchItems {
		verr := &entities.ValidationError{}
		verr.Add("items", fmt.Sprintf("must hold between 1 and %d estimates", MaxBatchItems))
		return nil, verr
	}

	candidates = append([]entities.Estimate(nil), candidates...)
	var (
		records   []entities.RecordError
		cause     error
		ids       = make([]string, 0, len(candidates))
		seen      = map[string]int{}
		breakdown = make([]pricing.Breakdown, len(candidates))
	)
	reject := func(i int, id, field, message string, err error) {
		records = append(records, entities.RecordError{Section: "items", Index: i, ID: id, Field: field, Message: message})
		if cause == nil {
			cause = err
		}
	}

	for i := range candidates {
		c := &candidates[i]
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if first, dup := seen[c.ID]; dup {
			msg := fmt.Sprintf("duplicates items[%d]", first)
			reject(i, c.ID, "id", msg, &entities.ValidationError{Fields: []entities.FieldError{{Field: "id", Message: msg}}})
			continue
		}
		seen[c.ID] = i
		ids = append(ids, c.ID)

		if err := u.validator.Validate(*c); err != nil {
			var verr *entities.ValidationError
			if errors.As(err, &verr) {
				for _, f := range verr.Fields {
					reject(i, c.ID, f.Field, f.Message, err)
				}
				continue
			}
			reject(i, c.ID, "", err.Error(), err)
			continue
		}
		b, err := pricing.CalculateEstimate(*c)
		if err != nil {
			reject(i, c.ID, "", err.Error(), err)
			continue
		}
		breakdown[i] = b
	}
	if len(records) > 0 {
		log.Printf("[save][usecase] batch rejected items=%d failed=%d", len(candidates), len(records))
		return nil, &entities.BatchError{Records: records, Cause: cause}
	}

	if err := u.guard.Check(ctx); err != nil {
		return nil, err
	}

	lctx, cancel := context.WithTimeout(ctx, u.opts.PrepareTimeout)
	defer cancel()
	release, err := u.locks.AcquireMany(lctx, ids)
	if err != nil {
		return nil, timeoutOr(err, "batch: lock")
	}
	defer release()

	priors := make([]entities.Estimate, len(candidates))
	exists := make([]bool, len(candidates))
	for i, c := range candidates {
		stored, err := u.estimates.Get(lctx, c.ID)
		switch {
		case err == nil:
			priors[i], exists[i] = stored, true
			if c.Version != stored.Version {
				reject(i, c.ID, "version", fmt.Sprintf("editing version %q, stored is %s", c.Version, stored.Version), entities.ErrConflict)
			}
		case errors.Is(err, entities.ErrNotFound):
		default:
			return nil, timeoutOr(err, "batch %s: read", c.ID)
		}
	}
	if len(records) > 0 {
		log.Printf("[save][usecase] batch rejected items=%d conflicts=%d", len(candidates), len(records))
		return nil, &entities.BatchError{Records: records, Cause: cause}
	}

	wctx, wcancel := context.WithTimeout(context.WithoutCancel(ctx), u.opts.CommitTimeout)
	defer wcancel()

	var undo []func(context.Context) error
	rollback := func(i int, werr error) ([]CommitResult, error) {
		uctx := withoutGuard(wctx)
		for j := len(undo) - 1; j >= 0; j-- {
			if err := undo[j](uctx); err != nil {
				log.Printf("[save][usecase] batch compensation failed err=%v", err)
			}
		}
		log.Printf("[save][usecase] batch rolled back estimate_id=%s err=%v", candidates[i].ID, werr)
		return nil, &entities.BatchError{
			Records: []entities.RecordError{{Section: "items", Index: i, ID: candidates[i].ID, Message: werr.Error()}},
			Cause:   werr,
		}
	}

	results := make([]CommitResult, 0, len(candidates))
	for i, c := range candidates {
		w, err := u.write(wctx, c, priors[i], exists[i])
		if err != nil {
			return rollback(i, err)
		}
		if w.created {
			snap := w.snap
			undo = append(undo, func(ctx context.Context) error { return u.backups.Discard(ctx, snap) })
		}
		if exists[i] {
			prior := priors[i]
			undo = append(undo, func(ctx context.Context) error { return u.estimates.Replace(ctx, prior) })
		} else {
			id := c.ID
			undo = append(undo, func(ctx context.Context) error { return u.estimates.Delete(ctx, id) })
		}
		results = append(results, CommitResult{
			EstimateID:      c.ID,
			State:           TxCommitted,
			Version:         w.estimate.Version,
			PreviousVersion: priors[i].Version,
			BackupVersion:   w.snap.Version,
			Estimate:        w.estimate,
			Breakdown:       breakdown[i],
		})
	}

	log.Printf("[save][usecase] batch committed items=%d", len(results))
	return results, nil
}

func (u *SaveTransactionUseCase) saveRebased(ctx context.Context, candidate entities.Estimate) (CommitResult, error) {
	p, err := u.prepare(ctx, candidate, true)
	if err != nil {
		return CommitResult{}, err
	}
	return u.Commit(ctx, p.TransactionID)
}

// Restore commits the body of a snapshot as a new version on top of
// whatever is stored, so the restore itself is backed up.
func (u *SaveTransactionUseCase) Restore(ctx context.Context, estimateID string, version entities.Version) (CommitResult, error) {
	snap, err := u.backups.Get(ctx, estimateID, version)
	if err != nil {
		return CommitResult{}, err
	}
	e, err := snap.Estimate()
	if err != nil {
		return CommitResult{}, fmt.Errorf("restore %s@%s: decode snapshot: %w", estimateID, version, err)
	}
	e.ID = snap.EstimateID
	log.Printf("[save][usecase] restoring estimate_id=%s version=%s", estimateID, version)
	return u.saveRebased(ctx, e)
}

// Autosave validates body now and schedules its save after the quiet
// period. A later edit of the same estimate replaces it and restarts the
// timer.
func (u *SaveTransactionUseCase) Autosave(_ context.Context, estimateID string, body entities.Estimate) error {
	estimateID, err := checkEstimateID(estimateID)
	if err != nil {
		return err
	}
	body.ID = estimateID
	if err := u.validator.Validate(body); err != nil {
		return err
	}
	u.autosave.schedule(estimateID, body)
	return nil
}

// Flush runs every pending autosave now.
func (u *SaveTransactionUseCase) Flush(ctx context.Context) {
	u.autosave.flush(ctx)
}

// take removes an active transaction from the table, stopping its expiry.
func (u *SaveTransactionUseCase) take(transactionID string) *saveTransaction {
	u.mu.Lock()
	defer u.mu.Unlock()
	tx, ok := u.txs[transactionID]
	if !ok {
		return nil
	}
	delete(u.txs, transactionID)
	tx.expiry.Stop()
	return tx
}

func (u *SaveTransactionUseCase) expire(transactionID string) {
	tx := u.take(transactionID)
	if tx == nil {
		return
	}
	tx.release()
	log.Printf("[save][usecase] transaction expired transaction_id=%s estimate_id=%s", tx.id, tx.estimate.ID)
}

// ActiveTransactions reports how many prepared transactions hold locks.
func (u *SaveTransactionUseCase) ActiveTransactions() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.txs)
}

func timeoutOr(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", msg, entities.ErrTimeout)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
