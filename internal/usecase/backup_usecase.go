package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase/interfaces"

	"github.com/google/uuid"
)

//go:generate mockgen -source=backup_usecase.go -destination=../adapter/http/handlers/mocks/backup_usecase_mock.go -package=mocks

var ErrBackupNotFound = errors.New("backup not found")

// IBackupUseCase exposes the read side of the backup log.
type IBackupUseCase interface {
	List(ctx context.Context, estimateID string) ([]entities.BackupSnapshot, error)
	Get(ctx context.Context, estimateID string, version entities.Version) (entities.BackupSnapshot, error)
}

// BackupUseCase snapshots the previous committed body of an estimate before
// it is overwritten. Snapshots are only appended; nothing here prunes them.
//
// Reads hide orphans: a commit whose put failed and whose discard failed too
// leaves a snapshot at the version that is still stored. The next commit or
// delete of that estimate reuses the identical snapshot, which makes it live.
type BackupUseCase struct {
	repo      interfaces.IBackupRepository
	estimates interfaces.IEstimateRepository
	now       func() time.Time
}

var _ IBackupUseCase = (*BackupUseCase)(nil)

func NewBackupUseCase(repo interfaces.IBackupRepository, estimates interfaces.IEstimateRepository) *BackupUseCase {
	return &BackupUseCase{repo: repo, estimates: estimates, now: time.Now}
}

// Snapshot appends prior to the log. created is false when an identical
// snapshot of the same version was already there (left over from a commit
// whose orphan could not be discarded); such a snapshot must not be
// discarded by the caller.
func (u *BackupUseCase) Snapshot(ctx context.Context, prior entities.Estimate) (snap entities.BackupSnapshot, created bool, err error) {
	body, err := json.Marshal(prior)
	if err != nil {
		return entities.BackupSnapshot{}, false, err
	}
	snap = entities.BackupSnapshot{
		ID:         uuid.NewString(),
		EstimateID: prior.ID,
		Version:    prior.Version,
		Body:       body,
		CreatedAt:  u.now().UTC(),
	}

	err = u.repo.Append(ctx, snap)
	switch {
	case err == nil:
		log.Printf("[backup][usecase] snapshot written estimate_id=%s version=%s", prior.ID, prior.Version)
		return snap, true, nil
	case errors.Is(err, entities.ErrConflict):
		existing, gerr := u.repo.Get(ctx, prior.ID, prior.Version)
		if gerr == nil && sameJSON(existing.Body, body) {
			log.Printf("[backup][usecase] snapshot already present estimate_id=%s version=%s", prior.ID, prior.Version)
			return existing, false, nil
		}
		return entities.BackupSnapshot{}, false, fmt.Errorf("backup %s@%s: %w", prior.ID, prior.Version, err)
	default:
		return entities.BackupSnapshot{}, false, fmt.Errorf("backup %s@%s: %w", prior.ID, prior.Version, err)
	}
}

// Discard removes a snapshot whose commit failed. It ignores cancellation of
// ctx so the orphan is removed even when the request is gone.
func (u *BackupUseCase) Discard(ctx context.Context, snap entities.BackupSnapshot) error {
	err := u.repo.Discard(context.WithoutCancel(ctx), snap.EstimateID, snap.Version)
	if err != nil {
		log.Printf("[backup][usecase] discard failed, orphan left estimate_id=%s version=%s err=%v", snap.EstimateID, snap.Version, err)
		return err
	}
	log.Printf("[backup][usecase] orphan discarded estimate_id=%s version=%s", snap.EstimateID, snap.Version)
	return nil
}

func (u *BackupUseCase) List(ctx context.Context, estimateID string) ([]entities.BackupSnapshot, error) {
	estimateID, err := checkEstimateID(estimateID)
	if err != nil {
		return nil, err
	}
	list, err := u.repo.ListByEstimateID(ctx, estimateID)
	if err != nil {
		return nil, err
	}
	stored, err := u.storedVersion(ctx, estimateID)
	if err != nil {
		return nil, err
	}
	live := make([]entities.BackupSnapshot, 0, len(list))
	for _, s := range list {
		if !isOrphan(s, stored) {
			live = append(live, s)
		}
	}
	return live, nil
}

func (u *BackupUseCase) Get(ctx context.Context, estimateID string, version entities.Version) (entities.BackupSnapshot, error) {
	estimateID, err := checkEstimateID(estimateID)
	if err != nil {
		return entities.BackupSnapshot{}, err
	}
	s, err := u.repo.Get(ctx, estimateID, version)
	if errors.Is(err, entities.ErrNotFound) {
		return entities.BackupSnapshot{}, ErrBackupNotFound
	}
	if err != nil {
		return entities.BackupSnapshot{}, err
	}
	stored, err := u.storedVersion(ctx, estimateID)
	if err != nil {
		return entities.BackupSnapshot{}, err
	}
	if isOrphan(s, stored) {
		return entities.BackupSnapshot{}, ErrBackupNotFound
	}
	return s, nil
}

// storedVersion is the zero version when the estimate is not stored.
func (u *BackupUseCase) storedVersion(ctx context.Context, estimateID string) (entities.Version, error) {
	e, err := u.estimates.Get(ctx, estimateID)
	if errors.Is(err, entities.ErrNotFound) {
		return entities.Version{}, nil
	}
	if err != nil {
		return entities.Version{}, err
	}
	return e.Version, nil
}

// isOrphan reports a snapshot that is not below the stored version, which
// only a failed commit can leave behind.
func isOrphan(s entities.BackupSnapshot, stored entities.Version) bool {
	return !stored.IsZero() && s.Version.Compare(stored) >= 0
}

// LatestVersion returns the highest snapshotted version, or the zero
// version when the estimate has no backups.
func (u *BackupUseCase) LatestVersion(ctx context.Context, estimateID string) (entities.Version, error) {
	list, err := u.repo.ListByEstimateID(ctx, estimateID)
	if err != nil {
		return entities.Version{}, err
	}
	var latest entities.Version
	for _, s := range list {
		if s.Version.Compare(latest) > 0 {
			latest = s.Version
		}
	}
	return latest, nil
}

func sameJSON(a, b []byte) bool {
	var ca, cb bytes.Buffer
	if err := json.Compact(&ca, a); err != nil {
		return false
	}
	if err := json.Compact(&cb, b); err != nil {
		return false
	}
	return bytes.Equal(ca.Bytes(), cb.Bytes())
}
