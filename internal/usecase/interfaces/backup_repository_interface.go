package interfaces

import (
	"context"
	"quote_calculator/internal/domain/entities"
)

//go:generate mockgen -source=backup_repository_interface.go -destination=mocks/backup_repository_mock.go -package=mock_interfaces

// IBackupRepository is the append-only backup log.
//
// Append fails with entities.ErrConflict when (estimate_id, version) already
// exists; snapshots are never overwritten. Discard removes a snapshot that
// was appended by a commit which then failed, so it never surfaces as a
// live version.

type IBackupRepository interface {
	Append(ctx context.Context, s entities.BackupSnapshot) error
	Get(ctx context.Context, estimateID string, version entities.Version) (entities.BackupSnapshot, error)
	ListByEstimateID(ctx context.Context, estimateID string) ([]entities.BackupSnapshot, error)
	ListAll(ctx context.Context) ([]entities.BackupSnapshot, error)
	Discard(ctx context.Context, estimateID string, version entities.Version) error
}
