package sqlstore

import (
	"context"
	"encoding/json"
	"errors"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type BackupSQLRepository struct {
	db *gorm.DB
}

var _ interfaces.IBackupRepository = (*BackupSQLRepository)(nil)

func (r *BackupSQLRepository) Append(ctx context.Context, s entities.BackupSnapshot) error {
	row, err := toBackupRow(s)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&backupRow{}).
			Where("estimate_id = ? AND version = ?", row.EstimateID, row.Version).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return entities.ErrConflict
		}
		if err := tx.Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return entities.ErrConflict
			}
			return err
		}
		return nil
	})
}

func (r *BackupSQLRepository) Get(ctx context.Context, estimateID string, version entities.Version) (entities.BackupSnapshot, error) {
	var row backupRow
	err := r.db.WithContext(ctx).
		Where("estimate_id = ? AND version = ?", estimateID, version.String()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.BackupSnapshot{}, entities.ErrNotFound
	}
	if err != nil {
		return entities.BackupSnapshot{}, err
	}
	return fromBackupRow(row)
}

func (r *BackupSQLRepository) ListByEstimateID(ctx context.Context, estimateID string) ([]entities.BackupSnapshot, error) {
	var rows []backupRow
	err := r.db.WithContext(ctx).
		Where("estimate_id = ?", estimateID).
		Order("version_rank ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromBackupRows(rows)
}

func (r *BackupSQLRepository) ListAll(ctx context.Context) ([]entities.BackupSnapshot, error) {
	var rows []backupRow
	err := r.db.WithContext(ctx).
		Order("estimate_id ASC").
		Order("version_rank ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromBackupRows(rows)
}

func (r *BackupSQLRepository) Discard(ctx context.Context, estimateID string, version entities.Version) error {
	return r.db.WithContext(ctx).
		Where("estimate_id = ? AND version = ?", estimateID, version.String()).
		Delete(&backupRow{}).Error
}

func toBackupRow(s entities.BackupSnapshot) (backupRow, error) {
	body := s.Body
	if !json.Valid(body) {
		return backupRow{}, errors.New("backup body is not valid JSON")
	}
	return backupRow{
		ID:          s.ID,
		EstimateID:  s.EstimateID,
		Version:     s.Version.String(),
		VersionRank: s.Version.Rank(),
		CreatedUnix: toUnix(s.CreatedAt),
		Data:        string(body),
	}, nil
}

func fromBackupRow(row backupRow) (entities.BackupSnapshot, error) {
	v, err := entities.ParseVersion(row.Version)
	if err != nil {
		return entities.BackupSnapshot{}, err
	}
	return entities.BackupSnapshot{
		ID:         row.ID,
		EstimateID: row.EstimateID,
		Version:    v,
		Body:       json.RawMessage(row.Data),
		CreatedAt:  unixUTC(row.CreatedUnix),
	}, nil
}

func fromBackupRows(rows []backupRow) ([]entities.BackupSnapshot, error) {
	out := make([]entities.BackupSnapshot, 0, len(rows))
	for _, row := range rows {
		s, err := fromBackupRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
