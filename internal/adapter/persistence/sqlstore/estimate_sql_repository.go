package sqlstore

import (
	"context"
	"encoding/json"
	"errors"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type EstimateSQLRepository struct {
	db *gorm.DB
}

var _ interfaces.IEstimateRepository = (*EstimateSQLRepository)(nil)

func (r *EstimateSQLRepository) Get(ctx context.Context, id string) (entities.Estimate, error) {
	var row estimateRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Estimate{}, entities.ErrNotFound
	}
	if err != nil {
		return entities.Estimate{}, err
	}
	var e entities.Estimate
	if err := json.Unmarshal([]byte(row.Data), &e); err != nil {
		return entities.Estimate{}, err
	}
	return e, nil
}

// Put inserts or updates the row only when the new version is strictly
// newer than the stored one. The UPDATE is conditioned on the rank read in
// the same transaction, so a concurrent writer loses with ErrConflict.
func (r *EstimateSQLRepository) Put(ctx context.Context, e entities.Estimate) error {
	row, err := toEstimateRow(e)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current estimateRow
		err := tx.Where("id = ?", e.ID).Take(&current).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&row).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return entities.ErrConflict
				}
				return err
			}
			return nil
		case err != nil:
			return err
		}

		if current.VersionRank >= row.VersionRank {
			return entities.ErrConflict
		}
		res := tx.Model(&estimateRow{}).
			Where("id = ? AND version_rank = ?", e.ID, current.VersionRank).
			Updates(map[string]any{
				"version":      row.Version,
				"version_rank": row.VersionRank,
				"client_name":  row.ClientName,
				"pax":          row.Pax,
				"tour_start":   row.TourStart,
				"updated_unix": row.UpdatedUnix,
				"data":         row.Data,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return entities.ErrConflict
		}
		return nil
	})
}

func (r *EstimateSQLRepository) Replace(ctx context.Context, e entities.Estimate) error {
	row, err := toEstimateRow(e)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&row).Error
}

func (r *EstimateSQLRepository) List(ctx context.Context) ([]entities.EstimateSummary, error) {
	var rows []estimateRow
	err := r.db.WithContext(ctx).
		Select("id", "version", "client_name", "pax", "tour_start", "updated_unix").
		Order("updated_unix DESC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.EstimateSummary, 0, len(rows))
	for _, row := range rows {
		v, err := entities.ParseVersion(row.Version)
		if err != nil {
			return nil, err
		}
		out = append(out, entities.EstimateSummary{
			ID:         row.ID,
			ClientName: row.ClientName,
			Pax:        row.Pax,
			TourStart:  row.TourStart,
			Version:    v,
			UpdatedAt:  unixUTC(row.UpdatedUnix),
		})
	}
	return out, nil
}

func (r *EstimateSQLRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&estimateRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}

func toEstimateRow(e entities.Estimate) (estimateRow, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return estimateRow{}, err
	}
	return estimateRow{
		ID:          e.ID,
		Version:     e.Version.String(),
		VersionRank: e.Version.Rank(),
		ClientName:  e.Customer.Name,
		Pax:         e.Pax,
		TourStart:   e.TourStart,
		UpdatedUnix: toUnix(e.UpdatedAt),
		Data:        string(b),
	}, nil
}
