package sqlstore

import (
	"context"
	"encoding/json"
	"errors"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type CatalogSQLRepository struct {
	db *gorm.DB
}

var _ interfaces.ICatalogRepository = (*CatalogSQLRepository)(nil)

func (r *CatalogSQLRepository) Get(ctx context.Context, name string) (entities.Catalog, error) {
	var row catalogRow
	err := r.db.WithContext(ctx).Where("name = ?", name).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Catalog{}, entities.ErrNotFound
	}
	if err != nil {
		return entities.Catalog{}, err
	}
	return entities.Catalog{Name: row.Name, Data: json.RawMessage(row.Data)}, nil
}

func (r *CatalogSQLRepository) Put(ctx context.Context, c entities.Catalog) error {
	return r.db.WithContext(ctx).Save(&catalogRow{Name: c.Name, Data: string(c.Data)}).Error
}

func (r *CatalogSQLRepository) List(ctx context.Context) ([]entities.Catalog, error) {
	var rows []catalogRow
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Catalog, 0, len(rows))
	for _, row := range rows {
		out = append(out, entities.Catalog{Name: row.Name, Data: json.RawMessage(row.Data)})
	}
	return out, nil
}

func (r *CatalogSQLRepository) Delete(ctx context.Context, name string) error {
	res := r.db.WithContext(ctx).Where("name = ?", name).Delete(&catalogRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}
