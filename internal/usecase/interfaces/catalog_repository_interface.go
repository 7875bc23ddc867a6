package interfaces

import (
	"context"
	"quote_calculator/internal/domain/entities"
)

//go:generate mockgen -source=catalog_repository_interface.go -destination=mocks/catalog_repository_mock.go -package=mock_interfaces

type ICatalogRepository interface {
	Get(ctx context.Context, name string) (entities.Catalog, error)
	Put(ctx context.Context, c entities.Catalog) error
	List(ctx context.Context) ([]entities.Catalog, error)
	Delete(ctx context.Context, name string) error
}
