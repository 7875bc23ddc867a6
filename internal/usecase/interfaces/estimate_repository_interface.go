package interfaces

import (
	"context"
	"quote_calculator/internal/domain/entities"
)

//go:generate mockgen -source=estimate_repository_interface.go -destination=mocks/estimate_repository_mock.go -package=mock_interfaces

// IEstimateRepository is the storage contract for estimates. Every backend
// (flat-file, relational, DynamoDB) must behave identically:
//   - Get returns entities.ErrNotFound for unknown ids
//   - Put rejects a body whose version is older than or equal to the stored
//     one with entities.ErrConflict (optimistic concurrency)
//   - Replace writes unconditionally; it backs bulk import and compensation
//   - List returns summaries, most recently updated first

type IEstimateRepository interface {
	Get(ctx context.Context, id string) (entities.Estimate, error)
	Put(ctx context.Context, e entities.Estimate) error
	Replace(ctx context.Context, e entities.Estimate) error
	List(ctx context.Context) ([]entities.EstimateSummary, error)
	Delete(ctx context.Context, id string) error
}
