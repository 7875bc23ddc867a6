package interfaces

import (
	"context"
	"quote_calculator/internal/domain/entities"
)

//go:generate mockgen -source=disk_probe_interface.go -destination=mocks/disk_probe_mock.go -package=mock_interfaces

// IDiskProbe measures the volume that holds the data directory.
// MinFreeBytes and Healthy are left for the guard to fill in.
type IDiskProbe interface {
	Status(ctx context.Context) (entities.DiskStatus, error)
}
