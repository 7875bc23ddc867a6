// Package disk measures free space on the volume that holds the data.
package disk

import (
	"context"
	"fmt"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase/interfaces"

	"golang.org/x/sys/unix"
)

// StatfsProbe reports the space available to unprivileged writers
// (f_bavail) on the filesystem containing Path.
type StatfsProbe struct {
	Path string
}

var _ interfaces.IDiskProbe = (*StatfsProbe)(nil)

func NewStatfsProbe(path string) *StatfsProbe {
	return &StatfsProbe{Path: path}
}

func (p *StatfsProbe) Status(ctx context.Context) (entities.DiskStatus, error) {
	if err := ctx.Err(); err != nil {
		return entities.DiskStatus{}, err
	}
	var st unix.Statfs_t
	if err := unix.Statfs(p.Path, &st); err != nil {
		return entities.DiskStatus{}, fmt.Errorf("statfs %s: %w", p.Path, err)
	}
	bsize := uint64(st.Bsize)
	return entities.DiskStatus{
		Path:       p.Path,
		FreeBytes:  uint64(st.Bavail) * bsize,
		TotalBytes: uint64(st.Blocks) * bsize,
	}, nil
}
