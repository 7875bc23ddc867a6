package response

import (
	"time"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase"
)

type BackupResponse struct {
	ID        string    `json:"id"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

type BackupListResponse struct {
	EstimateID string           `json:"estimate_id"`
	Backups    []BackupResponse `json:"backups"`
}

func FromBackups(estimateID string, in []entities.BackupSnapshot) BackupListResponse {
	out := BackupListResponse{EstimateID: estimateID, Backups: make([]BackupResponse, 0, len(in))}
	for _, s := range in {
		out.Backups = append(out.Backups, BackupResponse{ID: s.ID, Version: version(s.Version), CreatedAt: s.CreatedAt})
	}
	return out
}

type ImportResponse struct {
	Success bool                 `json:"success"`
	Result  usecase.ImportResult `json:"result"`
}

type DiskResponse struct {
	Path      string `json:"path"`
	FreeMB    uint64 `json:"free_mb"`
	TotalMB   uint64 `json:"total_mb"`
	MinFreeMB uint64 `json:"min_free_mb"`
	Healthy   bool   `json:"healthy"`
	Warning   bool   `json:"warning"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Storage string        `json:"storage"`
	Disk    *DiskResponse `json:"disk,omitempty"`
}

func FromDiskStatus(st entities.DiskStatus) *DiskResponse {
	const mb = 1024 * 1024
	return &DiskResponse{
		Path:      st.Path,
		FreeMB:    st.FreeMB(),
		TotalMB:   st.TotalBytes / mb,
		MinFreeMB: st.MinFreeBytes / mb,
		Healthy:   st.Healthy,
		Warning:   st.Warning,
	}
}
