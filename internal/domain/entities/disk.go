package entities

// DiskStatus is a point-in-time measurement of the storage volume.
// It is derived on demand and never persisted.
type DiskStatus struct {
	Path         string `json:"path"`
	FreeBytes    uint64 `json:"free_bytes"`
	TotalBytes   uint64 `json:"total_bytes"`
	MinFreeBytes uint64 `json:"min_free_bytes"`
	Healthy      bool   `json:"healthy"`
	Warning      bool   `json:"warning"`
}

func (d DiskStatus) FreeMB() uint64 { return d.FreeBytes / (1024 * 1024) }
