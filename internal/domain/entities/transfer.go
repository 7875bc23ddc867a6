package entities

import "time"

// TransferFormatVersion identifies the bulk payload layout.
const TransferFormatVersion = "2.3.0"

// TransferPayload is the bulk export/import document.
type TransferPayload struct {
	FormatVersion string           `json:"format_version,omitempty"`
	ExportedAt    *time.Time       `json:"exported_at,omitempty"`
	StorageType   string           `json:"storage_type,omitempty"`
	Estimates     []Estimate       `json:"estimates"`
	Catalogs      []Catalog        `json:"catalogs"`
	Backups       []BackupSnapshot `json:"backups"`
}
