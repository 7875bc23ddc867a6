package entities

import (
	"encoding/json"
	"time"
)

// BackupSnapshot is the immutable copy of an estimate's previous committed
// state, written before the new body replaces it. Snapshots are appended,
// never overwritten.
type BackupSnapshot struct {
	ID         string          `json:"id"`
	EstimateID string          `json:"estimate_id" validate:"required"`
	Version    Version         `json:"version"`
	Body       json.RawMessage `json:"body" validate:"required"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Estimate decodes the snapshot body.
func (s BackupSnapshot) Estimate() (Estimate, error) {
	var e Estimate
	err := json.Unmarshal(s.Body, &e)
	return e, err
}
