package response

import (
	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase"
)

type PrepareResponse struct {
	TransactionID string            `json:"transaction_id"`
	EstimateID    string            `json:"estimate_id"`
	State         string            `json:"state"`
	BaseVersion   string            `json:"base_version"`
	Breakdown     BreakdownResponse `json:"breakdown"`
}

func FromPrepare(r usecase.PrepareResult) PrepareResponse {
	return PrepareResponse{
		TransactionID: r.TransactionID,
		EstimateID:    r.EstimateID,
		State:         string(r.State),
		BaseVersion:   version(r.BaseVersion),
		Breakdown:     FromBreakdown(r.Breakdown),
	}
}

type CommitResponse struct {
	Success         bool              `json:"success"`
	TransactionID   string            `json:"transaction_id"`
	EstimateID      string            `json:"estimate_id"`
	State           string            `json:"state"`
	Version         string            `json:"version"`
	PreviousVersion string            `json:"previous_version,omitempty"`
	BackupVersion   string            `json:"backup_version,omitempty"`
	Estimate        entities.Estimate `json:"estimate"`
	Breakdown       BreakdownResponse `json:"breakdown"`
}

func FromCommit(r usecase.CommitResult) CommitResponse {
	return CommitResponse{
		Success:         true,
		TransactionID:   r.TransactionID,
		EstimateID:      r.EstimateID,
		State:           string(r.State),
		Version:         version(r.Version),
		PreviousVersion: version(r.PreviousVersion),
		BackupVersion:   version(r.BackupVersion),
		Estimate:        r.Estimate,
		Breakdown:       FromBreakdown(r.Breakdown),
	}
}

type RollbackResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	EstimateID    string `json:"estimate_id,omitempty"`
	State         string `json:"state"`
	Message       string `json:"message"`
}

func FromRollback(r usecase.RollbackResult) RollbackResponse {
	return RollbackResponse{
		Success:       true,
		TransactionID: r.TransactionID,
		EstimateID:    r.EstimateID,
		State:         string(r.State),
		Message:       r.Message,
	}
}

type AutosaveResponse struct {
	EstimateID string `json:"estimate_id"`
	Status     string `json:"status"`
}

type BatchItemResponse struct {
	EstimateID      string            `json:"estimate_id"`
	Version         string            `json:"version"`
	PreviousVersion string            `json:"previous_version,omitempty"`
	BackupVersion   string            `json:"backup_version,omitempty"`
	Breakdown       BreakdownResponse `json:"breakdown"`
}

type BatchSaveResponse struct {
	Success   bool                `json:"success"`
	Succeeded []BatchItemResponse `json:"succeeded"`
}

func FromBatch(rs []usecase.CommitResult) BatchSaveResponse {
	out := BatchSaveResponse{Success: true, Succeeded: make([]BatchItemResponse, 0, len(rs))}
	for _, r := range rs {
		out.Succeeded = append(out.Succeeded, BatchItemResponse{
			EstimateID:      r.EstimateID,
			Version:         version(r.Version),
			PreviousVersion: version(r.PreviousVersion),
			BackupVersion:   version(r.BackupVersion),
			Breakdown:       FromBreakdown(r.Breakdown),
		})
	}
	return out
}
