package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"quote_calculator/internal/adapter/http/handlers/mocks"
	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newSaveRouter(uc *mocks.MockISaveTransactionUseCase) *gin.Engine {
	h := NewSaveHandler(uc)
	r := gin.New()
	r.POST("/api/save/prepare", h.Prepare)
	r.POST("/api/save/commit", h.Commit)
	r.POST("/api/save/rollback", h.Rollback)
	r.POST("/api/estimates/batch", h.SaveBatch)
	r.POST("/api/estimates/:id/autosave", h.Autosave)
	return r
}

func TestSaveHandler_Prepare(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaveTransactionUseCase(ctrl)

		w := performRequest(newSaveRouter(uc), http.MethodPost, "/api/save/prepare", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid version", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaveTransactionUseCase(ctrl)

		w := performRequest(newSaveRouter(uc), http.MethodPost, "/api/save/prepare", `{"id":"est-1","version":"v2"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("mapped errors", func(t *testing.T) {
		cases := []struct {
			name string
			err  error
			code int
		}{
			{"validation", &entities.ValidationError{Fields: []entities.FieldError{{Field: "pax", Message: "must be a positive integer"}}}, http.StatusUnprocessableEntity},
			{"stale", fmt.Errorf("estimate est-1: %w", entities.ErrConflict), http.StatusConflict},
			{"disk", &entities.InsufficientStorageError{FreeBytes: 50 << 20, MinFreeBytes: 100 << 20}, http.StatusInsufficientStorage},
			{"lock wait", fmt.Errorf("prepare: %w", entities.ErrTimeout), http.StatusServiceUnavailable},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()
				uc := mocks.NewMockISaveTransactionUseCase(ctrl)
				uc.EXPECT().Prepare(gomock.Any(), gomock.Any()).Return(usecase.PrepareResult{}, tc.err)

				w := performRequest(newSaveRouter(uc), http.MethodPost, "/api/save/prepare", validEstimateBody)
				if w.Code != tc.code {
					t.Fatalf("expected %d, got %d", tc.code, w.Code)
				}
			})
		}
	})

	t.Run("disk details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaveTransactionUseCase(ctrl)
		uc.EXPECT().Prepare(gomock.Any(), gomock.Any()).Return(usecase.PrepareResult{}, &entities.InsufficientStorageError{FreeBytes: 50 << 20, MinFreeBytes: 100 << 20})

		w := performRequest(newSaveRouter(uc), http.MethodPost, "/api/save/prepare", validEstimateBody)
		details := decodeBody(t, w)["details"].(map[string]any)
		if details["freeSpaceMB"] != float64(50) || details["requiredMB"] != float64(100) {
			t.Fatalf("unexpected details %v", details)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaveTransactionUseCase(ctrl)
		uc.EXPECT().Prepare(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e entities.Estimate) (usecase.PrepareResult, error) {
			if e.ID != "est-1" || e.Version.String() != "1.0.0" || len(e.Services) != 1 {
				t.Fatalf("unexpected candidate %+v", e)
			}
			return usecase.PrepareResult{TransactionID: "tx-1", EstimateID: "est-1", State: usecase.TxValidated, BaseVersion: e.Version}, nil
		})

		w := performRequest(newSaveRouter(uc), http.MethodPost, "/api/save/prepare", validEstimateBody)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["transaction_id"] != "tx-1" || body["state"] != "validated" || body["base_version"] != "1.0.0" {
			t.Fatalf("unexpected body %v", body)
		}
	})
}

func TestSaveHandler_Commit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing transaction id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaveTransactionUseCase(ctrl)

		w := performRequest(newSaveRouter(uc), http.MethodPost, "/api/save/commit", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaveTransactionUseCase(ctrl)
		uc.EXPECT().Commit(gomock.Any(), "tx-9").Return(usecase.CommitResult{}, fmt.Errorf("commit tx-9: %w", entities.ErrTransactionNotFound))

		w := performRequest(newSaveRouter(uc), http.MethodPost, "/api/save/commit", `{"transaction_id":"tx-9"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaveTransactionUseCase(ctrl)
		uc.EXPECT().Commit(gomock.Any(), "tx-1").Return(usecase.CommitResult{
			TransactionID:   "tx-1",
			EstimateID:      "est-1",
			State:           usecase.TxCommitted,
			Version:         entities.MustParseVersion("1.0.1"),
			PreviousVersion: entities.MustParseVersion("1.0.0"),
			BackupVersion:   entities.MustParseVersion("1.0.0"),
		}, nil)

		w := performRequest(newSaveRouter(uc), http.MethodPost, "/api/save/commit", `{"transaction_id":"tx-1"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["version"] != "1.0.1" || body["backup_version"] != "1.0.0" || body["success"] != true {
			t.Fatalf("unexpected body %v", body)
		}
	})
}

func TestSaveHandler_Rollback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockISaveTransactionUseCase(ctrl)
	uc.EXPECT().Rollback(gomock.Any(), "").Return(usecase.RollbackResult{State: usecase.TxRolledBack, Message: "no active transaction; nothing to roll back"})

	w := performRequest(newSaveRouter(uc), http.MethodPost, "/api/save/rollback", "{")
	if w.Code != http.StatusOK {
		t.Fatalf("rollback must always succeed, got %d", w.Code)
	}
}

func TestSaveHandler_Autosave(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaveTransactionUseCase(ctrl)
		uc.EXPECT().Autosave(gomock.Any(), "est-1", gomock.Any()).Return(nil)

		w := performRequest(newSaveRouter(uc), http.MethodPost, "/api/estimates/est-1/autosave", validEstimateBody)
		if w.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d", w.Code)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaveTransactionUseCase(ctrl)
		uc.EXPECT().Autosave(gomock.Any(), "est-1", gomock.Any()).Return(&entities.ValidationError{Fields: []entities.FieldError{{Field: "pax", Message: "x"}}})

		w := performRequest(newSaveRouter(uc), http.MethodPost, "/api/estimates/est-1/autosave", validEstimateBody)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})
}

func TestSaveHandler_SaveBatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	batchBody := `{"items": [{"id": "est-1", "data": ` + validEstimateBody + `}, {"id": "est-2", "data": ` + validEstimateBody + `}]}`

	t.Run("invalid version", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaveTransactionUseCase(ctrl)

		w := performRequest(newSaveRouter(uc), http.MethodPost, "/api/estimates/batch", `{"items": [{"id": "est-1", "data": {"version": "two"}}]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISaveTransactionUseCase(ctrl)
		uc.EXPECT().SaveBatch(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, es []entities.Estimate) ([]usecase.CommitResult, error) {
			if len(es) != 2 || es[0].ID != "est-1" || es[1].ID != "est-2" {
				t.Fatalf("unexpected candidates %+v", es)
			}
			return []usecase.CommitResult{
				{EstimateID: "est-1", State: usecase.TxCommitted, Version: entities.MustParseVersion("1.0.1"), BackupVersion: entities.MustParseVersion("1.0.0")},
				{EstimateID: "est-2", State: usecase.TxCommitted, Version: entities.InitialVersion},
			}, nil
		})

		w := performRequest(newSaveRouter(uc), http.MethodPost, "/api/estimates/batch", batchBody)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		items := decodeBody(t, w)["succeeded"].([]any)
		first := items[0].(map[string]any)
		if len(items) != 2 || first["estimate_id"] != "est-1" || first["version"] != "1.0.1" || first["backup_version"] != "1.0.0" {
			t.Fatalf("unexpected items %v", items)
		}
	})

	t.Run("rejected items are reported", func(t *testing.T) {
		cases := []struct {
			name  string
			cause error
			code  int
		}{
			{"validation", &entities.ValidationError{Fields: []entities.FieldError{{Field: "pax", Message: "must be a positive integer"}}}, http.StatusUnprocessableEntity},
			{"stale", entities.ErrConflict, http.StatusConflict},
			{"write", errors.New("write failed"), http.StatusInternalServerError},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()
				uc := mocks.NewMockISaveTransactionUseCase(ctrl)
				uc.EXPECT().SaveBatch(gomock.Any(), gomock.Any()).Return(nil, &entities.BatchError{
					Records: []entities.RecordError{{Section: "items", Index: 1, ID: "est-2", Field: "pax", Message: "bad"}},
					Cause:   tc.cause,
				})

				w := performRequest(newSaveRouter(uc), http.MethodPost, "/api/estimates/batch", batchBody)
				if w.Code != tc.code {
					t.Fatalf("expected %d, got %d", tc.code, w.Code)
				}
				details := decodeBody(t, w)["details"].([]any)
				if len(details) != 1 || details[0].(map[string]any)["id"] != "est-2" {
					t.Fatalf("unexpected details %v", details)
				}
			})
		}
	})
}
