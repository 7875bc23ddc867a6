package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/usecase/interfaces"

	"go.uber.org/mock/gomock"
)

type putFailsFor struct {
	interfaces.IEstimateRepository
	id string
}

func (r *putFailsFor) Put(ctx context.Context, e entities.Estimate) error {
	if e.ID == r.id {
		return errors.New("write failed")
	}
	return r.IEstimateRepository.Put(ctx, e)
}

func batchErr(t *testing.T, err error) *entities.BatchError {
	t.Helper()
	var berr *entities.BatchError
	if !errors.As(err, &berr) {
		t.Fatalf("expected BatchError, got %v", err)
	}
	return berr
}

func TestSaveTransaction_SaveBatch(t *testing.T) {
	t.Run("commits every item", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newCoordinator(t, NewDiskSpaceGuard(healthyProbe(ctrl), testMinFree, testWarn), DefaultTransactionOptions())
		ctx := context.Background()

		first, err := f.uc.Save(ctx, draft("est-1"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		edit := first.Estimate
		edit.Pax = 4

		res, err := f.uc.SaveBatch(ctx, []entities.Estimate{edit, draft("est-2")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 2 {
			t.Fatalf("expected 2 results, got %d", len(res))
		}
		if res[0].Version.String() != "1.0.1" || res[0].BackupVersion.String() != "1.0.0" {
			t.Fatalf("unexpected result %+v", res[0])
		}
		if res[1].EstimateID != "est-2" || res[1].Version.String() != "1.0.0" || !res[1].BackupVersion.IsZero() {
			t.Fatalf("unexpected result %+v", res[1])
		}
		stored, _ := f.store.Estimates().Get(ctx, "est-1")
		if stored.Pax != 4 || stored.Version.String() != "1.0.1" {
			t.Fatalf("unexpected stored %+v", stored)
		}
		if f.locks.Len() != 0 {
			t.Fatalf("locks leaked")
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newCoordinator(t, NewDiskSpaceGuard(healthyProbe(ctrl), testMinFree, testWarn), DefaultTransactionOptions())

		var verr *entities.ValidationError
		if _, err := f.uc.SaveBatch(context.Background(), nil); !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("one invalid item rejects the batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newCoordinator(t, NewDiskSpaceGuard(healthyProbe(ctrl), testMinFree, testWarn), DefaultTransactionOptions())
		ctx := context.Background()

		bad := draft("est-2")
		bad.Pax = 0
		_, err := f.uc.SaveBatch(ctx, []entities.Estimate{draft("est-1"), bad})
		berr := batchErr(t, err)
		if len(berr.Records) != 1 || berr.Records[0].Index != 1 || berr.Records[0].Field != "pax" {
			t.Fatalf("unexpected records %+v", berr.Records)
		}
		var verr *entities.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected the cause to be a ValidationError, got %v", berr.Cause)
		}
		if _, err := f.store.Estimates().Get(ctx, "est-1"); !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected nothing stored, got %v", err)
		}
	})

	t.Run("duplicate ids", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newCoordinator(t, NewDiskSpaceGuard(healthyProbe(ctrl), testMinFree, testWarn), DefaultTransactionOptions())

		_, err := f.uc.SaveBatch(context.Background(), []entities.Estimate{draft("est-1"), draft("est-1")})
		berr := batchErr(t, err)
		if berr.Records[0].Index != 1 || berr.Records[0].Field != "id" {
			t.Fatalf("unexpected records %+v", berr.Records)
		}
	})

	t.Run("stale version rejects the batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newCoordinator(t, NewDiskSpaceGuard(healthyProbe(ctrl), testMinFree, testWarn), DefaultTransactionOptions())
		ctx := context.Background()

		if _, err := f.uc.Save(ctx, draft("est-1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := f.uc.SaveBatch(ctx, []entities.Estimate{draft("est-2"), draft("est-1")})
		berr := batchErr(t, err)
		if !errors.Is(err, entities.ErrConflict) || berr.Records[0].Index != 1 || berr.Records[0].Field != "version" {
			t.Fatalf("unexpected rejection %+v", berr)
		}
		if _, err := f.store.Estimates().Get(ctx, "est-2"); !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected est-2 not stored, got %v", err)
		}
		if f.locks.Len() != 0 {
			t.Fatalf("locks leaked")
		}
	})

	t.Run("guard tripped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newCoordinator(t, NewDiskSpaceGuard(lowProbe(ctrl), testMinFree, testWarn), DefaultTransactionOptions())

		if _, err := f.uc.SaveBatch(context.Background(), []entities.Estimate{draft("est-1")}); !errors.Is(err, entities.ErrInsufficientStorage) {
			t.Fatalf("expected ErrInsufficientStorage, got %v", err)
		}
	})

	t.Run("write failure undoes earlier items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		guard := NewDiskSpaceGuard(healthyProbe(ctrl), testMinFree, testWarn)
		store := newFileStore(t)
		est := &putFailsFor{IEstimateRepository: store.Estimates()}
		backups := NewBackupUseCase(store.Backups(), est)
		uc := NewSaveTransactionUseCase(est, backups, guard, NewEstimateValidator(), NewLockTable(), DefaultTransactionOptions(), time.Second)
		ctx := context.Background()

		first, err := uc.Save(ctx, draft("est-1"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		edit := first.Estimate
		edit.Pax = 5

		est.id = "est-3"
		_, err = uc.SaveBatch(ctx, []entities.Estimate{edit, draft("est-2"), draft("est-3")})
		berr := batchErr(t, err)
		if len(berr.Records) != 1 || berr.Records[0].Index != 2 {
			t.Fatalf("unexpected records %+v", berr.Records)
		}

		stored, err := store.Estimates().Get(ctx, "est-1")
		if err != nil || stored.Version != first.Version || stored.Pax != first.Estimate.Pax {
			t.Fatalf("expected est-1 restored, got %+v err=%v", stored, err)
		}
		if _, err := store.Estimates().Get(ctx, "est-2"); !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected est-2 removed, got %v", err)
		}
		raw, _ := store.Backups().ListByEstimateID(ctx, "est-1")
		if len(raw) != 0 {
			t.Fatalf("expected the batch snapshot discarded, got %+v", raw)
		}
	})
}
