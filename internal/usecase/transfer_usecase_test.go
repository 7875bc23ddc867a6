package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"quote_calculator/internal/adapter/persistence/sqlstore"
	"quote_calculator/internal/adapter/persistence/storetest"
	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/infrastructure/database"
	"quote_calculator/internal/usecase/interfaces"
	mock_interfaces "quote_calculator/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func newTransfer(store interfaces.IStore, guard IDiskGuard) *TransferUseCase {
	guarded := GuardStore(store, guard)
	return NewTransferUseCase(guarded, NewBackupUseCase(guarded.Backups(), guarded.Estimates()), guard, NewImportValidator(NewEstimateValidator()), NewLockTable())
}

func newSQLiteStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	db, err := database.OpenRelational(database.DialectSQLite, filepath.Join(t.TempDir(), "quotes.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err := sqlstore.New(db, database.DialectSQLite)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func marshalPayload(t *testing.T, p entities.TransferPayload) []byte {
	t.Helper()
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

type catalogOverride struct {
	interfaces.IStore
	catalogs interfaces.ICatalogRepository
}

func (s catalogOverride) Catalogs() interfaces.ICatalogRepository { return s.catalogs }

func TestTransferUseCase_Export(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := newTransfer(newFileStore(t), NewDiskSpaceGuard(healthyProbe(ctrl), testMinFree, testWarn))

		p, err := uc.Export(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.FormatVersion != "2.3.0" || p.StorageType != "file" || p.ExportedAt == nil {
			t.Fatalf("unexpected header %+v", p)
		}
		if p.Estimates == nil || p.Catalogs == nil || p.Backups == nil {
			t.Fatalf("sections must be empty arrays, not null")
		}
	})

	t.Run("ordered sections", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := newFileStore(t)
		ctx := context.Background()
		for _, id := range []string{"c", "a", "b"} {
			if err := store.Estimates().Put(ctx, storetest.SampleEstimate(id, "1.0.1")); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		bu := NewBackupUseCase(store.Backups(), store.Estimates())
		for _, v := range []string{"1.0.0", "0.9.9"} {
			if _, _, err := bu.Snapshot(ctx, storetest.SampleEstimate("b", v)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if _, _, err := bu.Snapshot(ctx, storetest.SampleEstimate("a", "1.0.0")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_ = store.Catalogs().Put(ctx, entities.Catalog{Name: "z", Data: []byte(`{}`)})
		_ = store.Catalogs().Put(ctx, entities.Catalog{Name: "m", Data: []byte(`{}`)})

		uc := newTransfer(store, NewDiskSpaceGuard(healthyProbe(ctrl), testMinFree, testWarn))
		p, err := uc.Export(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var ids []string
		for _, e := range p.Estimates {
			ids = append(ids, e.ID)
		}
		if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
			t.Fatalf("unexpected estimate order %v", ids)
		}
		if p.Backups[0].EstimateID != "a" || p.Backups[1].Version.String() != "0.9.9" || p.Backups[2].Version.String() != "1.0.0" {
			t.Fatalf("unexpected backup order %+v", p.Backups)
		}
		if p.Catalogs[0].Name != "m" {
			t.Fatalf("unexpected catalog order %+v", p.Catalogs)
		}
	})
}

func TestTransferUseCase_RoundTripAcrossBackends(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	guard := NewDiskSpaceGuard(healthyProbe(ctrl), testMinFree, testWarn)
	ctx := context.Background()

	f := newCoordinator(t, guard, DefaultTransactionOptions())
	first, err := f.uc.Save(ctx, draft("est-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	edit := first.Estimate
	edit.Pax = 3
	if _, err := f.uc.Save(ctx, edit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.uc.Save(ctx, draft("est-2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.store.Catalogs().Put(ctx, entities.Catalog{Name: "hotels", Data: []byte(`{"rooms": [1, 2]}`)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exported, err := newTransfer(f.store, guard).Export(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	target := newTransfer(newSQLiteStore(t), guard)
	res, err := target.Import(ctx, marshalPayload(t, exported))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.EstimatesCreated != 2 || res.BackupsAdded != 1 || res.CatalogsWritten != 1 {
		t.Fatalf("unexpected import result %+v", res)
	}

	reexported, err := target.Export(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reexported.StorageType != "sqlite" {
		t.Fatalf("expected sqlite, got %s", reexported.StorageType)
	}
	reexported.StorageType = exported.StorageType
	reexported.ExportedAt = exported.ExportedAt
	if a, b := marshalPayload(t, exported), marshalPayload(t, reexported); string(a) != string(b) {
		t.Fatalf("round trip changed data:\n%s\n%s", a, b)
	}

	again, err := target.Import(ctx, marshalPayload(t, exported))
	if err != nil {
		t.Fatalf("re-import must be a no-op, got %v", err)
	}
	if again.EstimatesUnchanged != 2 || again.BackupsSkipped != 1 || again.EstimatesCreated != 0 {
		t.Fatalf("unexpected re-import result %+v", again)
	}
}

func TestTransferUseCase_ImportVersionRules(t *testing.T) {
	seed := func(t *testing.T, ctrl *gomock.Controller) (*TransferUseCase, interfaces.IStore) {
		store := newFileStore(t)
		if err := store.Estimates().Put(context.Background(), storetest.SampleEstimate("est-1", "1.0.2")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return newTransfer(store, NewDiskSpaceGuard(healthyProbe(ctrl), testMinFree, testWarn)), store
	}
	payload := func(t *testing.T, estimates ...entities.Estimate) []byte {
		return marshalPayload(t, entities.TransferPayload{FormatVersion: "2.3.0", Estimates: estimates})
	}

	t.Run("newer version replaces and backs up", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, store := seed(t, ctrl)
		ctx := context.Background()

		incoming := storetest.SampleEstimate("est-1", "1.0.5")
		incoming.InternalComments = "imported"
		res, err := uc.Import(ctx, payload(t, incoming))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.EstimatesUpdated != 1 {
			t.Fatalf("unexpected result %+v", res)
		}
		stored, _ := store.Estimates().Get(ctx, "est-1")
		if stored.Version.String() != "1.0.5" || stored.InternalComments != "imported" {
			t.Fatalf("unexpected stored estimate %+v", stored)
		}
		if _, err := store.Backups().Get(ctx, "est-1", entities.MustParseVersion("1.0.2")); err != nil {
			t.Fatalf("expected prior body backed up: %v", err)
		}
	})

	t.Run("older version conflicts and nothing is applied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, store := seed(t, ctrl)
		ctx := context.Background()

		_, err := uc.Import(ctx, payload(t, storetest.SampleEstimate("new-1", "1.0.0"), storetest.SampleEstimate("est-1", "1.0.1")))
		var cerr *entities.ImportConflictError
		if !errors.As(err, &cerr) || !errors.Is(err, entities.ErrConflict) {
			t.Fatalf("expected ImportConflictError, got %v", err)
		}
		if len(cerr.Records) != 1 || cerr.Records[0].ID != "est-1" || cerr.Records[0].Index != 1 {
			t.Fatalf("unexpected conflicts %+v", cerr.Records)
		}
		if _, err := store.Estimates().Get(ctx, "new-1"); !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("conflicting import must not create anything, got %v", err)
		}
	})

	t.Run("same version with different body conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := seed(t, ctrl)

		incoming := storetest.SampleEstimate("est-1", "1.0.2")
		incoming.Pax = 9
		if _, err := uc.Import(context.Background(), payload(t, incoming)); !errors.Is(err, entities.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("same version and body is unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := seed(t, ctrl)

		res, err := uc.Import(context.Background(), payload(t, storetest.SampleEstimate("est-1", "1.0.2")))
		if err != nil || res.EstimatesUnchanged != 1 {
			t.Fatalf("unexpected result %+v err=%v", res, err)
		}
	})

	t.Run("invalid payload touches nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, store := seed(t, ctrl)

		bad := storetest.SampleEstimate("est-1", "1.0.9")
		bad.Pax = 0
		_, err := uc.Import(context.Background(), payload(t, bad))
		var serr *entities.ImportSchemaError
		if !errors.As(err, &serr) {
			t.Fatalf("expected ImportSchemaError, got %v", err)
		}
		stored, _ := store.Estimates().Get(context.Background(), "est-1")
		if stored.Version.String() != "1.0.2" {
			t.Fatalf("stored estimate changed to %s", stored.Version)
		}
	})

	t.Run("insufficient storage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := newTransfer(newFileStore(t), NewDiskSpaceGuard(lowProbe(ctrl), testMinFree, testWarn))

		_, err := uc.Import(context.Background(), payload(t, storetest.SampleEstimate("est-1", "1.0.0")))
		if !errors.Is(err, entities.ErrInsufficientStorage) {
			t.Fatalf("expected ErrInsufficientStorage, got %v", err)
		}
	})
}

func TestTransferUseCase_ImportIsAllOrNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	base := newFileStore(t)
	original := storetest.SampleEstimate("est-old", "1.0.0")
	if err := base.Estimates().Put(ctx, original); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	catalogs := mock_interfaces.NewMockICatalogRepository(ctrl)
	catalogs.EXPECT().Get(gomock.Any(), "hotels").Return(entities.Catalog{}, entities.ErrNotFound)
	catalogs.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("disk I/O error"))

	store := catalogOverride{IStore: base, catalogs: catalogs}
	uc := newTransfer(store, NewDiskSpaceGuard(healthyProbe(ctrl), testMinFree, testWarn))

	updated := storetest.SampleEstimate("est-old", "1.0.1")
	updated.InternalComments = "overwritten"
	body, _ := json.Marshal(storetest.SampleEstimate("est-new", "1.0.0"))
	raw := marshalPayload(t, entities.TransferPayload{
		Estimates: []entities.Estimate{storetest.SampleEstimate("est-new", "1.0.1"), updated},
		Backups: []entities.BackupSnapshot{{
			ID: "b-1", EstimateID: "est-new", Version: entities.MustParseVersion("1.0.0"),
			Body: body, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
		Catalogs: []entities.Catalog{{Name: "hotels", Data: []byte(`{}`)}},
	})

	if _, err := uc.Import(ctx, raw); err == nil {
		t.Fatalf("expected import failure")
	}

	if _, err := base.Estimates().Get(ctx, "est-new"); !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("created estimate must be removed, got %v", err)
	}
	stored, err := base.Estimates().Get(ctx, "est-old")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Version.String() != "1.0.0" || stored.InternalComments != original.InternalComments {
		t.Fatalf("updated estimate must be restored, got %s %q", stored.Version, stored.InternalComments)
	}
	all, _ := base.Backups().ListAll(ctx)
	if len(all) != 0 {
		t.Fatalf("backups written by the failed import must be discarded, found %d", len(all))
	}
}
