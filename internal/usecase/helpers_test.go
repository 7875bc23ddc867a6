package usecase

import (
	"context"
	"testing"
	"time"

	"quote_calculator/internal/adapter/persistence/filestore"
	"quote_calculator/internal/domain/entities"
	mock_interfaces "quote_calculator/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

const (
	testMinFree = 100 << 20
	testWarn    = 500 << 20
)

func healthyProbe(ctrl *gomock.Controller) *mock_interfaces.MockIDiskProbe {
	probe := mock_interfaces.NewMockIDiskProbe(ctrl)
	probe.EXPECT().Status(gomock.Any()).Return(entities.DiskStatus{Path: "/data", FreeBytes: 10 << 30, TotalBytes: 20 << 30}, nil).AnyTimes()
	return probe
}

func lowProbe(ctrl *gomock.Controller) *mock_interfaces.MockIDiskProbe {
	probe := mock_interfaces.NewMockIDiskProbe(ctrl)
	probe.EXPECT().Status(gomock.Any()).Return(entities.DiskStatus{Path: "/data", FreeBytes: 50 << 20, TotalBytes: 20 << 30}, nil).AnyTimes()
	return probe
}

func newFileStore(t *testing.T) *filestore.Store {
	t.Helper()
	return newFileStoreAt(t, t.TempDir())
}

func newFileStoreAt(t *testing.T, root string) *filestore.Store {
	t.Helper()
	s, err := filestore.New(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

type coordinatorFixture struct {
	uc      *SaveTransactionUseCase
	locks   *LockTable
	store   *filestore.Store
	backups *BackupUseCase
	root    string
}

func newCoordinator(t *testing.T, guard IDiskGuard, opts TransactionOptions) coordinatorFixture {
	t.Helper()
	root := t.TempDir()
	f := newCoordinatorOn(t, newFileStoreAt(t, root), guard, opts)
	f.root = root
	return f
}

func newCoordinatorOn(t *testing.T, store *filestore.Store, guard IDiskGuard, opts TransactionOptions) coordinatorFixture {
	t.Helper()
	guarded := GuardStore(store, guard)
	locks := NewLockTable()
	backups := NewBackupUseCase(guarded.Backups(), guarded.Estimates())
	uc := NewSaveTransactionUseCase(guarded.Estimates(), backups, guard, NewEstimateValidator(), locks, opts, 30*time.Millisecond)
	t.Cleanup(func() { uc.Flush(context.Background()) })
	return coordinatorFixture{uc: uc, locks: locks, store: store, backups: backups}
}

// draft is a valid, never committed estimate.
func draft(id string) entities.Estimate {
	return entities.Estimate{
		ID:        id,
		Customer:  entities.Customer{Name: "Anna Petrova", Phone: "+7 999 123-45-67", Email: "anna@example.com"},
		Pax:       2,
		TourStart: "2026-01-10",
		TourEnd:   "2026-01-15",
		Services: []entities.ServiceItem{
			{Name: "Hotel", Company: "Grand", Day: 1, Price: entities.AmountFromFloat(100), MarkupPct: 10},
			{Name: "Transfer", Company: "Cars", Day: 2, Price: entities.AmountFromFloat(200), MarkupPct: 5},
		},
		Pricing:          entities.PricingSettings{HiddenMarkupPct: 3, PartnerCommissionPct: 2, Currency: "USD"},
		InternalComments: "vip client",
	}
}
