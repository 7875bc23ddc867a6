package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/domain/pricing"
	"quote_calculator/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=estimate_usecase.go -destination=../adapter/http/handlers/mocks/estimate_usecase_mock.go -package=mocks

var (
	ErrEstimateNotFound  = errors.New("estimate not found")
	ErrInvalidEstimateID = errors.New("invalid estimate id")
)

// EstimateView is a stored estimate with its totals derived on read.
type EstimateView struct {
	Estimate  entities.Estimate
	Breakdown pricing.Breakdown
}

// ClientEstimate is what the customer sees: no internal comments, no
// margins, no per-item markups. Item prices already include every margin.
type ClientEstimate struct {
	ID        string
	Customer  entities.Customer
	Pax       int
	TourStart string
	TourEnd   string
	Currency  string
	Days      []ClientDay
	Total     decimal.Decimal
	PerPax    decimal.Decimal
	Version   entities.Version
}

type ClientDay struct {
	Day   int
	Items []ClientItem
	Total decimal.Decimal
}

type ClientItem struct {
	Name        string
	Description string
	Company     string
	Price       decimal.Decimal
}

// CalculateInput is a stateless pricing request.
type CalculateInput struct {
	Services []entities.ServiceItem
	Pricing  entities.PricingSettings
	Pax      int
}

// IEstimateUseCase exposes estimate reads, deletion and stateless pricing.
// Saving goes through ISaveTransactionUseCase.
type IEstimateUseCase interface {
	List(ctx context.Context) ([]entities.EstimateSummary, error)
	Get(ctx context.Context, id string) (EstimateView, error)
	ClientView(ctx context.Context, id string) (ClientEstimate, error)
	Delete(ctx context.Context, id string) error
	Calculate(ctx context.Context, in CalculateInput) (pricing.Breakdown, error)
}

type EstimateUseCase struct {
	repo    interfaces.IEstimateRepository
	backups *BackupUseCase
	locks   *LockTable
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(repo interfaces.IEstimateRepository, backups *BackupUseCase, locks *LockTable) *EstimateUseCase {
	return &EstimateUseCase{repo: repo, backups: backups, locks: locks}
}

func (u *EstimateUseCase) List(ctx context.Context) ([]entities.EstimateSummary, error) {
	return u.repo.List(ctx)
}

func (u *EstimateUseCase) Get(ctx context.Context, id string) (EstimateView, error) {
	e, err := u.get(ctx, id)
	if err != nil {
		return EstimateView{}, err
	}
	b, err := pricing.CalculateEstimate(e)
	if err != nil {
		return EstimateView{}, fmt.Errorf("estimate %s: stored body does not price: %w", e.ID, err)
	}
	return EstimateView{Estimate: e, Breakdown: b}, nil
}

func (u *EstimateUseCase) ClientView(ctx context.Context, id string) (ClientEstimate, error) {
	view, err := u.Get(ctx, id)
	if err != nil {
		return ClientEstimate{}, err
	}
	e, b := view.Estimate, view.Breakdown

	days := make([]ClientDay, 0)
	for _, g := range b.ByDay() {
		day := ClientDay{Day: g.Day, Total: decimal.Zero}
		for _, l := range g.Lines {
			it := e.Services[l.Index]
			day.Items = append(day.Items, ClientItem{
				Name:        it.Name,
				Description: it.Description,
				Company:     it.Company,
				Price:       l.ClientPrice,
			})
			day.Total = day.Total.Add(l.ClientPrice)
		}
		days = append(days, day)
	}

	return ClientEstimate{
		ID:        e.ID,
		Customer:  e.Customer,
		Pax:       e.Pax,
		TourStart: e.TourStart,
		TourEnd:   e.TourEnd,
		Currency:  e.Pricing.Currency,
		Days:      days,
		Total:     b.ClientTotal,
		PerPax:    b.PerPax,
		Version:   e.Version,
	}, nil
}

// Delete snapshots the final version and removes the live record under the
// estimate lock. Backups are kept, and the snapshot keeps a recreated
// estimate numbering above every version it ever had.
func (u *EstimateUseCase) Delete(ctx context.Context, id string) error {
	id, err := checkEstimateID(id)
	if err != nil {
		return err
	}
	release, err := u.locks.Acquire(ctx, id)
	if err != nil {
		return timeoutOr(err, "delete %s: lock", id)
	}
	defer release()

	current, err := u.repo.Get(ctx, id)
	if errors.Is(err, entities.ErrNotFound) {
		return ErrEstimateNotFound
	}
	if err != nil {
		return err
	}
	if _, _, err := u.backups.Snapshot(ctx, current); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return ErrEstimateNotFound
		}
		return err
	}
	log.Printf("[estimate][usecase] deleted estimate_id=%s", id)
	return nil
}

func (u *EstimateUseCase) Calculate(_ context.Context, in CalculateInput) (pricing.Breakdown, error) {
	return pricing.Calculate(in.Services, in.Pricing, in.Pax)
}

func (u *EstimateUseCase) get(ctx context.Context, id string) (entities.Estimate, error) {
	id, err := checkEstimateID(id)
	if err != nil {
		return entities.Estimate{}, err
	}
	e, err := u.repo.Get(ctx, id)
	if errors.Is(err, entities.ErrNotFound) {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, err
}
