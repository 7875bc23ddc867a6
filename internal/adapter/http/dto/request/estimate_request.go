package request

import (
	"strings"

	"quote_calculator/internal/domain/entities"
)

type CustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// ServiceRequest keeps price as entities.Amount so a missing or
// non-numeric price is reported against its own field instead of failing
// the whole bind.
type ServiceRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Company     string          `json:"company"`
	Day         int             `json:"day"`
	Price       entities.Amount `json:"price" swaggertype:"number"`
	IsDiscount  bool            `json:"is_discount"`
	MarkupPct   float64         `json:"markup_pct"`
}

type PricingRequest struct {
	HiddenMarkupPct      float64 `json:"hidden_markup_pct"`
	PartnerCommissionPct float64 `json:"partner_commission_pct"`
	Currency             string  `json:"currency"`
}

// EstimateRequest is the editable body of an estimate. Version is the
// version the client started editing from; it is empty for a new estimate.
type EstimateRequest struct {
	ID               string           `json:"id"`
	Customer         CustomerRequest  `json:"customer"`
	Pax              int              `json:"pax"`
	TourStart        string           `json:"tour_start"`
	TourEnd          string           `json:"tour_end"`
	Services         []ServiceRequest `json:"services"`
	Pricing          PricingRequest   `json:"pricing"`
	InternalComments string           `json:"internal_comments"`
	Version          string           `json:"version"`
}

func (r EstimateRequest) ToEntity() (entities.Estimate, error) {
	v, err := entities.ParseVersion(r.Version)
	if err != nil {
		return entities.Estimate{}, err
	}
	return entities.Estimate{
		ID: strings.TrimSpace(r.ID),
		Customer: entities.Customer{
			Name:  strings.TrimSpace(r.Customer.Name),
			Phone: strings.TrimSpace(r.Customer.Phone),
			Email: strings.TrimSpace(r.Customer.Email),
		},
		Pax:              r.Pax,
		TourStart:        strings.TrimSpace(r.TourStart),
		TourEnd:          strings.TrimSpace(r.TourEnd),
		Services:         toServiceItems(r.Services),
		Pricing:          r.Pricing.toEntity(),
		InternalComments: r.InternalComments,
		Version:          v,
	}, nil
}

func (p PricingRequest) toEntity() entities.PricingSettings {
	return entities.PricingSettings{
		HiddenMarkupPct:      p.HiddenMarkupPct,
		PartnerCommissionPct: p.PartnerCommissionPct,
		Currency:             strings.ToUpper(strings.TrimSpace(p.Currency)),
	}
}

func toServiceItems(in []ServiceRequest) []entities.ServiceItem {
	out := make([]entities.ServiceItem, 0, len(in))
	for _, s := range in {
		out = append(out, entities.ServiceItem{
			Name:        strings.TrimSpace(s.Name),
			Description: s.Description,
			Company:     s.Company,
			Day:         s.Day,
			Price:       s.Price,
			IsDiscount:  s.IsDiscount,
			MarkupPct:   s.MarkupPct,
		})
	}
	return out
}

// TransactionRequest addresses a prepared save transaction.
type TransactionRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
}

// CalculateRequest prices services without storing anything.
type CalculateRequest struct {
	Services []ServiceRequest `json:"services"`
	Pricing  PricingRequest   `json:"pricing"`
	Pax      int              `json:"pax"`
}

func (r CalculateRequest) Items() []entities.ServiceItem { return toServiceItems(r.Services) }

func (r CalculateRequest) Settings() entities.PricingSettings { return r.Pricing.toEntity() }

// BatchItemRequest is one estimate of a batch save. ID, when set, names the
// estimate and overrides data.id.
type BatchItemRequest struct {
	ID   string          `json:"id"`
	Data EstimateRequest `json:"data"`
}

type BatchSaveRequest struct {
	Items []BatchItemRequest `json:"items"`
}

// ToEntities maps every item, failing on the first unparsable version.
func (r BatchSaveRequest) ToEntities() ([]entities.Estimate, error) {
	out := make([]entities.Estimate, 0, len(r.Items))
	for _, it := range r.Items {
		e, err := it.Data.ToEntity()
		if err != nil {
			return nil, err
		}
		if id := strings.TrimSpace(it.ID); id != "" {
			e.ID = id
		}
		out = append(out, e)
	}
	return out, nil
}
