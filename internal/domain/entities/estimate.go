package entities

import "time"

// DateLayout is the calendar format used for tour dates.
const DateLayout = "2006-01-02"

// Estimate is a versioned travel-cost quote.
//
// Storage model:
//   - one durable record per id, body serialized as canonical JSON
//   - totals are not stored; they are always derived from Services and Pricing
//
// InternalComments never leave the service through client-facing views.
type Estimate struct {
	ID               string          `json:"id"`
	Customer         Customer        `json:"customer"`
	Pax              int             `json:"pax" validate:"gte=1"`
	TourStart        string          `json:"tour_start" validate:"required"`
	TourEnd          string          `json:"tour_end" validate:"required"`
	Services         []ServiceItem   `json:"services" validate:"dive"`
	Pricing          PricingSettings `json:"pricing"`
	InternalComments string          `json:"internal_comments,omitempty"`
	Version          Version         `json:"version"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type Customer struct {
	Name  string `json:"name" validate:"required,max=200"`
	Phone string `json:"phone,omitempty" validate:"omitempty,phone"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// ServiceItem is one priced line (hotel, transfer, activity).
// Day groups items by tour day and never takes part in cost math.
type ServiceItem struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Company     string  `json:"company,omitempty"`
	Day         int     `json:"day" validate:"gte=1"`
	Price       Amount  `json:"price"`
	IsDiscount  bool    `json:"is_discount,omitempty"`
	MarkupPct   float64 `json:"markup_pct" validate:"gte=0,lte=1000"`
}

// PricingSettings carries the margins applied on top of the item subtotal.
// HiddenMarkupPct is retained by the company and never disclosed to the client.
type PricingSettings struct {
	HiddenMarkupPct      float64 `json:"hidden_markup_pct" validate:"gte=0,lte=100"`
	PartnerCommissionPct float64 `json:"partner_commission_pct" validate:"gte=0,lte=100"`
	Currency             string  `json:"currency" validate:"required,len=3"`
}

// EstimateSummary is the listing projection of an Estimate.
type EstimateSummary struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Pax        int       `json:"pax"`
	TourStart  string    `json:"tour_start"`
	Version    Version   `json:"version"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (e Estimate) Summary() EstimateSummary {
	return EstimateSummary{
		ID:         e.ID,
		ClientName: e.Customer.Name,
		Pax:        e.Pax,
		TourStart:  e.TourStart,
		Version:    e.Version,
		UpdatedAt:  e.UpdatedAt,
	}
}
