package response

import (
	"time"

	"quote_calculator/internal/domain/entities"
	"quote_calculator/internal/domain/pricing"
	"quote_calculator/internal/usecase"

	"github.com/shopspring/decimal"
)

// money rounds at presentation only; every stored and computed value stays
// exact.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func version(v entities.Version) string { return v.String() }

type LineResponse struct {
	Index       int     `json:"index"`
	Name        string  `json:"name"`
	Day         int     `json:"day"`
	UnitPrice   float64 `json:"unit_price"`
	MarkupPct   float64 `json:"markup_pct"`
	Cost        float64 `json:"cost"`
	ClientPrice float64 `json:"client_price"`
	IsDiscount  bool    `json:"is_discount,omitempty"`
}

type BreakdownResponse struct {
	Lines                   []LineResponse `json:"lines"`
	Subtotal                float64        `json:"subtotal"`
	HiddenMarginAmount      float64        `json:"hidden_margin_amount"`
	PartnerCommissionAmount float64        `json:"partner_commission_amount"`
	ClientTotal             float64        `json:"client_total"`
	CostBasis               float64        `json:"cost_basis"`
	OurProfit               float64        `json:"our_profit"`
	PerPax                  float64        `json:"per_pax"`
	Pax                     int            `json:"pax"`
	Currency                string         `json:"currency"`
}

func FromBreakdown(b pricing.Breakdown) BreakdownResponse {
	lines := make([]LineResponse, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, LineResponse{
			Index:       l.Index,
			Name:        l.Name,
			Day:         l.Day,
			UnitPrice:   money(l.UnitPrice),
			MarkupPct:   l.MarkupPct.InexactFloat64(),
			Cost:        money(l.Cost),
			ClientPrice: money(l.ClientPrice),
			IsDiscount:  l.IsDiscount,
		})
	}
	return BreakdownResponse{
		Lines:                   lines,
		Subtotal:                money(b.Subtotal),
		HiddenMarginAmount:      money(b.HiddenMarginAmount),
		PartnerCommissionAmount: money(b.PartnerCommissionAmount),
		ClientTotal:             money(b.ClientTotal),
		CostBasis:               money(b.CostBasis),
		OurProfit:               money(b.OurProfit),
		PerPax:                  money(b.PerPax),
		Pax:                     b.Pax,
		Currency:                b.Currency,
	}
}

type EstimateResponse struct {
	Estimate  entities.Estimate `json:"estimate"`
	Breakdown BreakdownResponse `json:"breakdown"`
}

func FromEstimateView(v usecase.EstimateView) EstimateResponse {
	return EstimateResponse{Estimate: v.Estimate, Breakdown: FromBreakdown(v.Breakdown)}
}

type EstimateSummaryResponse struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Pax        int       `json:"pax"`
	TourStart  string    `json:"tour_start"`
	Version    string    `json:"version"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromSummaries(in []entities.EstimateSummary) []EstimateSummaryResponse {
	out := make([]EstimateSummaryResponse, 0, len(in))
	for _, s := range in {
		out = append(out, EstimateSummaryResponse{
			ID:         s.ID,
			ClientName: s.ClientName,
			Pax:        s.Pax,
			TourStart:  s.TourStart,
			Version:    version(s.Version),
			UpdatedAt:  s.UpdatedAt,
		})
	}
	return out
}

type ClientItemResponse struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Company     string  `json:"company,omitempty"`
	Price       float64 `json:"price"`
}

type ClientDayResponse struct {
	Day   int                  `json:"day"`
	Items []ClientItemResponse `json:"items"`
	Total float64              `json:"total"`
}

// ClientEstimateResponse is safe to hand to the customer.
type ClientEstimateResponse struct {
	ID        string              `json:"id"`
	Customer  entities.Customer   `json:"customer"`
	Pax       int                 `json:"pax"`
	TourStart string              `json:"tour_start"`
	TourEnd   string              `json:"tour_end"`
	Currency  string              `json:"currency"`
	Days      []ClientDayResponse `json:"days"`
	Total     float64             `json:"total"`
	PerPax    float64             `json:"per_pax"`
	Version   string              `json:"version"`
}

func FromClientEstimate(c usecase.ClientEstimate) ClientEstimateResponse {
	days := make([]ClientDayResponse, 0, len(c.Days))
	for _, d := range c.Days {
		items := make([]ClientItemResponse, 0, len(d.Items))
		for _, it := range d.Items {
			items = append(items, ClientItemResponse{
				Name:        it.Name,
				Description: it.Description,
				Company:     it.Company,
				Price:       money(it.Price),
			})
		}
		days = append(days, ClientDayResponse{Day: d.Day, Items: items, Total: money(d.Total)})
	}
	return ClientEstimateResponse{
		ID:        c.ID,
		Customer:  c.Customer,
		Pax:       c.Pax,
		TourStart: c.TourStart,
		TourEnd:   c.TourEnd,
		Currency:  c.Currency,
		Days:      days,
		Total:     money(c.Total),
		PerPax:    money(c.PerPax),
		Version:   version(c.Version),
	}
}
