// Package pricing computes itemized and total costs of an estimate.
//
// The computation order is part of the contract:
//
//  1. item_cost = unit_price * (1 + item_markup_pct/100)
//  2. subtotal = sum(item_cost)
//  3. hidden_margin = subtotal * hidden_markup_pct/100
//  4. partner_commission = subtotal * partner_commission_pct/100
//  5. client_total = subtotal + hidden_margin
//  6. cost_basis = subtotal, our_profit = hidden_margin - partner_commission
//
// Commission is paid out of the hidden margin and never reaches the client
// price. All arithmetic is exact; rounding happens only at presentation.
package pricing

import (
	"fmt"
	"math"
	"sort"

	"quote_calculator/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MaxItemMarkupPct caps the per-item markup.
const MaxItemMarkupPct = 1000

// Line is the priced form of one service item.
type Line struct {
	Index       int             `json:"index"`
	Name        string          `json:"name"`
	Day         int             `json:"day"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	MarkupPct   decimal.Decimal `json:"markup_pct"`
	Cost        decimal.Decimal `json:"cost"`
	ClientPrice decimal.Decimal `json:"client_price"`
	IsDiscount  bool            `json:"is_discount,omitempty"`
}

// Breakdown is the full result of a calculation.
type Breakdown struct {
	Lines                   []Line
	Subtotal                decimal.Decimal
	HiddenMarginAmount      decimal.Decimal
	PartnerCommissionAmount decimal.Decimal
	ClientTotal             decimal.Decimal
	CostBasis               decimal.Decimal
	OurProfit               decimal.Decimal
	PerPax                  decimal.Decimal
	Pax                     int
	Currency                string
}

// DayGroup collects the lines of one tour day.
type DayGroup struct {
	Day   int
	Lines []Line
	Total decimal.Decimal
}

// Validate checks every input Calculate depends on and reports each
// offending field. It never skips an item.
func Validate(items []entities.ServiceItem, settings entities.PricingSettings, pax int) error {
	verr := &entities.ValidationError{}
	if pax < 1 {
		verr.Add("pax", "must be a positive integer")
	}
	for i, it := range items {
		field := fmt.Sprintf("services[%d]", i)
		switch {
		case it.Price.IsMissing():
			verr.Add(field+".price", "is required")
		case it.Price.OutOfRange():
			verr.Add(field+".price", fmt.Sprintf("must be below 1e%d with at most %d decimal places",
				entities.MaxAmountIntDigits, entities.MaxAmountScale))
		case !it.Price.IsNumeric():
			verr.Add(field+".price", "must be numeric")
		case it.Price.Decimal().IsNegative() && !it.IsDiscount:
			verr.Add(field+".price", "must not be negative unless the item is a discount")
		}
		if !finite(it.MarkupPct) || it.MarkupPct < 0 || it.MarkupPct > MaxItemMarkupPct {
			verr.Add(field+".markup_pct", fmt.Sprintf("must be between 0 and %d", MaxItemMarkupPct))
		}
	}
	if !finite(settings.HiddenMarkupPct) || settings.HiddenMarkupPct < 0 || settings.HiddenMarkupPct > 100 {
		verr.Add("pricing.hidden_markup_pct", "must be between 0 and 100")
	}
	if !finite(settings.PartnerCommissionPct) || settings.PartnerCommissionPct < 0 || settings.PartnerCommissionPct > 100 {
		verr.Add("pricing.partner_commission_pct", "must be between 0 and 100")
	}
	return verr.OrNil()
}

// Calculate validates the input and produces the breakdown.
func Calculate(items []entities.ServiceItem, settings entities.PricingSettings, pax int) (Breakdown, error) {
	if err := Validate(items, settings, pax); err != nil {
		return Breakdown{}, err
	}

	hiddenPct := decimal.NewFromFloat(settings.HiddenMarkupPct)
	commissionPct := decimal.NewFromFloat(settings.PartnerCommissionPct)
	clientFactor := decimal.NewFromInt(1).Add(hiddenPct.Div(hundred))

	// step 1
	lines := make([]Line, 0, len(items))
	for i, it := range items {
		markup := decimal.NewFromFloat(it.MarkupPct)
		cost := it.Price.Decimal().Mul(decimal.NewFromInt(1).Add(markup.Div(hundred)))
		lines = append(lines, Line{
			Index:       i,
			Name:        it.Name,
			Day:         it.Day,
			UnitPrice:   it.Price.Decimal(),
			MarkupPct:   markup,
			Cost:        cost,
			ClientPrice: cost.Mul(clientFactor),
			IsDiscount:  it.IsDiscount,
		})
	}

	// step 2
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Cost)
	}

	// steps 3-6
	hidden := subtotal.Mul(hiddenPct).Div(hundred)
	commission := subtotal.Mul(commissionPct).Div(hundred)
	clientTotal := subtotal.Add(hidden)

	return Breakdown{
		Lines:                   lines,
		Subtotal:                subtotal,
		HiddenMarginAmount:      hidden,
		PartnerCommissionAmount: commission,
		ClientTotal:             clientTotal,
		CostBasis:               subtotal,
		OurProfit:               hidden.Sub(commission),
		PerPax:                  clientTotal.Div(decimal.NewFromInt(int64(pax))),
		Pax:                     pax,
		Currency:                settings.Currency,
	}, nil
}

// CalculateEstimate prices a whole estimate.
func CalculateEstimate(e entities.Estimate) (Breakdown, error) {
	return Calculate(e.Services, e.Pricing, e.Pax)
}

// ByDay groups lines by tour day in ascending day order, keeping item order
// within a day.
func (b Breakdown) ByDay() []DayGroup {
	idx := map[int]int{}
	var groups []DayGroup
	for _, l := range b.Lines {
		i, ok := idx[l.Day]
		if !ok {
			i = len(groups)
			idx[l.Day] = i
			groups = append(groups, DayGroup{Day: l.Day, Total: decimal.Zero})
		}
		groups[i].Lines = append(groups[i].Lines, l)
		groups[i].Total = groups[i].Total.Add(l.Cost)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Day < groups[j].Day })
	return groups
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
