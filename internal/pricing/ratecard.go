package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/models"
)

// FixedFee is a flat add-on charged once per charter, independent of nights.
type FixedFee struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// RateCard holds a yacht's daily rates per season plus its flat add-ons.
// Immutable for the duration of a calculation.
type RateCard struct {
	Daily     map[models.SeasonLabel]decimal.Decimal `json:"daily"`
	FixedFees []FixedFee                             `json:"fixedFees"`
}

// FixedTotal sums the flat add-on fees.
func (rc RateCard) FixedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, fee := range rc.FixedFees {
		total = total.Add(fee.Amount)
	}
	return total
}

// SeasonFunc resolves the season label of a single night.
type SeasonFunc func(time.Time) models.SeasonLabel

// SeasonCalendar assigns seasons by calendar month. The Mediterranean charter
// year is month-granular in practice; anything not listed is low season.
type SeasonCalendar struct {
	HighMonths   []time.Month `json:"highMonths"`
	MediumMonths []time.Month `json:"mediumMonths"`
}

// SeasonOn returns the season label for the given date.
func (c SeasonCalendar) SeasonOn(t time.Time) models.SeasonLabel {
	month := t.Month()
	for _, m := range c.HighMonths {
		if m == month {
			return models.SeasonHigh
		}
	}
	for _, m := range c.MediumMonths {
		if m == month {
			return models.SeasonMedium
		}
	}
	return models.SeasonLow
}
