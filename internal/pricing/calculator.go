package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/models"
)

var (
	// ErrInvalidRange means the date range spans fewer than one night.
	ErrInvalidRange = errors.New("charter must span at least one night")
	// ErrMissingRate means a night falls in a season with no configured rate.
	ErrMissingRate = errors.New("no daily rate configured")
)

// Compute turns a charter request and a rate card into an itemized quote.
//
// Every night in [startDate, endDate) is priced at its season's daily rate;
// the checkout day is not charged. Tax and APA are percentages of the base
// charter fee only. Fixed fees are flat per charter. All arithmetic is
// decimal; rounding happens only at formatting time.
func Compute(req models.CharterRequest, rates RateCard, seasonOf SeasonFunc) (models.PriceBreakdown, error) {
	nights := req.StartDate.DaysUntil(req.EndDate)
	if nights < 1 {
		return models.PriceBreakdown{}, fmt.Errorf("%w: %s to %s", ErrInvalidRange, req.StartDate, req.EndDate)
	}

	seasonNights := make(map[models.SeasonLabel]int)
	base := decimal.Zero
	for night := req.StartDate; night.Before(req.EndDate.Time); night = night.AddDays(1) {
		season := seasonOf(night.Time)
		rate, ok := rates.Daily[season]
		if !ok {
			return models.PriceBreakdown{}, fmt.Errorf("%w for %s season (night of %s)", ErrMissingRate, season, night)
		}
		seasonNights[season]++
		base = base.Add(rate)
	}

	// Shift(-2) divides by 100 exactly, no precision loss.
	tax := base.Mul(req.TaxPercent).Shift(-2)
	apa := base.Mul(req.APAPercent).Shift(-2)
	fixed := rates.FixedTotal()

	return models.PriceBreakdown{
		Nights:         nights,
		PrimarySeason:  primarySeason(seasonNights, rates),
		SeasonNights:   seasonNights,
		BaseCharterFee: base,
		TaxAmount:      tax,
		APAAmount:      apa,
		FixedFees:      fixed,
		TotalEstimate:  base.Add(tax).Add(apa).Add(fixed),
	}, nil
}

// primarySeason picks the season with the most nights. Ties resolve to the
// higher-priced season so a tie never under-quotes.
func primarySeason(seasonNights map[models.SeasonLabel]int, rates RateCard) models.SeasonLabel {
	var primary models.SeasonLabel
	for _, season := range models.Seasons {
		count := seasonNights[season]
		if count == 0 {
			continue
		}
		if primary == "" || count > seasonNights[primary] {
			primary = season
			continue
		}
		if count == seasonNights[primary] && rates.Daily[season].GreaterThan(rates.Daily[primary]) {
			primary = season
		}
	}
	return primary
}
