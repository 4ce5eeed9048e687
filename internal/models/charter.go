package models

import (
	"github.com/shopspring/decimal"
)

// SeasonLabel is the pricing tier assigned to a calendar date.
type SeasonLabel string

const (
	SeasonLow    SeasonLabel = "low"
	SeasonMedium SeasonLabel = "medium"
	SeasonHigh   SeasonLabel = "high"
)

// Seasons lists all labels in ascending price order for a typical rate card.
var Seasons = []SeasonLabel{SeasonLow, SeasonMedium, SeasonHigh}

// CharterRequest is a guest's quote request for a yacht and date range.
type CharterRequest struct {
	GuestName  string          `json:"guestName" validate:"required"`
	GuestEmail string          `json:"guestEmail" validate:"required,email"`
	GuestPhone string          `json:"guestPhone,omitempty"`
	YachtID    string          `json:"yachtId" validate:"required"`
	YachtName  string          `json:"yachtName,omitempty"`
	StartDate  Date            `json:"startDate"`
	EndDate    Date            `json:"endDate"`
	GuestCount int             `json:"guestCount,omitempty"`
	Message    string          `json:"message,omitempty"`
	Currency   string          `json:"currency" validate:"required,len=3"`
	TaxPercent decimal.Decimal `json:"taxPercent"`
	APAPercent decimal.Decimal `json:"apaPercent"`
}

// PriceBreakdown is the itemized quote computed for a charter request.
// It is created once by the calculator and never mutated afterwards.
type PriceBreakdown struct {
	Nights         int                 `json:"nights"`
	PrimarySeason  SeasonLabel         `json:"primarySeason"`
	SeasonNights   map[SeasonLabel]int `json:"seasonNights"`
	BaseCharterFee decimal.Decimal     `json:"baseCharterFee"`
	TaxAmount      decimal.Decimal     `json:"taxAmount"`
	APAAmount      decimal.Decimal     `json:"apaAmount"`
	FixedFees      decimal.Decimal     `json:"fixedFees"`
	TotalEstimate  decimal.Decimal     `json:"totalEstimate"`
}

// Consistent reports whether the total equals the sum of its parts.
func (b PriceBreakdown) Consistent() bool {
	sum := b.BaseCharterFee.Add(b.TaxAmount).Add(b.APAAmount).Add(b.FixedFees)
	return b.Nights >= 1 && b.TotalEstimate.Equal(sum)
}

// Equal compares two breakdowns by value, not by decimal representation.
func (b PriceBreakdown) Equal(other PriceBreakdown) bool {
	return b.Nights == other.Nights &&
		b.PrimarySeason == other.PrimarySeason &&
		b.BaseCharterFee.Equal(other.BaseCharterFee) &&
		b.TaxAmount.Equal(other.TaxAmount) &&
		b.APAAmount.Equal(other.APAAmount) &&
		b.FixedFees.Equal(other.FixedFees) &&
		b.TotalEstimate.Equal(other.TotalEstimate)
}

// OfferDocument is a rendered offer as an opaque byte buffer.
type OfferDocument struct {
	Content   []byte `json:"content,omitempty"`
	Length    int    `json:"length"`
	Generated bool   `json:"generated"`
}

// NotificationOutcome is the result of one delivery channel.
type NotificationOutcome struct {
	Attempted bool   `json:"attempted"`
	Delivered bool   `json:"delivered"`
	Error     string `json:"error,omitempty"`
}
