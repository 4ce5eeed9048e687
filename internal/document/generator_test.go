package document

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/models"
)

func testBranding() Branding {
	return Branding{
		CompanyName: "Sandaveisa Charters",
		AddressLine: "Passeig Maritim 12, Palma de Mallorca",
		ContactLine: "charter@example.com",
	}
}

func testRequest() models.CharterRequest {
	return models.CharterRequest{
		GuestName:  "Ana Torres",
		GuestEmail: "ana@example.com",
		GuestPhone: "+34 600 000 000",
		YachtID:    "YCH001",
		YachtName:  "Mar Azul",
		StartDate:  models.NewDate(2026, time.July, 10),
		EndDate:    models.NewDate(2026, time.July, 17),
		GuestCount: 6,
		Currency:   "EUR",
		TaxPercent: decimal.NewFromInt(21),
		APAPercent: decimal.NewFromInt(30),
	}
}

func testBreakdown() models.PriceBreakdown {
	return models.PriceBreakdown{
		Nights:         7,
		PrimarySeason:  models.SeasonHigh,
		SeasonNights:   map[models.SeasonLabel]int{models.SeasonHigh: 7},
		BaseCharterFee: decimal.NewFromInt(6650),
		TaxAmount:      decimal.NewFromFloat(1396.5),
		APAAmount:      decimal.NewFromInt(1995),
		FixedFees:      decimal.NewFromInt(300),
		TotalEstimate:  decimal.NewFromFloat(10341.5),
	}
}

func TestRender_ProducesPDF(t *testing.T) {
	gen := NewGenerator(testBranding())

	doc, err := gen.Render(testRequest(), testBreakdown())
	require.NoError(t, err)

	assert.True(t, doc.Generated)
	assert.Equal(t, len(doc.Content), doc.Length)
	assert.Greater(t, doc.Length, 0)
	assert.Equal(t, "%PDF", string(doc.Content[:4]))
}

func TestRender_Deterministic(t *testing.T) {
	gen := NewGenerator(testBranding())

	first, err := gen.Render(testRequest(), testBreakdown())
	require.NoError(t, err)
	second, err := gen.Render(testRequest(), testBreakdown())
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content, "same inputs must render byte-identical documents")
}

func TestRender_OmitsMissingPhone(t *testing.T) {
	gen := NewGenerator(testBranding())

	withPhone, err := gen.Render(testRequest(), testBreakdown())
	require.NoError(t, err)

	req := testRequest()
	req.GuestPhone = ""
	withoutPhone, err := gen.Render(req, testBreakdown())
	require.NoError(t, err)

	// The phone line is dropped entirely, not rendered blank.
	assert.True(t, withoutPhone.Generated)
	assert.True(t, bytes.Contains(withPhone.Content, []byte("+34 600 000 000")))
	assert.False(t, bytes.Contains(withoutPhone.Content, []byte("+34 600 000 000")))
	assert.Less(t, withoutPhone.Length, withPhone.Length)
}

func TestRender_OmitsZeroFixedFees(t *testing.T) {
	gen := NewGenerator(testBranding())

	breakdown := testBreakdown()
	breakdown.FixedFees = decimal.Zero
	breakdown.TotalEstimate = decimal.NewFromFloat(10041.5)

	withRow, err := gen.Render(testRequest(), testBreakdown())
	require.NoError(t, err)
	withoutRow, err := gen.Render(testRequest(), breakdown)
	require.NoError(t, err)

	assert.True(t, bytes.Contains(withRow.Content, []byte("Fixed fees")))
	assert.False(t, bytes.Contains(withoutRow.Content, []byte("Fixed fees")))
}

func TestRender_NoOptionalFields(t *testing.T) {
	gen := NewGenerator(testBranding())

	req := testRequest()
	req.GuestPhone = ""
	req.GuestCount = 0

	doc, err := gen.Render(req, testBreakdown())
	require.NoError(t, err)
	assert.True(t, doc.Generated)
}

func TestMoney_ZeroDecimalFormatting(t *testing.T) {
	assert.Equal(t, "6650 EUR", money(decimal.NewFromInt(6650), "EUR"))
	assert.Equal(t, "1397 EUR", money(decimal.NewFromFloat(1396.5), "EUR"))
	assert.Equal(t, "0 USD", money(decimal.Zero, "USD"))
}
