// Package document renders charter offer documents as fixed-layout PDFs.
package document

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/models"
)

const disclaimer = "This offer is a non-binding price estimate. Availability, final pricing and " +
	"charter terms are confirmed by our team in a follow-up contract. APA is a refundable " +
	"advance for provisioning and operating costs, settled against actual expenses."

// Branding is the provider identity printed on every offer.
type Branding struct {
	CompanyName string
	AddressLine string
	ContactLine string
}

// Generator renders offer documents. Rendering is pure: the same request and
// breakdown always produce byte-identical output.
type Generator struct {
	branding Branding
}

// NewGenerator creates a Generator with the given provider branding.
func NewGenerator(branding Branding) *Generator {
	return &Generator{branding: branding}
}

// Render produces the offer PDF for a computed quote. Missing optional
// fields omit their line; they never cause an error.
func (g *Generator) Render(req models.CharterRequest, breakdown models.PriceBreakdown) (models.OfferDocument, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Pinned creation date and uncompressed streams keep equal inputs
	// byte-identical and the layout inspectable.
	pdf.SetCreationDate(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC))
	pdf.SetCompression(false)
	pdf.SetTitle("Charter Offer", false)
	pdf.AddPage()

	g.renderHeader(pdf)
	g.renderTitle(pdf)
	g.renderClientBlock(pdf, req)
	g.renderCharterBlock(pdf, req, breakdown)
	g.renderPriceTable(pdf, req, breakdown)
	g.renderFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return models.OfferDocument{}, fmt.Errorf("failed to render offer document: %w", err)
	}

	return models.OfferDocument{
		Content:   buf.Bytes(),
		Length:    buf.Len(),
		Generated: true,
	}, nil
}

func (g *Generator) renderHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, g.branding.CompanyName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if g.branding.AddressLine != "" {
		pdf.CellFormat(0, 4, g.branding.AddressLine, "", 1, "L", false, 0, "")
	}
	if g.branding.ContactLine != "" {
		pdf.CellFormat(0, 4, g.branding.ContactLine, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
	pdf.SetDrawColor(120, 120, 120)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(6)
}

func (g *Generator) renderTitle(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Charter Offer", "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func (g *Generator) renderClientBlock(pdf *gofpdf.Fpdf, req models.CharterRequest) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Client", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, req.GuestName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, req.GuestEmail, "", 1, "L", false, 0, "")
	if req.GuestPhone != "" {
		pdf.CellFormat(0, 5, req.GuestPhone, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (g *Generator) renderCharterBlock(pdf *gofpdf.Fpdf, req models.CharterRequest, breakdown models.PriceBreakdown) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Charter Details", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Yacht: "+req.YachtName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Period: %s to %s (%d nights)", req.StartDate, req.EndDate, breakdown.Nights), "", 1, "L", false, 0, "")
	if req.GuestCount > 0 {
		pdf.CellFormat(0, 5, fmt.Sprintf("Guests: %d", req.GuestCount), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, "Season: "+strings.ToUpper(string(breakdown.PrimarySeason)), "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

func (g *Generator) renderPriceTable(pdf *gofpdf.Fpdf, req models.CharterRequest, breakdown models.PriceBreakdown) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Price Breakdown", "", 1, "L", false, 0, "")

	priceRow(pdf, fmt.Sprintf("Base charter fee (%d nights)", breakdown.Nights), money(breakdown.BaseCharterFee, req.Currency))
	priceRow(pdf, fmt.Sprintf("Tax (%s%%)", req.TaxPercent.String()), money(breakdown.TaxAmount, req.Currency))
	priceRow(pdf, fmt.Sprintf("APA (%s%%)", req.APAPercent.String()), money(breakdown.APAAmount, req.Currency))
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 4, "Advance Provisioning Allowance: refundable deposit for fuel, food and port fees", "", 1, "L", false, 0, "")
	if !breakdown.FixedFees.IsZero() {
		priceRow(pdf, "Fixed fees", money(breakdown.FixedFees, req.Currency))
	}

	pdf.Ln(2)
	pdf.SetDrawColor(60, 60, 60)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(130, 8, "Total estimate", "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, money(breakdown.TotalEstimate, req.Currency), "", 1, "R", false, 0, "")
}

func priceRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(130, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 6, value, "", 1, "R", false, 0, "")
}

func (g *Generator) renderFooter(pdf *gofpdf.Fpdf) {
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(90, 90, 90)
	pdf.MultiCell(0, 4, disclaimer, "", "L", false)
}

// money formats an amount with its currency code at zero decimal places.
// Rounding happens only here, never in the accumulator.
func money(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(0) + " " + currency
}
