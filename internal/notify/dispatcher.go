// Package notify builds and dispatches the per-request notifications.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/mailer"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/models"
)

// Dispatcher sends the guest confirmation and the internal alert. The two
// channels are independent: each produces its own outcome and a failure on
// one never blocks the other. The operations address is injected, never
// hard-coded.
type Dispatcher struct {
	sender     mailer.Sender
	opsAddress string
}

// NewDispatcher creates a Dispatcher delivering through sender.
func NewDispatcher(sender mailer.Sender, opsAddress string) *Dispatcher {
	return &Dispatcher{sender: sender, opsAddress: opsAddress}
}

// GuestConfirmation emails the guest a summary of the estimate, attaching
// the offer document when one was generated.
func (d *Dispatcher) GuestConfirmation(ctx context.Context, req models.CharterRequest, breakdown models.PriceBreakdown, doc *models.OfferDocument) models.NotificationOutcome {
	if !d.sender.Configured() {
		return models.NotificationOutcome{Attempted: false}
	}

	msg := mailer.Email{
		ToName:    req.GuestName,
		ToAddress: req.GuestEmail,
		Subject:   fmt.Sprintf("Your charter offer for %s", req.YachtName),
		Body:      guestBody(req, breakdown),
	}
	if doc != nil && doc.Generated {
		msg.Attachment = &mailer.Attachment{
			Filename:    "charter-offer.pdf",
			ContentType: "application/pdf",
			Content:     doc.Content,
		}
	}

	return d.deliver(ctx, msg)
}

// InternalAlert emails operations the full itemized breakdown for follow-up.
func (d *Dispatcher) InternalAlert(ctx context.Context, req models.CharterRequest, breakdown models.PriceBreakdown) models.NotificationOutcome {
	if !d.sender.Configured() {
		return models.NotificationOutcome{Attempted: false}
	}

	msg := mailer.Email{
		ToName:    "Charter Operations",
		ToAddress: d.opsAddress,
		Subject:   fmt.Sprintf("New charter inquiry: %s, %s to %s", req.YachtName, req.StartDate, req.EndDate),
		Body:      internalBody(req, breakdown),
	}

	return d.deliver(ctx, msg)
}

func (d *Dispatcher) deliver(ctx context.Context, msg mailer.Email) models.NotificationOutcome {
	if err := d.sender.Send(ctx, msg); err != nil {
		return models.NotificationOutcome{Attempted: true, Delivered: false, Error: err.Error()}
	}
	return models.NotificationOutcome{Attempted: true, Delivered: true}
}

func guestBody(req models.CharterRequest, breakdown models.PriceBreakdown) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", req.GuestName)
	fmt.Fprintf(&b, "Thank you for your charter inquiry for %s.\n", req.YachtName)
	fmt.Fprintf(&b, "Period: %s to %s (%d nights)\n", req.StartDate, req.EndDate, breakdown.Nights)
	fmt.Fprintf(&b, "Estimated total: %s\n\n", money(breakdown.TotalEstimate, req.Currency))
	b.WriteString("The attached offer lists the full price breakdown. ")
	b.WriteString("Our team will contact you shortly to confirm availability.\n")
	return b.String()
}

func internalBody(req models.CharterRequest, breakdown models.PriceBreakdown) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New charter inquiry\n\n")
	fmt.Fprintf(&b, "Guest: %s <%s>\n", req.GuestName, req.GuestEmail)
	if req.GuestPhone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", req.GuestPhone)
	}
	fmt.Fprintf(&b, "Yacht: %s (%s)\n", req.YachtName, req.YachtID)
	fmt.Fprintf(&b, "Period: %s to %s (%d nights, %s season)\n", req.StartDate, req.EndDate, breakdown.Nights, breakdown.PrimarySeason)
	if req.GuestCount > 0 {
		fmt.Fprintf(&b, "Guests: %d\n", req.GuestCount)
	}
	fmt.Fprintf(&b, "\nBase charter fee: %s\n", money(breakdown.BaseCharterFee, req.Currency))
	fmt.Fprintf(&b, "Tax (%s%%): %s\n", req.TaxPercent, money(breakdown.TaxAmount, req.Currency))
	fmt.Fprintf(&b, "APA (%s%%): %s\n", req.APAPercent, money(breakdown.APAAmount, req.Currency))
	if !breakdown.FixedFees.IsZero() {
		fmt.Fprintf(&b, "Fixed fees: %s\n", money(breakdown.FixedFees, req.Currency))
	}
	fmt.Fprintf(&b, "Total estimate: %s\n", money(breakdown.TotalEstimate, req.Currency))
	if req.Message != "" {
		fmt.Fprintf(&b, "\nGuest message:\n%s\n", req.Message)
	}
	return b.String()
}

func money(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(0) + " " + currency
}
