// Package activities implements the worker-side steps of the offer pipeline.
package activities

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/log"

	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/models"
)

// Renderer renders offer documents.
type Renderer interface {
	Render(req models.CharterRequest, breakdown models.PriceBreakdown) (models.OfferDocument, error)
}

// InquiryStore persists booking inquiries.
type InquiryStore interface {
	CreateInquiry(ctx context.Context, req models.CharterRequest, totalEstimate decimal.Decimal) (uuid.UUID, error)
}

// Notifier dispatches the per-channel notifications.
type Notifier interface {
	GuestConfirmation(ctx context.Context, req models.CharterRequest, breakdown models.PriceBreakdown, doc *models.OfferDocument) models.NotificationOutcome
	InternalAlert(ctx context.Context, req models.CharterRequest, breakdown models.PriceBreakdown) models.NotificationOutcome
}

// Activities holds the pipeline activity implementations.
type Activities struct {
	renderer Renderer
	store    InquiryStore
	notifier Notifier
}

// NewActivities creates the activity set.
func NewActivities(renderer Renderer, store InquiryStore, notifier Notifier) *Activities {
	return &Activities{renderer: renderer, store: store, notifier: notifier}
}

// RenderOfferInput is the input for RenderOfferDocument.
type RenderOfferInput struct {
	Request   models.CharterRequest `json:"request"`
	Breakdown models.PriceBreakdown `json:"breakdown"`
}

// RenderOfferOutput is the output of RenderOfferDocument.
type RenderOfferOutput struct {
	Document models.OfferDocument `json:"document"`
}

// RenderOfferDocument renders the offer PDF for a computed quote.
func (a *Activities) RenderOfferDocument(ctx context.Context, input RenderOfferInput) (*RenderOfferOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Rendering offer document", "yacht", input.Request.YachtID, "nights", input.Breakdown.Nights)

	doc, err := a.renderer.Render(input.Request, input.Breakdown)
	if err != nil {
		logger.Error("Offer document rendering failed", "error", err)
		return nil, err
	}

	logger.Info("Offer document rendered", "bytes", doc.Length)
	return &RenderOfferOutput{Document: doc}, nil
}

// PersistInquiryInput is the input for PersistInquiry.
type PersistInquiryInput struct {
	Request   models.CharterRequest `json:"request"`
	Breakdown models.PriceBreakdown `json:"breakdown"`
}

// PersistInquiryOutput is the output of PersistInquiry.
type PersistInquiryOutput struct {
	InquiryID uuid.UUID `json:"inquiryId"`
}

// PersistInquiry writes the durable booking inquiry record. A single insert,
// no retry: the pipeline treats persistence as best-effort.
func (a *Activities) PersistInquiry(ctx context.Context, input PersistInquiryInput) (*PersistInquiryOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Persisting inquiry", "yacht", input.Request.YachtID, "guest", input.Request.GuestEmail)

	id, err := a.store.CreateInquiry(ctx, input.Request, input.Breakdown.TotalEstimate)
	if err != nil {
		logger.Error("Inquiry persistence failed", "error", err)
		return nil, err
	}

	logger.Info("Inquiry persisted", "inquiryId", id)
	return &PersistInquiryOutput{InquiryID: id}, nil
}

// NotifyInput is the input for both notification activities. Document is nil
// when rendering failed; the guest channel then sends without an attachment.
type NotifyInput struct {
	Request   models.CharterRequest `json:"request"`
	Breakdown models.PriceBreakdown `json:"breakdown"`
	Document  *models.OfferDocument `json:"document,omitempty"`
}

// NotifyGuest sends the guest-facing confirmation email.
func (a *Activities) NotifyGuest(ctx context.Context, input NotifyInput) (models.NotificationOutcome, error) {
	outcome := a.notifier.GuestConfirmation(ctx, input.Request, input.Breakdown, input.Document)
	logNotification(activity.GetLogger(ctx), "guest", outcome)
	return outcome, nil
}

// NotifyInternal sends the internal operations alert.
func (a *Activities) NotifyInternal(ctx context.Context, input NotifyInput) (models.NotificationOutcome, error) {
	outcome := a.notifier.InternalAlert(ctx, input.Request, input.Breakdown)
	logNotification(activity.GetLogger(ctx), "internal", outcome)
	return outcome, nil
}

func logNotification(logger log.Logger, channel string, outcome models.NotificationOutcome) {
	switch {
	case !outcome.Attempted:
		logger.Info("Notification skipped, provider not configured", "channel", channel)
	case outcome.Delivered:
		logger.Info("Notification delivered", "channel", channel)
	default:
		logger.Warn("Notification failed", "channel", channel, "error", outcome.Error)
	}
}
