// Package workflows contains the charter offer pipeline orchestration.
package workflows

import (
	"errors"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/activities"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/models"
)

const (
	// RenderTimeout bounds offer document generation.
	RenderTimeout = 10 * time.Second
	// PersistTimeout bounds the inquiry insert.
	PersistTimeout = 5 * time.Second
	// NotifyTimeout bounds each delivery channel so a slow email provider
	// cannot stall the overall response.
	NotifyTimeout = 15 * time.Second
)

// noRetry makes every stage single-shot. Retries of failed persistence or
// notification belong to an operational job outside this pipeline.
var noRetry = &temporal.RetryPolicy{MaximumAttempts: 1}

// OfferPipelineWorkflow runs the booking-offer pipeline: validate, render the
// offer document, then persist the inquiry and deliver both notifications
// concurrently, and assemble a partial-success summary. Only validation is
// fatal; every later stage folds its failure into the result.
func OfferPipelineWorkflow(ctx workflow.Context, input models.OfferPipelineInput) (*models.OfferPipelineResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Offer pipeline started", "yacht", input.Request.YachtID, "guest", input.Request.GuestEmail)

	// Stage 1: validate. Fails fast, before any side effect.
	if err := validateInput(input); err != nil {
		logger.Error("Offer pipeline rejected", "error", err)
		return nil, err
	}

	result := &models.OfferPipelineResult{}

	// Stage 2: render the offer document. Best-effort: notification proceeds
	// without an attachment when this fails.
	renderCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: RenderTimeout,
		RetryPolicy:         noRetry,
	})
	var rendered activities.RenderOfferOutput
	var document *models.OfferDocument
	renderInput := activities.RenderOfferInput{Request: input.Request, Breakdown: input.Breakdown}
	if err := workflow.ExecuteActivity(renderCtx, "RenderOfferDocument", renderInput).Get(ctx, &rendered); err != nil {
		logger.Warn("Document generation failed, continuing without attachment", "error", err)
		result.DocumentError = err.Error()
	} else {
		document = &rendered.Document
		result.DocumentAttached = true
	}

	// Stages 3 and 4 have no data dependency on each other: start all three
	// activities, then join.
	persistCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: PersistTimeout,
		RetryPolicy:         noRetry,
	})
	notifyCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: NotifyTimeout,
		RetryPolicy:         noRetry,
	})

	persistInput := activities.PersistInquiryInput{Request: input.Request, Breakdown: input.Breakdown}
	persistFuture := workflow.ExecuteActivity(persistCtx, "PersistInquiry", persistInput)
	notifyInput := activities.NotifyInput{Request: input.Request, Breakdown: input.Breakdown, Document: document}
	guestFuture := workflow.ExecuteActivity(notifyCtx, "NotifyGuest", notifyInput)
	internalFuture := workflow.ExecuteActivity(notifyCtx, "NotifyInternal", notifyInput)

	var persisted activities.PersistInquiryOutput
	if err := persistFuture.Get(ctx, &persisted); err != nil {
		logger.Warn("Inquiry persistence failed, lead may not be tracked", "error", err)
		result.PersistError = err.Error()
	} else {
		id := persisted.InquiryID
		result.InquiryID = &id
	}

	if err := guestFuture.Get(ctx, &result.Guest); err != nil {
		result.Guest = models.NotificationOutcome{Attempted: true, Error: err.Error()}
	}
	if err := internalFuture.Get(ctx, &result.Internal); err != nil {
		result.Internal = models.NotificationOutcome{Attempted: true, Error: err.Error()}
	}

	// Stage 5: the assembled result reports exactly which best-effort stages
	// succeeded so callers never see a false full success or full failure.
	logger.Info("Offer pipeline finished",
		"documentAttached", result.DocumentAttached,
		"persisted", result.PersistError == "",
		"guestDelivered", result.Guest.Delivered,
		"internalDelivered", result.Internal.Delivered)
	return result, nil
}

// validateInput checks the request shape and the breakdown invariant.
func validateInput(input models.OfferPipelineInput) error {
	req := input.Request
	switch {
	case req.GuestName == "", req.GuestEmail == "", req.YachtID == "", req.Currency == "":
		return temporal.NewNonRetryableApplicationError(
			"missing required request fields", string(models.ErrKindValidation),
			errors.New("guest name, email, yacht and currency are required"))
	case req.StartDate.IsZero() || req.EndDate.IsZero() || !req.StartDate.Before(req.EndDate.Time):
		return temporal.NewNonRetryableApplicationError(
			"invalid charter date range", string(models.ErrKindValidation),
			errors.New("startDate must be before endDate"))
	}
	if !input.Breakdown.Consistent() {
		return temporal.NewNonRetryableApplicationError(
			"price breakdown does not add up", string(models.ErrKindPriceConsistency), nil)
	}
	return nil
}
