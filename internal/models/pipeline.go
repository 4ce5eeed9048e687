package models

import "github.com/google/uuid"

// Temporal workflow and queue names shared by the API server and the worker.
const (
	TaskQueue         = "charter-offer-queue"
	OfferPipelineName = "OfferPipelineWorkflow"
	WorkflowIDPrefix  = "offer-"
)

// OfferPipelineInput starts one run of the offer pipeline.
type OfferPipelineInput struct {
	Request   CharterRequest `json:"request"`
	Breakdown PriceBreakdown `json:"breakdown"`
}

// OfferPipelineResult is the assembled outcome of all pipeline stages.
// Validation failure aborts the workflow with an error instead; every
// other stage folds its failure in here.
type OfferPipelineResult struct {
	InquiryID        *uuid.UUID          `json:"inquiryId,omitempty"`
	DocumentAttached bool                `json:"documentAttached"`
	DocumentError    string              `json:"documentError,omitempty"`
	PersistError     string              `json:"persistError,omitempty"`
	Guest            NotificationOutcome `json:"guest"`
	Internal         NotificationOutcome `json:"internal"`
}

// Partial reports whether a best-effort stage failed. A channel skipped for
// lack of credentials is not a failure.
func (r OfferPipelineResult) Partial() bool {
	if r.PersistError != "" {
		return true
	}
	if r.Guest.Attempted && !r.Guest.Delivered {
		return true
	}
	if r.Internal.Attempted && !r.Internal.Delivered {
		return true
	}
	return false
}

// Warnings lists human-readable descriptions of best-effort failures.
func (r OfferPipelineResult) Warnings() []string {
	var warnings []string
	if r.DocumentError != "" {
		warnings = append(warnings, "offer document could not be generated")
	}
	if r.PersistError != "" {
		warnings = append(warnings, "inquiry could not be recorded")
	}
	if r.Guest.Attempted && !r.Guest.Delivered {
		warnings = append(warnings, "guest confirmation email failed")
	}
	if r.Internal.Attempted && !r.Internal.Delivered {
		warnings = append(warnings, "internal alert email failed")
	}
	return warnings
}

// NotifiedSummary is the per-channel delivery summary exposed to callers.
type NotifiedSummary struct {
	Guest    bool `json:"guest"`
	Internal bool `json:"internal"`
}

// BookingResponse is the API response for a charter booking request.
type BookingResponse struct {
	Success          bool            `json:"success"`
	InquiryID        *uuid.UUID      `json:"inquiryId,omitempty"`
	DocumentAttached bool            `json:"documentAttached"`
	Notified         NotifiedSummary `json:"notified"`
	Partial          bool            `json:"partial,omitempty"`
	Warnings         []string        `json:"warnings,omitempty"`
}
