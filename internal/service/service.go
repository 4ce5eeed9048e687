package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/models"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/pricing"
)

// BookingRequest is the inbound booking payload. Callers may submit their own
// pre-computed breakdown; the server recomputes from its rate card and
// rejects any mismatch rather than trusting the client figure.
type BookingRequest struct {
	models.CharterRequest
	Breakdown *models.PriceBreakdown `json:"breakdown,omitempty"`
}

// InquiryRepository is the read/lifecycle surface of the persistence layer
// used by the API server.
type InquiryRepository interface {
	GetInquiry(ctx context.Context, id uuid.UUID) (*models.BookingInquiry, error)
	ListInquiries(ctx context.Context) ([]models.BookingInquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, next models.InquiryStatus) error
}

// Renderer renders offer documents for ad-hoc re-download.
type Renderer interface {
	Render(req models.CharterRequest, breakdown models.PriceBreakdown) (models.OfferDocument, error)
}

// BookingService defines the charter booking service interface.
type BookingService interface {
	CreateBooking(ctx context.Context, req *BookingRequest) (*models.BookingResponse, error)
	GetInquiry(ctx context.Context, id string) (*models.BookingInquiry, error)
	ListInquiries(ctx context.Context) ([]models.BookingInquiry, error)
	UpdateInquiryStatus(ctx context.Context, id string, next models.InquiryStatus) error
	RenderOffer(ctx context.Context, id string) (models.OfferDocument, error)
}

// bookingServiceImpl implements BookingService.
type bookingServiceImpl struct {
	temporalClient client.Client
	catalog        *pricing.Catalog
	repo           InquiryRepository
	renderer       Renderer
	validate       *validator.Validate
}

// NewBookingService creates a new BookingService.
func NewBookingService(temporalClient client.Client, catalog *pricing.Catalog, repo InquiryRepository, renderer Renderer) BookingService {
	return &bookingServiceImpl{
		temporalClient: temporalClient,
		catalog:        catalog,
		repo:           repo,
		renderer:       renderer,
		validate:       validator.New(),
	}
}

// CreateBooking runs the fatal validation stage, recomputes the quote from
// the server-side rate card and hands the pipeline to the workflow,
// waiting synchronously for its assembled result.
func (s *bookingServiceImpl) CreateBooking(ctx context.Context, req *BookingRequest) (*models.BookingResponse, error) {
	breakdown, err := s.validateAndPrice(req)
	if err != nil {
		return nil, err
	}

	input := models.OfferPipelineInput{Request: req.CharterRequest, Breakdown: *breakdown}
	workflowOptions := client.StartWorkflowOptions{
		ID:        models.WorkflowIDPrefix + uuid.New().String(),
		TaskQueue: models.TaskQueue,
	}

	run, err := s.temporalClient.ExecuteWorkflow(ctx, workflowOptions, models.OfferPipelineName, input)
	if err != nil {
		return nil, fmt.Errorf("failed to start offer pipeline: %w", err)
	}

	var result models.OfferPipelineResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, classifyWorkflowError(err)
	}

	return &models.BookingResponse{
		Success:          true,
		InquiryID:        result.InquiryID,
		DocumentAttached: result.DocumentAttached,
		Notified: models.NotifiedSummary{
			Guest:    result.Guest.Delivered,
			Internal: result.Internal.Delivered,
		},
		Partial:  result.Partial(),
		Warnings: result.Warnings(),
	}, nil
}

// validateAndPrice is pipeline stage 1. It rejects malformed requests and
// computes the authoritative breakdown before any side effect occurs.
func (s *bookingServiceImpl) validateAndPrice(req *BookingRequest) (*models.PriceBreakdown, error) {
	if err := s.validate.Struct(req.CharterRequest); err != nil {
		return nil, models.NewValidationError(err)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, models.NewValidationError(errors.New("startDate and endDate are required"))
	}
	if !req.StartDate.Before(req.EndDate.Time) {
		return nil, models.NewValidationError(errors.New("startDate must be before endDate"))
	}
	if !percentInRange(req.TaxPercent) || !percentInRange(req.APAPercent) {
		return nil, models.NewValidationError(errors.New("taxPercent and apaPercent must be between 0 and 100"))
	}

	yacht, err := s.catalog.Get(req.YachtID)
	if err != nil {
		return nil, models.NewValidationError(err)
	}
	// The catalog, not the caller, names the yacht on the offer.
	req.YachtName = yacht.Name

	breakdown, err := pricing.Compute(req.CharterRequest, yacht.Rates, yacht.Seasons.SeasonOn)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidRange) {
			return nil, models.NewValidationError(err)
		}
		return nil, fmt.Errorf("failed to price charter: %w", err)
	}

	if req.Breakdown != nil && !req.Breakdown.Equal(breakdown) {
		return nil, models.NewPriceConsistencyError(
			fmt.Errorf("client-submitted total %s does not match computed total %s",
				req.Breakdown.TotalEstimate, breakdown.TotalEstimate))
	}

	return &breakdown, nil
}

// GetInquiry returns a stored inquiry.
func (s *bookingServiceImpl) GetInquiry(ctx context.Context, id string) (*models.BookingInquiry, error) {
	inquiryID, err := uuid.Parse(id)
	if err != nil {
		return nil, models.NewValidationError(fmt.Errorf("invalid inquiry id: %w", err))
	}
	return s.repo.GetInquiry(ctx, inquiryID)
}

// ListInquiries returns all stored inquiries, newest first.
func (s *bookingServiceImpl) ListInquiries(ctx context.Context) ([]models.BookingInquiry, error) {
	return s.repo.ListInquiries(ctx)
}

// UpdateInquiryStatus advances an inquiry along its sales lifecycle.
func (s *bookingServiceImpl) UpdateInquiryStatus(ctx context.Context, id string, next models.InquiryStatus) error {
	inquiryID, err := uuid.Parse(id)
	if err != nil {
		return models.NewValidationError(fmt.Errorf("invalid inquiry id: %w", err))
	}
	if !next.Valid() {
		return models.NewValidationError(fmt.Errorf("unknown status: %s", next))
	}
	return s.repo.UpdateStatus(ctx, inquiryID, next)
}

// RenderOffer re-renders the offer document for a stored inquiry. The
// calculator and renderer are deterministic, so the bytes equal the
// originally generated document.
func (s *bookingServiceImpl) RenderOffer(ctx context.Context, id string) (models.OfferDocument, error) {
	inquiry, err := s.GetInquiry(ctx, id)
	if err != nil {
		return models.OfferDocument{}, err
	}

	yacht, err := s.catalog.Get(inquiry.YachtID)
	if err != nil {
		return models.OfferDocument{}, fmt.Errorf("failed to resolve yacht for re-render: %w", err)
	}

	req := inquiry.CharterRequest()
	breakdown, err := pricing.Compute(req, yacht.Rates, yacht.Seasons.SeasonOn)
	if err != nil {
		return models.OfferDocument{}, fmt.Errorf("failed to re-price charter: %w", err)
	}

	return s.renderer.Render(req, breakdown)
}

func percentInRange(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(decimal.NewFromInt(100))
}

// classifyWorkflowError maps workflow application errors back onto the
// pipeline error taxonomy so handlers can tell fatal rejections from
// infrastructure failures.
func classifyWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		switch models.ErrorKind(appErr.Type()) {
		case models.ErrKindValidation:
			return models.NewValidationError(appErr)
		case models.ErrKindPriceConsistency:
			return models.NewPriceConsistencyError(appErr)
		}
	}
	return fmt.Errorf("offer pipeline failed: %w", err)
}
