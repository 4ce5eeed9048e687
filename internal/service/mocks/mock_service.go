package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/models"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/service"
)

// MockBookingService is a mock implementation of BookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, req *service.BookingRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func (m *MockBookingService) GetInquiry(ctx context.Context, id string) (*models.BookingInquiry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingInquiry), args.Error(1)
}

func (m *MockBookingService) ListInquiries(ctx context.Context) ([]models.BookingInquiry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BookingInquiry), args.Error(1)
}

func (m *MockBookingService) UpdateInquiryStatus(ctx context.Context, id string, next models.InquiryStatus) error {
	args := m.Called(ctx, id, next)
	return args.Error(0)
}

func (m *MockBookingService) RenderOffer(ctx context.Context, id string) (models.OfferDocument, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.OfferDocument), args.Error(1)
}
