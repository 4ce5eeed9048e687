package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InquiryStatus is the lifecycle state of a booking inquiry.
type InquiryStatus string

const (
	InquiryStatusPending   InquiryStatus = "pending"
	InquiryStatusContacted InquiryStatus = "contacted"
	InquiryStatusConfirmed InquiryStatus = "confirmed"
	InquiryStatusCancelled InquiryStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryStatusPending, InquiryStatusContacted, InquiryStatusConfirmed, InquiryStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the sales lifecycle allows moving to next.
// The pipeline only ever creates pending records; later moves are
// pending -> contacted -> confirmed or cancelled.
func (s InquiryStatus) CanTransitionTo(next InquiryStatus) bool {
	switch s {
	case InquiryStatusPending:
		return next == InquiryStatusContacted || next == InquiryStatusCancelled
	case InquiryStatusContacted:
		return next == InquiryStatusConfirmed || next == InquiryStatusCancelled
	}
	return false
}

// BookingInquiry is the durable record created for each charter request.
type BookingInquiry struct {
	ID            uuid.UUID       `json:"id"`
	GuestName     string          `json:"guestName"`
	GuestEmail    string          `json:"guestEmail"`
	GuestPhone    *string         `json:"guestPhone,omitempty"`
	YachtID       string          `json:"yachtId"`
	YachtName     string          `json:"yachtName"`
	StartDate     Date            `json:"startDate"`
	EndDate       Date            `json:"endDate"`
	GuestCount    *int            `json:"guestCount,omitempty"`
	Message       *string         `json:"message,omitempty"`
	Currency      string          `json:"currency"`
	TaxPercent    decimal.Decimal `json:"taxPercent"`
	APAPercent    decimal.Decimal `json:"apaPercent"`
	TotalEstimate decimal.Decimal `json:"totalEstimate"`
	Status        InquiryStatus   `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// CharterRequest reconstructs the original request from the stored record,
// which is what the deterministic document re-render works from.
func (i BookingInquiry) CharterRequest() CharterRequest {
	req := CharterRequest{
		GuestName:  i.GuestName,
		GuestEmail: i.GuestEmail,
		YachtID:    i.YachtID,
		YachtName:  i.YachtName,
		StartDate:  i.StartDate,
		EndDate:    i.EndDate,
		Currency:   i.Currency,
		TaxPercent: i.TaxPercent,
		APAPercent: i.APAPercent,
	}
	if i.GuestPhone != nil {
		req.GuestPhone = *i.GuestPhone
	}
	if i.GuestCount != nil {
		req.GuestCount = *i.GuestCount
	}
	if i.Message != nil {
		req.Message = *i.Message
	}
	return req
}
