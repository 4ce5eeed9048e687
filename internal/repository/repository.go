package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/models"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Repository handles database operations for booking inquiries.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateInquiry inserts a new booking inquiry with status pending and
// returns its generated ID. One call, one record, no retry: duplicate
// submissions are reconciled by a human reviewer, not by this layer.
func (r *Repository) CreateInquiry(ctx context.Context, req models.CharterRequest, totalEstimate decimal.Decimal) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO booking_inquiries (
			id, guest_name, guest_email, guest_phone, yacht_id, yacht_name,
			start_date, end_date, guest_count, message, currency,
			tax_percent, apa_percent, total_estimate, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12::numeric, $13::numeric, $14::numeric, $15, $16)
	`, id, req.GuestName, req.GuestEmail, nullable(req.GuestPhone),
		req.YachtID, req.YachtName, req.StartDate.Time, req.EndDate.Time,
		nullableInt(req.GuestCount), nullable(req.Message), req.Currency,
		req.TaxPercent.String(), req.APAPercent.String(), totalEstimate.String(),
		models.InquiryStatusPending, time.Now().UTC())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create inquiry: %w", err)
	}
	return id, nil
}

// GetInquiry returns the inquiry with the given ID.
func (r *Repository) GetInquiry(ctx context.Context, id uuid.UUID) (*models.BookingInquiry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, guest_name, guest_email, guest_phone, yacht_id, yacht_name,
			start_date, end_date, guest_count, message, currency,
			tax_percent::text, apa_percent::text, total_estimate::text, status, created_at
		FROM booking_inquiries WHERE id = $1
	`, id)

	inquiry, err := scanInquiry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get inquiry: %w", err)
	}
	return inquiry, nil
}

// ListInquiries returns all inquiries, newest first.
func (r *Repository) ListInquiries(ctx context.Context) ([]models.BookingInquiry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, guest_name, guest_email, guest_phone, yacht_id, yacht_name,
			start_date, end_date, guest_count, message, currency,
			tax_percent::text, apa_percent::text, total_estimate::text, status, created_at
		FROM booking_inquiries ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []models.BookingInquiry
	for rows.Next() {
		inquiry, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		inquiries = append(inquiries, *inquiry)
	}
	return inquiries, rows.Err()
}

// UpdateStatus advances an inquiry along its sales lifecycle
// (pending -> contacted -> confirmed/cancelled).
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, next models.InquiryStatus) error {
	inquiry, err := r.GetInquiry(ctx, id)
	if err != nil {
		return err
	}
	if !inquiry.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, inquiry.Status, next)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE booking_inquiries SET status = $1 WHERE id = $2 AND status = $3
	`, next, id, inquiry.Status)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: inquiry changed concurrently", ErrInvalidTransition)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInquiry(row rowScanner) (*models.BookingInquiry, error) {
	var (
		inquiry   models.BookingInquiry
		startDate time.Time
		endDate   time.Time
		taxText   string
		apaText   string
		totalText string
	)
	err := row.Scan(&inquiry.ID, &inquiry.GuestName, &inquiry.GuestEmail, &inquiry.GuestPhone,
		&inquiry.YachtID, &inquiry.YachtName, &startDate, &endDate,
		&inquiry.GuestCount, &inquiry.Message, &inquiry.Currency,
		&taxText, &apaText, &totalText, &inquiry.Status, &inquiry.CreatedAt)
	if err != nil {
		return nil, err
	}

	inquiry.StartDate = models.Date{Time: startDate.UTC()}
	inquiry.EndDate = models.Date{Time: endDate.UTC()}
	if inquiry.TaxPercent, err = decimal.NewFromString(taxText); err != nil {
		return nil, err
	}
	if inquiry.APAPercent, err = decimal.NewFromString(apaText); err != nil {
		return nil, err
	}
	if inquiry.TotalEstimate, err = decimal.NewFromString(totalText); err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableInt(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
