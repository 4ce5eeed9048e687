package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/models"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/repository"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/service"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	bookingService service.BookingService
}

// NewHandler creates a new Handler instance
func NewHandler(bookingService service.BookingService) *Handler {
	return &Handler{
		bookingService: bookingService,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondPipelineError maps a classified failure onto a status code. Fatal
// rejections are the caller's fault; everything else is ours.
func respondPipelineError(w http.ResponseWriter, err error) {
	var pipeErr *models.PipelineError
	if errors.As(err, &pipeErr) && pipeErr.Kind.Fatal() {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": pipeErr.Err.Error(),
			"kind":  string(pipeErr.Kind),
		})
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}

// CreateBooking handles POST /api/bookings. A fully successful pipeline run
// returns 200; a run where a best-effort stage failed returns 207 with the
// same body so callers can see exactly what succeeded.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req service.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.bookingService.CreateBooking(r.Context(), &req)
	if err != nil {
		respondPipelineError(w, err)
		return
	}

	status := http.StatusOK
	if resp.Partial {
		status = http.StatusMultiStatus
	}
	respondJSON(w, status, resp)
}

// GetInquiry handles GET /api/bookings/{id}
func (h *Handler) GetInquiry(w http.ResponseWriter, r *http.Request) {
	inquiryID := mux.Vars(r)["id"]

	inquiry, err := h.bookingService.GetInquiry(r.Context(), inquiryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Inquiry not found")
			return
		}
		respondPipelineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, inquiry)
}

// ListInquiries handles GET /api/bookings
func (h *Handler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.bookingService.ListInquiries(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, inquiries)
}

// GetOfferDocument handles GET /api/bookings/{id}/document. The document is
// re-rendered from the stored inquiry; rendering is deterministic, so the
// bytes match the originally emailed offer.
func (h *Handler) GetOfferDocument(w http.ResponseWriter, r *http.Request) {
	inquiryID := mux.Vars(r)["id"]

	doc, err := h.bookingService.RenderOffer(r.Context(), inquiryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Inquiry not found")
			return
		}
		respondPipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="charter-offer.pdf"`)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", doc.Length))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Content)
}

// UpdateStatusRequest is the body of a status change request.
type UpdateStatusRequest struct {
	Status models.InquiryStatus `json:"status"`
}

// UpdateStatus handles PATCH /api/bookings/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	inquiryID := mux.Vars(r)["id"]

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.bookingService.UpdateInquiryStatus(r.Context(), inquiryID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			respondError(w, http.StatusNotFound, "Inquiry not found")
		case errors.Is(err, repository.ErrInvalidTransition):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondPipelineError(w, err)
		}
		return
	}

	inquiry, err := h.bookingService.GetInquiry(r.Context(), inquiryID)
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
		return
	}
	respondJSON(w, http.StatusOK, inquiry)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
