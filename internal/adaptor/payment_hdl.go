package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"rentpay/internal/dto/request"
	"rentpay/internal/usecase"
	"rentpay/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// GetBookingPayments handles GET /api/bookings/{id}/payments
func (h *PaymentHandler) GetBookingPayments(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	result, err := h.service.GetBookingPayments(r.Context(), bookingID)
	if err != nil {
		h.handleServiceError(w, err, "get booking payments")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetListingPayments handles GET /api/listings/{id}/payments
func (h *PaymentHandler) GetListingPayments(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "id")
	if listingID == "" {
		utils.ResponseBadRequest(w, "Listing ID is required", nil)
		return
	}

	result, err := h.service.GetListingPayments(r.Context(), listingID)
	if err != nil {
		h.handleServiceError(w, err, "get listing payments")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetListingBookings handles GET /api/listings/{id}/bookings
func (h *PaymentHandler) GetListingBookings(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "id")
	if listingID == "" {
		utils.ResponseBadRequest(w, "Listing ID is required", nil)
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	result, err := h.service.GetListingBookings(r.Context(), listingID, req)
	if err != nil {
		h.handleServiceError(w, err, "get listing bookings")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// HandleCaptureEvent handles POST /api/webhooks/payment-capture
// Ingests the asynchronous capture outcome from the payment provider.
func (h *PaymentHandler) HandleCaptureEvent(w http.ResponseWriter, r *http.Request) {
	var req request.CaptureEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.HandleCaptureEvent(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "handle capture event")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

func (h *PaymentHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrBookingNotFound),
		errors.Is(err, usecase.ErrPaymentNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
