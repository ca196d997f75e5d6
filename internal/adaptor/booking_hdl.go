package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"rentpay/internal/dto/request"
	"rentpay/internal/schedule"
	"rentpay/internal/usecase"
	"rentpay/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	confirmation   usecase.ConfirmationService
	reconciliation usecase.ReconciliationService
	log            *zap.Logger
}

func NewBookingHandler(confirmation usecase.ConfirmationService, reconciliation usecase.ReconciliationService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		confirmation:   confirmation,
		reconciliation: reconciliation,
		log:            log.With(zap.String("handler", "booking")),
	}
}

// ConfirmBooking handles POST /api/bookings/confirm
// Idempotent: safe to retry on timeout, a duplicate call returns the
// existing booking and schedule.
func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.confirmation.ConfirmBooking(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "confirm booking")
		return
	}

	utils.ResponseCreated(w, "success", result)
}

// ReplaceSchedule handles PUT /api/admin/bookings/{id}/schedule
// The administrative lease-date/rent correction; the only path that mutates
// an existing schedule.
func (h *BookingHandler) ReplaceSchedule(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.ReplaceScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.reconciliation.ReplaceSchedule(r.Context(), bookingID, &req)
	if err != nil {
		h.handleServiceError(w, err, "replace schedule")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// handleServiceError maps service errors to HTTP responses
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrPaymentNotConfirmed):
		h.log.Warn(operation+" rejected - payment not confirmed", zap.Error(err))
		utils.ResponsePaymentRequired(w, err.Error())

	case errors.Is(err, usecase.ErrProviderUnavailable):
		h.log.Error(operation+" failed - provider unavailable", zap.Error(err))
		utils.ResponseBadGateway(w, err.Error())

	case errors.Is(err, schedule.ErrScheduleTooLong),
		errors.Is(err, schedule.ErrInvalidRentAmount),
		errors.Is(err, schedule.ErrInvalidInterval):
		h.log.Warn(operation+" rejected - invalid schedule input", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case errors.Is(err, usecase.ErrMatchNotFound),
		errors.Is(err, usecase.ErrBookingNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrMatchIncomplete):
		h.log.Warn(operation+" rejected - match incomplete", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
