package adaptor

import (
	"rentpay/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Booking *BookingHandler
	Payment *PaymentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Confirmation, service.Reconciliation, log),
		Payment: NewPaymentHandler(service.Payment, log),
	}
}
