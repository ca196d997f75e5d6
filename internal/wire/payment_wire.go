package wire

import (
	"rentpay/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler) {
	// GET /api/bookings/{id}/payments - schedule with projected statuses
	r.Get("/api/bookings/{id}/payments", paymentHandler.GetBookingPayments)

	// Host reporting views
	r.Get("/api/listings/{id}/payments", paymentHandler.GetListingPayments)
	r.Get("/api/listings/{id}/bookings", paymentHandler.GetListingBookings)

	// POST /api/webhooks/payment-capture - async capture outcomes from provider
	r.Post("/api/webhooks/payment-capture", paymentHandler.HandleCaptureEvent)
}
