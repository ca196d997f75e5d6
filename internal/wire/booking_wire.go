package wire

import (
	"rentpay/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// POST /api/bookings/confirm - confirm booking for a match (idempotent)
	r.Post("/api/bookings/confirm", bookingHandler.ConfirmBooking)

	// Admin correction flow: the only sanctioned path for date/rent changes
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// PUT /api/admin/bookings/{id}/schedule - replace the payment schedule
		r.Put("/{id}/schedule", bookingHandler.ReplaceSchedule)
	})
}
