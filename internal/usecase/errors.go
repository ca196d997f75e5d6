package usecase

import "errors"

var (
	// ErrPaymentNotConfirmed means capture was not verified; the caller must
	// complete payment and retry. Never retried automatically here.
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")

	// ErrProviderUnavailable means the capture provider could not be reached
	// and there was no previously recorded capture state to fall back on.
	ErrProviderUnavailable = errors.New("payment provider unavailable")

	// ErrMatchNotFound / ErrBookingNotFound are lookup failures on the two
	// entry points.
	ErrMatchNotFound   = errors.New("match not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrPaymentNotFound = errors.New("rent payment not found")

	// ErrMatchIncomplete means the match is missing a payment method or
	// payment intent and cannot be confirmed yet.
	ErrMatchIncomplete = errors.New("match has no payment method or intent on file")
)
