package request

type ConfirmBookingRequest struct {
	MatchID string `json:"match_id" validate:"required,uuid4"`

	// ZeroRentConfirmed must be sent explicitly for zero-rent test bookings.
	ZeroRentConfirmed bool `json:"zero_rent_confirmed"`
}

type ReplaceScheduleRequest struct {
	StartDate         string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate           string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	MonthlyRent       int64   `json:"monthly_rent" validate:"min=0"`
	PaymentMethodID   *string `json:"payment_method_id,omitempty"`
	ZeroRentConfirmed bool    `json:"zero_rent_confirmed"`
}
