package entity

import (
	"time"

	"github.com/google/uuid"
)

// Match is the pre-booking agreement carrying the negotiated rent and the
// payment method reference. Its monthly rent is authoritative until the
// Booking is created; after that the Booking's own field wins.
type Match struct {
	Base
	TenantID          uuid.UUID  `db:"tenant_id"`
	ListingID         uuid.UUID  `db:"listing_id"`
	StartDate         time.Time  `db:"start_date"`
	EndDate           time.Time  `db:"end_date"`
	MonthlyRent       int64      `db:"monthly_rent"` // minor units
	SecurityDeposit   int64      `db:"security_deposit"`
	PetDeposit        int64      `db:"pet_deposit"`
	PaymentMethodID   *string    `db:"payment_method_id"` // provider payment method ref
	PaymentIntentID   *string    `db:"payment_intent_id"` // provider intent for the first payment
	CustomerID        *string    `db:"customer_id"`       // provider customer ref
	PaymentCapturedAt *time.Time `db:"payment_captured_at"`
	TenantSignedAt    *time.Time `db:"tenant_signed_at"`
	LandlordSignedAt  *time.Time `db:"landlord_signed_at"`
}
