package entity

import (
	"github.com/google/uuid"
)

// PaymentCharge records a capture attempt against an installment.
type PaymentCharge struct {
	BaseSimple
	RentPaymentID    uuid.UUID `db:"rent_payment_id"`
	Amount           int64     `db:"amount"`
	ProviderChargeID *string   `db:"provider_charge_id"`
}

// PaymentModification records an administrative change applied to an installment.
type PaymentModification struct {
	BaseSimple
	RentPaymentID uuid.UUID `db:"rent_payment_id"`
	Field         string    `db:"field"`
	OldValue      string    `db:"old_value"`
	NewValue      string    `db:"new_value"`
}

// PaymentFailure records one failed capture attempt.
type PaymentFailure struct {
	BaseSimple
	RentPaymentID uuid.UUID `db:"rent_payment_id"`
	Reason        string    `db:"reason"`
	ProviderCode  *string   `db:"provider_code"`
}
