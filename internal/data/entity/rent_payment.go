package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentType string

const (
	PaymentTypeMonthlyRent     PaymentType = "MONTHLY_RENT"
	PaymentTypeSecurityDeposit PaymentType = "SECURITY_DEPOSIT"
	PaymentTypePetDeposit      PaymentType = "PET_DEPOSIT"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusPaid       PaymentStatus = "PAID"
	PaymentStatusFailed     PaymentStatus = "FAILED"
)

// RentPayment is one scheduled installment in a booking's payment schedule.
// Exactly one row per due date per booking for non-deposit types.
// Amounts are minor units (cents), never floating point.
type RentPayment struct {
	Base
	BookingID       uuid.UUID     `db:"booking_id"`
	Amount          int64         `db:"amount"`
	TotalAmount     *int64        `db:"total_amount"` // amount plus added fees, if any
	DueDate         time.Time     `db:"due_date"`     // calendar date, time of day not significant
	IsPaid          bool          `db:"is_paid"`
	PaymentMethodID *string       `db:"payment_method_id"`
	AuthorizedAt    *time.Time    `db:"authorized_at"`
	RetryCount      int           `db:"retry_count"`
	Type            PaymentType   `db:"type"`
	Status          PaymentStatus `db:"status"`
}
