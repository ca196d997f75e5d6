package schedule

import (
	"errors"
	"time"

	"rentpay/internal/data/entity"

	"github.com/google/uuid"
)

// ErrInvalidRentAmount is returned for a zero or negative monthly rent that
// was not explicitly confirmed. Guards against silently creating free-rent
// schedules by mistake.
var ErrInvalidRentAmount = errors.New("invalid monthly rent amount")

// GenerateInput carries everything the generator needs. Now is injected so
// generation stays deterministic under test.
type GenerateInput struct {
	BookingID       uuid.UUID
	MonthlyRent     int64 // minor units
	Start           time.Time
	End             time.Time
	PaymentMethodID string

	// SecurityDeposit and PetDeposit, when non-zero, add one deposit record
	// each, due on the start date.
	SecurityDeposit int64
	PetDeposit      int64

	// ZeroRentConfirmed must be set for a zero monthly rent to be accepted
	// (test bookings). Absent the flag, zero is rejected.
	ZeroRentConfirmed bool

	// MarkFirstAuthorized stamps AuthorizedAt on the first installment. Set
	// by booking confirmation, where the tenant has already completed that
	// payment; never set by reconciliation.
	MarkFirstAuthorized bool

	Now time.Time
}

// Generate produces persistence-ready rent payment records for a lease
// interval. It performs no I/O; the caller persists the result inside its
// own transaction.
func Generate(in GenerateInput) ([]*entity.RentPayment, error) {
	if in.MonthlyRent < 0 {
		return nil, ErrInvalidRentAmount
	}
	if in.MonthlyRent == 0 {
		if !in.ZeroRentConfirmed || in.SecurityDeposit > 0 || in.PetDeposit > 0 {
			return nil, ErrInvalidRentAmount
		}
	}
	if in.SecurityDeposit < 0 || in.PetDeposit < 0 {
		return nil, ErrInvalidRentAmount
	}

	installments, err := ComputeSchedule(in.MonthlyRent, in.Start, in.End)
	if err != nil {
		return nil, err
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	var methodRef *string
	if in.PaymentMethodID != "" {
		methodRef = &in.PaymentMethodID
	}

	payments := make([]*entity.RentPayment, 0, len(installments)+2)
	for i, inst := range installments {
		p := &entity.RentPayment{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			BookingID:       in.BookingID,
			Amount:          inst.Amount,
			DueDate:         inst.DueDate,
			IsPaid:          false,
			PaymentMethodID: methodRef,
			RetryCount:      0,
			Type:            entity.PaymentTypeMonthlyRent,
			Status:          entity.PaymentStatusPending,
		}
		if i == 0 && in.MarkFirstAuthorized {
			authorizedAt := now
			p.AuthorizedAt = &authorizedAt
		}
		payments = append(payments, p)
	}

	if in.SecurityDeposit > 0 {
		payments = append(payments, depositRecord(in, entity.PaymentTypeSecurityDeposit, in.SecurityDeposit, methodRef, now))
	}
	if in.PetDeposit > 0 {
		payments = append(payments, depositRecord(in, entity.PaymentTypePetDeposit, in.PetDeposit, methodRef, now))
	}

	return payments, nil
}

func depositRecord(in GenerateInput, typ entity.PaymentType, amount int64, methodRef *string, now time.Time) *entity.RentPayment {
	return &entity.RentPayment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:       in.BookingID,
		Amount:          amount,
		DueDate:         dateOnly(in.Start),
		IsPaid:          false,
		PaymentMethodID: methodRef,
		RetryCount:      0,
		Type:            typ,
		Status:          entity.PaymentStatusPending,
	}
}
