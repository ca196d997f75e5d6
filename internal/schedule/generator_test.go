package schedule

import (
	"testing"
	"time"

	"rentpay/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_MonthlyInstallments(t *testing.T) {
	bookingID := uuid.New()
	now := date(2025, time.January, 10)

	payments, err := Generate(GenerateInput{
		BookingID:       bookingID,
		MonthlyRent:     100000,
		Start:           date(2025, time.January, 15),
		End:             date(2025, time.March, 31),
		PaymentMethodID: "pm_123",
		Now:             now,
	})
	require.NoError(t, err)
	require.Len(t, payments, 3)

	for i, p := range payments {
		assert.Equal(t, bookingID, p.BookingID, "payment %d", i)
		assert.Equal(t, entity.PaymentTypeMonthlyRent, p.Type)
		assert.Equal(t, entity.PaymentStatusPending, p.Status)
		assert.False(t, p.IsPaid)
		assert.Equal(t, 0, p.RetryCount)
		require.NotNil(t, p.PaymentMethodID)
		assert.Equal(t, "pm_123", *p.PaymentMethodID)
		assert.Nil(t, p.AuthorizedAt)
		assert.NotEqual(t, uuid.Nil, p.ID)
	}
	assert.Equal(t, int64(54839), payments[0].Amount)
	assert.Equal(t, date(2025, time.February, 1), payments[1].DueDate)
}

func TestGenerate_MarkFirstAuthorized(t *testing.T) {
	now := date(2025, time.January, 10)

	payments, err := Generate(GenerateInput{
		BookingID:           uuid.New(),
		MonthlyRent:         100000,
		Start:               date(2025, time.January, 15),
		End:                 date(2025, time.March, 31),
		MarkFirstAuthorized: true,
		Now:                 now,
	})
	require.NoError(t, err)
	require.Len(t, payments, 3)

	require.NotNil(t, payments[0].AuthorizedAt)
	assert.Equal(t, now, *payments[0].AuthorizedAt)
	assert.Nil(t, payments[1].AuthorizedAt)
	assert.Nil(t, payments[2].AuthorizedAt)
}

func TestGenerate_Deposits(t *testing.T) {
	start := date(2025, time.June, 1)

	payments, err := Generate(GenerateInput{
		BookingID:       uuid.New(),
		MonthlyRent:     100000,
		Start:           start,
		End:             date(2025, time.June, 30),
		SecurityDeposit: 50000,
		PetDeposit:      25000,
		Now:             start,
	})
	require.NoError(t, err)
	require.Len(t, payments, 3)

	security := payments[1]
	assert.Equal(t, entity.PaymentTypeSecurityDeposit, security.Type)
	assert.Equal(t, int64(50000), security.Amount)
	assert.Equal(t, start, security.DueDate)
	assert.Nil(t, security.AuthorizedAt)

	pet := payments[2]
	assert.Equal(t, entity.PaymentTypePetDeposit, pet.Type)
	assert.Equal(t, int64(25000), pet.Amount)
	assert.Equal(t, start, pet.DueDate)
}

func TestGenerate_ZeroRent(t *testing.T) {
	start := date(2025, time.January, 1)
	end := date(2025, time.January, 31)

	t.Run("rejected without confirmation", func(t *testing.T) {
		_, err := Generate(GenerateInput{
			BookingID:   uuid.New(),
			MonthlyRent: 0,
			Start:       start,
			End:         end,
		})
		assert.ErrorIs(t, err, ErrInvalidRentAmount)
	})

	t.Run("accepted when confirmed", func(t *testing.T) {
		payments, err := Generate(GenerateInput{
			BookingID:         uuid.New(),
			MonthlyRent:       0,
			Start:             start,
			End:               end,
			ZeroRentConfirmed: true,
			Now:               start,
		})
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, int64(0), payments[0].Amount)
		assert.Equal(t, entity.PaymentStatusPending, payments[0].Status)
	})

	t.Run("rejected with deposits even when confirmed", func(t *testing.T) {
		_, err := Generate(GenerateInput{
			BookingID:         uuid.New(),
			MonthlyRent:       0,
			Start:             start,
			End:               end,
			ZeroRentConfirmed: true,
			SecurityDeposit:   50000,
		})
		assert.ErrorIs(t, err, ErrInvalidRentAmount)
	})
}

func TestGenerate_InvalidAmounts(t *testing.T) {
	start := date(2025, time.January, 1)
	end := date(2025, time.January, 31)

	tests := []struct {
		name string
		in   GenerateInput
	}{
		{"negative rent", GenerateInput{MonthlyRent: -1, Start: start, End: end}},
		{"negative security deposit", GenerateInput{MonthlyRent: 100000, SecurityDeposit: -5, Start: start, End: end}},
		{"negative pet deposit", GenerateInput{MonthlyRent: 100000, PetDeposit: -5, Start: start, End: end}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.in)
			assert.ErrorIs(t, err, ErrInvalidRentAmount)
		})
	}
}

func TestGenerate_PropagatesScheduleErrors(t *testing.T) {
	_, err := Generate(GenerateInput{
		BookingID:   uuid.New(),
		MonthlyRent: 100000,
		Start:       date(2025, time.January, 1),
		End:         date(2028, time.April, 30),
	})
	assert.ErrorIs(t, err, ErrScheduleTooLong)
}

func TestGenerate_NoPaymentMethod(t *testing.T) {
	payments, err := Generate(GenerateInput{
		BookingID:   uuid.New(),
		MonthlyRent: 100000,
		Start:       date(2025, time.January, 1),
		End:         date(2025, time.January, 31),
		Now:         date(2025, time.January, 1),
	})
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Nil(t, payments[0].PaymentMethodID)
}
