package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeSchedule(t *testing.T) {
	tests := []struct {
		name        string
		monthlyRent int64
		start       time.Time
		end         time.Time
		want        []Installment
	}{
		{
			name:        "prorated first month, end on last day of month",
			monthlyRent: 100000,
			start:       date(2025, time.January, 15),
			end:         date(2025, time.March, 31),
			want: []Installment{
				{Amount: 54839, DueDate: date(2025, time.January, 15)}, // 17/31 of rent
				{Amount: 100000, DueDate: date(2025, time.February, 1)},
				{Amount: 100000, DueDate: date(2025, time.March, 1)},
			},
		},
		{
			name:        "single day stay",
			monthlyRent: 100000,
			start:       date(2025, time.February, 1),
			end:         date(2025, time.February, 1),
			want: []Installment{
				{Amount: 3571, DueDate: date(2025, time.February, 1)}, // 1/28 of rent
			},
		},
		{
			name:        "zero rent full month",
			monthlyRent: 0,
			start:       date(2025, time.January, 1),
			end:         date(2025, time.January, 31),
			want: []Installment{
				{Amount: 0, DueDate: date(2025, time.January, 1)},
			},
		},
		{
			name:        "partial interval inside one month",
			monthlyRent: 100000,
			start:       date(2025, time.March, 10),
			end:         date(2025, time.March, 20),
			want: []Installment{
				{Amount: 35484, DueDate: date(2025, time.March, 10)}, // 11/31 of rent
			},
		},
		{
			name:        "full leap february",
			monthlyRent: 100000,
			start:       date(2024, time.February, 1),
			end:         date(2024, time.February, 29),
			want: []Installment{
				{Amount: 100000, DueDate: date(2024, time.February, 1)},
			},
		},
		{
			name:        "prorated leap february",
			monthlyRent: 100000,
			start:       date(2024, time.February, 15),
			end:         date(2024, time.February, 29),
			want: []Installment{
				{Amount: 51724, DueDate: date(2024, time.February, 15)}, // 15/29 of rent
			},
		},
		{
			name:        "prorated last month",
			monthlyRent: 100000,
			start:       date(2025, time.January, 1),
			end:         date(2025, time.February, 14),
			want: []Installment{
				{Amount: 100000, DueDate: date(2025, time.January, 1)},
				{Amount: 50000, DueDate: date(2025, time.February, 1)}, // 14/28 of rent
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeSchedule(tt.monthlyRent, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeSchedule_MultiYearSpan(t *testing.T) {
	got, err := ComputeSchedule(150000, date(2025, time.January, 1), date(2026, time.December, 31))
	require.NoError(t, err)
	require.Len(t, got, 24)

	for i, inst := range got {
		assert.Equal(t, int64(150000), inst.Amount, "installment %d", i)
		assert.Equal(t, 1, inst.DueDate.Day(), "installment %d due on the 1st", i)
	}
}

func TestComputeSchedule_ExactlyMaxInstallments(t *testing.T) {
	got, err := ComputeSchedule(100000, date(2025, time.January, 1), date(2027, time.December, 31))
	require.NoError(t, err)
	assert.Len(t, got, MaxInstallments)
}

func TestComputeSchedule_TooLong(t *testing.T) {
	// 40 months
	got, err := ComputeSchedule(100000, date(2025, time.January, 1), date(2028, time.April, 30))
	assert.ErrorIs(t, err, ErrScheduleTooLong)
	assert.Nil(t, got)
}

func TestComputeSchedule_StartAfterEnd(t *testing.T) {
	got, err := ComputeSchedule(100000, date(2025, time.March, 1), date(2025, time.January, 1))
	assert.ErrorIs(t, err, ErrInvalidInterval)
	assert.Nil(t, got)
}

func TestComputeSchedule_SumMatchesMonthlyRate(t *testing.T) {
	// total collected tracks rent * months occupied, within rounding slack
	// of one cent per installment
	monthlyRent := int64(123456)
	start := date(2025, time.January, 20)
	end := date(2025, time.November, 11)

	got, err := ComputeSchedule(monthlyRent, start, end)
	require.NoError(t, err)
	require.Len(t, got, 11)

	var sum int64
	for _, inst := range got {
		assert.GreaterOrEqual(t, inst.Amount, int64(0))
		sum += inst.Amount
	}

	// Jan: 12/31 of a month, Feb-Oct: 9 full, Nov: 11/30
	months := 12.0/31.0 + 9.0 + 11.0/30.0
	expected := float64(monthlyRent) * months
	assert.InDelta(t, expected, float64(sum), float64(len(got)))
}

func TestComputeSchedule_Deterministic(t *testing.T) {
	first, err := ComputeSchedule(98765, date(2025, time.April, 7), date(2026, time.February, 10))
	require.NoError(t, err)

	second, err := ComputeSchedule(98765, date(2025, time.April, 7), date(2026, time.February, 10))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeSchedule_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	withTime := time.Date(2025, time.January, 15, 23, 45, 0, 0, loc)

	got, err := ComputeSchedule(100000, withTime, date(2025, time.January, 31))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, date(2025, time.January, 15), got[0].DueDate)
}

func TestProrate_RoundsHalfAwayFromZero(t *testing.T) {
	// 25000 * 15/30 = 12500 exactly; 100001 * 1/2 = 50000.5 rounds up
	got, err := ComputeSchedule(100001, date(2025, time.April, 16), date(2025, time.April, 30))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(50001), got[0].Amount)
}
