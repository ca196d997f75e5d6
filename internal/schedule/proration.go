package schedule

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// MaxInstallments caps how far out a schedule may run. Anything longer is a
// data-entry mistake (wildly wrong lease dates), not a real lease.
const MaxInstallments = 36

var (
	// ErrScheduleTooLong is returned when the interval would produce more
	// than MaxInstallments installments.
	ErrScheduleTooLong = errors.New("schedule exceeds maximum number of installments")

	// ErrInvalidInterval is returned when start is after end.
	ErrInvalidInterval = errors.New("start date must not be after end date")
)

// Installment is one computed due amount. Amount is minor units (cents).
type Installment struct {
	Amount  int64
	DueDate time.Time
}

// ComputeSchedule converts a lease interval plus a monthly rate into an
// ordered list of installments with partial first/last months prorated.
//
// The interval [start, end] is inclusive on both sides: the calendar day of
// end is the last day billed. The first installment is due on start; every
// later installment is due on the 1st of its month. Partial months are
// prorated by occupied days over days in that month, rounded half away from
// zero on the fractional cents.
//
// Pure and deterministic: identical inputs always produce identical output.
func ComputeSchedule(monthlyRent int64, start, end time.Time) ([]Installment, error) {
	start = dateOnly(start)
	end = dateOnly(end)

	if start.After(end) {
		return nil, ErrInvalidInterval
	}

	rent := decimal.NewFromInt(monthlyRent)

	var installments []Installment
	cursor := start
	for !cursor.After(end) {
		if len(installments) >= MaxInstallments {
			return nil, ErrScheduleTooLong
		}

		monthDays := daysInMonth(cursor)
		firstBilled := cursor.Day()
		lastBilled := monthDays
		if sameMonth(cursor, end) {
			lastBilled = end.Day()
		}

		amount := monthlyRent
		if firstBilled != 1 || lastBilled != monthDays {
			occupied := lastBilled - firstBilled + 1
			amount = prorate(rent, occupied, monthDays)
		}
		if amount < 0 {
			amount = 0
		}

		installments = append(installments, Installment{
			Amount:  amount,
			DueDate: cursor,
		})

		// next installment is due on the 1st of the following month
		cursor = time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	}

	return installments, nil
}

// prorate computes rent * occupied/monthDays rounded half away from zero.
// decimal.Round uses half-away-from-zero, not banker's rounding.
func prorate(rent decimal.Decimal, occupied, monthDays int) int64 {
	return rent.
		Mul(decimal.NewFromInt(int64(occupied))).
		Div(decimal.NewFromInt(int64(monthDays))).
		Round(0).
		IntPart()
}

func daysInMonth(t time.Time) int {
	// day 0 of next month == last day of this month
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
