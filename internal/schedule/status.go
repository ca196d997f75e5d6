package schedule

import (
	"time"

	"rentpay/internal/data/entity"
)

// ViewStatus is the display status of an installment. It is always derived
// from the due date and paid flag on read, never persisted, so it can never
// go stale.
type ViewStatus string

const (
	ViewStatusScheduled ViewStatus = "Scheduled"
	ViewStatusDue       ViewStatus = "Due"
	ViewStatusOverdue   ViewStatus = "Overdue"
	ViewStatusCompleted ViewStatus = "Completed"
)

// DueSoonWindow is how far ahead of the due date an unpaid installment
// shows as Due rather than Scheduled.
const DueSoonWindow = 7 * 24 * time.Hour

// Status projects a payment's display status at the given instant.
func Status(p *entity.RentPayment, now time.Time) ViewStatus {
	if p.IsPaid {
		return ViewStatusCompleted
	}

	due := dateOnly(p.DueDate)
	if due.Before(dateOnly(now)) {
		return ViewStatusOverdue
	}
	if due.Sub(now) <= DueSoonWindow {
		return ViewStatusDue
	}
	return ViewStatusScheduled
}
