package response

import (
	"time"

	"rentpay/internal/data/entity"
	"rentpay/internal/schedule"
)

type RentPaymentResponse struct {
	ID           string               `json:"id"`
	BookingID    string               `json:"booking_id"`
	Amount       int64                `json:"amount"`
	TotalAmount  *int64               `json:"total_amount,omitempty"`
	DueDate      string               `json:"due_date"`
	IsPaid       bool                 `json:"is_paid"`
	RetryCount   int                  `json:"retry_count"`
	Type         entity.PaymentType   `json:"type"`
	Status       entity.PaymentStatus `json:"status"`
	ViewStatus   schedule.ViewStatus  `json:"view_status"`
	AuthorizedAt *time.Time           `json:"authorized_at,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ListingPaymentsResponse aggregates a listing's installments for host
// reporting. Totals are minor units.
type ListingPaymentsResponse struct {
	ListingID      string                `json:"listing_id"`
	Payments       []RentPaymentResponse `json:"payments"`
	TotalScheduled int64                 `json:"total_scheduled"`
	TotalCollected int64                 `json:"total_collected"`
	TotalOverdue   int64                 `json:"total_overdue"`
}

func RentPaymentToResponse(p *entity.RentPayment, now time.Time) RentPaymentResponse {
	return RentPaymentResponse{
		ID:           p.ID.String(),
		BookingID:    p.BookingID.String(),
		Amount:       p.Amount,
		TotalAmount:  p.TotalAmount,
		DueDate:      p.DueDate.Format("2006-01-02"),
		IsPaid:       p.IsPaid,
		RetryCount:   p.RetryCount,
		Type:         p.Type,
		Status:       p.Status,
		ViewStatus:   schedule.Status(p, now),
		AuthorizedAt: p.AuthorizedAt,
		CreatedAt:    p.CreatedAt,
	}
}

func RentPaymentsToResponse(payments []*entity.RentPayment, now time.Time) []RentPaymentResponse {
	out := make([]RentPaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = RentPaymentToResponse(p, now)
	}
	return out
}
