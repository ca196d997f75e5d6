package response

import (
	"time"

	"rentpay/internal/data/entity"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	TenantID    string               `json:"tenant_id"`
	ListingID   string               `json:"listing_id"`
	MatchID     string               `json:"match_id"`
	StartDate   string               `json:"start_date"`
	EndDate     string               `json:"end_date"`
	MonthlyRent int64                `json:"monthly_rent"`
	TotalPrice  int64                `json:"total_price"`
	Status      entity.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}

// BookingScheduleResponse is what confirmation and reconciliation return:
// the booking plus its full ordered schedule.
type BookingScheduleResponse struct {
	Booking  BookingResponse       `json:"booking"`
	Payments []RentPaymentResponse `json:"payments"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:          booking.ID.String(),
		TenantID:    booking.TenantID.String(),
		ListingID:   booking.ListingID.String(),
		MatchID:     booking.MatchID.String(),
		StartDate:   booking.StartDate.Format("2006-01-02"),
		EndDate:     booking.EndDate.Format("2006-01-02"),
		MonthlyRent: booking.MonthlyRent,
		TotalPrice:  booking.TotalPrice,
		Status:      booking.Status,
		CreatedAt:   booking.CreatedAt,
	}
}
