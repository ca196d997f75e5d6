package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is a confirmed, dated occupancy agreement between tenant and listing.
// Created exactly once per match by the confirmation flow; status moves
// forward only (no resurrection of cancelled bookings).
type Booking struct {
	Base
	TenantID    uuid.UUID     `db:"tenant_id"`
	ListingID   uuid.UUID     `db:"listing_id"`
	MatchID     uuid.UUID     `db:"match_id"`
	StartDate   time.Time     `db:"start_date"`
	EndDate     time.Time     `db:"end_date"`
	MonthlyRent int64         `db:"monthly_rent"` // minor units (cents)
	TotalPrice  int64         `db:"total_price"`
	Status      BookingStatus `db:"status"`
}
