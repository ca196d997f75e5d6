package entity

import (
	"github.com/google/uuid"
)

type TripStatus string

const (
	TripStatusSearching TripStatus = "searching"
	TripStatusMatched   TripStatus = "matched"
	TripStatusBooked    TripStatus = "booked"
	TripStatusCancelled TripStatus = "cancelled"
)

// Trip is the tenant's search record; it flips to booked when the
// confirmation flow completes.
type Trip struct {
	Base
	TenantID uuid.UUID  `db:"tenant_id"`
	MatchID  *uuid.UUID `db:"match_id"`
	Status   TripStatus `db:"status"`
}
