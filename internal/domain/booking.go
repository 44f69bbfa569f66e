package domain

import "time"

// Payment is insert-only: created once inside the transaction that writes
// the rental owning it, never updated or shared between rentals.
type Payment struct {
	ID       int64
	Amount   float64
	IssuedAt time.Time
}

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationConverted ReservationStatus = "converted"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation is a tentative hold on a room. Status is terminal once it
// leaves active; a converted or cancelled reservation never becomes active
// again and never counts against availability.
type Reservation struct {
	ID       int64
	ClientID string
	RoomID   int64
	Start    time.Time
	End      time.Time
	Status   ReservationStatus
}

// Rental is a confirmed occupancy with exactly one payment.
type Rental struct {
	ID         int64
	ClientID   string
	EmployeeID string
	RoomID     int64
	Start      time.Time
	End        time.Time
	Payment    Payment
}

type ReservationDraft struct {
	ClientID string
	RoomID   int64
	Start    time.Time
	End      time.Time
}

type RentalDraft struct {
	ClientID   string
	EmployeeID string
	RoomID     int64
	Start      time.Time
	End        time.Time
	Amount     float64
	IssuedAt   time.Time
}

// SearchQuery drives availability search. Start/End are required; every
// other field is an optional filter, nil meaning wildcard. Filters combine
// as a conjunction.
type SearchQuery struct {
	Start time.Time
	End   time.Time

	Zone        *string
	MinCapacity *int
	View        *ViewType
	ChainName   *string
	Stars       *int
	MinArea     *float64
	MaxArea     *float64
	MinPrice    *float64
	MaxPrice    *float64
}

// Overlaps reports whether the half-open ranges [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
