package domain

import (
	"context"
	"time"
)

type BookingRepository interface {
	// Catalog write paths (seeder only)
	UpsertChain(ctx context.Context, c Chain) error
	UpsertHotel(ctx context.Context, h Hotel) error
	UpsertRoom(ctx context.Context, r Room) error
	UpsertClient(ctx context.Context, c Client) error
	UpsertEmployee(ctx context.Context, e Employee) error

	// Read paths
	ListHotels(ctx context.Context) ([]HotelView, error)
	AvailableRooms(ctx context.Context, q SearchQuery) ([]RoomView, error)
	ReservationsByClient(ctx context.Context, clientID string) ([]Reservation, error)

	// Booking state transitions. Each runs the availability check (or the
	// active-status check for conversion) and all writes in one transaction.
	CreateReservation(ctx context.Context, d ReservationDraft) (Reservation, error)
	CancelReservation(ctx context.Context, id int64) error
	CreateRental(ctx context.Context, d RentalDraft) (Rental, error)
	ConvertReservation(ctx context.Context, reservationID int64, employeeID string, amount float64, issuedAt time.Time) (Rental, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
	Incr(ctx context.Context, key string) (int64, error)
}
