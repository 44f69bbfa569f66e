package app

import (
	"context"
	"fmt"
	"time"

	"hotelchain/internal/adapters/observability"
	"hotelchain/internal/domain"
)

// BookingService runs the reservation and rental workflows. Every write
// delegates to a single repository transaction, then bumps the availability
// cache epoch so searches stop serving the pre-write snapshot.
type BookingService struct {
	repo  domain.BookingRepository
	cache domain.Cache
}

func NewBookingService(r domain.BookingRepository, c domain.Cache) *BookingService {
	return &BookingService{repo: r, cache: c}
}

func (s *BookingService) CreateReservation(ctx context.Context, d domain.ReservationDraft) (domain.Reservation, error) {
	if d.ClientID == "" || d.RoomID == 0 || d.Start.IsZero() || d.End.IsZero() {
		return domain.Reservation{}, fmt.Errorf("%w: startDate, endDate, clientId, roomNumber", domain.ErrMissingField)
	}
	if !d.Start.Before(d.End) {
		return domain.Reservation{}, domain.ErrInvalidDateRange
	}
	res, err := s.repo.CreateReservation(ctx, d)
	if err != nil {
		observability.ObserveBooking("reservation", "error")
		return domain.Reservation{}, err
	}
	observability.ObserveBooking("reservation", "ok")
	s.invalidateAvailability(ctx)
	return res, nil
}

// ReservationsByClient returns the client's reservations, empty slice when
// there are none.
func (s *BookingService) ReservationsByClient(ctx context.Context, clientID string) ([]domain.Reservation, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: clientId", domain.ErrMissingField)
	}
	out, err := s.repo.ReservationsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Reservation{}
	}
	return out, nil
}

// CreateRental books a room directly. The payment row is written before the
// rental row inside one transaction, so a rental never exists without its
// payment and a failed rental never strands one.
func (s *BookingService) CreateRental(ctx context.Context, d domain.RentalDraft) (domain.Rental, error) {
	if d.ClientID == "" || d.EmployeeID == "" || d.RoomID == 0 || d.Start.IsZero() || d.End.IsZero() || d.Amount == 0 {
		return domain.Rental{}, fmt.Errorf("%w: startDate, endDate, employeeId, clientId, roomNumber, paymentAmount", domain.ErrMissingField)
	}
	if !d.Start.Before(d.End) {
		return domain.Rental{}, domain.ErrInvalidDateRange
	}
	if d.Amount < 0 {
		return domain.Rental{}, domain.ErrInvalidAmount
	}
	d.IssuedAt = time.Now().UTC()
	rental, err := s.repo.CreateRental(ctx, d)
	if err != nil {
		observability.ObserveBooking("rental", "error")
		return domain.Rental{}, err
	}
	observability.ObserveBooking("rental", "ok")
	s.invalidateAvailability(ctx)
	return rental, nil
}

// ConvertReservation turns an active reservation into a rental, copying its
// client, room and dates. The reservation flips to converted in the same
// transaction; a second conversion finds no active row and fails with
// ErrNotFound.
func (s *BookingService) ConvertReservation(ctx context.Context, reservationID int64, employeeID string, amount float64) (domain.Rental, error) {
	if reservationID == 0 || employeeID == "" || amount == 0 {
		return domain.Rental{}, fmt.Errorf("%w: reservationId, employeeId, paymentAmount", domain.ErrMissingField)
	}
	if amount < 0 {
		return domain.Rental{}, domain.ErrInvalidAmount
	}
	rental, err := s.repo.ConvertReservation(ctx, reservationID, employeeID, amount, time.Now().UTC())
	if err != nil {
		observability.ObserveBooking("conversion", "error")
		return domain.Rental{}, err
	}
	observability.ObserveBooking("conversion", "ok")
	s.invalidateAvailability(ctx)
	return rental, nil
}

func (s *BookingService) invalidateAvailability(ctx context.Context) {
	if s.cache != nil {
		_, _ = s.cache.Incr(ctx, availEpochKey)
	}
}
