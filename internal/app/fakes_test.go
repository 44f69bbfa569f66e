package app_test

import (
	"context"
	"time"

	"hotelchain/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	hotels []domain.HotelView
	rooms  []domain.RoomView

	reservations map[int64]*domain.Reservation
	nextResID    int64
	nextRentalID int64
	nextPayID    int64

	availCalls      int
	createResCalls  int
	lastRentalDraft domain.RentalDraft

	chains    []domain.Chain
	upHotels  []domain.Hotel
	upRooms   []domain.Room
	clients   []domain.Client
	employees []domain.Employee
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reservations: map[int64]*domain.Reservation{}}
}

func (f *fakeRepo) UpsertChain(ctx context.Context, c domain.Chain) error {
	f.chains = append(f.chains, c)
	return nil
}
func (f *fakeRepo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	f.upHotels = append(f.upHotels, h)
	return nil
}
func (f *fakeRepo) UpsertRoom(ctx context.Context, r domain.Room) error {
	f.upRooms = append(f.upRooms, r)
	return nil
}
func (f *fakeRepo) UpsertClient(ctx context.Context, c domain.Client) error {
	f.clients = append(f.clients, c)
	return nil
}
func (f *fakeRepo) UpsertEmployee(ctx context.Context, e domain.Employee) error {
	f.employees = append(f.employees, e)
	return nil
}

func (f *fakeRepo) ListHotels(ctx context.Context) ([]domain.HotelView, error) {
	return append([]domain.HotelView(nil), f.hotels...), nil
}

func (f *fakeRepo) AvailableRooms(ctx context.Context, q domain.SearchQuery) ([]domain.RoomView, error) {
	f.availCalls++
	return append([]domain.RoomView(nil), f.rooms...), nil
}

func (f *fakeRepo) ReservationsByClient(ctx context.Context, clientID string) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, r := range f.reservations {
		if r.ClientID == clientID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateReservation(ctx context.Context, d domain.ReservationDraft) (domain.Reservation, error) {
	f.createResCalls++
	f.nextResID++
	res := domain.Reservation{
		ID: f.nextResID, ClientID: d.ClientID, RoomID: d.RoomID,
		Start: d.Start, End: d.End, Status: domain.ReservationActive,
	}
	f.reservations[res.ID] = &res
	return res, nil
}

func (f *fakeRepo) CancelReservation(ctx context.Context, id int64) error {
	r, ok := f.reservations[id]
	if !ok || r.Status != domain.ReservationActive {
		return domain.ErrNotFound
	}
	r.Status = domain.ReservationCancelled
	return nil
}

func (f *fakeRepo) newRental(clientID, employeeID string, roomID int64, start, end time.Time, amount float64, issuedAt time.Time) domain.Rental {
	f.nextPayID++
	f.nextRentalID++
	return domain.Rental{
		ID: f.nextRentalID, ClientID: clientID, EmployeeID: employeeID, RoomID: roomID,
		Start: start, End: end,
		Payment: domain.Payment{ID: f.nextPayID, Amount: amount, IssuedAt: issuedAt},
	}
}

func (f *fakeRepo) CreateRental(ctx context.Context, d domain.RentalDraft) (domain.Rental, error) {
	f.lastRentalDraft = d
	return f.newRental(d.ClientID, d.EmployeeID, d.RoomID, d.Start, d.End, d.Amount, d.IssuedAt), nil
}

func (f *fakeRepo) ConvertReservation(ctx context.Context, reservationID int64, employeeID string, amount float64, issuedAt time.Time) (domain.Rental, error) {
	r, ok := f.reservations[reservationID]
	if !ok || r.Status != domain.ReservationActive {
		return domain.Rental{}, domain.ErrNotFound
	}
	r.Status = domain.ReservationConverted
	return f.newRental(r.ClientID, employeeID, r.RoomID, r.Start, r.End, amount, issuedAt), nil
}

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]domain.HotelView:
		*d = v.([]domain.HotelView)
	case *[]domain.RoomView:
		*d = v.([]domain.RoomView)
	case *int64:
		*d = v.(int64)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	if c.store == nil {
		c.store = map[string]any{}
	}
	n, _ := c.store[key].(int64)
	n++
	c.store[key] = n
	return n, nil
}

// ---- helpers ----

func ptr[T any](v T) *T { return &v }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
