package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelchain/internal/app"
	"hotelchain/internal/domain"
)

func TestAvailableRooms_RequiresDates(t *testing.T) {
	q := app.NewSearchService(newFakeRepo(), &fakeCache{}, time.Minute)

	_, err := q.AvailableRooms(context.Background(), domain.SearchQuery{})
	if !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}

func TestAvailableRooms_RejectsInvertedRange(t *testing.T) {
	q := app.NewSearchService(newFakeRepo(), &fakeCache{}, time.Minute)

	_, err := q.AvailableRooms(context.Background(), domain.SearchQuery{
		Start: day("2024-06-20"), End: day("2024-06-15"),
	})
	if !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
	// equal dates are an empty stay, also invalid
	_, err = q.AvailableRooms(context.Background(), domain.SearchQuery{
		Start: day("2024-06-15"), End: day("2024-06-15"),
	})
	if !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange for equal dates, got %v", err)
	}
}

func TestAvailableRooms_CacheMissThenHit(t *testing.T) {
	repo := newFakeRepo()
	repo.rooms = []domain.RoomView{{ID: 101, HotelID: 1, Number: 101, Price: 120, Capacity: 2}}
	cache := &fakeCache{}
	q := app.NewSearchService(repo, cache, 10*time.Minute)

	query := domain.SearchQuery{Start: day("2024-06-15"), End: day("2024-06-20")}

	out, err := q.AvailableRooms(context.Background(), query)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 || out[0].ID != 101 {
		t.Fatalf("unexpected rooms: %+v", out)
	}

	// Mutate repo to prove the second read comes from cache.
	repo.rooms = nil
	out2, err := q.AvailableRooms(context.Background(), query)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out2) != 1 || out2[0].ID != 101 {
		t.Fatalf("expected cached result, got %+v", out2)
	}
	if repo.availCalls != 1 {
		t.Fatalf("repo hit %d times, want 1", repo.availCalls)
	}
}

func TestAvailableRooms_RepeatedSearchIsIdentical(t *testing.T) {
	repo := newFakeRepo()
	repo.rooms = []domain.RoomView{
		{ID: 101, HotelID: 1, Number: 101, Price: 120, Capacity: 2},
		{ID: 102, HotelID: 1, Number: 102, Price: 150, Capacity: 4},
	}
	q := app.NewSearchService(repo, &fakeCache{}, time.Minute)

	query := domain.SearchQuery{Start: day("2024-06-15"), End: day("2024-06-20"), MinCapacity: ptr(2)}
	a, err := q.AvailableRooms(context.Background(), query)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	b, err := q.AvailableRooms(context.Background(), query)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("result sets differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("result order differs at %d: %d vs %d", i, a[i].ID, b[i].ID)
		}
	}
}

func TestAvailableRooms_BookingWriteInvalidatesCache(t *testing.T) {
	repo := newFakeRepo()
	repo.rooms = []domain.RoomView{{ID: 101, HotelID: 1, Number: 101, Price: 120, Capacity: 2}}
	cache := &fakeCache{}
	q := app.NewSearchService(repo, cache, 10*time.Minute)
	b := app.NewBookingService(repo, cache)

	query := domain.SearchQuery{Start: day("2024-06-15"), End: day("2024-06-20")}
	if _, err := q.AvailableRooms(context.Background(), query); err != nil {
		t.Fatalf("err: %v", err)
	}

	// A reservation bumps the availability epoch; the room disappears from
	// the repo and the next search must reflect that, not the cache.
	if _, err := b.CreateReservation(context.Background(), domain.ReservationDraft{
		ClientID: "111-22-3333", RoomID: 101, Start: day("2024-06-15"), End: day("2024-06-20"),
	}); err != nil {
		t.Fatalf("reservation: %v", err)
	}
	repo.rooms = nil

	out, err := q.AvailableRooms(context.Background(), query)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected fresh empty result after write, got %+v", out)
	}
	if repo.availCalls != 2 {
		t.Fatalf("repo hit %d times, want 2", repo.availCalls)
	}
}

func TestListHotels_Cache(t *testing.T) {
	repo := newFakeRepo()
	repo.hotels = []domain.HotelView{{ID: 1, ChainName: "Aurora", Stars: ptr(4)}}
	cache := &fakeCache{}
	q := app.NewSearchService(repo, cache, 10*time.Minute)

	out, err := q.ListHotels(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 || out[0].ChainName != "Aurora" {
		t.Fatalf("unexpected hotels: %+v", out)
	}

	repo.hotels = nil
	out2, err := q.ListHotels(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out2) != 1 {
		t.Fatalf("expected cached hotels, got %+v", out2)
	}
}
