package app_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"hotelchain/internal/app"
	"hotelchain/internal/domain"
)

func TestLoadCatalog(t *testing.T) {
	cat, err := app.LoadCatalog(filepath.Join("testdata", "catalog.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cat.Chains) != 1 || cat.Chains[0].Name != "Aurora Hotels" {
		t.Fatalf("unexpected chains: %+v", cat.Chains)
	}
	if len(cat.Chains[0].Hotels) != 1 || len(cat.Chains[0].Hotels[0].Rooms) != 3 {
		t.Fatalf("unexpected hotel/room counts: %+v", cat.Chains[0])
	}
	if len(cat.Clients) != 1 || len(cat.Employees) != 1 {
		t.Fatalf("unexpected people: %+v / %+v", cat.Clients, cat.Employees)
	}
}

func TestSeedChain_UpsertsParentsFirst(t *testing.T) {
	cat, err := app.LoadCatalog(filepath.Join("testdata", "catalog.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	repo := newFakeRepo()
	s := app.NewSeedService(repo)

	if err := s.SeedChain(context.Background(), cat.Chains[0]); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(repo.chains) != 1 || len(repo.upHotels) != 1 || len(repo.upRooms) != 3 {
		t.Fatalf("unexpected upserts: %d chains, %d hotels, %d rooms",
			len(repo.chains), len(repo.upHotels), len(repo.upRooms))
	}
	h := repo.upHotels[0]
	if h.ChainID != 1 || h.RoomCount == nil || *h.RoomCount != 3 {
		t.Fatalf("hotel not linked/counted: %+v", h)
	}
	// a room with no view falls back to "none"
	for _, r := range repo.upRooms {
		if r.View == "" {
			t.Fatalf("room %d has empty view", r.ID)
		}
	}
}

func TestSeedPeople(t *testing.T) {
	cat, err := app.LoadCatalog(filepath.Join("testdata", "catalog.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	repo := newFakeRepo()
	s := app.NewSeedService(repo)

	if err := s.SeedPeople(context.Background(), cat); err != nil {
		t.Fatalf("seed people: %v", err)
	}
	if len(repo.clients) != 1 || repo.clients[0].SSN != "111-22-3333" {
		t.Fatalf("clients: %+v", repo.clients)
	}
	if len(repo.employees) != 1 || repo.employees[0].SSN != "777-88-9999" {
		t.Fatalf("employees: %+v", repo.employees)
	}
}

func TestSeedChain_RejectsUnnamedChain(t *testing.T) {
	s := app.NewSeedService(newFakeRepo())
	err := s.SeedChain(context.Background(), app.CatalogChain{ID: 9})
	if err == nil {
		t.Fatalf("expected error for unnamed chain")
	}
	if !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}
