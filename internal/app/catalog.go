package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"hotelchain/internal/domain"
)

// Catalog is the seed file format: the management-side inventory of chains,
// hotels, rooms, clients and employees that the booking core treats as
// read-only.

type Catalog struct {
	Chains    []CatalogChain    `json:"chains"`
	Clients   []CatalogClient   `json:"clients"`
	Employees []CatalogEmployee `json:"employees"`
}

type CatalogChain struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	HQAddress *string        `json:"hqAddress"`
	Hotels    []CatalogHotel `json:"hotels"`
}

type CatalogHotel struct {
	ID      int64         `json:"id"`
	Name    *string       `json:"name"`
	Address *string       `json:"address"`
	Stars   *int          `json:"stars"`
	Zone    *string       `json:"zone"`
	Rooms   []CatalogRoom `json:"rooms"`
}

type CatalogRoom struct {
	ID         int64    `json:"id"`
	Number     int      `json:"number"`
	Price      float64  `json:"price"`
	Capacity   int      `json:"capacity"`
	View       string   `json:"view"`
	Extensible bool     `json:"extensible"`
	Area       *float64 `json:"area"`
	Damaged    bool     `json:"damaged"`
}

type CatalogClient struct {
	SSN  string  `json:"ssn"`
	Name *string `json:"name"`
}

type CatalogEmployee struct {
	SSN  string  `json:"ssn"`
	Name *string `json:"name"`
	Role *string `json:"role"`
}

func LoadCatalog(path string) (Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	var c Catalog
	if err := json.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return c, nil
}

type SeedService struct {
	repo domain.BookingRepository
}

func NewSeedService(r domain.BookingRepository) *SeedService {
	return &SeedService{repo: r}
}

// SeedChain upserts a chain with all its hotels and rooms, parents first to
// satisfy foreign keys.
func (s *SeedService) SeedChain(ctx context.Context, c CatalogChain) error {
	if c.Name == "" {
		return fmt.Errorf("chain %d: %w: name", c.ID, domain.ErrMissingField)
	}
	if err := s.repo.UpsertChain(ctx, domain.Chain{ID: c.ID, Name: c.Name, HQAddress: c.HQAddress}); err != nil {
		return fmt.Errorf("upsert chain %d: %w", c.ID, err)
	}
	for _, h := range c.Hotels {
		count := len(h.Rooms)
		if err := s.repo.UpsertHotel(ctx, domain.Hotel{
			ID:        h.ID,
			ChainID:   c.ID,
			Name:      h.Name,
			Address:   h.Address,
			Stars:     h.Stars,
			Zone:      h.Zone,
			RoomCount: &count,
		}); err != nil {
			return fmt.Errorf("upsert hotel %d: %w", h.ID, err)
		}
		for _, r := range h.Rooms {
			view := domain.ViewType(r.View)
			if view == "" {
				view = domain.ViewNone
			}
			if err := s.repo.UpsertRoom(ctx, domain.Room{
				ID:         r.ID,
				HotelID:    h.ID,
				Number:     r.Number,
				Price:      r.Price,
				Capacity:   r.Capacity,
				View:       view,
				Extensible: r.Extensible,
				Area:       r.Area,
				Damaged:    r.Damaged,
			}); err != nil {
				return fmt.Errorf("upsert room %d: %w", r.ID, err)
			}
		}
	}
	return nil
}

func (s *SeedService) SeedPeople(ctx context.Context, cat Catalog) error {
	for _, c := range cat.Clients {
		if err := s.repo.UpsertClient(ctx, domain.Client{SSN: c.SSN, Name: c.Name}); err != nil {
			return fmt.Errorf("upsert client %s: %w", c.SSN, err)
		}
	}
	for _, e := range cat.Employees {
		if err := s.repo.UpsertEmployee(ctx, domain.Employee{SSN: e.SSN, Name: e.Name, Role: e.Role}); err != nil {
			return fmt.Errorf("upsert employee %s: %w", e.SSN, err)
		}
	}
	return nil
}
