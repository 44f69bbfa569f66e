package domain

// Catalog entities are created by hotel management tooling (the seeder) and
// are read-only to the booking core.

type Chain struct {
	ID        int64
	Name      string
	HQAddress *string
}

type Hotel struct {
	ID        int64
	ChainID   int64
	Name      *string
	Address   *string
	Stars     *int // 1..5
	Zone      *string
	RoomCount *int
}

type ViewType string

const (
	ViewSea      ViewType = "sea"
	ViewMountain ViewType = "mountain"
	ViewNone     ViewType = "none"
)

type Room struct {
	ID         int64
	HotelID    int64
	Number     int // unique within hotel
	Price      float64
	Capacity   int
	View       ViewType
	Extensible bool
	Area       *float64
	Damaged    bool
}

type Client struct {
	SSN  string
	Name *string
}

type Employee struct {
	SSN  string
	Name *string
	Role *string
}

// Read models

// HotelView is a hotel enriched with its chain name for the catalog listing.
type HotelView struct {
	ID        int64
	ChainName string
	Name      *string
	Address   *string
	Stars     *int
	Zone      *string
	RoomCount *int
}

// RoomView is a room enriched with hotel/chain fields, as returned by
// availability search.
type RoomView struct {
	ID           int64
	HotelID      int64
	Number       int
	Price        float64
	Capacity     int
	View         ViewType
	Extensible   bool
	Area         *float64
	Damaged      bool
	HotelAddress *string
	HotelStars   *int
	Zone         *string
	ChainName    string
}
