package domain_test

import (
	"testing"
	"time"

	"hotelchain/internal/domain"
)

func d(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps_HalfOpen(t *testing.T) {
	// Existing occupancy: 2024-06-10 -> 2024-06-15.
	a, b := d("2024-06-10"), d("2024-06-15")

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside", d("2024-06-11"), d("2024-06-13"), true},
		{"covers", d("2024-06-01"), d("2024-07-01"), true},
		{"straddles start", d("2024-06-08"), d("2024-06-11"), true},
		{"straddles end", d("2024-06-14"), d("2024-06-16"), true},
		{"touches end", d("2024-06-15"), d("2024-06-20"), false},
		{"touches start", d("2024-06-05"), d("2024-06-10"), false},
		{"before", d("2024-06-01"), d("2024-06-05"), false},
		{"after", d("2024-06-20"), d("2024-06-25"), false},
	}
	for _, c := range cases {
		if got := domain.Overlaps(a, b, c.start, c.end); got != c.want {
			t.Errorf("%s: Overlaps=%v, want %v", c.name, got, c.want)
		}
	}
}
