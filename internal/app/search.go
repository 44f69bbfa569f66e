package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"hotelchain/internal/domain"
)

const (
	hotelsCacheKey = "hotels:all"
	// availEpochKey versions every availability cache entry; booking writes
	// bump it so a stale result set is never served after a write.
	availEpochKey = "rooms:avail:epoch"
)

type SearchService struct {
	repo     domain.BookingRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewSearchService(r domain.BookingRepository, c domain.Cache, ttl time.Duration) *SearchService {
	return &SearchService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *SearchService) ListHotels(ctx context.Context) ([]domain.HotelView, error) {
	var out []domain.HotelView
	if ok, _ := s.cache.Get(ctx, hotelsCacheKey, &out); ok {
		return out, nil
	}
	out, err := s.repo.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, hotelsCacheKey, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

// AvailableRooms returns rooms with no conflicting rental (or active
// reservation, when holds are enabled at the store) for [q.Start, q.End),
// narrowed by whatever filters q carries.
func (s *SearchService) AvailableRooms(ctx context.Context, q domain.SearchQuery) ([]domain.RoomView, error) {
	if q.Start.IsZero() || q.End.IsZero() {
		return nil, fmt.Errorf("%w: startDate and endDate", domain.ErrMissingField)
	}
	if !q.Start.Before(q.End) {
		return nil, domain.ErrInvalidDateRange
	}

	key := s.availCacheKey(ctx, q)
	var out []domain.RoomView
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out, err := s.repo.AvailableRooms(ctx, q)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *SearchService) availCacheKey(ctx context.Context, q domain.SearchQuery) string {
	var epoch int64
	_, _ = s.cache.Get(ctx, availEpochKey, &epoch)
	b, _ := json.Marshal(q)
	sum := sha1.Sum(b)
	return fmt.Sprintf("avail:%d:%s", epoch, hex.EncodeToString(sum[:]))
}
