package domain

import "errors"

var (
	// ErrNotFound covers a missing referenced record, including a
	// reservation that is no longer active (double-conversion).
	ErrNotFound = errors.New("not found")

	ErrMissingField     = errors.New("missing required field")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidFilter    = errors.New("invalid filter value")

	// ErrRoomUnavailable is returned when the transactional re-check finds
	// a conflicting occupancy between search and write.
	ErrRoomUnavailable = errors.New("room unavailable for the requested dates")
)
