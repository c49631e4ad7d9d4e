package domain

import "errors"

var (
	// ErrProviderUnavailable is returned when a search or nutrient provider fails:
	// transport error, non-success status, or a payload that cannot be decoded.
	ErrProviderUnavailable = errors.New("nutrition provider unavailable")

	// ErrFoodNotFound is returned when a provider has no record for a food
	ErrFoodNotFound = errors.New("food not found")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidRule is returned when an advisory rule cannot be evaluated
	ErrInvalidRule = errors.New("invalid advisory rule")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
)
