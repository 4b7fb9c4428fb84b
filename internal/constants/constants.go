package constants

import "time"

var CacheTTL = struct {
	ParsedWish   time.Duration
	DeityListing time.Duration
}{
	ParsedWish:   6 * time.Hour,
	DeityListing: 30 * time.Minute,
}

var AIInputLimits = struct {
	MaxWishLength int
}{
	MaxWishLength: 500,
}

var SearchLimits = struct {
	DefaultLimit   int
	SimpleQueryCap int
	PronounceFloor int
}{
	DefaultLimit:   40,
	SimpleQueryCap: 20,
	PronounceFloor: 3,
}

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
}{
	FailureThreshold:    3,
	ResetTimeout:        2 * time.Minute,
	RateLimitTimeout:    10 * time.Minute,
	HealthCheckInterval: 1 * time.Minute,
}
