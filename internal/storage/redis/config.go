package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings. Players are never expired; sessions and pending bets
	// get a safety TTL so crashed deployments cannot strand records forever
	// (the session manager's sweep is the primary cleanup path).
	SessionTTL    time.Duration
	PendingBetTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:           "redis://localhost:6379",
		PoolSize:      10,
		MinIdleConns:  2,
		SessionTTL:    24 * time.Hour,
		PendingBetTTL: time.Hour,
	}
}
