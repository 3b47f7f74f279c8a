package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings. Games and scoped leaderboard rows are time-bounded data;
	// users, stats, and handles persist indefinitely.
	GameTTL        time.Duration
	LeaderboardTTL time.Duration
	SnapshotTTL    time.Duration
	HintTTL        time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		PoolSize:       10,
		MinIdleConns:   2,
		GameTTL:        7 * 24 * time.Hour,
		LeaderboardTTL: 14 * 24 * time.Hour,
		SnapshotTTL:    14 * 24 * time.Hour,
		HintTTL:        30 * 24 * time.Hour,
	}
}
