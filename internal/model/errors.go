package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrHandleTaken   = errors.New("handle already taken")
	ErrHandleLocked  = errors.New("handle already set")
	ErrInvalidHandle = errors.New("handle must be 3-15 letters, numbers, or underscores")

	// Game errors
	ErrGameNotFound  = errors.New("game not found")
	ErrGameFinished  = errors.New("game already finished")
	ErrInvalidLetter = errors.New("guess must be a single letter a-z")

	// Word pool errors
	ErrUnknownDomain = errors.New("unknown domain")
	ErrEmptyDomain   = errors.New("domain has no words configured")

	// Daily puzzle errors
	ErrDailyCompleted      = errors.New("daily already completed")
	ErrDailyPuzzleNotFound = errors.New("daily puzzle not found")

	// Leaderboard errors
	ErrInvalidScope = errors.New("invalid leaderboard scope")

	// Rate limiting
	ErrRateLimited = errors.New("too many requests")

	// Short link errors
	ErrShortLinkNotFound = errors.New("short link not found")
	ErrInvalidTarget     = errors.New("target must be a valid http or https URL")

	// Hint errors
	ErrHintNotFound = errors.New("hint not cached")

	// Storage lookups
	ErrStatsNotFound        = errors.New("user stats not found")
	ErrRecordNotFound       = errors.New("leaderboard record not found")
	ErrSnapshotNotFound     = errors.New("rank snapshot not found")
	ErrDailyAttemptNotFound = errors.New("daily attempt not found")
	ErrStreakNotFound       = errors.New("daily streak not found")
	ErrAchievementNotFound  = errors.New("achievement not found")
)
