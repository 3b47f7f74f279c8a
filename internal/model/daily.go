package model

import "time"

// DailyPuzzle is the single (domain, word) assignment for one UTC calendar
// day. Exactly one puzzle exists per date key; repeated selection for the
// same day returns the same assignment.
type DailyPuzzle struct {
	DateKey   string // YYYY-MM-DD in UTC
	Domain    string
	Word      string
	Hint      string
	CreatedAt time.Time
}

// DailyStreak tracks consecutive daily-puzzle wins for a user. Distinct from
// UserStats.StreakCurrent, which counts consecutive wins in any mode.
type DailyStreak struct {
	UserID       UserID
	Current      int
	Best         int
	LastPlayDate string // date key of the most recent daily attempt
	TotalPlayed  int
}

// Achievement is a one-time unlock for a user
type Achievement struct {
	ID          string
	UserID      UserID
	Key         string
	Title       string
	Description string
	UnlockedAt  time.Time
}

// ShortLink maps a short share ID to a full target URL
type ShortLink struct {
	ID        string
	Target    string
	CreatedAt time.Time
}

// Hint is a cached hint for a (domain, word) pair
type Hint struct {
	Domain    string
	Word      string
	Text      string
	CreatedAt time.Time
}
