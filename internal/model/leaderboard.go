package model

import "time"

// LeaderboardScope is the time window a leaderboard covers
type LeaderboardScope string

const (
	ScopeDaily  LeaderboardScope = "daily"
	ScopeWeekly LeaderboardScope = "weekly"
)

// Valid returns true for a recognised scope
func (s LeaderboardScope) Valid() bool {
	return s == ScopeDaily || s == ScopeWeekly
}

// LeaderboardRecord is one user's aggregate within a single scope period.
// Rows are keyed by (ScopeKey, UserID) and never merged across periods.
type LeaderboardRecord struct {
	ID         string // scopeKey + ":" + userID
	ScopeKey   string // calendar-day or ISO-week key
	UserID     UserID
	Wins       int
	Losses     int
	Score      int
	StreakBest int
	UpdatedAt  time.Time

	// Seq is a store-assigned insertion sequence used as the final,
	// deterministic tiebreak when every ranking key is equal.
	Seq uint64
}

// LeaderboardRecordID builds the row identity for a scope period and user
func LeaderboardRecordID(scopeKey string, userID UserID) string {
	return scopeKey + ":" + string(userID)
}

// RankTrend describes movement relative to the previous rank snapshot
type RankTrend string

const (
	TrendUp   RankTrend = "up"
	TrendDown RankTrend = "down"
	TrendSame RankTrend = "same"
)

// RankSnapshot remembers a user's last observed rank within a scope period,
// used to derive the trend arrow on subsequent reads.
type RankSnapshot struct {
	ScopeKey   string
	UserID     UserID
	Rank       int
	CapturedAt time.Time
}
