package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// User represents an anonymous player. Identity is cookie-backed; there is
// no authentication. Users are created lazily on first contact and never
// deleted.
type User struct {
	ID        UserID
	Handle    string // empty until claimed; immutable once set
	CreatedAt time.Time
}

// HasHandle returns true if the user has claimed a public handle
func (u *User) HasHandle() bool {
	return u.Handle != ""
}

// UserStats aggregates lifetime results for a user. It is mutated only
// through settlement.
type UserStats struct {
	UserID        UserID
	WinsAll       int
	LossesAll     int
	StreakCurrent int
	StreakBest    int
	ScoreTotal    int
	UpdatedAt     time.Time
}

// NewUserStats returns a zeroed stats record for a user
func NewUserStats(userID UserID, now time.Time) *UserStats {
	return &UserStats{
		UserID:    userID,
		UpdatedAt: now,
	}
}
