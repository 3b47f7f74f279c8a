package redis

import (
	"fmt"
	"strings"

	"github.com/majnugame/majnu-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "majnu"

// Key generation functions for each entity type

func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

func handleIndexKey(normalized string) string {
	return fmt.Sprintf("%s:idx:handle:%s", keyPrefix, normalized)
}

func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesForUserIndexKey returns the Redis key for the SET of a user's games
func gamesForUserIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:games_for_user:%s", keyPrefix, userID)
}

func userStatsKey(userID model.UserID) string {
	return fmt.Sprintf("%s:stats:%s", keyPrefix, userID)
}

func leaderboardRecordKey(scope model.LeaderboardScope, id string) string {
	return fmt.Sprintf("%s:lb:%s:%s", keyPrefix, scope, id)
}

// leaderboardScopeIndexKey returns the Redis key for the SET of record IDs
// within one scope period
func leaderboardScopeIndexKey(scope model.LeaderboardScope, scopeKey string) string {
	return fmt.Sprintf("%s:idx:lb:%s:%s", keyPrefix, scope, scopeKey)
}

func leaderboardSeqKey() string {
	return fmt.Sprintf("%s:lb_seq", keyPrefix)
}

func rankSnapshotKey(scopeKey string, userID model.UserID) string {
	return fmt.Sprintf("%s:rank_snapshot:%s:%s", keyPrefix, scopeKey, userID)
}

func wordHistoryKey(userID model.UserID, domain string) string {
	return fmt.Sprintf("%s:word_history:%s:%s", keyPrefix, strings.ToLower(string(userID)), strings.ToLower(domain))
}

func dailyPuzzleKey(dateKey string) string {
	return fmt.Sprintf("%s:daily_puzzle:%s", keyPrefix, dateKey)
}

func dailyHistoryKey() string {
	return fmt.Sprintf("%s:daily_history", keyPrefix)
}

func dailyAttemptKey(userID model.UserID, dateKey string) string {
	return fmt.Sprintf("%s:daily_attempt:%s:%s", keyPrefix, userID, dateKey)
}

func dailyStreakKey(userID model.UserID) string {
	return fmt.Sprintf("%s:daily_streak:%s", keyPrefix, userID)
}

func hintCacheKey(domain, word string) string {
	return fmt.Sprintf("%s:hint:%s:%s", keyPrefix, strings.ToLower(domain), strings.ToLower(word))
}

func achievementRecordKey(userID model.UserID, key string) string {
	return fmt.Sprintf("%s:achievement:%s:%s", keyPrefix, userID, key)
}

// achievementsForUserIndexKey returns the Redis key for the SET of a user's
// unlocked achievement keys
func achievementsForUserIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:achievements:%s", keyPrefix, userID)
}

func shortLinkKey(id string) string {
	return fmt.Sprintf("%s:short_link:%s", keyPrefix, id)
}
