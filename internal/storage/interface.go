package storage

import (
	"context"

	"github.com/majnugame/majnu-go/internal/model"
)

// Store defines the interface for data persistence
type Store interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)

	// Handle index operations. Handles are indexed by their lowercased form
	// to enforce case-insensitive uniqueness.
	SaveHandleIndex(ctx context.Context, normalized string, userID model.UserID) error
	GetUserIDByHandle(ctx context.Context, normalized string) (model.UserID, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	ListGamesByUser(ctx context.Context, userID model.UserID) ([]*model.Game, error)

	// User stats operations
	SaveUserStats(ctx context.Context, stats *model.UserStats) error
	GetUserStats(ctx context.Context, userID model.UserID) (*model.UserStats, error)

	// Leaderboard operations. Records are keyed by (scope, scopeKey, userID);
	// new rows take a store-assigned insertion sequence from NextLeaderboardSeq.
	SaveLeaderboardRecord(ctx context.Context, scope model.LeaderboardScope, record *model.LeaderboardRecord) error
	GetLeaderboardRecord(ctx context.Context, scope model.LeaderboardScope, scopeKey string, userID model.UserID) (*model.LeaderboardRecord, error)
	ListLeaderboardRecords(ctx context.Context, scope model.LeaderboardScope, scopeKey string) ([]*model.LeaderboardRecord, error)
	NextLeaderboardSeq(ctx context.Context) (uint64, error)

	// Rank snapshot operations
	SaveRankSnapshot(ctx context.Context, snapshot *model.RankSnapshot) error
	GetRankSnapshot(ctx context.Context, scopeKey string, userID model.UserID) (*model.RankSnapshot, error)

	// Word history operations. Histories are per (user, domain), most-recent
	// first, bounded by the caller. A missing history reads as empty.
	GetWordHistory(ctx context.Context, userID model.UserID, domain string) ([]string, error)
	SaveWordHistory(ctx context.Context, userID model.UserID, domain string, words []string) error

	// Daily puzzle operations
	SaveDailyPuzzle(ctx context.Context, puzzle *model.DailyPuzzle) error
	GetDailyPuzzle(ctx context.Context, dateKey string) (*model.DailyPuzzle, error)
	GetDailyHistory(ctx context.Context) ([]string, error)
	SaveDailyHistory(ctx context.Context, keys []string) error
	SaveDailyAttempt(ctx context.Context, userID model.UserID, dateKey string, gameID model.GameID) error
	GetDailyAttempt(ctx context.Context, userID model.UserID, dateKey string) (model.GameID, error)
	SaveDailyStreak(ctx context.Context, streak *model.DailyStreak) error
	GetDailyStreak(ctx context.Context, userID model.UserID) (*model.DailyStreak, error)

	// Hint cache operations
	SaveHint(ctx context.Context, hint *model.Hint) error
	GetHint(ctx context.Context, domain, word string) (*model.Hint, error)

	// Achievement operations
	SaveAchievement(ctx context.Context, achievement *model.Achievement) error
	GetAchievement(ctx context.Context, userID model.UserID, key string) (*model.Achievement, error)
	ListAchievements(ctx context.Context, userID model.UserID) ([]*model.Achievement, error)

	// Short link operations
	SaveShortLink(ctx context.Context, link *model.ShortLink) error
	GetShortLink(ctx context.Context, id string) (*model.ShortLink, error)
}
