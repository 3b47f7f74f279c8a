package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/storage"
)

// Store is a Redis-backed implementation of the storage interface
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis store instance
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

func (s *Store) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *Store) getJSON(ctx context.Context, key string, dest any, notFound error) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return notFound
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// User operations

func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	return s.setJSON(ctx, userKey(user.ID), user, 0)
}

func (s *Store) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	var user model.User
	if err := s.getJSON(ctx, userKey(id), &user, model.ErrUserNotFound); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) SaveHandleIndex(ctx context.Context, normalized string, userID model.UserID) error {
	return s.client.Set(ctx, handleIndexKey(normalized), string(userID), 0).Err()
}

func (s *Store) GetUserIDByHandle(ctx context.Context, normalized string) (model.UserID, error) {
	userID, err := s.client.Get(ctx, handleIndexKey(normalized)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrUserNotFound
		}
		return "", err
	}
	return model.UserID(userID), nil
}

// Game operations

func (s *Store) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	// Pipeline the save and user-index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL)
	pipe.SAdd(ctx, gamesForUserIndexKey(game.UserID), string(game.ID))
	pipe.Expire(ctx, gamesForUserIndexKey(game.UserID), s.cfg.GameTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var game model.Game
	if err := s.getJSON(ctx, gameKey(id), &game, model.ErrGameNotFound); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Store) ListGamesByUser(ctx context.Context, userID model.UserID) ([]*model.Game, error) {
	ids, err := s.client.SMembers(ctx, gamesForUserIndexKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	var games []*model.Game
	for _, id := range ids {
		game, err := s.GetGame(ctx, model.GameID(id))
		if err != nil {
			if errors.Is(err, model.ErrGameNotFound) {
				// Game expired but the index member lingered
				continue
			}
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

// User stats operations

func (s *Store) SaveUserStats(ctx context.Context, stats *model.UserStats) error {
	return s.setJSON(ctx, userStatsKey(stats.UserID), stats, 0)
}

func (s *Store) GetUserStats(ctx context.Context, userID model.UserID) (*model.UserStats, error) {
	var stats model.UserStats
	if err := s.getJSON(ctx, userStatsKey(userID), &stats, model.ErrStatsNotFound); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Leaderboard operations

func (s *Store) SaveLeaderboardRecord(ctx context.Context, scope model.LeaderboardScope, record *model.LeaderboardRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, leaderboardRecordKey(scope, record.ID), data, s.cfg.LeaderboardTTL)
	pipe.SAdd(ctx, leaderboardScopeIndexKey(scope, record.ScopeKey), record.ID)
	pipe.Expire(ctx, leaderboardScopeIndexKey(scope, record.ScopeKey), s.cfg.LeaderboardTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) GetLeaderboardRecord(ctx context.Context, scope model.LeaderboardScope, scopeKey string, userID model.UserID) (*model.LeaderboardRecord, error) {
	var record model.LeaderboardRecord
	key := leaderboardRecordKey(scope, model.LeaderboardRecordID(scopeKey, userID))
	if err := s.getJSON(ctx, key, &record, model.ErrRecordNotFound); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Store) ListLeaderboardRecords(ctx context.Context, scope model.LeaderboardScope, scopeKey string) ([]*model.LeaderboardRecord, error) {
	ids, err := s.client.SMembers(ctx, leaderboardScopeIndexKey(scope, scopeKey)).Result()
	if err != nil {
		return nil, err
	}

	var records []*model.LeaderboardRecord
	for _, id := range ids {
		var record model.LeaderboardRecord
		err := s.getJSON(ctx, leaderboardRecordKey(scope, id), &record, model.ErrRecordNotFound)
		if err != nil {
			if errors.Is(err, model.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		records = append(records, &record)
	}
	return records, nil
}

func (s *Store) NextLeaderboardSeq(ctx context.Context) (uint64, error) {
	seq, err := s.client.Incr(ctx, leaderboardSeqKey()).Result()
	if err != nil {
		return 0, err
	}
	return uint64(seq), nil
}

// Rank snapshot operations

func (s *Store) SaveRankSnapshot(ctx context.Context, snapshot *model.RankSnapshot) error {
	return s.setJSON(ctx, rankSnapshotKey(snapshot.ScopeKey, snapshot.UserID), snapshot, s.cfg.SnapshotTTL)
}

func (s *Store) GetRankSnapshot(ctx context.Context, scopeKey string, userID model.UserID) (*model.RankSnapshot, error) {
	var snapshot model.RankSnapshot
	if err := s.getJSON(ctx, rankSnapshotKey(scopeKey, userID), &snapshot, model.ErrSnapshotNotFound); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Word history operations

func (s *Store) GetWordHistory(ctx context.Context, userID model.UserID, domain string) ([]string, error) {
	words, err := s.client.LRange(ctx, wordHistoryKey(userID, domain), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return words, nil
}

func (s *Store) SaveWordHistory(ctx context.Context, userID model.UserID, domain string, words []string) error {
	key := wordHistoryKey(userID, domain)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	if len(words) > 0 {
		values := make([]interface{}, len(words))
		for i, w := range words {
			values[i] = w
		}
		pipe.RPush(ctx, key, values...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Daily puzzle operations

func (s *Store) SaveDailyPuzzle(ctx context.Context, puzzle *model.DailyPuzzle) error {
	return s.setJSON(ctx, dailyPuzzleKey(puzzle.DateKey), puzzle, 0)
}

func (s *Store) GetDailyPuzzle(ctx context.Context, dateKey string) (*model.DailyPuzzle, error) {
	var puzzle model.DailyPuzzle
	if err := s.getJSON(ctx, dailyPuzzleKey(dateKey), &puzzle, model.ErrDailyPuzzleNotFound); err != nil {
		return nil, err
	}
	return &puzzle, nil
}

func (s *Store) GetDailyHistory(ctx context.Context) ([]string, error) {
	keys, err := s.client.LRange(ctx, dailyHistoryKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *Store) SaveDailyHistory(ctx context.Context, keys []string) error {
	key := dailyHistoryKey()

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	if len(keys) > 0 {
		values := make([]interface{}, len(keys))
		for i, k := range keys {
			values[i] = k
		}
		pipe.RPush(ctx, key, values...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) SaveDailyAttempt(ctx context.Context, userID model.UserID, dateKey string, gameID model.GameID) error {
	return s.client.Set(ctx, dailyAttemptKey(userID, dateKey), string(gameID), s.cfg.GameTTL).Err()
}

func (s *Store) GetDailyAttempt(ctx context.Context, userID model.UserID, dateKey string) (model.GameID, error) {
	gameID, err := s.client.Get(ctx, dailyAttemptKey(userID, dateKey)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrDailyAttemptNotFound
		}
		return "", err
	}
	return model.GameID(gameID), nil
}

func (s *Store) SaveDailyStreak(ctx context.Context, streak *model.DailyStreak) error {
	return s.setJSON(ctx, dailyStreakKey(streak.UserID), streak, 0)
}

func (s *Store) GetDailyStreak(ctx context.Context, userID model.UserID) (*model.DailyStreak, error) {
	var streak model.DailyStreak
	if err := s.getJSON(ctx, dailyStreakKey(userID), &streak, model.ErrStreakNotFound); err != nil {
		return nil, err
	}
	return &streak, nil
}

// Hint cache operations

func (s *Store) SaveHint(ctx context.Context, hint *model.Hint) error {
	return s.setJSON(ctx, hintCacheKey(hint.Domain, hint.Word), hint, s.cfg.HintTTL)
}

func (s *Store) GetHint(ctx context.Context, domain, word string) (*model.Hint, error) {
	var hint model.Hint
	if err := s.getJSON(ctx, hintCacheKey(domain, word), &hint, model.ErrHintNotFound); err != nil {
		return nil, err
	}
	return &hint, nil
}

// Achievement operations

func (s *Store) SaveAchievement(ctx context.Context, achievement *model.Achievement) error {
	data, err := json.Marshal(achievement)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, achievementRecordKey(achievement.UserID, achievement.Key), data, 0)
	pipe.SAdd(ctx, achievementsForUserIndexKey(achievement.UserID), achievement.Key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Store) GetAchievement(ctx context.Context, userID model.UserID, key string) (*model.Achievement, error) {
	var achievement model.Achievement
	if err := s.getJSON(ctx, achievementRecordKey(userID, key), &achievement, model.ErrAchievementNotFound); err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (s *Store) ListAchievements(ctx context.Context, userID model.UserID) ([]*model.Achievement, error) {
	keys, err := s.client.SMembers(ctx, achievementsForUserIndexKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	var achievements []*model.Achievement
	for _, key := range keys {
		achievement, err := s.GetAchievement(ctx, userID, key)
		if err != nil {
			if errors.Is(err, model.ErrAchievementNotFound) {
				continue
			}
			return nil, err
		}
		achievements = append(achievements, achievement)
	}
	return achievements, nil
}

// Short link operations

func (s *Store) SaveShortLink(ctx context.Context, link *model.ShortLink) error {
	return s.setJSON(ctx, shortLinkKey(link.ID), link, 0)
}

func (s *Store) GetShortLink(ctx context.Context, id string) (*model.ShortLink, error) {
	var link model.ShortLink
	if err := s.getJSON(ctx, shortLinkKey(id), &link, model.ErrShortLinkNotFound); err != nil {
		return nil, err
	}
	return &link, nil
}
