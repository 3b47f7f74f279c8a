package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/storage"
)

// Store is an in-memory implementation of the storage interface
type Store struct {
	mu sync.RWMutex

	users          map[model.UserID]*model.User
	handleIndex    map[string]model.UserID
	games          map[model.GameID]*model.Game
	userStats      map[model.UserID]*model.UserStats
	leaderboards   map[model.LeaderboardScope]map[string]*model.LeaderboardRecord
	leaderboardSeq uint64
	rankSnapshots  map[string]*model.RankSnapshot
	wordHistory    map[string][]string
	dailyPuzzles   map[string]*model.DailyPuzzle
	dailyHistory   []string
	dailyAttempts  map[string]model.GameID
	dailyStreaks   map[model.UserID]*model.DailyStreak
	hints          map[string]*model.Hint
	achievements   map[string]*model.Achievement
	shortLinks     map[string]*model.ShortLink
}

// New creates a new in-memory store instance
func New() *Store {
	return &Store{
		users:         make(map[model.UserID]*model.User),
		handleIndex:   make(map[string]model.UserID),
		games:         make(map[model.GameID]*model.Game),
		userStats:     make(map[model.UserID]*model.UserStats),
		leaderboards: map[model.LeaderboardScope]map[string]*model.LeaderboardRecord{
			model.ScopeDaily:  make(map[string]*model.LeaderboardRecord),
			model.ScopeWeekly: make(map[string]*model.LeaderboardRecord),
		},
		rankSnapshots: make(map[string]*model.RankSnapshot),
		wordHistory:   make(map[string][]string),
		dailyPuzzles:  make(map[string]*model.DailyPuzzle),
		dailyAttempts: make(map[string]model.GameID),
		dailyStreaks:  make(map[model.UserID]*model.DailyStreak),
		hints:         make(map[string]*model.Hint),
		achievements:  make(map[string]*model.Achievement),
		shortLinks:    make(map[string]*model.ShortLink),
	}
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

func historyKey(userID model.UserID, domain string) string {
	return strings.ToLower(string(userID)) + "::" + strings.ToLower(domain)
}

func hintKey(domain, word string) string {
	return strings.ToLower(domain) + "::" + strings.ToLower(word)
}

func attemptKey(userID model.UserID, dateKey string) string {
	return string(userID) + ":" + dateKey
}

func snapshotKey(scopeKey string, userID model.UserID) string {
	return scopeKey + ":" + string(userID)
}

func achievementKey(userID model.UserID, key string) string {
	return string(userID) + ":" + key
}

// User operations

func (s *Store) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *Store) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) SaveHandleIndex(ctx context.Context, normalized string, userID model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handleIndex[normalized] = userID
	return nil
}

func (s *Store) GetUserIDByHandle(ctx context.Context, normalized string) (model.UserID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.handleIndex[normalized]
	if !ok {
		return "", model.ErrUserNotFound
	}
	return userID, nil
}

// Game operations

func (s *Store) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	return nil
}

func (s *Store) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Store) ListGamesByUser(ctx context.Context, userID model.UserID) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var games []*model.Game
	for _, game := range s.games {
		if game.UserID == userID {
			games = append(games, game)
		}
	}
	return games, nil
}

// User stats operations

func (s *Store) SaveUserStats(ctx context.Context, stats *model.UserStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userStats[stats.UserID] = stats
	return nil
}

func (s *Store) GetUserStats(ctx context.Context, userID model.UserID) (*model.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats, ok := s.userStats[userID]
	if !ok {
		return nil, model.ErrStatsNotFound
	}
	return stats, nil
}

// Leaderboard operations

func (s *Store) SaveLeaderboardRecord(ctx context.Context, scope model.LeaderboardScope, record *model.LeaderboardRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaderboards[scope][record.ID] = record
	return nil
}

func (s *Store) GetLeaderboardRecord(ctx context.Context, scope model.LeaderboardScope, scopeKey string, userID model.UserID) (*model.LeaderboardRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.leaderboards[scope][model.LeaderboardRecordID(scopeKey, userID)]
	if !ok {
		return nil, model.ErrRecordNotFound
	}
	return record, nil
}

func (s *Store) ListLeaderboardRecords(ctx context.Context, scope model.LeaderboardScope, scopeKey string) ([]*model.LeaderboardRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []*model.LeaderboardRecord
	for _, record := range s.leaderboards[scope] {
		if record.ScopeKey == scopeKey {
			records = append(records, record)
		}
	}
	return records, nil
}

func (s *Store) NextLeaderboardSeq(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaderboardSeq++
	return s.leaderboardSeq, nil
}

// Rank snapshot operations

func (s *Store) SaveRankSnapshot(ctx context.Context, snapshot *model.RankSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rankSnapshots[snapshotKey(snapshot.ScopeKey, snapshot.UserID)] = snapshot
	return nil
}

func (s *Store) GetRankSnapshot(ctx context.Context, scopeKey string, userID model.UserID) (*model.RankSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.rankSnapshots[snapshotKey(scopeKey, userID)]
	if !ok {
		return nil, model.ErrSnapshotNotFound
	}
	return snapshot, nil
}

// Word history operations

func (s *Store) GetWordHistory(ctx context.Context, userID model.UserID, domain string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.wordHistory[historyKey(userID, domain)]
	result := make([]string, len(history))
	copy(result, history)
	return result, nil
}

func (s *Store) SaveWordHistory(ctx context.Context, userID model.UserID, domain string, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]string, len(words))
	copy(stored, words)
	s.wordHistory[historyKey(userID, domain)] = stored
	return nil
}

// Daily puzzle operations

func (s *Store) SaveDailyPuzzle(ctx context.Context, puzzle *model.DailyPuzzle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dailyPuzzles[puzzle.DateKey] = puzzle
	return nil
}

func (s *Store) GetDailyPuzzle(ctx context.Context, dateKey string) (*model.DailyPuzzle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	puzzle, ok := s.dailyPuzzles[dateKey]
	if !ok {
		return nil, model.ErrDailyPuzzleNotFound
	}
	return puzzle, nil
}

func (s *Store) GetDailyHistory(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, len(s.dailyHistory))
	copy(result, s.dailyHistory)
	return result, nil
}

func (s *Store) SaveDailyHistory(ctx context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]string, len(keys))
	copy(stored, keys)
	s.dailyHistory = stored
	return nil
}

func (s *Store) SaveDailyAttempt(ctx context.Context, userID model.UserID, dateKey string, gameID model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dailyAttempts[attemptKey(userID, dateKey)] = gameID
	return nil
}

func (s *Store) GetDailyAttempt(ctx context.Context, userID model.UserID, dateKey string) (model.GameID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gameID, ok := s.dailyAttempts[attemptKey(userID, dateKey)]
	if !ok {
		return "", model.ErrDailyAttemptNotFound
	}
	return gameID, nil
}

func (s *Store) SaveDailyStreak(ctx context.Context, streak *model.DailyStreak) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dailyStreaks[streak.UserID] = streak
	return nil
}

func (s *Store) GetDailyStreak(ctx context.Context, userID model.UserID) (*model.DailyStreak, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	streak, ok := s.dailyStreaks[userID]
	if !ok {
		return nil, model.ErrStreakNotFound
	}
	return streak, nil
}

// Hint cache operations

func (s *Store) SaveHint(ctx context.Context, hint *model.Hint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hints[hintKey(hint.Domain, hint.Word)] = hint
	return nil
}

func (s *Store) GetHint(ctx context.Context, domain, word string) (*model.Hint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hint, ok := s.hints[hintKey(domain, word)]
	if !ok {
		return nil, model.ErrHintNotFound
	}
	return hint, nil
}

// Achievement operations

func (s *Store) SaveAchievement(ctx context.Context, achievement *model.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.achievements[achievementKey(achievement.UserID, achievement.Key)] = achievement
	return nil
}

func (s *Store) GetAchievement(ctx context.Context, userID model.UserID, key string) (*model.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	achievement, ok := s.achievements[achievementKey(userID, key)]
	if !ok {
		return nil, model.ErrAchievementNotFound
	}
	return achievement, nil
}

func (s *Store) ListAchievements(ctx context.Context, userID model.UserID) ([]*model.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var achievements []*model.Achievement
	for _, achievement := range s.achievements {
		if achievement.UserID == userID {
			achievements = append(achievements, achievement)
		}
	}
	return achievements, nil
}

// Short link operations

func (s *Store) SaveShortLink(ctx context.Context, link *model.ShortLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shortLinks[link.ID] = link
	return nil
}

func (s *Store) GetShortLink(ctx context.Context, id string) (*model.ShortLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	link, ok := s.shortLinks[id]
	if !ok {
		return nil, model.ErrShortLinkNotFound
	}
	return link, nil
}
