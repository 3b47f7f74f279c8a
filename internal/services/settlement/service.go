// Package settlement applies the consequences of a finished game exactly
// once: score delta, aggregate stats, leaderboard upserts, daily streaks,
// and achievement unlocks.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/majnugame/majnu-go/internal/datekeys"
	"github.com/majnugame/majnu-go/internal/dependencies/clock"
	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/ratelimit"
	"github.com/majnugame/majnu-go/internal/services/daily"
	"github.com/majnugame/majnu-go/internal/services/scoring"
	"github.com/majnugame/majnu-go/internal/storage"
)

// Result reports what one settlement changed
type Result struct {
	ScoreDelta     int
	Stats          *model.UserStats
	AlreadySettled bool
	Throttled      bool
	RequiresHandle bool
	Achievements   []*model.Achievement
	DailyStreak    *model.DailyStreak
}

// Service settles finished games. The game's Scored flag gates every
// mutation: settlement runs at most once per game, and the flag is persisted
// only after all other writes land, so a crash mid-settlement is retried
// rather than half-applied.
type Service struct {
	store         storage.Store
	daily         *daily.Service
	finishLimiter *ratelimit.Limiter
	clock         clock.Clock
	logger        *slog.Logger
}

func NewService(store storage.Store, dailySvc *daily.Service, finishLimiter *ratelimit.Limiter, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:         store,
		daily:         dailySvc,
		finishLimiter: finishLimiter,
		clock:         clk,
		logger:        logger,
	}
}

// Settle applies a terminal game's outcome. The caller must have set the
// game's Status, Result, and FinishedAt already. Settling an already-scored
// game is a no-op reporting the current stats.
func (s *Service) Settle(ctx context.Context, game *model.Game) (*Result, error) {
	if !game.IsTerminal() {
		return nil, fmt.Errorf("settling game %s: game is still active", game.ID)
	}

	user, err := s.store.GetUser(ctx, game.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading user for settlement: %w", err)
	}
	requiresHandle := !user.HasHandle()

	if game.Scored {
		stats, err := s.stats(ctx, game.UserID)
		if err != nil {
			return nil, err
		}
		return &Result{
			Stats:          stats,
			AlreadySettled: true,
			RequiresHandle: requiresHandle,
		}, nil
	}

	// Named players hitting finish faster than humanly plausible are
	// throttled; the game stays unscored so a later retry settles it.
	if user.HasHandle() && !s.finishLimiter.Allow(game.UserID) {
		s.logger.Warn("settlement throttled", "user_id", game.UserID, "game_id", game.ID)
		return &Result{Throttled: true, RequiresHandle: requiresHandle}, nil
	}

	stats, err := s.stats(ctx, game.UserID)
	if err != nil {
		return nil, err
	}

	streakBefore := stats.StreakCurrent
	delta := scoring.Delta(game.Result, streakBefore)
	if game.Mode == model.GameModeDaily && game.Result == model.GameResultWin {
		delta += scoring.DailyWinBonus
	}

	now := s.clock.Now()
	if game.Result == model.GameResultWin {
		stats.WinsAll++
		stats.StreakCurrent++
		if stats.StreakCurrent > stats.StreakBest {
			stats.StreakBest = stats.StreakCurrent
		}
	} else {
		stats.LossesAll++
		stats.StreakCurrent = 0
	}
	stats.ScoreTotal += delta
	stats.UpdatedAt = now

	if err := s.store.SaveUserStats(ctx, stats); err != nil {
		return nil, fmt.Errorf("saving user stats: %w", err)
	}

	scopeKeys := map[model.LeaderboardScope]string{
		model.ScopeDaily:  datekeys.Date(now),
		model.ScopeWeekly: datekeys.Week(now),
	}
	for scope, scopeKey := range scopeKeys {
		if err := s.upsertRecord(ctx, scope, scopeKey, game, stats, delta); err != nil {
			return nil, err
		}
	}

	result := &Result{
		ScoreDelta:     delta,
		Stats:          stats,
		RequiresHandle: requiresHandle,
	}

	if game.Mode == model.GameModeDaily {
		dateKey := datekeys.Date(now)
		if game.FinishedAt != nil {
			dateKey = datekeys.Date(*game.FinishedAt)
		}
		streak, err := s.daily.UpdateStreak(ctx, game.UserID, dateKey, game.Result == model.GameResultWin)
		if err != nil {
			return nil, err
		}
		result.DailyStreak = streak
	}

	unlocked, err := s.unlockAchievements(ctx, game, stats, streakBefore)
	if err != nil {
		return nil, err
	}
	result.Achievements = unlocked

	// Marking the game scored is the final write
	game.Scored = true
	if err := s.store.SaveGame(ctx, game); err != nil {
		return nil, fmt.Errorf("marking game scored: %w", err)
	}

	s.logger.Info("game settled",
		"game_id", game.ID,
		"user_id", game.UserID,
		"result", game.Result,
		"score_delta", delta,
		"streak", stats.StreakCurrent,
	)
	return result, nil
}

func (s *Service) stats(ctx context.Context, userID model.UserID) (*model.UserStats, error) {
	stats, err := s.store.GetUserStats(ctx, userID)
	if errors.Is(err, model.ErrStatsNotFound) {
		return model.NewUserStats(userID, s.clock.Now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading user stats: %w", err)
	}
	return stats, nil
}

func (s *Service) upsertRecord(ctx context.Context, scope model.LeaderboardScope, scopeKey string, game *model.Game, stats *model.UserStats, delta int) error {
	record, err := s.store.GetLeaderboardRecord(ctx, scope, scopeKey, game.UserID)
	if errors.Is(err, model.ErrRecordNotFound) {
		seq, seqErr := s.store.NextLeaderboardSeq(ctx)
		if seqErr != nil {
			return fmt.Errorf("assigning leaderboard seq: %w", seqErr)
		}
		record = &model.LeaderboardRecord{
			ID:       model.LeaderboardRecordID(scopeKey, game.UserID),
			ScopeKey: scopeKey,
			UserID:   game.UserID,
			Seq:      seq,
		}
	} else if err != nil {
		return fmt.Errorf("loading leaderboard record: %w", err)
	}

	if game.Result == model.GameResultWin {
		record.Wins++
	} else {
		record.Losses++
	}
	record.Score += delta
	if stats.StreakBest > record.StreakBest {
		record.StreakBest = stats.StreakBest
	}
	record.UpdatedAt = s.clock.Now()

	if err := s.store.SaveLeaderboardRecord(ctx, scope, record); err != nil {
		return fmt.Errorf("saving leaderboard record: %w", err)
	}
	return nil
}

func (s *Service) unlockAchievements(ctx context.Context, game *model.Game, stats *model.UserStats, streakBefore int) ([]*model.Achievement, error) {
	type candidate struct {
		key, title, description string
		earned                  bool
	}
	candidates := []candidate{
		{
			key:         "first_win",
			title:       "First Blood",
			description: "Win your first game",
			earned:      game.Result == model.GameResultWin && stats.WinsAll == 1,
		},
		{
			key:         "first_loss",
			title:       "Too Slow",
			description: "Lose your first game",
			earned:      game.Result == model.GameResultLoss && stats.LossesAll == 1,
		},
		{
			key:         "hot_streak",
			title:       "Hot Streak",
			description: "Win five games in a row",
			earned:      streakBefore >= 4 && stats.StreakCurrent >= 5,
		},
	}

	var unlocked []*model.Achievement
	for _, c := range candidates {
		if !c.earned {
			continue
		}

		_, err := s.store.GetAchievement(ctx, game.UserID, c.key)
		if err == nil {
			continue
		}
		if !errors.Is(err, model.ErrAchievementNotFound) {
			return nil, fmt.Errorf("checking achievement %s: %w", c.key, err)
		}

		achievement := &model.Achievement{
			ID:          uuid.NewString(),
			UserID:      game.UserID,
			Key:         c.key,
			Title:       c.title,
			Description: c.description,
			UnlockedAt:  s.clock.Now(),
		}
		if err := s.store.SaveAchievement(ctx, achievement); err != nil {
			return nil, fmt.Errorf("saving achievement %s: %w", c.key, err)
		}
		unlocked = append(unlocked, achievement)
	}
	return unlocked, nil
}
