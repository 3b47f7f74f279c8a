// Package daily assigns the shared once-per-day puzzle and tracks per-user
// daily attempts and streaks.
package daily

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/majnugame/majnu-go/internal/datekeys"
	"github.com/majnugame/majnu-go/internal/dependencies/clock"
	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/services/words"
	"github.com/majnugame/majnu-go/internal/storage"
)

// historySize is how many recent daily picks are avoided on selection
const historySize = 15

// HintSource resolves a display hint for a puzzle word
type HintSource interface {
	HintFor(ctx context.Context, domain, word, fallback string) string
}

// Service owns the daily puzzle lifecycle. The puzzle for a date key is
// chosen once, deterministically, and shared by every player.
type Service struct {
	store  storage.Store
	words  *words.Service
	hints  HintSource
	clock  clock.Clock
	logger *slog.Logger
}

func NewService(store storage.Store, wordsSvc *words.Service, hints HintSource, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		words:  wordsSvc,
		hints:  hints,
		clock:  clk,
		logger: logger,
	}
}

// Ensure returns the puzzle for the given instant's UTC date, creating it on
// first call. Selection shuffles all (domain, word) candidates with a seed
// derived from the date key alone, then takes the first pair not among the
// last picks. Concurrent first calls may both compute the puzzle; they
// compute the same one, so the last write is harmless.
func (s *Service) Ensure(ctx context.Context, at time.Time) (*model.DailyPuzzle, error) {
	dateKey := datekeys.Date(at)

	existing, err := s.store.GetDailyPuzzle(ctx, dateKey)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrDailyPuzzleNotFound) {
		return nil, fmt.Errorf("loading daily puzzle: %w", err)
	}

	candidates := s.words.Candidates()
	if len(candidates) == 0 {
		return nil, model.ErrEmptyDomain
	}

	ids := make([]string, len(candidates))
	byID := make(map[string]words.Candidate, len(candidates))
	for i, c := range candidates {
		id := c.Domain + "::" + c.Word
		ids[i] = id
		byID[id] = c
	}
	shuffled := words.ShuffleDeterministic(ids, "daily:"+dateKey)

	history, err := s.store.GetDailyHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading daily history: %w", err)
	}
	recent := make(map[string]struct{}, len(history))
	for _, id := range history {
		recent[id] = struct{}{}
	}

	pickID := shuffled[0]
	for _, id := range shuffled {
		if _, ok := recent[id]; !ok {
			pickID = id
			break
		}
	}
	pick := byID[pickID]

	fallback := ""
	if domain, err := s.words.Domain(pick.Domain); err == nil {
		fallback = domain.Hint
	}

	puzzle := &model.DailyPuzzle{
		DateKey:   dateKey,
		Domain:    pick.Domain,
		Word:      pick.Word,
		Hint:      s.hints.HintFor(ctx, pick.Domain, pick.Word, fallback),
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.SaveDailyPuzzle(ctx, puzzle); err != nil {
		return nil, fmt.Errorf("saving daily puzzle: %w", err)
	}

	updated := append([]string{pickID}, history...)
	if len(updated) > historySize {
		updated = updated[:historySize]
	}
	if err := s.store.SaveDailyHistory(ctx, updated); err != nil {
		return nil, fmt.Errorf("saving daily history: %w", err)
	}

	s.logger.Info("daily puzzle assigned",
		"date_key", dateKey,
		"domain", pick.Domain,
	)
	return puzzle, nil
}

// Attempt returns the game a user already started for the date key, or
// ErrDailyAttemptNotFound.
func (s *Service) Attempt(ctx context.Context, userID model.UserID, dateKey string) (model.GameID, error) {
	return s.store.GetDailyAttempt(ctx, userID, dateKey)
}

// RecordAttempt binds a user's daily game to the date key. A user gets one
// attempt per day; callers must check Attempt first.
func (s *Service) RecordAttempt(ctx context.Context, userID model.UserID, dateKey string, gameID model.GameID) error {
	return s.store.SaveDailyAttempt(ctx, userID, dateKey, gameID)
}

// Streak returns the user's daily streak, zero-valued if they never played
func (s *Service) Streak(ctx context.Context, userID model.UserID) (*model.DailyStreak, error) {
	streak, err := s.store.GetDailyStreak(ctx, userID)
	if errors.Is(err, model.ErrStreakNotFound) {
		return &model.DailyStreak{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading daily streak: %w", err)
	}
	return streak, nil
}

// UpdateStreak settles a finished daily attempt into the user's streak. A
// win extends the streak when the previous play was yesterday and restarts
// it otherwise; a loss resets it. The update is idempotent per date key.
func (s *Service) UpdateStreak(ctx context.Context, userID model.UserID, dateKey string, won bool) (*model.DailyStreak, error) {
	streak, err := s.Streak(ctx, userID)
	if err != nil {
		return nil, err
	}
	if streak.LastPlayDate == dateKey {
		return streak, nil
	}

	if won {
		if streak.LastPlayDate == previousDateKey(dateKey) {
			streak.Current++
		} else {
			streak.Current = 1
		}
		if streak.Current > streak.Best {
			streak.Best = streak.Current
		}
	} else {
		streak.Current = 0
	}
	streak.LastPlayDate = dateKey
	streak.TotalPlayed++

	if err := s.store.SaveDailyStreak(ctx, streak); err != nil {
		return nil, fmt.Errorf("saving daily streak: %w", err)
	}
	return streak, nil
}

func previousDateKey(dateKey string) string {
	day, err := datekeys.ParseDate(dateKey)
	if err != nil {
		return ""
	}
	return datekeys.Date(day.AddDate(0, 0, -1))
}
