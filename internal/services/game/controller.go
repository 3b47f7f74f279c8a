// Package game runs word-guessing sessions from creation to settlement.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/majnugame/majnu-go/internal/datekeys"
	"github.com/majnugame/majnu-go/internal/dependencies/clock"
	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/ratelimit"
	"github.com/majnugame/majnu-go/internal/services/daily"
	"github.com/majnugame/majnu-go/internal/services/settlement"
	"github.com/majnugame/majnu-go/internal/services/words"
	"github.com/majnugame/majnu-go/internal/storage"
)

// HintSource resolves a display hint for a word
type HintSource interface {
	HintFor(ctx context.Context, domain, word, fallback string) string
}

// GuessOutcome reports the effect of one guess
type GuessOutcome struct {
	Game      *model.Game
	IsRepeat  bool
	IsCorrect bool

	// Settled is non-nil when this guess ended the game
	Settled *settlement.Result
}

// Controller owns game sessions: creating them, applying guesses, and
// handing terminal games to settlement.
type Controller struct {
	store        storage.Store
	words        *words.Service
	daily        *daily.Service
	hints        HintSource
	settlement   *settlement.Service
	guessLimiter *ratelimit.Limiter
	clock        clock.Clock
	logger       *slog.Logger
}

func NewController(
	store storage.Store,
	wordsSvc *words.Service,
	dailySvc *daily.Service,
	hints HintSource,
	settlementSvc *settlement.Service,
	guessLimiter *ratelimit.Limiter,
	clk clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		store:        store,
		words:        wordsSvc,
		daily:        dailySvc,
		hints:        hints,
		settlement:   settlementSvc,
		guessLimiter: guessLimiter,
		clock:        clk,
		logger:       logger,
	}
}

// Create starts a standard game in the given domain. A preferred word that
// exists in the domain's pool overrides selection; otherwise the word is
// chosen deterministically for (user, today), skipping recently served
// words.
func (c *Controller) Create(ctx context.Context, userID model.UserID, domain, preferred string) (*model.Game, error) {
	dateSeed := datekeys.Date(c.clock.Now())
	answer, err := c.words.Select(ctx, userID, domain, preferred, dateSeed)
	if err != nil {
		return nil, err
	}

	fallback := ""
	if d, derr := c.words.Domain(domain); derr == nil {
		fallback = d.Hint
	}
	hint := c.hints.HintFor(ctx, domain, answer, fallback)

	game := c.newGame(userID, strings.ToLower(strings.TrimSpace(domain)), model.GameModeStandard, answer, hint)
	if err := c.store.SaveGame(ctx, game); err != nil {
		return nil, fmt.Errorf("saving game: %w", err)
	}

	c.logger.Info("game created",
		"game_id", game.ID,
		"user_id", userID,
		"domain", game.Domain,
		"mode", game.Mode,
	)
	return game, nil
}

// StartDaily starts or resumes the user's attempt at today's shared puzzle.
// The first call creates the attempt; later calls the same day return the
// in-progress game with resumed set, or ErrDailyCompleted once the attempt
// has reached a terminal state.
func (c *Controller) StartDaily(ctx context.Context, userID model.UserID) (*model.Game, bool, error) {
	now := c.clock.Now()
	dateKey := datekeys.Date(now)

	existingID, err := c.daily.Attempt(ctx, userID, dateKey)
	if err == nil {
		game, gerr := c.store.GetGame(ctx, existingID)
		if gerr != nil {
			return nil, false, fmt.Errorf("loading daily attempt: %w", gerr)
		}
		if game.IsTerminal() {
			return nil, false, model.ErrDailyCompleted
		}
		return game, true, nil
	}
	if !errors.Is(err, model.ErrDailyAttemptNotFound) {
		return nil, false, fmt.Errorf("checking daily attempt: %w", err)
	}

	puzzle, err := c.daily.Ensure(ctx, now)
	if err != nil {
		return nil, false, err
	}

	game := c.newGame(userID, puzzle.Domain, model.GameModeDaily, puzzle.Word, puzzle.Hint)
	if err := c.store.SaveGame(ctx, game); err != nil {
		return nil, false, fmt.Errorf("saving game: %w", err)
	}
	if err := c.daily.RecordAttempt(ctx, userID, dateKey, game.ID); err != nil {
		return nil, false, fmt.Errorf("recording daily attempt: %w", err)
	}

	c.logger.Info("daily game started",
		"game_id", game.ID,
		"user_id", userID,
		"date_key", dateKey,
	)
	return game, false, nil
}

// Get loads a game by ID
func (c *Controller) Get(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.store.GetGame(ctx, id)
}

// Guess applies one letter to an active game. Repeated letters are
// acknowledged without consuming a wrong guess. A guess that completes the
// mask wins; the wrong guess that reaches the limit loses. Either terminal
// transition settles the game before returning.
func (c *Controller) Guess(ctx context.Context, gameID model.GameID, userID model.UserID, rawLetter string) (*GuessOutcome, error) {
	game, err := c.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.UserID != userID {
		return nil, model.ErrGameNotFound
	}

	if !c.guessLimiter.Allow(userID) {
		return nil, model.ErrRateLimited
	}

	if game.IsTerminal() {
		return nil, model.ErrGameFinished
	}

	letter, err := NormalizeLetter(rawLetter)
	if err != nil {
		return nil, err
	}

	if game.HasGuessed(letter) {
		return &GuessOutcome{Game: game, IsRepeat: true}, nil
	}

	outcome := &GuessOutcome{Game: game}
	revealed := Reveal(game.Masked, game.Answer, letter)
	if revealed != game.Masked {
		outcome.IsCorrect = true
		game.Masked = revealed
		game.GuessedLetters = append(game.GuessedLetters, letter)
		if IsWin(game.Masked, game.Answer) {
			c.finish(game, model.GameResultWin)
		}
	} else {
		game.WrongLetters = append(game.WrongLetters, letter)
		game.WrongGuessCount++
		if IsLoss(game.WrongGuessCount) {
			game.Masked = game.Answer
			c.finish(game, model.GameResultLoss)
		}
	}

	if err := c.store.SaveGame(ctx, game); err != nil {
		return nil, fmt.Errorf("saving game: %w", err)
	}

	if game.IsTerminal() {
		settled, serr := c.settlement.Settle(ctx, game)
		if serr != nil {
			return nil, serr
		}
		outcome.Settled = settled
	}
	return outcome, nil
}

// GiveUp forfeits an active game, counting it as a loss. Giving up a
// finished game returns it unchanged, except that a finished game left
// unscored by a throttled settlement gets another settlement attempt.
func (c *Controller) GiveUp(ctx context.Context, gameID model.GameID, userID model.UserID) (*GuessOutcome, error) {
	game, err := c.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.UserID != userID {
		return nil, model.ErrGameNotFound
	}

	if game.IsTerminal() {
		outcome := &GuessOutcome{Game: game}
		if !game.Scored {
			settled, serr := c.settlement.Settle(ctx, game)
			if serr != nil {
				return nil, serr
			}
			outcome.Settled = settled
		}
		return outcome, nil
	}

	game.Masked = game.Answer
	game.WrongGuessCount = max(game.WrongGuessCount, model.MaxWrongGuesses)
	c.finish(game, model.GameResultLoss)
	if err := c.store.SaveGame(ctx, game); err != nil {
		return nil, fmt.Errorf("saving game: %w", err)
	}

	settled, err := c.settlement.Settle(ctx, game)
	if err != nil {
		return nil, err
	}

	c.logger.Info("game forfeited", "game_id", game.ID, "user_id", userID)
	return &GuessOutcome{Game: game, Settled: settled}, nil
}

func (c *Controller) newGame(userID model.UserID, domain string, mode model.GameMode, answer, hint string) *model.Game {
	return &model.Game{
		ID:        model.GameID(uuid.NewString()),
		UserID:    userID,
		Domain:    domain,
		Mode:      mode,
		Answer:    answer,
		Masked:    Mask(answer),
		Hint:      hint,
		Status:    model.GameStatusActive,
		CreatedAt: c.clock.Now(),
	}
}

func (c *Controller) finish(game *model.Game, result model.GameResult) {
	now := c.clock.Now()
	game.FinishedAt = &now
	game.Result = result
	if result == model.GameResultWin {
		game.Status = model.GameStatusWon
	} else {
		game.Status = model.GameStatusLost
	}
}
