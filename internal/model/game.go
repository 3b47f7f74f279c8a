package model

import "time"

// GameID uniquely identifies a game session
type GameID string

// GameStatus represents the lifecycle state of a game session
type GameStatus string

const (
	GameStatusActive GameStatus = "active"
	GameStatusWon    GameStatus = "won"
	GameStatusLost   GameStatus = "lost"
)

// GameMode distinguishes freely-started games from the once-per-day puzzle
type GameMode string

const (
	GameModeStandard GameMode = "standard"
	GameModeDaily    GameMode = "daily"
)

// GameResult is the settled outcome of a finished game
type GameResult string

const (
	GameResultWin  GameResult = "win"
	GameResultLoss GameResult = "loss"
)

// MaxWrongGuesses is the number of wrong guesses that loses a game
const MaxWrongGuesses = 5

// Game represents one round: a hidden answer, the revealed mask, and the
// letters guessed so far. A game becomes terminal (won/lost) exactly once
// and is immutable afterwards except for settlement bookkeeping.
type Game struct {
	ID              GameID
	UserID          UserID
	Domain          string
	Mode            GameMode
	Answer          string
	Masked          string
	Hint            string
	WrongGuessCount int
	Status          GameStatus
	GuessedLetters  []string
	WrongLetters    []string
	CreatedAt       time.Time
	FinishedAt      *time.Time

	// Settlement bookkeeping. Scored is set at most once and gates all
	// score and leaderboard mutation for this game.
	Scored bool
	Result GameResult
}

// IsTerminal returns true once the game has been won or lost
func (g *Game) IsTerminal() bool {
	return g.Status != GameStatusActive
}

// HasGuessed returns true if the letter is in either guess set
func (g *Game) HasGuessed(letter string) bool {
	for _, l := range g.GuessedLetters {
		if l == letter {
			return true
		}
	}
	for _, l := range g.WrongLetters {
		if l == letter {
			return true
		}
	}
	return false
}
