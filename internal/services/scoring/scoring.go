// Package scoring computes score deltas for settled games.
package scoring

import "github.com/majnugame/majnu-go/internal/model"

const (
	// winBase is awarded for any win
	winBase = 3
	// lossPenalty is charged for any loss, independent of streak
	lossPenalty = -1
	// bonusThreshold is the streak length at which the win bonus starts
	bonusThreshold = 3
	// bonusCap limits the streak bonus
	bonusCap = 5

	// DailyWinBonus is added on top of Delta for winning the daily puzzle
	DailyWinBonus = 2
)

// Delta returns the score change for a finished game given the user's streak
// before settlement. Pure function of its inputs.
//
// A loss always costs 1 point. A win earns 3 points plus a streak bonus of
// min(streakBefore-2, 5) once the streak reaches 3; the bonus caps out at
// streaks of 7 and beyond.
func Delta(result model.GameResult, streakBefore int) int {
	if result == model.GameResultLoss {
		return lossPenalty
	}

	bonus := 0
	if streakBefore >= bonusThreshold {
		bonus = streakBefore - 2
		if bonus > bonusCap {
			bonus = bonusCap
		}
	}
	return winBase + bonus
}
