package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/majnugame/majnu-go/internal/model"
)

func TestDeltaLossIsFlat(t *testing.T) {
	for _, streak := range []int{0, 1, 3, 7, 50} {
		assert.Equal(t, -1, Delta(model.GameResultLoss, streak), "streak %d", streak)
	}
}

func TestDeltaWin(t *testing.T) {
	tests := []struct {
		name         string
		streakBefore int
		want         int
	}{
		{"fresh win", 0, 3},
		{"below bonus threshold", 2, 3},
		{"bonus starts at three", 3, 4},
		{"mid streak", 5, 6},
		{"bonus reaches cap", 7, 8},
		{"bonus stays capped", 10, 8},
		{"long streak stays capped", 100, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Delta(model.GameResultWin, tt.streakBefore))
		})
	}
}

func TestDeltaMatchesClosedForm(t *testing.T) {
	// Delta(win, s) == 3 + min(max(s-2, 0), 5) for all streaks
	for s := 0; s <= 20; s++ {
		bonus := s - 2
		if bonus < 0 {
			bonus = 0
		}
		if bonus > 5 {
			bonus = 5
		}
		assert.Equal(t, 3+bonus, Delta(model.GameResultWin, s), "streak %d", s)
	}
}
