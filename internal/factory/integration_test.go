package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/majnugame/majnu-go/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.LoadTestDomains())
}

func (s *IntegrationSuite) newUser(handle string) *model.User {
	u, _, err := s.app.UserService.GetOrCreate(s.ctx, "")
	s.Require().NoError(err)
	if handle != "" {
		u, err = s.app.UserService.ClaimHandle(s.ctx, u.ID, handle)
		s.Require().NoError(err)
	}
	return u
}

// Full round through the wired services: create a game with a pinned word,
// lose it, and watch stats, leaderboards, and profile reflect the loss.
func (s *IntegrationSuite) TestCompleteGameFlow() {
	u := s.newUser("majnubhai")

	g, err := s.app.GameController.Create(s.ctx, u.ID, "bollywood", "sholay")
	s.Require().NoError(err)
	s.Equal("______", g.Masked)

	// Two right letters, then five wrong ones
	for _, letter := range []string{"s", "h"} {
		outcome, err := s.app.GameController.Guess(s.ctx, g.ID, u.ID, letter)
		s.Require().NoError(err)
		s.True(outcome.IsCorrect)
	}
	var final *model.Game
	for _, letter := range []string{"x", "q", "z", "j", "w"} {
		outcome, err := s.app.GameController.Guess(s.ctx, g.ID, u.ID, letter)
		s.Require().NoError(err)
		final = outcome.Game
	}

	s.Equal(model.GameStatusLost, final.Status)
	s.True(final.Scored)

	stats, err := s.app.UserService.Stats(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(1, stats.LossesAll)
	s.Equal(-1, stats.ScoreTotal)

	page, err := s.app.LeaderboardService.Page(s.ctx, model.ScopeDaily, u.ID, 10, "")
	s.Require().NoError(err)
	s.Require().NotNil(page.UserEntry)
	s.Equal(-1, page.UserEntry.Score)
	s.Equal("majnubhai", page.UserEntry.Handle)
}

// Winning the daily puzzle pays the bonus and starts the daily streak
func (s *IntegrationSuite) TestDailyFlow() {
	u := s.newUser("dailygrinder")

	g, resumed, err := s.app.GameController.StartDaily(s.ctx, u.ID)
	s.Require().NoError(err)
	s.False(resumed)

	var settled *model.Game
	guessed := map[rune]bool{}
	for _, r := range g.Answer {
		if r == ' ' || guessed[r] {
			continue
		}
		guessed[r] = true
		outcome, err := s.app.GameController.Guess(s.ctx, g.ID, u.ID, string(r))
		s.Require().NoError(err)
		settled = outcome.Game
	}

	s.Equal(model.GameStatusWon, settled.Status)

	stats, err := s.app.UserService.Stats(s.ctx, u.ID)
	s.Require().NoError(err)
	// Base win of 3 plus the daily bonus of 2
	s.Equal(5, stats.ScoreTotal)

	streak, err := s.app.DailyService.Streak(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(1, streak.Current)

	// Tomorrow's puzzle is a fresh attempt
	s.app.MockClock.Advance(24 * time.Hour)
	next, resumed, err := s.app.GameController.StartDaily(s.ctx, u.ID)
	s.Require().NoError(err)
	s.False(resumed)
	s.NotEqual(g.ID, next.ID)
}
