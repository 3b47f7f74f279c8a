package hint

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/majnugame/majnu-go/internal/dependencies/mocks"
	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/storage/memory"
	"github.com/majnugame/majnu-go/internal/testutil"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
}

func (g *stubGenerator) Generate(ctx context.Context, domain, word string) (string, error) {
	g.calls++
	return g.text, g.err
}

type HintSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	clock     *mocks.MockClock
	generator *stubGenerator
	service   *Service
}

func TestHintSuite(t *testing.T) {
	suite.Run(t, new(HintSuite))
}

func (s *HintSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))
	s.generator = &stubGenerator{text: "A cult comedy about mistaken phone calls"}
	s.service = NewService(s.store, s.generator, s.clock, testutil.NopLogger())

	err := s.service.LoadCurated(map[string]map[string]string{
		"Bollywood": {"Sholay": "Two friends for hire against a bandit"},
	})
	s.Require().NoError(err)
}

func (s *HintSuite) TestCuratedHintWins() {
	text := s.service.HintFor(s.ctx, "bollywood", "sholay", "fallback")
	s.Equal("Two friends for hire against a bandit", text)
	s.Zero(s.generator.calls)
}

func (s *HintSuite) TestCuratedLookupIsCaseInsensitive() {
	text := s.service.HintFor(s.ctx, "BOLLYWOOD", "Sholay", "fallback")
	s.Equal("Two friends for hire against a bandit", text)
}

func (s *HintSuite) TestCachedHintBeatsGeneration() {
	err := s.store.SaveHint(s.ctx, &model.Hint{
		Domain: "bollywood",
		Word:   "dangal",
		Text:   "A wrestler trains his daughters",
	})
	s.Require().NoError(err)

	text := s.service.HintFor(s.ctx, "bollywood", "dangal", "fallback")
	s.Equal("A wrestler trains his daughters", text)
	s.Zero(s.generator.calls)
}

func (s *HintSuite) TestGeneratedHintIsCached() {
	text := s.service.HintFor(s.ctx, "bollywood", "hera feri", "fallback")
	s.Equal("A cult comedy about mistaken phone calls", text)
	s.Equal(1, s.generator.calls)

	cached, err := s.store.GetHint(s.ctx, "bollywood", "hera feri")
	s.Require().NoError(err)
	s.Equal(text, cached.Text)

	// Second resolution hits the cache
	s.Equal(text, s.service.HintFor(s.ctx, "bollywood", "hera feri", "fallback"))
	s.Equal(1, s.generator.calls)
}

func (s *HintSuite) TestGenerationFailureFallsBack() {
	s.generator.err = errors.New("api unavailable")
	text := s.service.HintFor(s.ctx, "bollywood", "lagaan", "Iconic films")
	s.Equal("Iconic films", text)
}

func (s *HintSuite) TestShortGeneratedHintIsRejected() {
	s.generator.text = "hm"
	text := s.service.HintFor(s.ctx, "bollywood", "lagaan", "Iconic films")
	s.Equal("Iconic films", text)

	_, err := s.store.GetHint(s.ctx, "bollywood", "lagaan")
	s.ErrorIs(err, model.ErrHintNotFound)
}

func (s *HintSuite) TestNilGeneratorFallsBack() {
	s.service = NewService(s.store, nil, s.clock, testutil.NopLogger())
	text := s.service.HintFor(s.ctx, "bollywood", "lagaan", "")
	s.Equal("A well-known bollywood name", text)
}
