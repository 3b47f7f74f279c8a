package shortlink

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/majnugame/majnu-go/internal/dependencies/mocks"
	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/storage/memory"
	"github.com/majnugame/majnu-go/internal/testutil"
)

type ShortLinkSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memory.Store
	random  *mocks.MockRandom
	service *Service
}

func TestShortLinkSuite(t *testing.T) {
	suite.Run(t, new(ShortLinkSuite))
}

func (s *ShortLinkSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.random = mocks.NewMockRandom()
	clk := mocks.NewMockClock(time.Date(2026, 8, 29, 11, 0, 0, 0, time.UTC))
	s.service = NewService(s.store, s.random, clk, testutil.NopLogger())
}

func (s *ShortLinkSuite) TestCreateAndResolve() {
	s.random.QueueString("abc123")

	link, err := s.service.Create(s.ctx, "https://majnu.example/share/xyz")
	s.Require().NoError(err)
	s.Equal("abc123", link.ID)
	s.Equal("https://majnu.example/share/xyz", link.Target)

	resolved, err := s.service.Resolve(s.ctx, "abc123")
	s.Require().NoError(err)
	s.Equal(link.Target, resolved.Target)
}

func (s *ShortLinkSuite) TestCreateRejectsBadTargets() {
	for _, target := range []string{
		"",
		"notaurl",
		"ftp://majnu.example/file",
		"javascript:alert(1)",
		"/relative/path",
	} {
		_, err := s.service.Create(s.ctx, target)
		s.ErrorIs(err, model.ErrInvalidTarget, "target %q", target)
	}
}

func (s *ShortLinkSuite) TestCreateRetriesOnCollision() {
	s.random.QueueString("taken1")
	_, err := s.service.Create(s.ctx, "https://majnu.example/first")
	s.Require().NoError(err)

	s.random.QueueString("taken1", "fresh2")
	link, err := s.service.Create(s.ctx, "https://majnu.example/second")
	s.Require().NoError(err)
	s.Equal("fresh2", link.ID)

	// The first link is untouched
	first, err := s.service.Resolve(s.ctx, "taken1")
	s.Require().NoError(err)
	s.Equal("https://majnu.example/first", first.Target)
}

func (s *ShortLinkSuite) TestCreateGivesUpAfterRepeatedCollisions() {
	s.random.QueueString("stuck0")
	_, err := s.service.Create(s.ctx, "https://majnu.example/first")
	s.Require().NoError(err)

	s.random.QueueString("stuck0", "stuck0", "stuck0", "stuck0", "stuck0")
	_, err = s.service.Create(s.ctx, "https://majnu.example/second")
	s.Error(err)
}

func (s *ShortLinkSuite) TestResolveUnknown() {
	_, err := s.service.Resolve(s.ctx, "nope")
	s.ErrorIs(err, model.ErrShortLinkNotFound)
}
