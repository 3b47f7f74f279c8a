package factory

import (
	"time"

	"github.com/majnugame/majnu-go/internal/dependencies/mocks"
	"github.com/majnugame/majnu-go/internal/services/words"
	"github.com/majnugame/majnu-go/internal/storage/memory"
	"github.com/majnugame/majnu-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// No hint generator is wired, so hints resolve from the curated set or the
// domain description.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, nil, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDomains loads a small fixed word set for testing
func (t *TestApp) LoadTestDomains() error {
	return t.WordsService.Load(map[string]words.Domain{
		"bollywood": {
			Hint:  "Iconic Hindi films",
			Words: []string{"heraferi", "sholay", "lagaan", "dangal", "gully boy"},
		},
		"startups": {
			Hint:  "Indian startups",
			Words: []string{"zomato", "paytm", "flipkart"},
		},
	})
}
