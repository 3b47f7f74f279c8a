// Package factory wires the application's services together.
package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/majnugame/majnu-go/internal/dependencies/clock"
	"github.com/majnugame/majnu-go/internal/dependencies/random"
	"github.com/majnugame/majnu-go/internal/ratelimit"
	"github.com/majnugame/majnu-go/internal/services/daily"
	"github.com/majnugame/majnu-go/internal/services/game"
	"github.com/majnugame/majnu-go/internal/services/hint"
	"github.com/majnugame/majnu-go/internal/services/leaderboard"
	"github.com/majnugame/majnu-go/internal/services/settlement"
	"github.com/majnugame/majnu-go/internal/services/shortlink"
	"github.com/majnugame/majnu-go/internal/services/user"
	"github.com/majnugame/majnu-go/internal/services/words"
	"github.com/majnugame/majnu-go/internal/storage"
	"github.com/majnugame/majnu-go/internal/storage/memory"
	redisstorage "github.com/majnugame/majnu-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Rate limit settings
const (
	guessWindow = time.Minute
	guessLimit  = 60

	finishWindow = time.Minute
	finishLimit  = 8
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	WordsService       *words.Service
	HintService        *hint.Service
	DailyService       *daily.Service
	SettlementService  *settlement.Service
	GameController     *game.Controller
	LeaderboardService *leaderboard.Service
	UserService        *user.Service
	ShortLinkService   *shortlink.Service
}

// Config holds configuration for the application factory
type Config struct {
	// DomainsPath is the path to the word domains file (optional)
	// If empty, domains must be loaded manually
	DomainsPath string
	// HintsPath is the path to the curated hints file (optional)
	HintsPath string
	// OpenAIAPIKey enables hint generation when set
	OpenAIAPIKey string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	var generator hint.Generator
	if cfg.OpenAIAPIKey != "" {
		generator = hint.NewOpenAIGenerator(cfg.OpenAIAPIKey)
	}

	app := newWithDependencies(store, clock.New(), random.New(), generator, logger)

	if cfg.DomainsPath != "" {
		if err := app.WordsService.LoadFile(cfg.DomainsPath); err != nil {
			return nil, err
		}
	}
	if cfg.HintsPath != "" {
		if err := app.HintService.LoadCuratedFile(cfg.HintsPath); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, rnd random.Random, generator hint.Generator, logger *slog.Logger) *App {
	wordsService := words.NewService(store, logger)
	hintService := hint.NewService(store, generator, clk, logger)
	dailyService := daily.NewService(store, wordsService, hintService, clk, logger)

	finishLimiter := ratelimit.New(clk, finishWindow, finishLimit)
	settlementService := settlement.NewService(store, dailyService, finishLimiter, clk, logger)

	guessLimiter := ratelimit.New(clk, guessWindow, guessLimit)
	gameController := game.NewController(store, wordsService, dailyService, hintService, settlementService, guessLimiter, clk, logger)

	leaderboardService := leaderboard.NewService(store, clk, logger)
	userService := user.NewService(store, clk, logger)
	shortLinkService := shortlink.NewService(store, rnd, clk, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		WordsService:       wordsService,
		HintService:        hintService,
		DailyService:       dailyService,
		SettlementService:  settlementService,
		GameController:     gameController,
		LeaderboardService: leaderboardService,
		UserService:        userService,
		ShortLinkService:   shortLinkService,
	}
}
