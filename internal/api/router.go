package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/majnugame/majnu-go/internal/api/handler"
	"github.com/majnugame/majnu-go/internal/api/middleware"
	"github.com/majnugame/majnu-go/internal/api/response"
	"github.com/majnugame/majnu-go/internal/dependencies/clock"
	"github.com/majnugame/majnu-go/internal/services/daily"
	"github.com/majnugame/majnu-go/internal/services/game"
	"github.com/majnugame/majnu-go/internal/services/leaderboard"
	"github.com/majnugame/majnu-go/internal/services/shortlink"
	"github.com/majnugame/majnu-go/internal/services/user"
	"github.com/majnugame/majnu-go/internal/services/words"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	Clock              clock.Clock
	UserService        *user.Service
	GameController     *game.Controller
	DailyService       *daily.Service
	LeaderboardService *leaderboard.Service
	ShortLinkService   *shortlink.Service
	WordsService       *words.Service
	SecureCookies      bool
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameController)
	dailyHandler := handler.NewDailyHandler(cfg.DailyService, cfg.GameController, cfg.Clock)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)
	userHandler := handler.NewUserHandler(cfg.UserService, cfg.DailyService, cfg.LeaderboardService)
	shortLinkHandler := handler.NewShortLinkHandler(cfg.ShortLinkService)

	identityMiddleware := middleware.Identity(cfg.UserService, cfg.SecureCookies)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Share link redirects and the status probe do not mint identities
	api.HandleFunc("/s/{id}", shortLinkHandler.Redirect).Methods(http.MethodGet)
	api.HandleFunc("/status", statusHandler(cfg.WordsService)).Methods(http.MethodGet)

	// Everything else runs with a resolved user in context
	identified := api.NewRoute().Subrouter()
	identified.Use(identityMiddleware)

	identified.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	identified.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	identified.HandleFunc("/games/{id}/guess", gameHandler.Guess).Methods(http.MethodPost)
	identified.HandleFunc("/games/{id}/give-up", gameHandler.GiveUp).Methods(http.MethodPost)

	identified.HandleFunc("/daily", dailyHandler.Get).Methods(http.MethodGet)
	identified.HandleFunc("/daily/game", dailyHandler.StartGame).Methods(http.MethodPost)

	identified.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)

	identified.HandleFunc("/me", userHandler.Me).Methods(http.MethodGet)
	identified.HandleFunc("/handle", userHandler.CheckHandle).Methods(http.MethodGet)
	identified.HandleFunc("/handle", userHandler.ClaimHandle).Methods(http.MethodPost)

	identified.HandleFunc("/share-links", shortLinkHandler.Create).Methods(http.MethodPost)

	return r
}

func statusHandler(wordsSvc *words.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := response.StatusResponse{
			Status:  "ok",
			Domains: []response.DomainResponse{},
		}
		for _, d := range wordsSvc.Domains() {
			resp.Domains = append(resp.Domains, response.DomainFromService(d))
		}
		response.JSON(w, http.StatusOK, resp)
	}
}
