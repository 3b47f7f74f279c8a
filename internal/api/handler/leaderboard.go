package handler

import (
	"net/http"
	"strconv"

	"github.com/majnugame/majnu-go/internal/api/middleware"
	"github.com/majnugame/majnu-go/internal/api/response"
	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/services/leaderboard"
)

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	service *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(service *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// Get handles GET /api/leaderboard?scope=daily&limit=50&cursor=...
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	u := middleware.MustGetUser(r.Context())

	scope := model.LeaderboardScope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = model.ScopeDaily
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	page, err := h.service.Page(r.Context(), scope, u.ID, limit, r.URL.Query().Get("cursor"))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromPage(page))
}
