package handler

import (
	"encoding/json"
	"net/http"

	"github.com/majnugame/majnu-go/internal/api/middleware"
	"github.com/majnugame/majnu-go/internal/api/request"
	"github.com/majnugame/majnu-go/internal/api/response"
	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/services/daily"
	"github.com/majnugame/majnu-go/internal/services/leaderboard"
	"github.com/majnugame/majnu-go/internal/services/user"
)

// UserHandler handles profile and handle endpoints
type UserHandler struct {
	users        *user.Service
	daily        *daily.Service
	leaderboards *leaderboard.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *user.Service, dailySvc *daily.Service, leaderboards *leaderboard.Service) *UserHandler {
	return &UserHandler{
		users:        users,
		daily:        dailySvc,
		leaderboards: leaderboards,
	}
}

// Me handles GET /api/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u := middleware.MustGetUser(r.Context())

	stats, err := h.users.Stats(r.Context(), u.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	achievements, err := h.users.Achievements(r.Context(), u.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	streak, err := h.daily.Streak(r.Context(), u.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	dailyRank, err := h.leaderboards.Rank(r.Context(), model.ScopeDaily, u.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	weeklyRank, err := h.leaderboards.Rank(r.Context(), model.ScopeWeekly, u.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.MeResponse{
		UserID:       string(u.ID),
		Handle:       u.Handle,
		Stats:        response.StatsFromModel(stats),
		Achievements: []response.AchievementResponse{},
		DailyStreak:  response.DailyStreakFromModel(streak),
		Ranks: response.RanksResponse{
			Daily:  dailyRank,
			Weekly: weeklyRank,
		},
	}
	for _, a := range achievements {
		resp.Achievements = append(resp.Achievements, response.AchievementFromModel(a))
	}

	response.JSON(w, http.StatusOK, resp)
}

// CheckHandle handles GET /api/handle?handle=name
func (h *UserHandler) CheckHandle(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("handle")

	available, err := h.users.HandleAvailable(r.Context(), raw)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HandleAvailabilityResponse{
		Handle:    raw,
		Available: available,
	})
}

// ClaimHandle handles POST /api/handle
func (h *UserHandler) ClaimHandle(w http.ResponseWriter, r *http.Request) {
	u := middleware.MustGetUser(r.Context())

	var req request.ClaimHandleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	claimed, err := h.users.ClaimHandle(r.Context(), u.ID, req.Handle)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HandleResponse{Handle: claimed.Handle})
}
