package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/majnugame/majnu-go/internal/api/middleware"
	"github.com/majnugame/majnu-go/internal/api/response"
	"github.com/majnugame/majnu-go/internal/datekeys"
	"github.com/majnugame/majnu-go/internal/dependencies/clock"
	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/services/daily"
	"github.com/majnugame/majnu-go/internal/services/game"
)

// DailyHandler handles daily puzzle endpoints
type DailyHandler struct {
	daily      *daily.Service
	controller *game.Controller
	clock      clock.Clock
}

// NewDailyHandler creates a new daily handler
func NewDailyHandler(dailySvc *daily.Service, controller *game.Controller, clk clock.Clock) *DailyHandler {
	return &DailyHandler{
		daily:      dailySvc,
		controller: controller,
		clock:      clk,
	}
}

// Get handles GET /api/daily. It describes today's puzzle without revealing
// the word, and reports whether the caller already has an attempt.
func (h *DailyHandler) Get(w http.ResponseWriter, r *http.Request) {
	u := middleware.MustGetUser(r.Context())

	puzzle, err := h.daily.Ensure(r.Context(), h.clock.Now())
	if err != nil {
		WriteError(w, err)
		return
	}

	now := h.clock.Now()
	resp := response.DailyResponse{
		DateKey:    puzzle.DateKey,
		Domain:     puzzle.Domain,
		Hint:       puzzle.Hint,
		Pattern:    game.Mask(puzzle.Word),
		WordLength: len(strings.ReplaceAll(puzzle.Word, " ", "")),
		ResetsIn:   int(datekeys.NextMidnight(now).Sub(now).Seconds()),
	}

	gameID, err := h.daily.Attempt(r.Context(), u.ID, puzzle.DateKey)
	if err == nil {
		resp.Played = true
		resp.GameID = string(gameID)
	} else if !errors.Is(err, model.ErrDailyAttemptNotFound) {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, resp)
}

// StartGame handles POST /api/daily/game, starting or resuming the caller's
// attempt at today's puzzle.
func (h *DailyHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	u := middleware.MustGetUser(r.Context())

	g, resumed, err := h.controller.StartDaily(r.Context(), u.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	status := http.StatusCreated
	if resumed {
		status = http.StatusOK
	}
	response.JSON(w, status, response.DailyGameResponse{
		Game:    response.GameFromModel(g),
		Resumed: resumed,
	})
}
