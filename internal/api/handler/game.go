package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/majnugame/majnu-go/internal/api/middleware"
	"github.com/majnugame/majnu-go/internal/api/request"
	"github.com/majnugame/majnu-go/internal/api/response"
	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/services/game"
)

// GameHandler handles game session endpoints
type GameHandler struct {
	controller *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller *game.Controller) *GameHandler {
	return &GameHandler{controller: controller}
}

// Create handles POST /api/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	u := middleware.MustGetUser(r.Context())

	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	g, err := h.controller.Create(r.Context(), u.ID, req.Domain, req.Word)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// Get handles GET /api/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	u := middleware.MustGetUser(r.Context())
	id := model.GameID(mux.Vars(r)["id"])

	g, err := h.controller.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	if g.UserID != u.ID {
		WriteError(w, model.ErrGameNotFound)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// Guess handles POST /api/games/{id}/guess
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	u := middleware.MustGetUser(r.Context())
	id := model.GameID(mux.Vars(r)["id"])

	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	outcome, err := h.controller.Guess(r.Context(), id, u.ID, req.Letter)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, guessResponse(outcome))
}

// GiveUp handles POST /api/games/{id}/give-up
func (h *GameHandler) GiveUp(w http.ResponseWriter, r *http.Request) {
	u := middleware.MustGetUser(r.Context())
	id := model.GameID(mux.Vars(r)["id"])

	outcome, err := h.controller.GiveUp(r.Context(), id, u.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, guessResponse(outcome))
}

func guessResponse(outcome *game.GuessOutcome) response.GuessResponse {
	resp := response.GuessResponse{
		Game:      response.GameFromModel(outcome.Game),
		IsRepeat:  outcome.IsRepeat,
		IsCorrect: outcome.IsCorrect,
	}
	if outcome.Settled != nil {
		resp.Settlement = response.SettlementFromResult(outcome.Settled)
	}
	return resp
}
