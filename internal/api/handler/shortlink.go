package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/majnugame/majnu-go/internal/api/request"
	"github.com/majnugame/majnu-go/internal/api/response"
	"github.com/majnugame/majnu-go/internal/services/shortlink"
)

// ShortLinkHandler handles share link endpoints
type ShortLinkHandler struct {
	service *shortlink.Service
}

// NewShortLinkHandler creates a new short link handler
func NewShortLinkHandler(service *shortlink.Service) *ShortLinkHandler {
	return &ShortLinkHandler{service: service}
}

// Create handles POST /api/share-links
func (h *ShortLinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShareLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	link, err := h.service.Create(r.Context(), req.Target)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ShareLinkResponse{
		ID:     link.ID,
		Path:   "/api/s/" + link.ID,
		Target: link.Target,
	})
}

// Redirect handles GET /api/s/{id}
func (h *ShortLinkHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	link, err := h.service.Resolve(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	http.Redirect(w, r, link.Target, http.StatusTemporaryRedirect)
}
