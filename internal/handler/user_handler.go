package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kuramaOn/Full-stack-Net/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler expone las interacciones del usuario autenticado con el
// catálogo: favoritos, watchlist, ratings e historial.
type UserHandler struct {
	svc *service.InteractionService
}

func NewUserHandler(s *service.InteractionService) *UserHandler {
	return &UserHandler{svc: s}
}

func contentIDParam(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, "contentId"))
}

// @Summary Toggle de favoritos
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param contentId path string true "content id"
// @Success 200 {array} string
// @Router /users/favorites/{contentId} [post]
func (h *UserHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	contentID, err := contentIDParam(r)
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid content id")
		return
	}

	set, err := h.svc.ToggleFavorite(r.Context(), UserIDFromContext(r.Context()), contentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, set)
}

// @Summary Toggle de watchlist
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param contentId path string true "content id"
// @Success 200 {array} string
// @Router /users/watchlist/{contentId} [post]
func (h *UserHandler) ToggleWatchlist(w http.ResponseWriter, r *http.Request) {
	contentID, err := contentIDParam(r)
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid content id")
		return
	}

	set, err := h.svc.ToggleWatchlist(r.Context(), UserIDFromContext(r.Context()), contentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, set)
}

type rateRequest struct {
	Rating int `json:"rating"`
}

// @Summary Calificar contenido (1..5)
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param contentId path string true "content id"
// @Param body body rateRequest true "rating"
// @Success 200 {object} service.RatingResult
// @Router /users/rate/{contentId} [post]
func (h *UserHandler) Rate(w http.ResponseWriter, r *http.Request) {
	contentID, err := contentIDParam(r)
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid content id")
		return
	}

	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.SubmitRating(r.Context(), UserIDFromContext(r.Context()), contentID, req.Rating)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

type historyRequest struct {
	Progress float64 `json:"progress"`
}

// @Summary Registrar progreso de reproducción
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param contentId path string true "content id"
// @Param body body historyRequest true "progress en [0,1]"
// @Success 200 {array} models.WatchHistoryEntry
// @Router /users/history/{contentId} [post]
func (h *UserHandler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	contentID, err := contentIDParam(r)
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid content id")
		return
	}

	var req historyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	history, err := h.svc.RecordProgress(r.Context(), UserIDFromContext(r.Context()), contentID, req.Progress)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, history)
}
