package handler

import (
	"net/http"

	"github.com/kuramaOn/Full-stack-Net/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SocialHandler struct {
	svc *service.SocialService
}

func NewSocialHandler(s *service.SocialService) *SocialHandler {
	return &SocialHandler{svc: s}
}

func userIDParam(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
}

// @Summary Seguir a un usuario
// @Tags social
// @Security BearerAuth
// @Produce json
// @Param userId path string true "user id"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /social/follow/{userId} [post]
func (h *SocialHandler) Follow(w http.ResponseWriter, r *http.Request) {
	targetID, err := userIDParam(r)
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.svc.Follow(r.Context(), UserIDFromContext(r.Context()), targetID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "User followed successfully")
}

// @Summary Dejar de seguir (idempotente)
// @Tags social
// @Security BearerAuth
// @Produce json
// @Param userId path string true "user id"
// @Success 200 {object} map[string]string
// @Router /social/follow/{userId} [delete]
func (h *SocialHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	targetID, err := userIDParam(r)
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.svc.Unfollow(r.Context(), UserIDFromContext(r.Context()), targetID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "User unfollowed successfully")
}

// @Summary Followers de un usuario
// @Tags social
// @Produce json
// @Param userId path string true "user id"
// @Success 200 {array} models.UserSummary
// @Router /social/followers/{userId} [get]
func (h *SocialHandler) Followers(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid user id")
		return
	}

	users, err := h.svc.Followers(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, users)
}

// @Summary Seguidos de un usuario
// @Tags social
// @Produce json
// @Param userId path string true "user id"
// @Success 200 {array} models.UserSummary
// @Router /social/following/{userId} [get]
func (h *SocialHandler) Following(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid user id")
		return
	}

	users, err := h.svc.Following(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, users)
}

// @Summary Feed de actividad de los usuarios seguidos
// @Tags social
// @Security BearerAuth
// @Produce json
// @Success 200 {array} service.FeedItem
// @Router /social/feed [get]
func (h *SocialHandler) Feed(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Feed(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []service.FeedItem{}
	}
	respondData(w, http.StatusOK, items)
}
