package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kuramaOn/Full-stack-Net/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(s *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: s}
}

type commentTextRequest struct {
	Text string `json:"text"`
}

func idParam(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
}

// @Summary Comentarios de un contenido
// @Tags comments
// @Produce json
// @Param id path string true "content id"
// @Success 200 {array} models.CommentView
// @Router /comments/{id} [get]
func (h *CommentHandler) ListByContent(w http.ResponseWriter, r *http.Request) {
	contentID, err := idParam(r)
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid content id")
		return
	}

	comments, err := h.svc.ListByContent(r.Context(), contentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondDataCount(w, http.StatusOK, comments, len(comments))
}

// @Summary Comentar un contenido
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "content id"
// @Param body body commentTextRequest true "texto (máx 1000)"
// @Success 201 {object} models.CommentView
// @Router /comments/{id} [post]
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	contentID, err := idParam(r)
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid content id")
		return
	}

	var req commentTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.Add(r.Context(), UserIDFromContext(r.Context()), contentID, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, c)
}

// @Summary Editar comentario propio
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "comment id"
// @Param body body commentTextRequest true "texto nuevo"
// @Success 200 {object} models.CommentDoc
// @Failure 403 {object} map[string]string
// @Router /comments/{id} [put]
func (h *CommentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	commentID, err := idParam(r)
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	var req commentTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.Edit(r.Context(), UserIDFromContext(r.Context()), commentID, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, c)
}

// @Summary Borrar comentario (autor o admin)
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Param id path string true "comment id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := idParam(r)
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	ctx := r.Context()
	if err := h.svc.Delete(ctx, UserIDFromContext(ctx), RoleFromContext(ctx), commentID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Comment deleted")
}

// @Summary Like/unlike de un comentario
// @Tags comments
// @Security BearerAuth
// @Produce json
// @Param id path string true "comment id"
// @Success 200 {object} models.CommentDoc
// @Router /comments/{id}/like [post]
func (h *CommentHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	commentID, err := idParam(r)
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	c, err := h.svc.ToggleLike(r.Context(), UserIDFromContext(r.Context()), commentID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, c)
}

// @Summary Responder un comentario
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "comment id"
// @Param body body commentTextRequest true "texto del reply"
// @Success 200 {object} models.CommentDoc
// @Router /comments/{id}/reply [post]
func (h *CommentHandler) AddReply(w http.ResponseWriter, r *http.Request) {
	commentID, err := idParam(r)
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	var req commentTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.AddReply(r.Context(), UserIDFromContext(r.Context()), commentID, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, c)
}
