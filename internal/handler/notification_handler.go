package handler

import (
	"net/http"

	"github.com/kuramaOn/Full-stack-Net/internal/models"
	"github.com/kuramaOn/Full-stack-Net/internal/service"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(s *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: s}
}

type notificationListResponse struct {
	Items       []models.NotificationDoc `json:"items"`
	UnreadCount int64                    `json:"unreadCount"`
}

// @Summary Notificaciones propias (polling), más nuevas primero
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} notificationListResponse
// @Router /notifications [get]
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	items, unread, err := h.svc.List(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, notificationListResponse{Items: items, UnreadCount: unread})
}

// @Summary Marcar una notificación como leída
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param id path string true "notification id"
// @Success 200 {object} map[string]string
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.svc.MarkRead(r.Context(), id, UserIDFromContext(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Notification marked as read")
}

// @Summary Marcar todas como leídas
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.MarkAllRead(r.Context(), UserIDFromContext(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "All notifications marked as read")
}
