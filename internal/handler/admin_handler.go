package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/kuramaOn/Full-stack-Net/internal/models"
	"github.com/kuramaOn/Full-stack-Net/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(s *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: s}
}

// @Summary Estadísticas de la plataforma
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.StatsResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, stats)
}

// @Summary Listar usuarios (paginado)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param role query string false "user|admin"
// @Param isActive query bool false "filtrar por activos"
// @Param page query int false "página (default 1)"
// @Param limit query int false "límite (default 20)"
// @Success 200 {object} service.UserPage
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.svc.ListUsers(r.Context(),
		r.URL.Query().Get("role"),
		boolQuery(r, "isActive"),
		page, limit,
	)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

// @Summary Actualizar usuario (role/isActive/plan)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "user id"
// @Param body body models.AdminUserUpdate true "campos"
// @Success 200 {object} map[string]string
// @Router /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var upd models.AdminUserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondErrorStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.UpdateUser(r.Context(), id, upd); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "User updated successfully")
}

// @Summary Borrar usuario
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} map[string]string
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "User deleted successfully")
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Stats del dashboard en vivo (WebSocket, un frame cada 5s)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/ws/stats [get]
func (h *AdminHandler) StatsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "could not open websocket")
		return
	}
	defer conn.Close()

	// Mensaje inicial
	conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "WS abierto, enviando stats cada 5s",
	})

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	send := func() bool {
		stats, err := h.svc.Stats(r.Context())
		if err != nil {
			conn.WriteJSON(map[string]any{"type": "error", "error": err.Error()})
			return false
		}
		if err := conn.WriteJSON(map[string]any{
			"type":        "stats",
			"stats":       stats,
			"generatedAt": time.Now(),
		}); err != nil {
			log.Printf("[admin] ws write falló: %v", err)
			return false
		}
		return true
	}

	if !send() {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if !send() {
				return
			}
		}
	}
}
