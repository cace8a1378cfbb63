package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kuramaOn/Full-stack-Net/internal/models"
	"github.com/kuramaOn/Full-stack-Net/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: s}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string         `json:"token"`
	User  models.UserDoc `json:"user"`
}

// @Summary Register
// @Description Crea un usuario nuevo y devuelve su token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterData true "datos"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterData
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	token, u, err := h.svc.Register(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, authResponse{Token: token, User: *u})
}

// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credenciales"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	token, u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// credenciales inválidas siempre son 401, no 403
		respondErrorStatus(w, http.StatusUnauthorized, err.Error())
		return
	}
	respondData(w, http.StatusOK, authResponse{Token: token, User: *u})
}

// @Summary Perfil propio (favoritos/watchlist/historial resueltos)
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.ProfileView
// @Router /users/profile [get]
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.GetProfile(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, profile)
}

// @Summary Actualizar perfil propio
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.ProfileUpdate true "campos a actualizar"
// @Success 200 {object} models.UserDoc
// @Router /users/profile [put]
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var upd models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondErrorStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.svc.UpdateProfile(r.Context(), UserIDFromContext(r.Context()), upd)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, u)
}
