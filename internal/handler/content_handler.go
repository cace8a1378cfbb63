package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kuramaOn/Full-stack-Net/internal/models"
	"github.com/kuramaOn/Full-stack-Net/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContentHandler struct {
	svc *service.ContentService
}

func NewContentHandler(s *service.ContentService) *ContentHandler {
	return &ContentHandler{svc: s}
}

func boolQuery(r *http.Request, key string) *bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	b := v == "true"
	return &b
}

// @Summary Listar catálogo (solo activo)
// @Tags content
// @Produce json
// @Param type query string false "movie|series"
// @Param genre query string false "filtrar por género"
// @Param search query string false "búsqueda por título"
// @Param featured query bool false "solo destacados"
// @Param trending query bool false "solo trending"
// @Param newRelease query bool false "solo estrenos"
// @Param sort query string false "rating|views|year (default: más nuevo)"
// @Param limit query int false "límite (default 50)"
// @Success 200 {array} models.ContentDoc
// @Router /content [get]
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	f := models.ContentFilter{
		Type:       r.URL.Query().Get("type"),
		Genre:      r.URL.Query().Get("genre"),
		Search:     r.URL.Query().Get("search"),
		Featured:   boolQuery(r, "featured"),
		Trending:   boolQuery(r, "trending"),
		NewRelease: boolQuery(r, "newRelease"),
		Sort:       r.URL.Query().Get("sort"),
		Limit:      limit,
	}

	items, err := h.svc.List(r.Context(), f)
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.ContentDoc{}
	}
	respondDataCount(w, http.StatusOK, items, len(items))
}

// @Summary Detalle de contenido (incrementa views)
// @Tags content
// @Produce json
// @Param id path string true "content id"
// @Success 200 {object} models.ContentDoc
// @Failure 404 {object} map[string]string
// @Router /content/{id} [get]
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid content id")
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, c)
}

// @Summary Recomendaciones por géneros de favoritos (cacheadas en Redis)
// @Tags content
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.ContentDoc
// @Router /content/recommendations [get]
func (h *ContentHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Recommend(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, items)
}

// ====== ADMIN: crear / actualizar / baja ======

// @Summary Crear contenido
// @Tags content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.ContentCreateRequest true "datos del contenido"
// @Success 201 {object} models.ContentDoc
// @Router /content [post]
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ContentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, c)
}

// @Summary Actualizar contenido
// @Tags content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "content id"
// @Param body body models.ContentUpdateRequest true "campos a actualizar"
// @Success 200 {object} models.ContentDoc
// @Router /content/{id} [put]
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid content id")
		return
	}

	var req models.ContentUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, c)
}

// @Summary Baja blanda de contenido (status → inactive)
// @Tags content
// @Security BearerAuth
// @Produce json
// @Param id path string true "content id"
// @Success 200 {object} map[string]string
// @Router /content/{id} [delete]
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondErrorStatus(w, http.StatusBadRequest, "invalid content id")
		return
	}

	if err := h.svc.Remove(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Content deleted successfully")
}
