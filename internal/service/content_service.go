package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/kuramaOn/Full-stack-Net/internal/apperr"
	"github.com/kuramaOn/Full-stack-Net/internal/cache"
	"github.com/kuramaOn/Full-stack-Net/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	recCachePrefix     = "rec:user:"
	recCacheTTLSeconds = 60 * 60
	recLimit           = 20
)

type ContentService struct {
	content ContentStore
	users   UserStore
}

func NewContentService(content ContentStore, users UserStore) *ContentService {
	return &ContentService{content: content, users: users}
}

func (s *ContentService) List(ctx context.Context, f models.ContentFilter) ([]models.ContentDoc, error) {
	return s.content.List(ctx, f)
}

// Get devuelve el contenido e incrementa views de forma atómica.
func (s *ContentService) Get(ctx context.Context, id primitive.ObjectID) (*models.ContentDoc, error) {
	c, err := s.content.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("content not found")
	}
	return c, nil
}

// ================== ADMIN: alta / edición / baja ==================

func (s *ContentService) Create(ctx context.Context, req *models.ContentCreateRequest) (*models.ContentDoc, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperr.Validation("%s", err.Error())
	}

	now := time.Now().UTC()
	c := &models.ContentDoc{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Genres:      req.Genres,
		ReleaseYear: req.ReleaseYear,
		Duration:    req.Duration,
		Seasons:     req.Seasons,
		Episodes:    req.Episodes,
		Rating:      models.RatingStats{Average: 0, Count: 0},
		AgeRating:   req.AgeRating,
		Cast:        req.Cast,
		Director:    req.Director,
		Writers:     req.Writers,
		Language:    req.Language,
		Subtitles:   req.Subtitles,
		Thumbnail:   req.Thumbnail,
		Banner:      req.Banner,
		Trailer:     req.Trailer,
		VideoURL:    req.VideoURL,
		Tags:        req.Tags,
		Status:      req.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c.AgeRating == "" {
		c.AgeRating = "PG-13"
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.Status == "" {
		c.Status = models.ContentStatusActive
	}
	if req.Featured != nil {
		c.Featured = *req.Featured
	}
	if req.Trending != nil {
		c.Trending = *req.Trending
	}
	if req.NewRelease != nil {
		c.NewRelease = *req.NewRelease
	}

	if err := s.content.Insert(ctx, c); err != nil {
		return nil, err
	}
	s.invalidateRecCache(ctx)
	return c, nil
}

func (s *ContentService) Update(ctx context.Context, id primitive.ObjectID, req *models.ContentUpdateRequest) (*models.ContentDoc, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperr.Validation("%s", err.Error())
	}

	c, err := s.content.ApplyUpdate(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("content not found")
	}
	s.invalidateRecCache(ctx)
	return c, nil
}

// Remove es una baja blanda: el contenido pasa a status inactive y deja de
// aparecer en listados, gets y recomendaciones.
func (s *ContentService) Remove(ctx context.Context, id primitive.ObjectID) error {
	matched, err := s.content.SetStatus(ctx, id, models.ContentStatusInactive)
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperr.NotFound("content not found")
	}
	s.invalidateRecCache(ctx)
	return nil
}

func (s *ContentService) invalidateRecCache(ctx context.Context) {
	if err := cache.DeletePrefix(ctx, recCachePrefix); err != nil {
		log.Printf("[cache] no se pudo invalidar recomendaciones: %v", err)
	}
}

// ================== RECOMENDACIONES ==================

// Recommend sugiere contenido activo según los géneros de los favoritos del
// usuario (o sus géneros preferidos si no tiene favoritos), excluyendo lo ya
// favoriteado. El resultado se cachea en Redis con TTL de 1 hora.
func (s *ContentService) Recommend(ctx context.Context, userID primitive.ObjectID) ([]models.ContentDoc, error) {
	key := fmt.Sprintf("%s%s", recCachePrefix, userID.Hex())

	var cached []models.ContentDoc
	if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}

	favs, err := s.content.FindActiveByIDs(ctx, u.Favorites)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	var genres []string
	for _, c := range favs {
		for _, g := range c.Genres {
			if _, ok := seen[g]; !ok {
				seen[g] = struct{}{}
				genres = append(genres, g)
			}
		}
	}
	// cold start: sin favoritos usamos las preferencias declaradas
	if len(genres) == 0 {
		genres = u.Preferences.FavoriteGenres
	}
	if len(genres) == 0 {
		return []models.ContentDoc{}, nil
	}

	items, err := s.content.FindByGenres(ctx, genres, u.Favorites, recLimit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ContentDoc{}
	}

	if err := cache.SetJSON(ctx, key, items, recCacheTTLSeconds); err != nil {
		log.Printf("[cache] no se pudo guardar recomendaciones: %v", err)
	}
	return items, nil
}
