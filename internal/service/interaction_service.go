package service

import (
	"context"
	"time"

	"github.com/kuramaOn/Full-stack-Net/internal/apperr"
	"github.com/kuramaOn/Full-stack-Net/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InteractionService concentra el estado por-usuario sobre el catálogo:
// favoritos, watchlist, historial y ratings (con su agregado en el contenido).
type InteractionService struct {
	users   UserStore
	content ContentStore
}

func NewInteractionService(users UserStore, content ContentStore) *InteractionService {
	return &InteractionService{users: users, content: content}
}

// ================== TOGGLE FAVORITOS / WATCHLIST ==================

// ToggleFavorite: si está, lo saca; si no está, lo agrega. Devuelve el set
// resultante. No valida contra el catálogo (los reads toleran ids colgantes).
func (s *InteractionService) ToggleFavorite(ctx context.Context, userID, contentID primitive.ObjectID) ([]primitive.ObjectID, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}

	if u.HasFavorite(contentID) {
		if err := s.users.RemoveFavorite(ctx, userID, contentID); err != nil {
			return nil, err
		}
		return removeID(u.Favorites, contentID), nil
	}

	if err := s.users.AddFavorite(ctx, userID, contentID); err != nil {
		return nil, err
	}
	return append(u.Favorites, contentID), nil
}

func (s *InteractionService) ToggleWatchlist(ctx context.Context, userID, contentID primitive.ObjectID) ([]primitive.ObjectID, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}

	if u.HasInWatchlist(contentID) {
		if err := s.users.RemoveFromWatchlist(ctx, userID, contentID); err != nil {
			return nil, err
		}
		return removeID(u.Watchlist, contentID), nil
	}

	if err := s.users.AddToWatchlist(ctx, userID, contentID); err != nil {
		return nil, err
	}
	return append(u.Watchlist, contentID), nil
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// ================== RATINGS ==================

type RatingResult struct {
	UserRating    int                `json:"userRating"`
	ContentRating models.RatingStats `json:"contentRating"`
}

// SubmitRating registra (o actualiza) el rating 1..5 del usuario y recalcula
// el agregado del contenido. El recomputo del agregado es atómico a nivel
// store, así submissions concurrentes de distintos usuarios no se pierden.
func (s *InteractionService) SubmitRating(ctx context.Context, userID, contentID primitive.ObjectID, rating int) (*RatingResult, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	content, err := s.content.FindActiveByID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, apperr.NotFound("content not found")
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}

	now := time.Now().UTC()
	prev := u.RatingFor(contentID)

	var stats *models.RatingStats
	if prev != nil {
		// update: el count no cambia, solo se reemplaza el valor viejo.
		// El valor previo se captura antes del write, que lo pisa.
		oldRating := prev.Rating
		if err := s.users.UpdateRating(ctx, userID, contentID, rating, now); err != nil {
			return nil, err
		}
		stats, err = s.content.ApplyRatingChange(ctx, contentID, oldRating, rating)
	} else {
		// rating nuevo: entra al count y al promedio
		entry := models.UserRating{ContentID: contentID, Rating: rating, RatedAt: now}
		if err := s.users.PushRating(ctx, userID, entry); err != nil {
			return nil, err
		}
		stats, err = s.content.ApplyNewRating(ctx, contentID, rating)
	}
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, apperr.NotFound("content not found")
	}

	return &RatingResult{UserRating: rating, ContentRating: *stats}, nil
}

// ================== HISTORIAL ==================

// RecordProgress hace upsert de la entrada de historial para ese contenido:
// a lo sumo una entrada por contentId. El progress se recorta a [0,1].
func (s *InteractionService) RecordProgress(ctx context.Context, userID, contentID primitive.ObjectID, progress float64) ([]models.WatchHistoryEntry, error) {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}

	now := time.Now().UTC()

	if existing := u.HistoryFor(contentID); existing != nil {
		if err := s.users.UpdateHistory(ctx, userID, contentID, progress, now); err != nil {
			return nil, err
		}
		existing.Progress = progress
		existing.WatchedAt = now
		return u.WatchHistory, nil
	}

	entry := models.WatchHistoryEntry{ContentID: contentID, WatchedAt: now, Progress: progress}
	if err := s.users.PushHistory(ctx, userID, entry); err != nil {
		return nil, err
	}
	return append(u.WatchHistory, entry), nil
}
