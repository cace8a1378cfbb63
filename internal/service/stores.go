package service

import (
	"context"
	"time"

	"github.com/kuramaOn/Full-stack-Net/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Los servicios dependen de estas interfaces y no del driver de Mongo,
// así los tests pueden inyectar stores en memoria. Las implementaciones
// reales viven en internal/repository.

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.UserDoc, error)
	FindByEmail(ctx context.Context, email string) (*models.UserDoc, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.UserDoc, error)
	Insert(ctx context.Context, u *models.UserDoc) error
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) error

	AddFavorite(ctx context.Context, userID, contentID primitive.ObjectID) error
	RemoveFavorite(ctx context.Context, userID, contentID primitive.ObjectID) error
	AddToWatchlist(ctx context.Context, userID, contentID primitive.ObjectID) error
	RemoveFromWatchlist(ctx context.Context, userID, contentID primitive.ObjectID) error

	PushRating(ctx context.Context, userID primitive.ObjectID, entry models.UserRating) error
	UpdateRating(ctx context.Context, userID, contentID primitive.ObjectID, rating int, at time.Time) error

	PushHistory(ctx context.Context, userID primitive.ObjectID, entry models.WatchHistoryEntry) error
	UpdateHistory(ctx context.Context, userID, contentID primitive.ObjectID, progress float64, at time.Time) error

	AddFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error
	RemoveFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error
	AddFollower(ctx context.Context, userID, followerID primitive.ObjectID) error
	RemoveFollower(ctx context.Context, userID, followerID primitive.ObjectID) error
}

type ContentStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ContentDoc, error)
	FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.ContentDoc, error)
	// FindActiveByIDs resuelve solo los ids que existen y están activos:
	// las referencias colgantes se descartan en silencio.
	FindActiveByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.ContentDoc, error)
	List(ctx context.Context, f models.ContentFilter) ([]models.ContentDoc, error)
	Insert(ctx context.Context, c *models.ContentDoc) error
	ApplyUpdate(ctx context.Context, id primitive.ObjectID, upd *models.ContentUpdateRequest) (*models.ContentDoc, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (int64, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) (*models.ContentDoc, error)

	// Recomputo atómico del agregado de rating (pipeline update server-side).
	ApplyNewRating(ctx context.Context, id primitive.ObjectID, rating int) (*models.RatingStats, error)
	ApplyRatingChange(ctx context.Context, id primitive.ObjectID, oldRating, newRating int) (*models.RatingStats, error)

	FindByGenres(ctx context.Context, genres []string, exclude []primitive.ObjectID, limit int) ([]models.ContentDoc, error)
}

type CommentStore interface {
	Insert(ctx context.Context, c *models.CommentDoc) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.CommentDoc, error)
	FindByContent(ctx context.Context, contentID primitive.ObjectID) ([]models.CommentDoc, error)
	SetText(ctx context.Context, id primitive.ObjectID, text string, editedAt time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddLike(ctx context.Context, id, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, id, userID primitive.ObjectID) error
	PushReply(ctx context.Context, id primitive.ObjectID, reply models.Reply) error
}

type NotificationStore interface {
	Insert(ctx context.Context, n *models.NotificationDoc) error
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.NotificationDoc, error)
	CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error)
	// MarkRead devuelve cuántos documentos matchearon (0 = no existe o no es suyo).
	MarkRead(ctx context.Context, id, userID primitive.ObjectID) (int64, error)
	MarkAllRead(ctx context.Context, userID primitive.ObjectID) error
}

// Stores agregados para el dashboard de admin.

type AdminUserStore interface {
	Counts(ctx context.Context) (models.UserCounts, error)
	ListAdmin(ctx context.Context, role string, isActive *bool, limit, skip int) ([]models.UserDoc, int64, error)
	SubscriptionStats(ctx context.Context) ([]models.BucketCount, error)
	AdminUpdate(ctx context.Context, id primitive.ObjectID, upd models.AdminUserUpdate) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type AdminContentStore interface {
	Counts(ctx context.Context) (models.ContentCounts, error)
	EngagementTotals(ctx context.Context) (models.EngagementTotals, error)
	TopRated(ctx context.Context, limit int) ([]models.ContentDoc, error)
	MostViewed(ctx context.Context, limit int) ([]models.ContentDoc, error)
	GenreStats(ctx context.Context) ([]models.BucketCount, error)
}

// CatalogFlagStore lo usa el job de cron que refresca trending / newRelease.
type CatalogFlagStore interface {
	RefreshTrending(ctx context.Context, topN int) error
	RefreshNewRelease(ctx context.Context, minYear int) error
}
