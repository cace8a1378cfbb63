package service

import (
	"context"

	"github.com/kuramaOn/Full-stack-Net/internal/apperr"
	"github.com/kuramaOn/Full-stack-Net/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminService struct {
	users   AdminUserStore
	content AdminContentStore
}

func NewAdminService(users AdminUserStore, content AdminContentStore) *AdminService {
	return &AdminService{users: users, content: content}
}

type StatsOverview struct {
	models.UserCounts
	models.ContentCounts
}

type StatsResponse struct {
	Overview          StatsOverview           `json:"overview"`
	ContentStats      models.EngagementTotals `json:"contentStats"`
	TopRated          []models.ContentDoc     `json:"topRated"`
	MostViewed        []models.ContentDoc     `json:"mostViewed"`
	GenreStats        []models.BucketCount    `json:"genreStats"`
	RecentUsers       []models.UserDoc        `json:"recentUsers"`
	SubscriptionStats []models.BucketCount    `json:"subscriptionStats"`
}

// Stats arma el snapshot del dashboard: conteos, totales de engagement,
// top rankeados, distribución de géneros y de planes.
func (s *AdminService) Stats(ctx context.Context) (*StatsResponse, error) {
	userCounts, err := s.users.Counts(ctx)
	if err != nil {
		return nil, err
	}
	contentCounts, err := s.content.Counts(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.content.EngagementTotals(ctx)
	if err != nil {
		return nil, err
	}
	topRated, err := s.content.TopRated(ctx, 5)
	if err != nil {
		return nil, err
	}
	mostViewed, err := s.content.MostViewed(ctx, 5)
	if err != nil {
		return nil, err
	}
	genres, err := s.content.GenreStats(ctx)
	if err != nil {
		return nil, err
	}
	recent, _, err := s.users.ListAdmin(ctx, "", nil, 5, 0)
	if err != nil {
		return nil, err
	}
	subs, err := s.users.SubscriptionStats(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		Overview:          StatsOverview{UserCounts: userCounts, ContentCounts: contentCounts},
		ContentStats:      totals,
		TopRated:          topRated,
		MostViewed:        mostViewed,
		GenreStats:        genres,
		RecentUsers:       recent,
		SubscriptionStats: subs,
	}, nil
}

type UserPage struct {
	Users []models.UserDoc `json:"users"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Pages int              `json:"pages"`
}

func (s *AdminService) ListUsers(ctx context.Context, role string, isActive *bool, page, limit int) (*UserPage, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	users, total, err := s.users.ListAdmin(ctx, role, isActive, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &UserPage{Users: users, Total: total, Page: page, Pages: pages}, nil
}

func (s *AdminService) UpdateUser(ctx context.Context, id primitive.ObjectID, upd models.AdminUserUpdate) error {
	if err := validate.Struct(upd); err != nil {
		return apperr.Validation("%s", err.Error())
	}
	if upd.Name == nil && upd.Role == nil && upd.IsActive == nil && upd.Plan == nil {
		return apperr.Validation("no fields to update")
	}

	matched, err := s.users.AdminUpdate(ctx, id, upd)
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}
