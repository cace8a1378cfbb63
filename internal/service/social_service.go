package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/kuramaOn/Full-stack-Net/internal/apperr"
	"github.com/kuramaOn/Full-stack-Net/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SocialService struct {
	users         UserStore
	content       ContentStore
	notifications NotificationStore
}

func NewSocialService(users UserStore, content ContentStore, notifications NotificationStore) *SocialService {
	return &SocialService{users: users, content: content, notifications: notifications}
}

// Follow agrega la arista en ambos lados (following del que sigue, followers
// del seguido). Si falla el segundo write se revierte el primero para no
// dejar el grafo asimétrico.
func (s *SocialService) Follow(ctx context.Context, userID, targetID primitive.ObjectID) error {
	if userID == targetID {
		return apperr.Validation("cannot follow yourself")
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return apperr.NotFound("user not found")
	}

	current, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if current == nil {
		return apperr.NotFound("user not found")
	}

	if current.IsFollowing(targetID) {
		return apperr.Conflict("already following this user")
	}

	if err := s.users.AddFollowing(ctx, userID, targetID); err != nil {
		return err
	}
	if err := s.users.AddFollower(ctx, targetID, userID); err != nil {
		// compensación: revertir el lado que sí se escribió
		if rbErr := s.users.RemoveFollowing(ctx, userID, targetID); rbErr != nil {
			log.Printf("[social] rollback de follow falló: %v", rbErr)
		}
		return err
	}

	n := &models.NotificationDoc{
		UserID:    targetID,
		Type:      models.NotificationFollow,
		Title:     "New Follower",
		Message:   fmt.Sprintf("%s started following you", current.Name),
		FromUser:  &userID,
		Link:      "/profile/" + userID.Hex(),
		CreatedAt: time.Now().UTC(),
	}
	return s.notifications.Insert(ctx, n)
}

// Unfollow saca la arista de los dos lados. Es idempotente: no falla si no
// estaba siguiendo.
func (s *SocialService) Unfollow(ctx context.Context, userID, targetID primitive.ObjectID) error {
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return apperr.NotFound("user not found")
	}

	if err := s.users.RemoveFollowing(ctx, userID, targetID); err != nil {
		return err
	}
	return s.users.RemoveFollower(ctx, targetID, userID)
}

func (s *SocialService) Followers(ctx context.Context, userID primitive.ObjectID) ([]models.UserSummary, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return s.summaries(ctx, u.Followers)
}

func (s *SocialService) Following(ctx context.Context, userID primitive.ObjectID) ([]models.UserSummary, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return s.summaries(ctx, u.Following)
}

func (s *SocialService) summaries(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, models.ToUserSummary(&users[i]))
	}
	return out, nil
}

// ================== FEED ==================

const (
	feedPerUser = 3
	feedMax     = 20
)

type FeedItem struct {
	Type      string             `json:"type"` // favorite|rating
	User      models.UserSummary `json:"user"`
	Content   models.ContentDoc  `json:"content"`
	Rating    int                `json:"rating,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

// Feed: actividad reciente (favoritos y ratings) de los usuarios seguidos,
// más nueva primero, con tope de 20 items.
func (s *SocialService) Feed(ctx context.Context, userID primitive.ObjectID) ([]FeedItem, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}

	followed, err := s.users.FindByIDs(ctx, u.Following)
	if err != nil {
		return nil, err
	}

	// resolver de una sola vez todo el contenido referenciado
	var ids []primitive.ObjectID
	for i := range followed {
		favs := followed[i].Favorites
		if len(favs) > feedPerUser {
			favs = favs[:feedPerUser]
		}
		ids = append(ids, favs...)

		ratings := followed[i].Ratings
		if len(ratings) > feedPerUser {
			ratings = ratings[len(ratings)-feedPerUser:]
		}
		for _, rt := range ratings {
			ids = append(ids, rt.ContentID)
		}
	}

	resolved, err := s.content.FindActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.ContentDoc, len(resolved))
	for _, c := range resolved {
		byID[c.ID] = c
	}

	now := time.Now().UTC()
	var items []FeedItem
	for i := range followed {
		who := models.ToUserSummary(&followed[i])

		favs := followed[i].Favorites
		if len(favs) > feedPerUser {
			favs = favs[:feedPerUser]
		}
		for _, id := range favs {
			c, ok := byID[id]
			if !ok {
				continue // referencia colgante, se descarta
			}
			items = append(items, FeedItem{Type: "favorite", User: who, Content: c, Timestamp: now})
		}

		ratings := followed[i].Ratings
		if len(ratings) > feedPerUser {
			ratings = ratings[len(ratings)-feedPerUser:]
		}
		for _, rt := range ratings {
			c, ok := byID[rt.ContentID]
			if !ok {
				continue
			}
			items = append(items, FeedItem{Type: "rating", User: who, Content: c, Rating: rt.Rating, Timestamp: rt.RatedAt})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > feedMax {
		items = items[:feedMax]
	}
	return items, nil
}
