package service

import (
	"context"
	"sort"
	"time"

	"github.com/kuramaOn/Full-stack-Net/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stores en memoria para los tests de servicios. Imitan la semántica de los
// repos de Mongo ($addToSet, $pull, pipeline de rating) sin tocar la base.

// ====== USERS ======

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.UserDoc

	failAddFollower      error
	removeFollowingCalls int
}

func newFakeUserStore(users ...*models.UserDoc) *fakeUserStore {
	s := &fakeUserStore{users: map[primitive.ObjectID]*models.UserDoc{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.UserDoc, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.UserDoc, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.UserDoc, error) {
	var out []models.UserDoc
	seen := map[primitive.ObjectID]struct{}{}
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if u, ok := s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) Insert(_ context.Context, u *models.UserDoc) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, upd models.ProfileUpdate) error {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Avatar != nil {
		u.Avatar = *upd.Avatar
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.Preferences != nil {
		u.Preferences = *upd.Preferences
	}
	return nil
}

func addToSet(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}

func pull(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (s *fakeUserStore) AddFavorite(_ context.Context, userID, contentID primitive.ObjectID) error {
	s.users[userID].Favorites = addToSet(s.users[userID].Favorites, contentID)
	return nil
}

func (s *fakeUserStore) RemoveFavorite(_ context.Context, userID, contentID primitive.ObjectID) error {
	s.users[userID].Favorites = pull(s.users[userID].Favorites, contentID)
	return nil
}

func (s *fakeUserStore) AddToWatchlist(_ context.Context, userID, contentID primitive.ObjectID) error {
	s.users[userID].Watchlist = addToSet(s.users[userID].Watchlist, contentID)
	return nil
}

func (s *fakeUserStore) RemoveFromWatchlist(_ context.Context, userID, contentID primitive.ObjectID) error {
	s.users[userID].Watchlist = pull(s.users[userID].Watchlist, contentID)
	return nil
}

func (s *fakeUserStore) PushRating(_ context.Context, userID primitive.ObjectID, entry models.UserRating) error {
	u := s.users[userID]
	u.Ratings = append(u.Ratings, entry)
	return nil
}

func (s *fakeUserStore) UpdateRating(_ context.Context, userID, contentID primitive.ObjectID, rating int, at time.Time) error {
	u := s.users[userID]
	for i := range u.Ratings {
		if u.Ratings[i].ContentID == contentID {
			u.Ratings[i].Rating = rating
			u.Ratings[i].RatedAt = at
		}
	}
	return nil
}

func (s *fakeUserStore) PushHistory(_ context.Context, userID primitive.ObjectID, entry models.WatchHistoryEntry) error {
	u := s.users[userID]
	u.WatchHistory = append(u.WatchHistory, entry)
	return nil
}

func (s *fakeUserStore) UpdateHistory(_ context.Context, userID, contentID primitive.ObjectID, progress float64, at time.Time) error {
	u := s.users[userID]
	for i := range u.WatchHistory {
		if u.WatchHistory[i].ContentID == contentID {
			u.WatchHistory[i].Progress = progress
			u.WatchHistory[i].WatchedAt = at
		}
	}
	return nil
}

func (s *fakeUserStore) AddFollowing(_ context.Context, userID, targetID primitive.ObjectID) error {
	s.users[userID].Following = addToSet(s.users[userID].Following, targetID)
	return nil
}

func (s *fakeUserStore) RemoveFollowing(_ context.Context, userID, targetID primitive.ObjectID) error {
	s.removeFollowingCalls++
	s.users[userID].Following = pull(s.users[userID].Following, targetID)
	return nil
}

func (s *fakeUserStore) AddFollower(_ context.Context, userID, followerID primitive.ObjectID) error {
	if s.failAddFollower != nil {
		return s.failAddFollower
	}
	s.users[userID].Followers = addToSet(s.users[userID].Followers, followerID)
	return nil
}

func (s *fakeUserStore) RemoveFollower(_ context.Context, userID, followerID primitive.ObjectID) error {
	s.users[userID].Followers = pull(s.users[userID].Followers, followerID)
	return nil
}

// ====== CONTENT ======

type fakeContentStore struct {
	items map[primitive.ObjectID]*models.ContentDoc
}

func newFakeContentStore(items ...*models.ContentDoc) *fakeContentStore {
	s := &fakeContentStore{items: map[primitive.ObjectID]*models.ContentDoc{}}
	for _, c := range items {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		if c.Status == "" {
			c.Status = models.ContentStatusActive
		}
		s.items[c.ID] = c
	}
	return s
}

func (s *fakeContentStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.ContentDoc, error) {
	c, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *fakeContentStore) FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.ContentDoc, error) {
	c, ok := s.items[id]
	if !ok || c.Status != models.ContentStatusActive {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *fakeContentStore) FindActiveByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.ContentDoc, error) {
	var out []models.ContentDoc
	seen := map[primitive.ObjectID]struct{}{}
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if c, ok := s.items[id]; ok && c.Status == models.ContentStatusActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeContentStore) List(_ context.Context, _ models.ContentFilter) ([]models.ContentDoc, error) {
	var out []models.ContentDoc
	for _, c := range s.items {
		if c.Status == models.ContentStatusActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeContentStore) Insert(_ context.Context, c *models.ContentDoc) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.Status == "" {
		c.Status = models.ContentStatusActive
	}
	cp := *c
	s.items[c.ID] = &cp
	return nil
}

func (s *fakeContentStore) ApplyUpdate(_ context.Context, id primitive.ObjectID, upd *models.ContentUpdateRequest) (*models.ContentDoc, error) {
	c, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
	if upd.Status != nil {
		c.Status = *upd.Status
	}
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	return &cp, nil
}

func (s *fakeContentStore) SetStatus(_ context.Context, id primitive.ObjectID, status string) (int64, error) {
	c, ok := s.items[id]
	if !ok {
		return 0, nil
	}
	c.Status = status
	return 1, nil
}

func (s *fakeContentStore) IncrementViews(_ context.Context, id primitive.ObjectID) (*models.ContentDoc, error) {
	c, ok := s.items[id]
	if !ok || c.Status != models.ContentStatusActive {
		return nil, nil
	}
	c.Views++
	cp := *c
	return &cp, nil
}

func (s *fakeContentStore) ApplyNewRating(_ context.Context, id primitive.ObjectID, rating int) (*models.RatingStats, error) {
	c, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	total := c.Rating.Average*float64(c.Rating.Count) + float64(rating)
	c.Rating.Count++
	c.Rating.Average = total / float64(c.Rating.Count)
	cp := c.Rating
	return &cp, nil
}

func (s *fakeContentStore) ApplyRatingChange(_ context.Context, id primitive.ObjectID, oldRating, newRating int) (*models.RatingStats, error) {
	c, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	if c.Rating.Count > 0 {
		total := c.Rating.Average*float64(c.Rating.Count) - float64(oldRating) + float64(newRating)
		c.Rating.Average = total / float64(c.Rating.Count)
	}
	cp := c.Rating
	return &cp, nil
}

func (s *fakeContentStore) FindByGenres(_ context.Context, genres []string, exclude []primitive.ObjectID, limit int) ([]models.ContentDoc, error) {
	want := map[string]struct{}{}
	for _, g := range genres {
		want[g] = struct{}{}
	}
	skip := map[primitive.ObjectID]struct{}{}
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	var out []models.ContentDoc
	for _, c := range s.items {
		if c.Status != models.ContentStatusActive {
			continue
		}
		if _, excluded := skip[c.ID]; excluded {
			continue
		}
		for _, g := range c.Genres {
			if _, ok := want[g]; ok {
				out = append(out, *c)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating.Average != out[j].Rating.Average {
			return out[i].Rating.Average > out[j].Rating.Average
		}
		return out[i].Views > out[j].Views
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ====== COMMENTS ======

type fakeCommentStore struct {
	comments map[primitive.ObjectID]*models.CommentDoc
}

func newFakeCommentStore(comments ...*models.CommentDoc) *fakeCommentStore {
	s := &fakeCommentStore{comments: map[primitive.ObjectID]*models.CommentDoc{}}
	for _, c := range comments {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		s.comments[c.ID] = c
	}
	return s
}

func (s *fakeCommentStore) Insert(_ context.Context, c *models.CommentDoc) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	cp := *c
	s.comments[c.ID] = &cp
	return nil
}

func (s *fakeCommentStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.CommentDoc, error) {
	c, ok := s.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCommentStore) FindByContent(_ context.Context, contentID primitive.ObjectID) ([]models.CommentDoc, error) {
	var out []models.CommentDoc
	for _, c := range s.comments {
		if c.ContentID == contentID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *fakeCommentStore) SetText(_ context.Context, id primitive.ObjectID, text string, editedAt time.Time) error {
	c, ok := s.comments[id]
	if !ok {
		return nil
	}
	c.Text = text
	c.IsEdited = true
	c.EditedAt = &editedAt
	c.UpdatedAt = editedAt
	return nil
}

func (s *fakeCommentStore) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(s.comments, id)
	return nil
}

func (s *fakeCommentStore) AddLike(_ context.Context, id, userID primitive.ObjectID) error {
	c := s.comments[id]
	c.Likes = addToSet(c.Likes, userID)
	return nil
}

func (s *fakeCommentStore) RemoveLike(_ context.Context, id, userID primitive.ObjectID) error {
	c := s.comments[id]
	c.Likes = pull(c.Likes, userID)
	return nil
}

func (s *fakeCommentStore) PushReply(_ context.Context, id primitive.ObjectID, reply models.Reply) error {
	c := s.comments[id]
	c.Replies = append(c.Replies, reply)
	return nil
}

// ====== NOTIFICATIONS ======

type fakeNotificationStore struct {
	items []*models.NotificationDoc
}

func (s *fakeNotificationStore) Insert(_ context.Context, n *models.NotificationDoc) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	cp := *n
	s.items = append(s.items, &cp)
	return nil
}

func (s *fakeNotificationStore) ListByUser(_ context.Context, userID primitive.ObjectID, limit int) ([]models.NotificationDoc, error) {
	var out []models.NotificationDoc
	for _, n := range s.items {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeNotificationStore) CountUnread(_ context.Context, userID primitive.ObjectID) (int64, error) {
	var n int64
	for _, it := range s.items {
		if it.UserID == userID && !it.Read {
			n++
		}
	}
	return n, nil
}

func (s *fakeNotificationStore) MarkRead(_ context.Context, id, userID primitive.ObjectID) (int64, error) {
	for _, it := range s.items {
		if it.ID == id && it.UserID == userID {
			it.Read = true
			return 1, nil
		}
	}
	return 0, nil
}

func (s *fakeNotificationStore) MarkAllRead(_ context.Context, userID primitive.ObjectID) error {
	for _, it := range s.items {
		if it.UserID == userID {
			it.Read = true
		}
	}
	return nil
}

// forUser filtra las notificaciones de un usuario (helper de asserts).
func (s *fakeNotificationStore) forUser(userID primitive.ObjectID) []*models.NotificationDoc {
	var out []*models.NotificationDoc
	for _, n := range s.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}
