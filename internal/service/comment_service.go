package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kuramaOn/Full-stack-Net/internal/apperr"
	"github.com/kuramaOn/Full-stack-Net/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CommentService struct {
	comments      CommentStore
	users         UserStore
	notifications NotificationStore
}

func NewCommentService(comments CommentStore, users UserStore, notifications NotificationStore) *CommentService {
	return &CommentService{comments: comments, users: users, notifications: notifications}
}

func validCommentText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return apperr.Validation("text is required")
	}
	if len(text) > models.MaxCommentLength {
		return apperr.Validation("text exceeds %d characters", models.MaxCommentLength)
	}
	return nil
}

// ListByContent devuelve los comentarios de un contenido con los autores
// (de comentarios y replies) ya resueltos, más nuevos primero.
func (s *CommentService) ListByContent(ctx context.Context, contentID primitive.ObjectID) ([]models.CommentView, error) {
	comments, err := s.comments.FindByContent(ctx, contentID)
	if err != nil {
		return nil, err
	}

	seen := map[primitive.ObjectID]struct{}{}
	var ids []primitive.ObjectID
	for _, c := range comments {
		if _, ok := seen[c.UserID]; !ok {
			seen[c.UserID] = struct{}{}
			ids = append(ids, c.UserID)
		}
		for _, rep := range c.Replies {
			if _, ok := seen[rep.UserID]; !ok {
				seen[rep.UserID] = struct{}{}
				ids = append(ids, rep.UserID)
			}
		}
	}

	authors, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.UserSummary, len(authors))
	for i := range authors {
		byID[authors[i].ID] = models.ToUserSummary(&authors[i])
	}

	out := make([]models.CommentView, 0, len(comments))
	for i := range comments {
		out = append(out, toCommentView(&comments[i], byID))
	}
	return out, nil
}

func toCommentView(c *models.CommentDoc, authors map[primitive.ObjectID]models.UserSummary) models.CommentView {
	replies := make([]models.ReplyView, 0, len(c.Replies))
	for _, rep := range c.Replies {
		replies = append(replies, models.ReplyView{
			User:      authors[rep.UserID],
			Text:      rep.Text,
			CreatedAt: rep.CreatedAt,
		})
	}
	likes := c.Likes
	if likes == nil {
		likes = []primitive.ObjectID{}
	}
	return models.CommentView{
		ID:        c.ID,
		ContentID: c.ContentID,
		User:      authors[c.UserID],
		Text:      c.Text,
		Likes:     likes,
		Replies:   replies,
		IsEdited:  c.IsEdited,
		EditedAt:  c.EditedAt,
		CreatedAt: c.CreatedAt,
	}
}

func (s *CommentService) Add(ctx context.Context, userID, contentID primitive.ObjectID, text string) (*models.CommentView, error) {
	if err := validCommentText(text); err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperr.NotFound("user not found")
	}

	now := time.Now().UTC()
	c := &models.CommentDoc{
		ContentID: contentID,
		UserID:    userID,
		Text:      strings.TrimSpace(text),
		Likes:     []primitive.ObjectID{},
		Replies:   []models.Reply{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Insert(ctx, c); err != nil {
		return nil, err
	}

	view := toCommentView(c, map[primitive.ObjectID]models.UserSummary{
		userID: models.ToUserSummary(author),
	})
	return &view, nil
}

// Edit solo lo puede hacer el autor; marca isEdited/editedAt.
func (s *CommentService) Edit(ctx context.Context, userID, commentID primitive.ObjectID, text string) (*models.CommentDoc, error) {
	if err := validCommentText(text); err != nil {
		return nil, err
	}

	c, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("comment not found")
	}
	if c.UserID != userID {
		return nil, apperr.Authorization("not authorized")
	}

	now := time.Now().UTC()
	if err := s.comments.SetText(ctx, commentID, strings.TrimSpace(text), now); err != nil {
		return nil, err
	}

	c.Text = strings.TrimSpace(text)
	c.IsEdited = true
	c.EditedAt = &now
	c.UpdatedAt = now
	return c, nil
}

// Delete: autor o admin.
func (s *CommentService) Delete(ctx context.Context, userID primitive.ObjectID, role string, commentID primitive.ObjectID) error {
	c, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c == nil {
		return apperr.NotFound("comment not found")
	}
	if c.UserID != userID && role != "admin" {
		return apperr.Authorization("not authorized")
	}
	return s.comments.Delete(ctx, commentID)
}

// ToggleLike: toggle de presencia sobre likes. En la transición ausente →
// presente, y solo si el que likea no es el autor, se notifica al autor.
func (s *CommentService) ToggleLike(ctx context.Context, userID, commentID primitive.ObjectID) (*models.CommentDoc, error) {
	c, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("comment not found")
	}

	if c.HasLike(userID) {
		if err := s.comments.RemoveLike(ctx, commentID, userID); err != nil {
			return nil, err
		}
		c.Likes = removeID(c.Likes, userID)
		return c, nil
	}

	if err := s.comments.AddLike(ctx, commentID, userID); err != nil {
		return nil, err
	}
	c.Likes = append(c.Likes, userID)

	if c.UserID != userID {
		liker, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		name := "Someone"
		if liker != nil {
			name = liker.Name
		}
		n := &models.NotificationDoc{
			UserID:    c.UserID,
			Type:      models.NotificationLike,
			Title:     "New Like",
			Message:   fmt.Sprintf("%s liked your comment", name),
			FromUser:  &userID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.notifications.Insert(ctx, n); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddReply agrega un reply (append-only, sin anidamiento) y notifica al
// autor del comentario si el que responde es otro usuario.
func (s *CommentService) AddReply(ctx context.Context, userID, commentID primitive.ObjectID, text string) (*models.CommentDoc, error) {
	if err := validCommentText(text); err != nil {
		return nil, err
	}

	c, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("comment not found")
	}

	reply := models.Reply{
		UserID:    userID,
		Text:      strings.TrimSpace(text),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.comments.PushReply(ctx, commentID, reply); err != nil {
		return nil, err
	}
	c.Replies = append(c.Replies, reply)

	if c.UserID != userID {
		replier, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		name := "Someone"
		if replier != nil {
			name = replier.Name
		}
		n := &models.NotificationDoc{
			UserID:    c.UserID,
			Type:      models.NotificationReply,
			Title:     "New Reply",
			Message:   fmt.Sprintf("%s replied to your comment", name),
			FromUser:  &userID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.notifications.Insert(ctx, n); err != nil {
			return nil, err
		}
	}
	return c, nil
}
