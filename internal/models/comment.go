package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Largo máximo del texto de un comentario o reply.
const MaxCommentLength = 1000

// Reply embebido en el comentario. Solo se agregan, nunca se editan/borran.
type Reply struct {
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

type CommentDoc struct {
	ID        primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	ContentID primitive.ObjectID   `json:"contentId" bson:"contentId"`
	UserID    primitive.ObjectID   `json:"userId" bson:"userId"`
	Text      string               `json:"text" bson:"text"`
	Likes     []primitive.ObjectID `json:"likes" bson:"likes"`
	Replies   []Reply              `json:"replies" bson:"replies"`
	IsEdited  bool                 `json:"isEdited" bson:"isEdited"`
	EditedAt  *time.Time           `json:"editedAt,omitempty" bson:"editedAt,omitempty"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// HasLike indica si userID ya dio like a este comentario.
func (c *CommentDoc) HasLike(userID primitive.ObjectID) bool {
	return containsID(c.Likes, userID)
}

// ReplyView es un reply con los datos del autor resueltos.
type ReplyView struct {
	User      UserSummary `json:"user"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CommentView es lo que devuelve la API: comentario + autor resuelto.
type CommentView struct {
	ID        primitive.ObjectID   `json:"_id"`
	ContentID primitive.ObjectID   `json:"contentId"`
	User      UserSummary          `json:"user"`
	Text      string               `json:"text"`
	Likes     []primitive.ObjectID `json:"likes"`
	Replies   []ReplyView          `json:"replies"`
	IsEdited  bool                 `json:"isEdited"`
	EditedAt  *time.Time           `json:"editedAt,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}
