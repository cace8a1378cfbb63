package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotificationNewRelease     = "new_release"
	NotificationComment        = "comment"
	NotificationLike           = "like"
	NotificationFollow         = "follow"
	NotificationReply          = "reply"
	NotificationRecommendation = "recommendation"
)

// NotificationDoc solo lo crea el servidor (fan-out), nunca un cliente.
type NotificationDoc struct {
	ID        primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID  `json:"userId" bson:"userId"`
	Type      string              `json:"type" bson:"type"`
	Title     string              `json:"title" bson:"title"`
	Message   string              `json:"message" bson:"message"`
	ContentID *primitive.ObjectID `json:"contentId,omitempty" bson:"contentId,omitempty"`
	FromUser  *primitive.ObjectID `json:"fromUser,omitempty" bson:"fromUser,omitempty"`
	Read      bool                `json:"read" bson:"read"`
	Link      string              `json:"link,omitempty" bson:"link,omitempty"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
}
