package repository

import (
	"context"

	"github.com/kuramaOn/Full-stack-Net/internal/db"
	"github.com/kuramaOn/Full-stack-Net/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{col: db.DB().Collection("notifications")}
}

func (r *NotificationRepository) Insert(ctx context.Context, n *models.NotificationDoc) error {
	res, err := r.col.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid
	}
	return nil
}

// ListByUser devuelve las notificaciones del usuario, más nuevas primero.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.NotificationDoc, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.NotificationDoc
	for cur.Next(ctx) {
		var n models.NotificationDoc
		if err := cur.Decode(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, cur.Err()
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"userId": userID, "read": false})
}

// MarkRead solo marca notificaciones del propio usuario.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "userId": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.UpdateMany(ctx,
		bson.M{"userId": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}
