package repository

import (
	"context"
	"time"

	"github.com/kuramaOn/Full-stack-Net/internal/db"
	"github.com/kuramaOn/Full-stack-Net/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{col: db.DB().Collection("comments")}
}

func (r *CommentRepository) Insert(ctx context.Context, c *models.CommentDoc) error {
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CommentDoc, error) {
	var c models.CommentDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &c, err
}

// FindByContent devuelve los comentarios de un contenido, más nuevos primero.
func (r *CommentRepository) FindByContent(ctx context.Context, contentID primitive.ObjectID) ([]models.CommentDoc, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := r.col.Find(ctx, bson.M{"contentId": contentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.CommentDoc
	for cur.Next(ctx) {
		var c models.CommentDoc
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

func (r *CommentRepository) SetText(ctx context.Context, id primitive.ObjectID, text string, editedAt time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"text":      text,
			"isEdited":  true,
			"editedAt":  editedAt,
			"updatedAt": editedAt,
		}},
	)
	return err
}

func (r *CommentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *CommentRepository) AddLike(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	return err
}

func (r *CommentRepository) RemoveLike(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	return err
}

func (r *CommentRepository) PushReply(ctx context.Context, id primitive.ObjectID, reply models.Reply) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"replies": reply},
			"$set":  bson.M{"updatedAt": reply.CreatedAt},
		},
	)
	return err
}
