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

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository() *UserRepository {
	return &UserRepository{col: db.DB().Collection("users")}
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.UserDoc, error) {
	var u models.UserDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.UserDoc, error) {
	var u models.UserDoc
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.UserDoc, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.UserDoc
	for cur.Next(ctx) {
		var u models.UserDoc
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, cur.Err()
}

func (r *UserRepository) Insert(ctx context.Context, u *models.UserDoc) error {
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

// UpdateProfile aplica un $set parcial con los campos de perfil presentes.
func (r *UserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) error {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Avatar != nil {
		set["avatar"] = *upd.Avatar
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.Preferences != nil {
		set["preferences"] = *upd.Preferences
	}
	if len(set) == 0 {
		return nil
	}
	set["updatedAt"] = time.Now().UTC()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ===================== favoritos / watchlist =====================

func (r *UserRepository) AddFavorite(ctx context.Context, userID, contentID primitive.ObjectID) error {
	return r.addToSet(ctx, userID, "favorites", contentID)
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, contentID primitive.ObjectID) error {
	return r.pull(ctx, userID, "favorites", contentID)
}

func (r *UserRepository) AddToWatchlist(ctx context.Context, userID, contentID primitive.ObjectID) error {
	return r.addToSet(ctx, userID, "watchlist", contentID)
}

func (r *UserRepository) RemoveFromWatchlist(ctx context.Context, userID, contentID primitive.ObjectID) error {
	return r.pull(ctx, userID, "watchlist", contentID)
}

func (r *UserRepository) addToSet(ctx context.Context, userID primitive.ObjectID, field string, value any) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{field: value}},
	)
	return err
}

func (r *UserRepository) pull(ctx context.Context, userID primitive.ObjectID, field string, value any) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{field: value}},
	)
	return err
}

// ===================== ratings embebidos =====================

func (r *UserRepository) PushRating(ctx context.Context, userID primitive.ObjectID, entry models.UserRating) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"ratings": entry}},
	)
	return err
}

func (r *UserRepository) UpdateRating(ctx context.Context, userID, contentID primitive.ObjectID, rating int, at time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID, "ratings.contentId": contentID},
		bson.M{"$set": bson.M{
			"ratings.$.rating":  rating,
			"ratings.$.ratedAt": at,
		}},
	)
	return err
}

// ===================== historial =====================

func (r *UserRepository) PushHistory(ctx context.Context, userID primitive.ObjectID, entry models.WatchHistoryEntry) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"watchHistory": entry}},
	)
	return err
}

func (r *UserRepository) UpdateHistory(ctx context.Context, userID, contentID primitive.ObjectID, progress float64, at time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": userID, "watchHistory.contentId": contentID},
		bson.M{"$set": bson.M{
			"watchHistory.$.progress":  progress,
			"watchHistory.$.watchedAt": at,
		}},
	)
	return err
}

// ===================== grafo social =====================

func (r *UserRepository) AddFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error {
	return r.addToSet(ctx, userID, "following", targetID)
}

func (r *UserRepository) RemoveFollowing(ctx context.Context, userID, targetID primitive.ObjectID) error {
	return r.pull(ctx, userID, "following", targetID)
}

func (r *UserRepository) AddFollower(ctx context.Context, userID, followerID primitive.ObjectID) error {
	return r.addToSet(ctx, userID, "followers", followerID)
}

func (r *UserRepository) RemoveFollower(ctx context.Context, userID, followerID primitive.ObjectID) error {
	return r.pull(ctx, userID, "followers", followerID)
}

// ===================== admin =====================

func (r *UserRepository) Counts(ctx context.Context) (models.UserCounts, error) {
	var c models.UserCounts
	var err error
	if c.Total, err = r.col.CountDocuments(ctx, bson.M{}); err != nil {
		return c, err
	}
	if c.Active, err = r.col.CountDocuments(ctx, bson.M{"isActive": true}); err != nil {
		return c, err
	}
	c.Admins, err = r.col.CountDocuments(ctx, bson.M{"role": "admin"})
	return c, err
}

func (r *UserRepository) ListAdmin(ctx context.Context, role string, isActive *bool, limit, skip int) ([]models.UserDoc, int64, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	if isActive != nil {
		filter["isActive"] = *isActive
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(skip))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []models.UserDoc
	for cur.Next(ctx) {
		var u models.UserDoc
		if err := cur.Decode(&u); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, cur.Err()
}

func (r *UserRepository) SubscriptionStats(ctx context.Context) ([]models.BucketCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$subscription.plan",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.BucketCount
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) AdminUpdate(ctx context.Context, id primitive.ObjectID, upd models.AdminUserUpdate) (int64, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	if upd.IsActive != nil {
		set["isActive"] = *upd.IsActive
	}
	if upd.Plan != nil {
		set["subscription.plan"] = *upd.Plan
	}
	if len(set) == 0 {
		return 0, nil
	}
	set["updatedAt"] = time.Now().UTC()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
