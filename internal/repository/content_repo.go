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

type ContentRepository struct {
	col *mongo.Collection
}

func NewContentRepository() *ContentRepository {
	return &ContentRepository{col: db.DB().Collection("content")}
}

func (r *ContentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ContentDoc, error) {
	var c models.ContentDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &c, err
}

func (r *ContentRepository) FindActiveByID(ctx context.Context, id primitive.ObjectID) (*models.ContentDoc, error) {
	var c models.ContentDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id, "status": models.ContentStatusActive}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &c, err
}

// FindActiveByIDs devuelve solo lo que existe y está activo; los ids
// colgantes simplemente no aparecen en el resultado.
func (r *ContentRepository) FindActiveByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.ContentDoc, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{
		"_id":    bson.M{"$in": ids},
		"status": models.ContentStatusActive,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ContentDoc
	for cur.Next(ctx) {
		var c models.ContentDoc
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

func (r *ContentRepository) List(ctx context.Context, f models.ContentFilter) ([]models.ContentDoc, error) {
	filter := bson.M{"status": models.ContentStatusActive}

	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.Genre != "" {
		// genres es un array, esto busca que contenga ese género
		filter["genres"] = f.Genre
	}
	if f.Search != "" {
		filter["title"] = bson.M{"$regex": f.Search, "$options": "i"}
	}
	if f.Featured != nil {
		filter["featured"] = *f.Featured
	}
	if f.Trending != nil {
		filter["trending"] = *f.Trending
	}
	if f.NewRelease != nil {
		filter["newRelease"] = *f.NewRelease
	}

	sort := bson.D{{Key: "createdAt", Value: -1}}
	switch f.Sort {
	case "rating":
		sort = bson.D{{Key: "rating.average", Value: -1}}
	case "views":
		sort = bson.D{{Key: "views", Value: -1}}
	case "year":
		sort = bson.D{{Key: "releaseYear", Value: -1}}
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().SetSort(sort).SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ContentDoc
	for cur.Next(ctx) {
		var c models.ContentDoc
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

func (r *ContentRepository) Insert(ctx context.Context, c *models.ContentDoc) error {
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

// ApplyUpdate arma el $set parcial y devuelve el documento actualizado.
func (r *ContentRepository) ApplyUpdate(ctx context.Context, id primitive.ObjectID, upd *models.ContentUpdateRequest) (*models.ContentDoc, error) {
	set := bson.M{}

	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Genres != nil {
		set["genres"] = upd.Genres
	}
	if upd.ReleaseYear != nil {
		set["releaseYear"] = *upd.ReleaseYear
	}
	if upd.Duration != nil {
		set["duration"] = *upd.Duration
	}
	if upd.Seasons != nil {
		set["seasons"] = *upd.Seasons
	}
	if upd.Episodes != nil {
		set["episodes"] = *upd.Episodes
	}
	if upd.AgeRating != nil {
		set["ageRating"] = *upd.AgeRating
	}
	if upd.Cast != nil {
		set["cast"] = upd.Cast
	}
	if upd.Director != nil {
		set["director"] = *upd.Director
	}
	if upd.Writers != nil {
		set["writers"] = upd.Writers
	}
	if upd.Language != nil {
		set["language"] = *upd.Language
	}
	if upd.Subtitles != nil {
		set["subtitles"] = upd.Subtitles
	}
	if upd.Thumbnail != nil {
		set["thumbnail"] = *upd.Thumbnail
	}
	if upd.Banner != nil {
		set["banner"] = *upd.Banner
	}
	if upd.Trailer != nil {
		set["trailer"] = *upd.Trailer
	}
	if upd.VideoURL != nil {
		set["videoUrl"] = *upd.VideoURL
	}
	if upd.Featured != nil {
		set["featured"] = *upd.Featured
	}
	if upd.Trending != nil {
		set["trending"] = *upd.Trending
	}
	if upd.NewRelease != nil {
		set["newRelease"] = *upd.NewRelease
	}
	if upd.Tags != nil {
		set["tags"] = upd.Tags
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.ContentDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &c, err
}

func (r *ContentRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (int64, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// IncrementViews suma 1 de forma atómica y devuelve el doc actualizado.
func (r *ContentRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) (*models.ContentDoc, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.ContentDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.ContentStatusActive},
		bson.M{"$inc": bson.M{"views": 1}},
		opts,
	).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &c, err
}

// =====================================================================
//  Agregado de rating: recomputo atómico con pipeline update.
//  Las expresiones del $set se evalúan sobre el doc ANTES del update,
//  así dos submissions concurrentes no se pisan el average.
// =====================================================================

func (r *ContentRepository) ApplyNewRating(ctx context.Context, id primitive.ObjectID, rating int) (*models.RatingStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"rating.average": bson.M{"$divide": bson.A{
				bson.M{"$add": bson.A{
					bson.M{"$multiply": bson.A{"$rating.average", "$rating.count"}},
					rating,
				}},
				bson.M{"$add": bson.A{"$rating.count", 1}},
			}},
			"rating.count": bson.M{"$add": bson.A{"$rating.count", 1}},
			"updatedAt":    "$$NOW",
		}}},
	}
	return r.runRatingUpdate(ctx, id, pipeline)
}

func (r *ContentRepository) ApplyRatingChange(ctx context.Context, id primitive.ObjectID, oldRating, newRating int) (*models.RatingStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"rating.average": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{"$rating.count", 0}},
				bson.M{"$divide": bson.A{
					bson.M{"$add": bson.A{
						bson.M{"$subtract": bson.A{
							bson.M{"$multiply": bson.A{"$rating.average", "$rating.count"}},
							oldRating,
						}},
						newRating,
					}},
					"$rating.count",
				}},
				0,
			}},
			"updatedAt": "$$NOW",
		}}},
	}
	return r.runRatingUpdate(ctx, id, pipeline)
}

func (r *ContentRepository) runRatingUpdate(ctx context.Context, id primitive.ObjectID, pipeline mongo.Pipeline) (*models.RatingStats, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.ContentDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, pipeline, opts).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c.Rating, nil
}

// FindByGenres es la query de recomendaciones: contenido activo de esos
// géneros, excluyendo lo que el usuario ya tiene, mejor rankeado primero.
func (r *ContentRepository) FindByGenres(ctx context.Context, genres []string, exclude []primitive.ObjectID, limit int) ([]models.ContentDoc, error) {
	if len(genres) == 0 {
		return nil, nil
	}

	filter := bson.M{
		"genres": bson.M{"$in": genres},
		"status": models.ContentStatusActive,
	}
	if len(exclude) > 0 {
		filter["_id"] = bson.M{"$nin": exclude}
	}

	opts := options.Find().
		SetSort(bson.D{
			{Key: "rating.average", Value: -1},
			{Key: "views", Value: -1},
		}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ContentDoc
	for cur.Next(ctx) {
		var c models.ContentDoc
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

// ===================== admin =====================

func (r *ContentRepository) Counts(ctx context.Context) (models.ContentCounts, error) {
	var c models.ContentCounts
	var err error
	if c.Total, err = r.col.CountDocuments(ctx, bson.M{}); err != nil {
		return c, err
	}
	if c.Movies, err = r.col.CountDocuments(ctx, bson.M{"type": models.ContentTypeMovie}); err != nil {
		return c, err
	}
	if c.Series, err = r.col.CountDocuments(ctx, bson.M{"type": models.ContentTypeSeries}); err != nil {
		return c, err
	}
	if c.Featured, err = r.col.CountDocuments(ctx, bson.M{"featured": true}); err != nil {
		return c, err
	}
	c.Trending, err = r.col.CountDocuments(ctx, bson.M{"trending": true})
	return c, err
}

func (r *ContentRepository) EngagementTotals(ctx context.Context) (models.EngagementTotals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"totalViews": bson.M{"$sum": "$views"},
			"totalLikes": bson.M{"$sum": "$likes"},
			"avgRating":  bson.M{"$avg": "$rating.average"},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return models.EngagementTotals{}, err
	}
	defer cur.Close(ctx)

	var rows []models.EngagementTotals
	if err := cur.All(ctx, &rows); err != nil {
		return models.EngagementTotals{}, err
	}
	if len(rows) == 0 {
		return models.EngagementTotals{}, nil
	}
	return rows[0], nil
}

func (r *ContentRepository) TopRated(ctx context.Context, limit int) ([]models.ContentDoc, error) {
	return r.topBy(ctx, "rating.average", limit)
}

func (r *ContentRepository) MostViewed(ctx context.Context, limit int) ([]models.ContentDoc, error) {
	return r.topBy(ctx, "views", limit)
}

func (r *ContentRepository) topBy(ctx context.Context, field string, limit int) ([]models.ContentDoc, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ContentDoc
	for cur.Next(ctx) {
		var c models.ContentDoc
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

func (r *ContentRepository) GenreStats(ctx context.Context) ([]models.BucketCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$genres"}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$genres",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
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

// ===================== jobs de catálogo =====================

// RefreshTrending marca como trending el top N activo por views y limpia el resto.
func (r *ContentRepository) RefreshTrending(ctx context.Context, topN int) error {
	opts := options.Find().
		SetSort(bson.D{{Key: "views", Value: -1}}).
		SetLimit(int64(topN)).
		SetProjection(bson.M{"_id": 1})

	cur, err := r.col.Find(ctx, bson.M{"status": models.ContentStatusActive}, opts)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return err
		}
		ids = append(ids, row.ID)
	}
	if err := cur.Err(); err != nil {
		return err
	}

	if _, err := r.col.UpdateMany(ctx,
		bson.M{"trending": true, "_id": bson.M{"$nin": ids}},
		bson.M{"$set": bson.M{"trending": false}},
	); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	_, err = r.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"trending": true}},
	)
	return err
}

// RefreshNewRelease: newRelease = releaseYear >= minYear.
func (r *ContentRepository) RefreshNewRelease(ctx context.Context, minYear int) error {
	if _, err := r.col.UpdateMany(ctx,
		bson.M{"newRelease": true, "releaseYear": bson.M{"$lt": minYear}},
		bson.M{"$set": bson.M{"newRelease": false}},
	); err != nil {
		return err
	}
	_, err := r.col.UpdateMany(ctx,
		bson.M{"newRelease": false, "releaseYear": bson.M{"$gte": minYear}},
		bson.M{"$set": bson.M{"newRelease": true}},
	)
	return err
}
