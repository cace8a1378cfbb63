package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ContentTypeMovie  = "movie"
	ContentTypeSeries = "series"

	ContentStatusActive     = "active"
	ContentStatusInactive   = "inactive"
	ContentStatusComingSoon = "coming-soon"
)

type RatingStats struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

type CastMember struct {
	Name      string `json:"name" bson:"name"`
	Character string `json:"character,omitempty" bson:"character,omitempty"`
	Image     string `json:"image,omitempty" bson:"image,omitempty"`
}

type ContentDoc struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Type        string             `json:"type" bson:"type"` // movie|series
	Genres      []string           `json:"genres" bson:"genres"`
	ReleaseYear int                `json:"releaseYear" bson:"releaseYear"`

	// duración en minutos (movie) o temporadas/episodios (series)
	Duration *int `json:"duration,omitempty" bson:"duration,omitempty"`
	Seasons  *int `json:"seasons,omitempty" bson:"seasons,omitempty"`
	Episodes *int `json:"episodes,omitempty" bson:"episodes,omitempty"`

	// Agregado de ratings: solo se muta vía el submit de ratings, nunca directo.
	Rating RatingStats `json:"rating" bson:"rating"`

	AgeRating string       `json:"ageRating" bson:"ageRating"`
	Cast      []CastMember `json:"cast,omitempty" bson:"cast,omitempty"`
	Director  string       `json:"director,omitempty" bson:"director,omitempty"`
	Writers   []string     `json:"writers,omitempty" bson:"writers,omitempty"`
	Language  string       `json:"language" bson:"language"`
	Subtitles []string     `json:"subtitles,omitempty" bson:"subtitles,omitempty"`

	Thumbnail string `json:"thumbnail" bson:"thumbnail"`
	Banner    string `json:"banner" bson:"banner"`
	Trailer   string `json:"trailer,omitempty" bson:"trailer,omitempty"`
	VideoURL  string `json:"videoUrl" bson:"videoUrl"`

	Featured   bool `json:"featured" bson:"featured"`
	Trending   bool `json:"trending" bson:"trending"`
	NewRelease bool `json:"newRelease" bson:"newRelease"`

	Views int64 `json:"views" bson:"views"`
	Likes int64 `json:"likes" bson:"likes"`

	Tags      []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	Status    string    `json:"status" bson:"status"` // active|inactive|coming-soon
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ContentCreateRequest es el body del alta de contenido (solo admin).
type ContentCreateRequest struct {
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description" validate:"required"`
	Type        string       `json:"type" validate:"required,oneof=movie series"`
	Genres      []string     `json:"genres" validate:"required,min=1"`
	ReleaseYear int          `json:"releaseYear" validate:"required,gte=1888"`
	Duration    *int         `json:"duration" validate:"required_if=Type movie,omitempty,gt=0"`
	Seasons     *int         `json:"seasons" validate:"required_if=Type series,omitempty,gt=0"`
	Episodes    *int         `json:"episodes" validate:"required_if=Type series,omitempty,gt=0"`
	AgeRating   string       `json:"ageRating" validate:"omitempty,oneof=G PG PG-13 R NC-17 TV-Y TV-G TV-PG TV-14 TV-MA"`
	Cast        []CastMember `json:"cast"`
	Director    string       `json:"director"`
	Writers     []string     `json:"writers"`
	Language    string       `json:"language"`
	Subtitles   []string     `json:"subtitles"`
	Thumbnail   string       `json:"thumbnail" validate:"required"`
	Banner      string       `json:"banner" validate:"required"`
	Trailer     string       `json:"trailer"`
	VideoURL    string       `json:"videoUrl" validate:"required"`
	Featured    *bool        `json:"featured"`
	Trending    *bool        `json:"trending"`
	NewRelease  *bool        `json:"newRelease"`
	Tags        []string     `json:"tags"`
	Status      string       `json:"status" validate:"omitempty,oneof=active inactive coming-soon"`
}

// ContentUpdateRequest: update parcial, todos los campos opcionales.
// El agregado de rating NO se puede setear desde el cliente.
type ContentUpdateRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Genres      []string     `json:"genres"`
	ReleaseYear *int         `json:"releaseYear" validate:"omitempty,gte=1888"`
	Duration    *int         `json:"duration" validate:"omitempty,gt=0"`
	Seasons     *int         `json:"seasons" validate:"omitempty,gt=0"`
	Episodes    *int         `json:"episodes" validate:"omitempty,gt=0"`
	AgeRating   *string      `json:"ageRating" validate:"omitempty,oneof=G PG PG-13 R NC-17 TV-Y TV-G TV-PG TV-14 TV-MA"`
	Cast        []CastMember `json:"cast"`
	Director    *string      `json:"director"`
	Writers     []string     `json:"writers"`
	Language    *string      `json:"language"`
	Subtitles   []string     `json:"subtitles"`
	Thumbnail   *string      `json:"thumbnail"`
	Banner      *string      `json:"banner"`
	Trailer     *string      `json:"trailer"`
	VideoURL    *string      `json:"videoUrl"`
	Featured    *bool        `json:"featured"`
	Trending    *bool        `json:"trending"`
	NewRelease  *bool        `json:"newRelease"`
	Tags        []string     `json:"tags"`
	Status      *string      `json:"status" validate:"omitempty,oneof=active inactive coming-soon"`
}

// ContentFilter son los filtros del listado público de catálogo.
type ContentFilter struct {
	Type       string
	Genre      string
	Search     string
	Featured   *bool
	Trending   *bool
	NewRelease *bool
	Sort       string
	Limit      int
}
