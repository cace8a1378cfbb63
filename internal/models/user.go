package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entrada de historial: una sola por contentId (upsert).
type WatchHistoryEntry struct {
	ContentID primitive.ObjectID `json:"contentId" bson:"contentId"`
	WatchedAt time.Time          `json:"watchedAt" bson:"watchedAt"`
	Progress  float64            `json:"progress" bson:"progress"`
}

// Rating individual de un usuario sobre un contenido (1..5 entero).
type UserRating struct {
	ContentID primitive.ObjectID `json:"contentId" bson:"contentId"`
	Rating    int                `json:"rating" bson:"rating"`
	RatedAt   time.Time          `json:"ratedAt" bson:"ratedAt"`
}

type Preferences struct {
	FavoriteGenres    []string `json:"favoriteGenres" bson:"favoriteGenres"`
	PreferredLanguage string   `json:"preferredLanguage" bson:"preferredLanguage"`
}

type Subscription struct {
	Plan      string     `json:"plan" bson:"plan"` // free|basic|standard|premium
	StartDate time.Time  `json:"startDate" bson:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty" bson:"endDate,omitempty"`
}

type UserDoc struct {
	ID           primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name         string               `json:"name" bson:"name"`
	Email        string               `json:"email" bson:"email"`
	PasswordHash string               `json:"-" bson:"password"`
	Role         string               `json:"role" bson:"role"` // user|admin
	Avatar       string               `json:"avatar" bson:"avatar"`
	Bio          string               `json:"bio" bson:"bio"`
	Following    []primitive.ObjectID `json:"following" bson:"following"`
	Followers    []primitive.ObjectID `json:"followers" bson:"followers"`
	Favorites    []primitive.ObjectID `json:"favorites" bson:"favorites"`
	Watchlist    []primitive.ObjectID `json:"watchlist" bson:"watchlist"`
	WatchHistory []WatchHistoryEntry  `json:"watchHistory" bson:"watchHistory"`
	Ratings      []UserRating         `json:"ratings" bson:"ratings"`
	Preferences  Preferences          `json:"preferences" bson:"preferences"`
	Subscription Subscription         `json:"subscription" bson:"subscription"`
	IsActive     bool                 `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// HasFavorite indica si contentID ya está en favoritos.
func (u *UserDoc) HasFavorite(contentID primitive.ObjectID) bool {
	return containsID(u.Favorites, contentID)
}

func (u *UserDoc) HasInWatchlist(contentID primitive.ObjectID) bool {
	return containsID(u.Watchlist, contentID)
}

func (u *UserDoc) IsFollowing(targetID primitive.ObjectID) bool {
	return containsID(u.Following, targetID)
}

// RatingFor devuelve el rating previo para contentID, o nil si no existe.
func (u *UserDoc) RatingFor(contentID primitive.ObjectID) *UserRating {
	for i := range u.Ratings {
		if u.Ratings[i].ContentID == contentID {
			return &u.Ratings[i]
		}
	}
	return nil
}

// HistoryFor devuelve la entrada de historial para contentID, o nil.
func (u *UserDoc) HistoryFor(contentID primitive.ObjectID) *WatchHistoryEntry {
	for i := range u.WatchHistory {
		if u.WatchHistory[i].ContentID == contentID {
			return &u.WatchHistory[i]
		}
	}
	return nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// UserSummary es lo que exponemos de otros usuarios (followers, feed, comments).
type UserSummary struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id"`
	Name   string             `json:"name" bson:"name"`
	Avatar string             `json:"avatar" bson:"avatar"`
	Bio    string             `json:"bio,omitempty" bson:"bio,omitempty"`
}

func ToUserSummary(u *UserDoc) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar, Bio: u.Bio}
}
