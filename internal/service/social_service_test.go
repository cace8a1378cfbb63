package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kuramaOn/Full-stack-Net/internal/apperr"
	"github.com/kuramaOn/Full-stack-Net/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFollow(t *testing.T) {
	ctx := context.Background()
	ana := &models.UserDoc{Name: "Ana"}
	beto := &models.UserDoc{Name: "Beto"}
	users := newFakeUserStore(ana, beto)
	notifs := &fakeNotificationStore{}
	svc := NewSocialService(users, newFakeContentStore(), notifs)

	require.NoError(t, svc.Follow(ctx, ana.ID, beto.ID))

	// arista en los dos lados
	assert.True(t, users.users[ana.ID].IsFollowing(beto.ID))
	assert.Contains(t, users.users[beto.ID].Followers, ana.ID)

	// el seguido recibe la notificación con link al perfil del seguidor
	got := notifs.forUser(beto.ID)
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationFollow, got[0].Type)
	assert.Equal(t, "New Follower", got[0].Title)
	assert.Equal(t, "Ana started following you", got[0].Message)
	assert.Equal(t, "/profile/"+ana.ID.Hex(), got[0].Link)

	// seguir de nuevo es conflicto
	err := svc.Follow(ctx, ana.ID, beto.ID)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestFollow_SelfAndMissing(t *testing.T) {
	ctx := context.Background()
	ana := &models.UserDoc{Name: "Ana"}
	users := newFakeUserStore(ana)
	svc := NewSocialService(users, newFakeContentStore(), &fakeNotificationStore{})

	err := svc.Follow(ctx, ana.ID, ana.ID)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	err = svc.Follow(ctx, ana.ID, primitive.NewObjectID())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

// Si el write del lado del seguido falla, el lado del seguidor se revierte
// para no dejar el grafo asimétrico.
func TestFollow_RollbackOnSecondWriteFailure(t *testing.T) {
	ctx := context.Background()
	ana := &models.UserDoc{Name: "Ana"}
	beto := &models.UserDoc{Name: "Beto"}
	users := newFakeUserStore(ana, beto)
	users.failAddFollower = errors.New("write failed")
	notifs := &fakeNotificationStore{}
	svc := NewSocialService(users, newFakeContentStore(), notifs)

	err := svc.Follow(ctx, ana.ID, beto.ID)
	require.Error(t, err)

	assert.Equal(t, 1, users.removeFollowingCalls)
	assert.False(t, users.users[ana.ID].IsFollowing(beto.ID))
	assert.Empty(t, users.users[beto.ID].Followers)
	assert.Empty(t, notifs.forUser(beto.ID))
}

func TestUnfollow_Idempotent(t *testing.T) {
	ctx := context.Background()
	ana := &models.UserDoc{Name: "Ana"}
	beto := &models.UserDoc{Name: "Beto"}
	users := newFakeUserStore(ana, beto)
	svc := NewSocialService(users, newFakeContentStore(), &fakeNotificationStore{})

	require.NoError(t, svc.Follow(ctx, ana.ID, beto.ID))
	require.NoError(t, svc.Unfollow(ctx, ana.ID, beto.ID))
	assert.False(t, users.users[ana.ID].IsFollowing(beto.ID))
	assert.Empty(t, users.users[beto.ID].Followers)

	// repetir el unfollow no falla
	require.NoError(t, svc.Unfollow(ctx, ana.ID, beto.ID))

	// pero contra un usuario inexistente sí es 404
	err := svc.Unfollow(ctx, ana.ID, primitive.NewObjectID())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestFollowersAndFollowing(t *testing.T) {
	ctx := context.Background()
	ana := &models.UserDoc{Name: "Ana", Avatar: "a.png"}
	beto := &models.UserDoc{Name: "Beto"}
	users := newFakeUserStore(ana, beto)
	svc := NewSocialService(users, newFakeContentStore(), &fakeNotificationStore{})

	require.NoError(t, svc.Follow(ctx, ana.ID, beto.ID))

	followers, err := svc.Followers(ctx, beto.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "Ana", followers[0].Name)
	assert.Equal(t, "a.png", followers[0].Avatar)

	following, err := svc.Following(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "Beto", following[0].Name)
}

func TestFeed(t *testing.T) {
	ctx := context.Background()

	active := &models.ContentDoc{Title: "Activa"}
	gone := &models.ContentDoc{Title: "Borrada", Status: models.ContentStatusInactive}
	rated := &models.ContentDoc{Title: "Rateada"}
	content := newFakeContentStore(active, gone, rated)

	followed := &models.UserDoc{
		Name:      "Beto",
		Favorites: []primitive.ObjectID{active.ID, gone.ID},
		Ratings: []models.UserRating{
			{ContentID: rated.ID, Rating: 5, RatedAt: time.Now().UTC().Add(-time.Hour)},
		},
	}
	viewer := &models.UserDoc{Name: "Ana"}
	users := newFakeUserStore(viewer, followed)
	users.users[viewer.ID].Following = []primitive.ObjectID{followed.ID}

	svc := NewSocialService(users, content, &fakeNotificationStore{})

	items, err := svc.Feed(ctx, viewer.ID)
	require.NoError(t, err)

	// el favorito colgante (contenido inactivo) se descarta
	require.Len(t, items, 2)

	// orden: más nuevo primero (el favorito usa "ahora", el rating es de hace una hora)
	assert.Equal(t, "favorite", items[0].Type)
	assert.Equal(t, "Activa", items[0].Content.Title)
	assert.Equal(t, "Beto", items[0].User.Name)

	assert.Equal(t, "rating", items[1].Type)
	assert.Equal(t, "Rateada", items[1].Content.Title)
	assert.Equal(t, 5, items[1].Rating)
}

func TestFeed_CapsAtMax(t *testing.T) {
	ctx := context.Background()
	content := newFakeContentStore()

	// muchos seguidos con el máximo de favoritos cada uno
	var followedIDs []primitive.ObjectID
	var docs []*models.UserDoc
	viewer := &models.UserDoc{Name: "Ana"}
	docs = append(docs, viewer)
	for i := 0; i < 10; i++ {
		var favs []primitive.ObjectID
		for j := 0; j < feedPerUser+2; j++ {
			c := &models.ContentDoc{Title: "c"}
			require.NoError(t, content.Insert(ctx, c))
			favs = append(favs, c.ID)
		}
		u := &models.UserDoc{Name: "Seguido", Favorites: favs}
		docs = append(docs, u)
	}
	users := newFakeUserStore(docs...)
	for _, u := range docs[1:] {
		followedIDs = append(followedIDs, u.ID)
	}
	users.users[viewer.ID].Following = followedIDs

	svc := NewSocialService(users, content, &fakeNotificationStore{})

	items, err := svc.Feed(ctx, viewer.ID)
	require.NoError(t, err)
	assert.Len(t, items, feedMax)
}
