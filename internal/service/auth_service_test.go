package service

import (
	"context"
	"testing"
	"time"

	"github.com/kuramaOn/Full-stack-Net/internal/apperr"
	"github.com/kuramaOn/Full-stack-Net/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "super-secreto-de-test"

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	svc := NewAuthService(users, newFakeContentStore(), testSecret)

	token, u, err := svc.Register(ctx, RegisterData{Name: "Ana", Email: "ana@test.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "user", u.Role)
	assert.True(t, u.IsActive)
	assert.Equal(t, "basic", u.Subscription.Plan)
	assert.NotEqual(t, "secret123", u.PasswordHash) // nunca en claro

	// el token lleva el id como hex en sub
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, u.ID.Hex(), claims["sub"])
	assert.Equal(t, "user", claims["role"])

	// login con las mismas credenciales
	_, logged, err := svc.Login(ctx, "ana@test.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	// password incorrecto y email inexistente dan el mismo error
	_, _, err = svc.Login(ctx, "ana@test.com", "nope")
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	_, _, err = svc.Login(ctx, "nadie@test.com", "secret123")
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
}

func TestRegister_Validation(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), newFakeContentStore(), testSecret)

	cases := []RegisterData{
		{Name: "", Email: "a@b.com", Password: "secret123"},
		{Name: "Ana", Email: "no-es-email", Password: "secret123"},
		{Name: "Ana", Email: "a@b.com", Password: "corta"},
	}
	for _, data := range cases {
		_, _, err := svc.Register(context.Background(), data)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}

func TestRegisterAndLogin_EmailCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	svc := NewAuthService(users, newFakeContentStore(), testSecret)

	_, u, err := svc.Register(ctx, RegisterData{Name: "Ana", Email: "Ana@Test.COM", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@test.com", u.Email) // se guarda en minúsculas

	// el login no distingue mayúsculas en el email
	_, logged, err := svc.Login(ctx, "ANA@test.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	// y el duplicado tampoco
	_, _, err = svc.Register(ctx, RegisterData{Name: "Otra", Email: "ana@TEST.com", Password: "secret456"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserStore(), newFakeContentStore(), testSecret)

	_, _, err := svc.Register(ctx, RegisterData{Name: "Ana", Email: "ana@test.com", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterData{Name: "Otra", Email: "ana@test.com", Password: "secret456"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

// El perfil resuelve favoritos/watchlist/historial y descarta sin error las
// referencias a contenido borrado o inactivo.
func TestGetProfile_DropsDanglingRefs(t *testing.T) {
	ctx := context.Background()

	alive := &models.ContentDoc{Title: "Viva"}
	dead := &models.ContentDoc{Title: "Muerta", Status: models.ContentStatusInactive}
	content := newFakeContentStore(alive, dead)

	u := &models.UserDoc{
		Name:      "Ana",
		Favorites: []primitive.ObjectID{alive.ID, dead.ID, primitive.NewObjectID()},
		Watchlist: []primitive.ObjectID{dead.ID},
		WatchHistory: []models.WatchHistoryEntry{
			{ContentID: alive.ID, Progress: 0.5, WatchedAt: time.Now().UTC()},
			{ContentID: dead.ID, Progress: 0.9, WatchedAt: time.Now().UTC()},
		},
	}
	users := newFakeUserStore(u)
	svc := NewAuthService(users, content, testSecret)

	profile, err := svc.GetProfile(ctx, u.ID)
	require.NoError(t, err)

	require.Len(t, profile.Favorites, 1)
	assert.Equal(t, "Viva", profile.Favorites[0].Title)
	assert.Empty(t, profile.Watchlist)
	require.Len(t, profile.WatchHistory, 1)
	assert.Equal(t, "Viva", profile.WatchHistory[0].Content.Title)
	assert.InDelta(t, 0.5, profile.WatchHistory[0].Progress, 1e-9)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	u := &models.UserDoc{Name: "Ana", Bio: "vieja bio"}
	users := newFakeUserStore(u)
	svc := NewAuthService(users, newFakeContentStore(), testSecret)

	name := "Ana María"
	bio := "nueva bio"
	updated, err := svc.UpdateProfile(ctx, u.ID, models.ProfileUpdate{Name: &name, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
	assert.Equal(t, "nueva bio", updated.Bio)

	_, err = svc.UpdateProfile(ctx, primitive.NewObjectID(), models.ProfileUpdate{Name: &name})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
