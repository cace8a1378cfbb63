package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "secreto-de-test"

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTAuth_ValidToken(t *testing.T) {
	userID := primitive.NewObjectID()
	token := signTestToken(t, testSecret, jwt.MapClaims{
		"sub":  userID.Hex(),
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	var gotID primitive.ObjectID
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = UserIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	JWTAuth(testSecret)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "admin", gotRole)
}

func TestJWTAuth_Rejections(t *testing.T) {
	userID := primitive.NewObjectID()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("el handler no debería ejecutarse")
	})
	mw := JWTAuth(testSecret)(next)

	cases := []struct {
		name   string
		header string
	}{
		{"sin header", ""},
		{"sin Bearer", "Token abc"},
		{"token basura", "Bearer no.es.jwt"},
		{"firma incorrecta", "Bearer " + signTestToken(t, "otro-secreto", jwt.MapClaims{
			"sub": userID.Hex(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
		{"expirado", "Bearer " + signTestToken(t, testSecret, jwt.MapClaims{
			"sub": userID.Hex(),
			"exp": time.Now().Add(-time.Hour).Unix(),
		})},
		{"sub que no es ObjectID", "Bearer " + signTestToken(t, testSecret, jwt.MapClaims{
			"sub": "no-es-hex",
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := AdminOnly()(next)

	// admin pasa
	adminToken := signTestToken(t, testSecret, jwt.MapClaims{
		"sub":  primitive.NewObjectID().Hex(),
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	JWTAuth(testSecret)(mw).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// user común no
	userToken := signTestToken(t, testSecret, jwt.MapClaims{
		"sub":  primitive.NewObjectID().Hex(),
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	req = httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec = httptest.NewRecorder()
	JWTAuth(testSecret)(mw).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
