package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ctxKey string

const (
	CtxUserID   ctxKey = "userId"
	CtxUserRole ctxKey = "role"
)

// JWTAuth devuelve un middleware que valida el token JWT y
// mete userId (ObjectID) y role en el contexto.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				respondErrorStatus(w, http.StatusUnauthorized, "missing or invalid Authorization header")
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secretBytes, nil
			})
			if err != nil || !token.Valid {
				respondErrorStatus(w, http.StatusUnauthorized, "invalid token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				respondErrorStatus(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			sub, ok := claims["sub"].(string)
			if !ok {
				respondErrorStatus(w, http.StatusUnauthorized, "invalid sub in token")
				return
			}
			userID, err := primitive.ObjectIDFromHex(sub)
			if err != nil {
				respondErrorStatus(w, http.StatusUnauthorized, "invalid sub in token")
				return
			}
			role, _ := claims["role"].(string)

			ctx := context.WithValue(r.Context(), CtxUserID, userID)
			ctx = context.WithValue(ctx, CtxUserRole, role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly solo deja pasar a role == "admin".
func AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(CtxUserRole).(string)
			if role != "admin" {
				respondErrorStatus(w, http.StatusForbidden, "admin only")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext helper para sacar el userId del contexto.
func UserIDFromContext(ctx context.Context) primitive.ObjectID {
	if v := ctx.Value(CtxUserID); v != nil {
		if id, ok := v.(primitive.ObjectID); ok {
			return id
		}
	}
	return primitive.NilObjectID
}

// RoleFromContext helper para sacar el role del contexto.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(CtxUserRole).(string)
	return role
}
