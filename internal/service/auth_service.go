package service

import (
	"context"
	"strings"
	"time"

	"github.com/kuramaOn/Full-stack-Net/internal/apperr"
	"github.com/kuramaOn/Full-stack-Net/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users     UserStore
	content   ContentStore
	jwtSecret []byte
}

func NewAuthService(users UserStore, content ContentStore, secret string) *AuthService {
	return &AuthService{users: users, content: content, jwtSecret: []byte(secret)}
}

type RegisterData struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ================== REGISTER & LOGIN ==================

// Register crea un usuario nuevo con role "user" y firma su token.
func (s *AuthService) Register(ctx context.Context, data RegisterData) (string, *models.UserDoc, error) {
	if err := validate.Struct(data); err != nil {
		return "", nil, apperr.Validation("%s", err.Error())
	}

	// el email se guarda normalizado en minúsculas
	email := strings.ToLower(data.Email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, apperr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()

	u := &models.UserDoc{
		Name:         data.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         "user",
		Avatar:       "https://ui-avatars.com/api/?background=random",
		Subscription: models.Subscription{Plan: "basic", StartDate: now},
		Preferences:  models.Preferences{PreferredLanguage: "en"},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Insert(ctx, u); err != nil {
		return "", nil, err
	}

	token, err := s.signToken(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.UserDoc, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, apperr.Authorization("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperr.Authorization("invalid credentials")
	}

	token, err := s.signToken(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *AuthService) signToken(u *models.UserDoc) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.ID.Hex(),
		"role": u.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

// ================== PERFIL ==================

type HistoryView struct {
	Content   models.ContentDoc `json:"content"`
	Progress  float64           `json:"progress"`
	WatchedAt time.Time         `json:"watchedAt"`
}

// ProfileView es el perfil con favoritos/watchlist/historial ya resueltos
// contra el catálogo activo. Los ids colgantes se descartan en silencio.
type ProfileView struct {
	User         models.UserDoc      `json:"user"`
	Favorites    []models.ContentDoc `json:"favorites"`
	Watchlist    []models.ContentDoc `json:"watchlist"`
	WatchHistory []HistoryView       `json:"watchHistory"`
}

func (s *AuthService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*ProfileView, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}

	favs, err := s.content.FindActiveByIDs(ctx, u.Favorites)
	if err != nil {
		return nil, err
	}
	watch, err := s.content.FindActiveByIDs(ctx, u.Watchlist)
	if err != nil {
		return nil, err
	}

	historyIDs := make([]primitive.ObjectID, 0, len(u.WatchHistory))
	for _, h := range u.WatchHistory {
		historyIDs = append(historyIDs, h.ContentID)
	}
	historyContent, err := s.content.FindActiveByIDs(ctx, historyIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.ContentDoc, len(historyContent))
	for _, c := range historyContent {
		byID[c.ID] = c
	}

	history := make([]HistoryView, 0, len(u.WatchHistory))
	for _, h := range u.WatchHistory {
		c, ok := byID[h.ContentID]
		if !ok {
			continue
		}
		history = append(history, HistoryView{
			Content:   c,
			Progress:  h.Progress,
			WatchedAt: h.WatchedAt,
		})
	}

	return &ProfileView{
		User:         *u,
		Favorites:    favs,
		Watchlist:    watch,
		WatchHistory: history,
	}, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, upd models.ProfileUpdate) (*models.UserDoc, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}

	if err := s.users.UpdateProfile(ctx, userID, upd); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, userID)
}
