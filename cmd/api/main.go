package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/kuramaOn/Full-stack-Net/docs" // swagger docs

	"github.com/kuramaOn/Full-stack-Net/internal/cache"
	"github.com/kuramaOn/Full-stack-Net/internal/config"
	"github.com/kuramaOn/Full-stack-Net/internal/db"
	"github.com/kuramaOn/Full-stack-Net/internal/handler"
	"github.com/kuramaOn/Full-stack-Net/internal/repository"
	"github.com/kuramaOn/Full-stack-Net/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/robfig/cron/v3"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title StreamFlix API
// @version 1.0
// @description Backend de streaming (catálogo, interacciones, social, Mongo, Redis)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	// repos
	userRepo := repository.NewUserRepository()
	contentRepo := repository.NewContentRepository()
	commentRepo := repository.NewCommentRepository()
	notifRepo := repository.NewNotificationRepository()

	// services
	authSvc := service.NewAuthService(userRepo, contentRepo, cfg.JWTSecret)
	contentSvc := service.NewContentService(contentRepo, userRepo)
	interactionSvc := service.NewInteractionService(userRepo, contentRepo)
	commentSvc := service.NewCommentService(commentRepo, userRepo, notifRepo)
	socialSvc := service.NewSocialService(userRepo, contentRepo, notifRepo)
	notifSvc := service.NewNotificationService(notifRepo)
	adminSvc := service.NewAdminService(userRepo, contentRepo)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	contentH := handler.NewContentHandler(contentSvc)
	userH := handler.NewUserHandler(interactionSvc)
	commentH := handler.NewCommentHandler(commentSvc)
	socialH := handler.NewSocialHandler(socialSvc)
	notifH := handler.NewNotificationHandler(notifSvc)
	adminH := handler.NewAdminHandler(adminSvc)

	// ============================
	// Job de flags de catálogo
	// ============================
	jobs := service.NewCatalogJobs(contentRepo)
	c := cron.New()
	if _, err := c.AddFunc("@every 1h", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		jobs.RefreshFlags(ctx)
	}); err != nil {
		log.Fatalf("[jobs] no se pudo registrar el cron: %v", err)
	}
	c.Start()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(300, time.Minute))

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// Catálogo (público)
	r.Get("/content", contentH.List)
	r.Get("/content/{id}", contentH.Get)

	// Comentarios y social (lecturas públicas)
	r.Get("/comments/{id}", commentH.ListByContent)
	r.Get("/social/followers/{userId}", socialH.Followers)
	r.Get("/social/following/{userId}", socialH.Following)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)

		// recomendaciones (necesita identidad)
		r.Get("/content/recommendations", contentH.Recommendations)

		// ---- interacciones del usuario ----
		r.Get("/users/profile", authH.GetProfile)
		r.Put("/users/profile", authH.UpdateProfile)
		r.Post("/users/favorites/{contentId}", userH.ToggleFavorite)
		r.Post("/users/watchlist/{contentId}", userH.ToggleWatchlist)
		r.Post("/users/rate/{contentId}", userH.Rate)
		r.Post("/users/history/{contentId}", userH.RecordProgress)

		// ---- comentarios ----
		r.Post("/comments/{id}", commentH.Add)
		r.Put("/comments/{id}", commentH.Edit)
		r.Delete("/comments/{id}", commentH.Delete)
		r.Post("/comments/{id}/like", commentH.ToggleLike)
		r.Post("/comments/{id}/reply", commentH.AddReply)

		// ---- social ----
		r.Post("/social/follow/{userId}", socialH.Follow)
		r.Delete("/social/follow/{userId}", socialH.Unfollow)
		r.Get("/social/feed", socialH.Feed)

		// ---- notificaciones (polling) ----
		r.Get("/notifications", notifH.List)
		r.Put("/notifications/read-all", notifH.MarkAllRead)
		r.Put("/notifications/{id}/read", notifH.MarkRead)

		// ---- Endpoints solo ADMIN ----
		r.Group(func(r chi.Router) {
			r.Use(handler.AdminOnly())

			// gestión de catálogo
			r.Post("/content", contentH.Create)
			r.Put("/content/{id}", contentH.Update)
			r.Delete("/content/{id}", contentH.Delete)

			// dashboard y usuarios
			r.Get("/admin/stats", adminH.Stats)
			r.Get("/admin/ws/stats", adminH.StatsWS)
			r.Get("/admin/users", adminH.ListUsers)
			r.Put("/admin/users/{id}", adminH.UpdateUser)
			r.Delete("/admin/users/{id}", adminH.DeleteUser)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: r}

	go func() {
		log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("servidor HTTP: %v", err)
		}
	}()

	// shutdown ordenado: cortar HTTP, frenar el cron y cerrar Mongo
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("apagando...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown HTTP: %v", err)
	}
	c.Stop()
	if err := db.Disconnect(ctx); err != nil {
		log.Printf("[mongo] disconnect: %v", err)
	}
}
