package router

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/devfeed/backend/internal/handlers"
	"github.com/anonto42/devfeed/backend/internal/middleware"
	"github.com/anonto42/devfeed/backend/internal/models"
	"github.com/anonto42/devfeed/backend/internal/repositories"
	"github.com/anonto42/devfeed/backend/internal/services"
	"github.com/anonto42/devfeed/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// SetupRoutes configures all application routes and injects dependencies.
// firebaseAuth may be nil when Firebase is not configured.
func SetupRoutes(e *echo.Echo, db *config.DB, firebaseAuth handlers.IDTokenVerifier, cfg *config.Config, log logrus.FieldLogger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repositories.EnsureIndexes(ctx, db.Social); err != nil {
		return fmt.Errorf("failed to ensure MongoDB indexes: %w", err)
	}
	log.Info("MongoDB indexes ensured.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(db.Social)
	postRepo := repositories.NewMongoPostRepository(db.Social)
	commentRepo := repositories.NewMongoCommentRepository(db.Social)
	likeRepo := repositories.NewMongoLikeRepository(db.Social)
	commentLikeRepo := repositories.NewMongoCommentLikeRepository(db.Social)
	imageRepo := repositories.NewMongoImageRepository(db.Social)
	followRepo := repositories.NewMongoFollowRepository(db.Social)

	// --- Initialize Services ---
	followService := services.NewFollowService(followRepo, userRepo)
	postService := services.NewPostService(postRepo, commentRepo, likeRepo, commentLikeRepo, imageRepo, followService, log)
	commentService := services.NewCommentService(postRepo, commentRepo, commentLikeRepo, log)
	likeService := services.NewLikeService(likeRepo, commentLikeRepo, commentRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuth, cfg.JWTSecret, cfg.JWTTTL, log)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Info("Auth routes configured.")

	// Auth is attached per route: group middleware would also guard the
	// group's not-found catch-all and turn unknown paths into 401s.
	api := e.Group("/api/v1")
	auth := []echo.MiddlewareFunc{
		middleware.JWTAuthMiddleware(cfg.JWTSecret),
		middleware.RateLimit(db.Redis, cfg.RateLimit, cfg.RateLimitWindow, log),
	}

	feedHandler := handlers.NewFeedHandler(postService)
	feedHandler.RegisterFeedRoutes(api)
	log.Info("Feed routes configured.")

	postHandler := handlers.NewPostHandler(postService, likeService)
	postHandler.RegisterPostRoutes(api, auth...)
	log.Info("Post routes configured.")

	commentHandler := handlers.NewCommentHandler(commentService, likeService)
	commentHandler.RegisterCommentRoutes(api, auth...)
	log.Info("Comment routes configured.")

	followHandler := handlers.NewFollowHandler(followService)
	followHandler.RegisterFollowRoutes(api, auth...)
	log.Info("Follow routes configured.")

	if db.Postgres != nil {
		if err := db.Postgres.AutoMigrate(&models.DashboardRepository{}); err != nil {
			return fmt.Errorf("failed to auto migrate dashboard models: %w", err)
		}
		dashboardService := services.NewDashboardService(repositories.NewPostgresDashboardRepository(db.Postgres))
		dashboardHandler := handlers.NewDashboardHandler(dashboardService)
		dashboardHandler.RegisterDashboardRoutes(api, auth...)
		log.Info("Dashboard routes configured.")
	}

	log.Info("All routes configured.")
	return nil
}
