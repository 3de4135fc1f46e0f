package main

import (
	"context"

	"github.com/anonto42/devfeed/backend/internal/handlers"
	"github.com/anonto42/devfeed/backend/internal/router"
	"github.com/anonto42/devfeed/backend/pkg/config"
	"github.com/anonto42/devfeed/backend/pkg/firebase"
	"github.com/anonto42/devfeed/backend/pkg/logger"
	"github.com/anonto42/devfeed/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.IsProduction(), cfg.LogLevel)

	// Initialize database connections
	db, err := config.InitDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize databases")
	}
	defer db.CloseDB()

	// Firebase is optional; without it only local auth is served
	var verifier handlers.IDTokenVerifier
	if cfg.FirebaseCredentialsPath != "" {
		client, err := firebase.NewAuthClient(context.Background(), cfg.FirebaseCredentialsPath, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize Firebase")
		}
		verifier = client
	} else {
		log.Warn("FIREBASE_CREDENTIALS_PATH not set, firebase login is disabled.")
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	config.SetupMiddleware(e, log)

	if err := router.SetupRoutes(e, db, verifier, cfg, log); err != nil {
		log.WithError(err).Fatal("Failed to set up routes")
	}

	if err := e.Start(":" + cfg.Port); err != nil {
		log.WithError(err).Error("Server stopped")
	}
}
