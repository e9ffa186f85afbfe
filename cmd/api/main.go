package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asif7480/FurShield-backend/internal/adapters/assets/cloudinary"
	"github.com/asif7480/FurShield-backend/internal/adapters/auth/jwtauth"
	"github.com/asif7480/FurShield-backend/internal/adapters/storage/mongodb"
	"github.com/asif7480/FurShield-backend/internal/platform/config"
	"github.com/asif7480/FurShield-backend/internal/platform/logger"
	"github.com/asif7480/FurShield-backend/internal/ports/assets"
	"github.com/asif7480/FurShield-backend/internal/router"
)

func main() {
	log := logger.NewFromEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	db, closeDB, err := mongodb.Open(cfg.MongoURI)
	if err != nil {
		log.Error("mongo connection failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	log.Info("connected to mongo", nil)

	tokens, err := jwtauth.NewManager(cfg.SecretKey)
	if err != nil {
		log.Error("token manager init failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	var uploader assets.Uploader
	if cfg.HasCloudinary() {
		up, err := cloudinary.NewUploader(cloudinary.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
		})
		if err != nil {
			log.Error("cloudinary init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		uploader = up
	} else {
		log.Warn("cloudinary not configured, uploads disabled", nil)
	}

	handler := router.NewRouter(router.Options{
		Issuer:         tokens,
		Verifier:       tokens,
		DB:             db,
		Uploader:       uploader,
		AllowedOrigins: cfg.AllowedOrigins,
		SecureCookie:   cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	<-done
	log.Info("shutting down", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", map[string]any{"error": err.Error()})
	}
	if err := closeDB(ctx); err != nil {
		log.Error("mongo disconnect error", map[string]any{"error": err.Error()})
	}
}
