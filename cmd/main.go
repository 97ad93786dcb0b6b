package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/mypunksoft/auth/config"
	"github.com/mypunksoft/auth/db"
	"github.com/mypunksoft/auth/internal/auth/handler"
	"github.com/mypunksoft/auth/internal/auth/keyring"
	repo "github.com/mypunksoft/auth/internal/auth/repository/postgres"
	"github.com/mypunksoft/auth/internal/auth/service"
	"github.com/mypunksoft/auth/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(0).Fatal("failed to load config", "error", err)
	}

	log := logger.New(cfg.LogLevel)
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer dbPool.Close()

	userRepo := repo.NewPostgresRepository(dbPool)
	keys := keyring.NewRegistry(time.Duration(cfg.KeyExpiry) * time.Minute)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.SessionExpiry)
	userService := service.NewUserService(userRepo, tokenService, keys)
	authHandler := handler.NewAuthHandler(userService, tokenService, keys, cfg, log)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowCredentials: true,
	}))
	app.Use(handler.RequestLogger(log))
	handler.RegisterRoutes(app, authHandler)

	log.Info("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
