package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"

	"booktrack-backend/internal/api"
	"booktrack-backend/internal/auth"
	"booktrack-backend/internal/config"
	"booktrack-backend/internal/database"
	"booktrack-backend/internal/models"
	"booktrack-backend/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Initializing database at %s", cfg.DBPath)
	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	userRepo := database.NewUserRepo(db)
	bookRepo := database.NewBookRepo(db)

	if err := createDefaultUserIfNeeded(userRepo); err != nil {
		log.Printf("Warning: failed to create default user: %v", err)
	}

	var store session.Store
	switch cfg.SessionBackend {
	case "redis":
		client, err := openRedis(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer client.Close()
		store = session.NewRedisStore(client)
		log.Printf("Using redis session store at %s", cfg.RedisAddr)
	default:
		store = session.NewSQLiteStore(db)
	}

	sessions := session.NewManager(store, userRepo, cfg.SessionLifetime)
	authSvc := auth.NewService(userRepo, sessions)
	limiter := auth.DefaultRateLimiter()
	defer limiter.Stop()

	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	api.New(authSvc, sessions, bookRepo, limiter, cfg.CookieSecure).Register(e)

	log.Printf("Starting booktrack backend on port %s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func openRedis(cfg config.Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// createDefaultUserIfNeeded seeds a first account when the users table
// is empty, so a fresh database is usable at all.
func createDefaultUserIfNeeded(userRepo *database.UserRepo) error {
	ctx := context.Background()

	count, err := userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Creating default user (admin/admin) - CHANGE THIS PASSWORD!")

	passwordHash, err := auth.HashPassword("admin")
	if err != nil {
		return err
	}

	return userRepo.Create(ctx, &models.User{
		Login:        "admin",
		Name:         "Administrator",
		PasswordHash: passwordHash,
	})
}
