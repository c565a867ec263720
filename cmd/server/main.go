package main // Entry point package

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/reelhouse/movie-catalog/internal/config"
	"github.com/reelhouse/movie-catalog/internal/database"
	"github.com/reelhouse/movie-catalog/internal/handler"
	"github.com/reelhouse/movie-catalog/internal/logger"
	"github.com/reelhouse/movie-catalog/internal/queue"
	"github.com/reelhouse/movie-catalog/internal/repository"
	"github.com/reelhouse/movie-catalog/internal/router"
	queue_publisher "github.com/reelhouse/movie-catalog/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	cfg := config.Load()
	log := logger.Get(cfg.LogLevel)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalw("database open failed", "err", err)
	}
	if err := database.Migrate(db, cfg.DBName); err != nil {
		log.Fatalw("database migrate failed", "err", err)
	}

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)

	// Bootstrap admin from env. Registration never grants the admin flag, so
	// without this there would be no way to mutate the catalog.
	if adminUser := os.Getenv("ADMIN_USERNAME"); adminUser != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := users.EnsureAdmin(ctx, adminUser, os.Getenv("ADMIN_PASSWORD"), cfg.BcryptCost); err != nil {
			log.Warnw("admin bootstrap failed", "err", err)
		}
		cancel()
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warnw("redis unavailable, response cache disabled")
	}

	go queue.StartCatalogConsumer(queue_publisher.BrokerURL())

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret)
	router.RegisterCatalog(e, handler.NewMovieHandler(movies), cfg.JWTSecret, rdb, config.LoadCacheConfig())

	addr := ":" + cfg.Port
	log.Infow("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatalw("server stopped", "err", err)
	}
}
