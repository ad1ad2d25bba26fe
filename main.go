package main

import (
	"wishlist-lite/config"
	"wishlist-lite/database"
	"wishlist-lite/handlers"
	"wishlist-lite/logger"
	"wishlist-lite/metadata"
	"wishlist-lite/repository"
	"wishlist-lite/wishlist"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	db, err := database.Init(cfg.DBPath, log)
	if err != nil {
		log.Fatal("failed to initialize database", logger.Error(err))
	}

	items := repository.NewItemRepository(db)
	users := repository.NewUserRepository(db)
	fetcher := metadata.NewClient(cfg.FetchTimeout)
	service := wishlist.NewService(items, fetcher, log)

	h := handlers.NewHandler(service, users, log)
	admin := handlers.NewAdminHandler(users, cfg.AdminPassword, log)
	if cfg.AdminPassword == "" {
		log.Warn("ADMIN_PASSWORD not set, admin API is disabled")
	}

	app := fiber.New()
	app.Use(fiberlogger.New())

	// Landing page and shared assets.
	app.Static("/", "./static")

	handlers.SetupRoutes(app, h, admin)

	log.Info("starting server", logger.String("port", cfg.ListenPort))
	log.Fatal("server stopped", logger.Error(app.Listen(cfg.ListenPort)))
}
