// main.go - RC Sınavım API server
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"rcsinavim/config"
	"rcsinavim/database"
	"rcsinavim/database/inmem"
	"rcsinavim/handlers"
	"rcsinavim/middleware"
	"rcsinavim/services"
	"rcsinavim/utils"
)

// repositories bundles the storage backend behind the service contracts.
type repositories interface {
	services.DuelRepository
	services.DeckRepository
	services.UserRepository
	services.FriendRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		store repositories
		db    *gorm.DB
	)
	switch cfg.Storage {
	case "memory":
		log.Println("⚠️  Using in-memory storage, data is lost on restart")
		store = inmem.NewStore()
	default:
		db, err = database.Open(cfg.DatabaseURL, cfg.DBLogLevel)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer database.Close(db)
		store = database.NewStore(db)
	}

	validator := services.NewValidator()
	userService := services.NewUserService(store, validator)
	deckService := services.NewDeckService(store, validator)
	duelService := services.NewDuelService(store, store, store, validator)
	friendService := services.NewFriendService(store, store)

	auth := middleware.NewAuth(cfg.JWTSecret, cfg.TokenTTL)

	app := fiber.New(fiber.Config{
		AppName:      "RC Sınavım API",
		ErrorHandler: utils.ErrorHandler(cfg.IsProduction()),
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	authLimit := func(c *fiber.Ctx) error { return c.Next() }
	if cfg.RateLimit.Enabled {
		general := middleware.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
		authLimiter := middleware.NewRateLimiter(cfg.RateLimit.AuthMaxRequests, cfg.RateLimit.AuthWindow)
		go general.RunCleanup(ctx, 10*time.Minute, 30*time.Minute)
		go authLimiter.RunCleanup(ctx, 10*time.Minute, 30*time.Minute)

		app.Use(middleware.RateLimit(general, "Rate limit exceeded. Please try again later."))
		authLimit = middleware.RateLimit(authLimiter, "Too many authentication attempts. Please try again later.")
	}

	handlers.SetupHealthRoutes(app, cfg.Storage)
	handlers.SetupAuthRoutes(app, handlers.NewAuthHandler(userService, auth), authLimit)
	handlers.SetupUserRoutes(app, handlers.NewUserHandler(userService), auth)
	handlers.SetupFlashcardRoutes(app, handlers.NewFlashcardHandler(deckService, duelService, validator), auth)
	handlers.SetupFriendRoutes(app, handlers.NewFriendHandler(friendService, userService), auth)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 Server starting on port %s (env=%s, storage=%s)", cfg.Port, cfg.AppEnv, cfg.Storage)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}
