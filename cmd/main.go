package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/motorfleet/cars-backend/internal/cache"
	"github.com/motorfleet/cars-backend/internal/config"
	"github.com/motorfleet/cars-backend/internal/db"
	"github.com/motorfleet/cars-backend/internal/handlers"
	"github.com/motorfleet/cars-backend/internal/middleware"
	"github.com/motorfleet/cars-backend/internal/pkg/logger"
	"github.com/motorfleet/cars-backend/internal/repos"
	"github.com/motorfleet/cars-backend/internal/server"
	"github.com/motorfleet/cars-backend/internal/services"
)

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logger
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Mongo
	ctx := context.Background()
	mongoService, err := db.NewMongoService(ctx, cfg, log)
	if err != nil {
		log.Error("Mongo init failed", "error", err)
		os.Exit(1)
	}
	defer mongoService.Close(ctx)
	theDB := mongoService.Database()

	// Owner lookup cache (optional)
	var ownerCache *cache.OwnerCache
	if cfg.RedisAddr != "" {
		log.Info("Enabling owner lookup cache", "addr", cfg.RedisAddr)
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ownerCache = cache.NewOwnerCache(rdb, cfg.OwnerCacheTTL, log)
	}

	// Repos
	log.Info("Setting up repos from main...")
	carRepo := repos.NewCarRepo(theDB, log)
	manufacturerRepo := repos.NewManufacturerRepo(theDB, log)
	ownerRepo := repos.NewOwnerRepo(theDB, ownerCache, log)

	// Services
	log.Info("Setting up services from main...")
	manufacturerService := services.NewManufacturerService(manufacturerRepo, log)
	ownerService := services.NewOwnerService(ownerRepo, log)
	carService := services.NewCarService(carRepo, log)
	discountService := services.NewDiscountService(carService, ownerService, log)

	// Handlers
	log.Info("Setting up handlers from main...")
	carHandler := handlers.NewCarHandler(log, carService, manufacturerService, ownerService, discountService)
	manufacturerHandler := handlers.NewManufacturerHandler(manufacturerService)
	ownerHandler := handlers.NewOwnerHandler(ownerService)

	// Middleware
	requestLogger := middleware.NewRequestLogger(log)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		CarHandler:          carHandler,
		ManufacturerHandler: manufacturerHandler,
		OwnerHandler:        ownerHandler,
		RequestLogger:       requestLogger,
	})

	log.Info("Server listening", "port", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Error("Server failed", "error", err)
	}
}
