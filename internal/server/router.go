package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/motorfleet/cars-backend/internal/handlers"
	"github.com/motorfleet/cars-backend/internal/middleware"
)

type RouterConfig struct {
	CarHandler          *handlers.CarHandler
	ManufacturerHandler *handlers.ManufacturerHandler
	OwnerHandler        *handlers.OwnerHandler
	RequestLogger       *middleware.RequestLogger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.RequestLogger != nil {
		router.Use(cfg.RequestLogger.Handle())
	}

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api/v1")

	// Car
	car := api.Group("/car")
	{
		car.GET("", cfg.CarHandler.FindAll)
		car.GET("/:id", cfg.CarHandler.FindByID)
		car.GET("/find-by-price/:price", cfg.CarHandler.FindByPrice)
		car.GET("/:id/manufacturer", cfg.CarHandler.ManufacturerByCarID)
		car.POST("", cfg.CarHandler.Create)
		car.PUT("/:id", cfg.CarHandler.Update)
		car.PUT("/:id/owners", cfg.CarHandler.AddOwners)
		car.DELETE("/:id", cfg.CarHandler.Delete)
		car.PATCH("/run-discount-process", cfg.CarHandler.RunDiscountProcess)
	}

	// Manufacturer
	manufacturer := api.Group("/manufacturer")
	{
		manufacturer.GET("", cfg.ManufacturerHandler.FindAll)
		manufacturer.GET("/:id", cfg.ManufacturerHandler.FindByID)
		manufacturer.POST("", cfg.ManufacturerHandler.Create)
		manufacturer.PUT("/:id", cfg.ManufacturerHandler.Update)
		manufacturer.DELETE("/:id", cfg.ManufacturerHandler.Delete)
	}

	// Owner
	owner := api.Group("/owner")
	{
		owner.GET("", cfg.OwnerHandler.FindAll)
		owner.GET("/:id", cfg.OwnerHandler.FindByID)
		owner.POST("", cfg.OwnerHandler.Create)
		owner.PUT("/:id", cfg.OwnerHandler.Update)
		owner.DELETE("/:id", cfg.OwnerHandler.Delete)
	}

	return router
}
