package main

import (
	"log"

	"github.com/ClickswiftHQ/HeyBertie-sub000/config"
	"github.com/ClickswiftHQ/HeyBertie-sub000/db"
	"github.com/ClickswiftHQ/HeyBertie-sub000/handlers"
	"github.com/ClickswiftHQ/HeyBertie-sub000/models"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.Business{},
		&models.Location{},
		&models.StaffMember{},
		&models.Service{},
		&models.Customer{},
		&models.AvailabilityBlock{},
		&models.Booking{},
		&models.BookingItem{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public availability routes
	e.GET("/api/businesses/:slug/availability/dates", handlers.GetAvailableDatesHandler)
	e.GET("/api/businesses/:slug/availability/slots", handlers.GetAvailableSlotsHandler)

	// Public booking routes
	e.POST("/api/businesses/:slug/bookings", handlers.CreateBookingHandler)
	e.GET("/api/bookings/:reference", handlers.GetBookingHandler)
	e.PATCH("/api/bookings/:reference/cancel", handlers.CancelBookingHandler)
	e.PATCH("/api/bookings/:reference/reschedule", handlers.RescheduleBookingHandler)

	// Business management routes
	e.GET("/api/businesses/:slug/availability/blocks", handlers.GetAvailabilityBlocksHandler)
	e.POST("/api/businesses/:slug/availability/blocks", handlers.CreateAvailabilityBlockHandler)
	e.DELETE("/api/businesses/:slug/availability/blocks/:id", handlers.DeleteAvailabilityBlockHandler)
	e.PATCH("/api/bookings/:reference/status", handlers.UpdateBookingStatusHandler)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
