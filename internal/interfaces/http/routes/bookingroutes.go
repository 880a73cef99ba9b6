package routes

import (
	"github.com/gin-gonic/gin"

	"purser/internal/interfaces/http/handlers"
	"purser/internal/interfaces/http/middleware"
)

// BookingRouteConfig holds dependencies for booking routes.
type BookingRouteConfig struct {
	BookingHandler *handlers.BookingHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupBookingRoutes configures the booking ledger routes. All of them are
// scoped to the caller's agency by the auth middleware.
func SetupBookingRoutes(engine *gin.Engine, cfg *BookingRouteConfig) {
	bookings := engine.Group("/bookings")
	bookings.Use(cfg.AuthMiddleware.RequireAuth())
	{
		bookings.POST("", cfg.BookingHandler.Create)
		bookings.GET("", cfg.BookingHandler.List)
		bookings.GET("/:sid", cfg.BookingHandler.Get)
		bookings.POST("/:sid/cabins", cfg.BookingHandler.AddCabin)
		bookings.PUT("/:sid/deadlines", cfg.BookingHandler.SetDeadlines)
		bookings.POST("/:sid/payments", cfg.BookingHandler.ApplyPayment)
		bookings.GET("/:sid/payments", cfg.BookingHandler.ListPayments)
		bookings.POST("/:sid/payments/attribute", cfg.BookingHandler.AttributePayment)
	}
}
