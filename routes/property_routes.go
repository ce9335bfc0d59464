package routes

import (
	"github.com/mkamau21/villastay/handlers"
	"github.com/mkamau21/villastay/middleware"
	"github.com/gofiber/fiber/v2"
)

func PropertyRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/properties/:propertyId", handlers.GetProperty)
	api.Get("/properties/:propertyId/availability", handlers.GetPropertyAvailability)
	api.Get("/properties/:propertyId/reviews", handlers.GetPropertyReviews)

	api.Post("/properties", middleware.Protected(), middleware.HostRequired(), handlers.CreateProperty)
}
