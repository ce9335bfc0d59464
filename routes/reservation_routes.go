package routes

import (
	"github.com/mkamau21/villastay/handlers"
	"github.com/mkamau21/villastay/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReservationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	reservation := api.Group("/reservations", middleware.Protected())
	reservation.Get("/me", handlers.GetMyReservations)
	reservation.Post("", handlers.CreateReservation)
	reservation.Get("/:reservationId", handlers.GetReservation)
	reservation.Post("/:reservationId/withdraw", handlers.WithdrawReservation)
	reservation.Post("/:reservationId/cancel", handlers.CancelReservation)
	reservation.Post("/:reservationId/reviews", handlers.SubmitReview)
	reservation.Get("/:reservationId/reviews", handlers.GetReservationReviews)

	host := api.Group("/host", middleware.Protected(), middleware.HostRequired())
	host.Get("/reservations", handlers.GetHostReservations)
	host.Post("/reservations/:reservationId/accept", handlers.AcceptReservation)
	host.Post("/reservations/:reservationId/decline", handlers.DeclineReservation)
	host.Post("/reservations/:reservationId/instructions", handlers.SetCheckInInstructions)
	host.Post("/properties/:propertyId/blocked-dates", handlers.BlockDates)
	host.Delete("/properties/:propertyId/blocked-dates", handlers.UnblockDates)
}
