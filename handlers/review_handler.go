package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mkamau21/villastay/services"
)

type SubmitReviewRequest struct {
	Rating          int    `json:"rating" validate:"required,min=1,max=5"`
	Comment         string `json:"comment" validate:"required"`
	PrivateFeedback string `json:"private_feedback"`
}

func SubmitReview(c *fiber.Ctx) error {
	authorID := currentUserID(c)
	reservationID, err := uuid.Parse(c.Params("reservationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}

	var req SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	review, err := reviews.Submit(services.SubmitReviewInput{
		ReservationID:   reservationID,
		AuthorID:        authorID,
		Rating:          req.Rating,
		Comment:         req.Comment,
		PrivateFeedback: req.PrivateFeedback,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func GetReservationReviews(c *fiber.Ctx) error {
	readerID := currentUserID(c)
	reservationID, err := uuid.Parse(c.Params("reservationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}

	views, err := reviews.ForReservation(reservationID, readerID, time.Now())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(views)
}
