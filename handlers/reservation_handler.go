package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mkamau21/villastay/services"
)

type CreateReservationRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
	CheckIn    string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut   string `json:"check_out" validate:"required,datetime=2006-01-02"`
	GuestCount int    `json:"guest_count" validate:"required,min=1"`
	Message    string `json:"message"`
}

func CreateReservation(c *fiber.Ctx) error {
	guestID := currentUserID(c)

	var req CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	propertyID, _ := uuid.Parse(req.PropertyID)
	checkIn, _ := parseDate(req.CheckIn)
	checkOut, _ := parseDate(req.CheckOut)

	reservation, err := bookings.Create(services.CreateReservationInput{
		PropertyID: propertyID,
		GuestID:    guestID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestCount: req.GuestCount,
		Message:    req.Message,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reservationResponse(reservation))
}

func GetMyReservations(c *fiber.Ctx) error {
	guestID := currentUserID(c)

	list, err := bookings.ListForGuest(guestID)
	if err != nil {
		return domainError(c, err)
	}

	out := make([]fiber.Map, 0, len(list))
	for i := range list {
		out = append(out, reservationResponse(&list[i]))
	}
	return c.JSON(out)
}

func GetReservation(c *fiber.Ctx) error {
	actorID := currentUserID(c)
	reservationID, err := uuid.Parse(c.Params("reservationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}

	reservation, err := bookings.Get(reservationID, actorID)
	if err != nil {
		return domainError(c, err)
	}

	resp := reservationResponse(reservation)
	// Check-in instructions are for the guest's eyes only.
	if reservation.CheckInInstructions != nil && actorID == reservation.GuestID {
		resp["check_in_instructions"] = *reservation.CheckInInstructions
	}
	return c.JSON(resp)
}

func WithdrawReservation(c *fiber.Ctx) error {
	actorID := currentUserID(c)
	reservationID, err := uuid.Parse(c.Params("reservationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}

	reservation, err := bookings.Withdraw(reservationID, actorID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(reservationResponse(reservation))
}

type CancelRequest struct {
	Message string `json:"message"`
}

func CancelReservation(c *fiber.Ctx) error {
	actorID := currentUserID(c)
	reservationID, err := uuid.Parse(c.Params("reservationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}

	var req CancelRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	reservation, err := bookings.Cancel(reservationID, actorID, req.Message)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(reservationResponse(reservation))
}
