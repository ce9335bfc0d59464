package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mkamau21/villastay/models"
)

func AcceptReservation(c *fiber.Ctx) error {
	hostID := currentUserID(c)
	reservationID, err := uuid.Parse(c.Params("reservationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}

	reservation, err := bookings.Accept(reservationID, hostID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(reservationResponse(reservation))
}

type DeclineRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

func DeclineReservation(c *fiber.Ctx) error {
	hostID := currentUserID(c)
	reservationID, err := uuid.Parse(c.Params("reservationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}

	var req DeclineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	reservation, err := bookings.Decline(reservationID, hostID, req.Reason)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(reservationResponse(reservation))
}

type InstructionsRequest struct {
	Instructions string `json:"instructions" validate:"required,min=3"`
}

func SetCheckInInstructions(c *fiber.Ctx) error {
	hostID := currentUserID(c)
	reservationID, err := uuid.Parse(c.Params("reservationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reservation id"})
	}

	var req InstructionsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	_, err = bookings.SetCheckInInstructions(reservationID, hostID, req.Instructions)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Check-in instructions saved"})
}

func GetHostReservations(c *fiber.Ctx) error {
	hostID := currentUserID(c)

	list, err := bookings.ListForHost(hostID)
	if err != nil {
		return domainError(c, err)
	}

	out := make([]fiber.Map, 0, len(list))
	for i := range list {
		out = append(out, reservationResponse(&list[i]))
	}
	return c.JSON(out)
}

type BlockedDatesRequest struct {
	Dates []string `json:"dates" validate:"required,min=1,dive,datetime=2006-01-02"`
}

func (r *BlockedDatesRequest) parsed() ([]time.Time, error) {
	dates := make([]time.Time, 0, len(r.Dates))
	for _, s := range r.Dates {
		d, err := parseDate(s)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func blockedDatesRequest(c *fiber.Ctx) (uuid.UUID, []time.Time, error) {
	hostID := currentUserID(c)
	propertyID, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return uuid.Nil, nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property id"})
	}

	var req BlockedDatesRequest
	if err := c.BodyParser(&req); err != nil {
		return uuid.Nil, nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return uuid.Nil, nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	dates, err := req.parsed()
	if err != nil {
		return uuid.Nil, nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dates must look like 2025-12-01"})
	}

	var property models.Property
	if err := db.First(&property, "id = ?", propertyID).Error; err != nil {
		return uuid.Nil, nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property not found"})
	}
	if property.HostID != hostID {
		return uuid.Nil, nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this property"})
	}
	return propertyID, dates, nil
}

func BlockDates(c *fiber.Ctx) error {
	propertyID, dates, err := blockedDatesRequest(c)
	if err != nil || propertyID == uuid.Nil {
		return err
	}
	if err := ledger.BlockDates(propertyID, dates); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Dates blocked"})
}

func UnblockDates(c *fiber.Ctx) error {
	propertyID, dates, err := blockedDatesRequest(c)
	if err != nil || propertyID == uuid.Nil {
		return err
	}
	if err := ledger.UnblockDates(propertyID, dates); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Dates unblocked"})
}
