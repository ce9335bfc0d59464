package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mkamau21/villastay/models"
	"github.com/mkamau21/villastay/utils"
)

type CreatePropertyRequest struct {
	Title       string  `json:"title" validate:"required,min=3"`
	Location    string  `json:"location"`
	NightlyRate string  `json:"nightly_rate" validate:"required"`
	CleaningFee *string `json:"cleaning_fee,omitempty"`
	MinNights   int     `json:"min_nights" validate:"omitempty,min=1"`
	Capacity    int     `json:"capacity" validate:"required,min=1"`
}

func CreateProperty(c *fiber.Ctx) error {
	hostID := currentUserID(c)

	var req CreatePropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rateCents, err := utils.ParseAmount(req.NightlyRate)
	if err != nil || rateCents <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "nightly_rate must be a positive amount like 100.00"})
	}

	var cleaningFeeCents *int64
	if req.CleaningFee != nil {
		fee, err := utils.ParseAmount(*req.CleaningFee)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cleaning_fee must be an amount like 20.00"})
		}
		cleaningFeeCents = &fee
	}

	minNights := req.MinNights
	if minNights == 0 {
		minNights = 1
	}

	property := models.Property{
		HostID:           hostID,
		Title:            req.Title,
		Location:         req.Location,
		NightlyRateCents: rateCents,
		CleaningFeeCents: cleaningFeeCents,
		MinNights:        minNights,
		Capacity:         req.Capacity,
	}
	if err := db.Create(&property).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create property"})
	}

	return c.Status(fiber.StatusCreated).JSON(property)
}

func GetProperty(c *fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property id"})
	}

	var property models.Property
	if err := db.First(&property, "id = ?", propertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property not found"})
	}

	return c.JSON(fiber.Map{
		"id":           property.ID,
		"host_id":      property.HostID,
		"title":        property.Title,
		"location":     property.Location,
		"nightly_rate": utils.FormatAmount(property.NightlyRateCents),
		"cleaning_fee": formatOptionalAmount(property.CleaningFeeCents),
		"min_nights":   property.MinNights,
		"capacity":     property.Capacity,
	})
}

func formatOptionalAmount(cents *int64) *string {
	if cents == nil {
		return nil
	}
	s := utils.FormatAmount(*cents)
	return &s
}

// GetPropertyAvailability lists the occupied nights over a range; callers
// infer free dates from the gaps. Held and booked nights both read as
// unavailable to the public.
func GetPropertyAvailability(c *fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property id"})
	}

	from, err := parseDate(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from must be a date like 2025-12-01"})
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "to must be a date like 2025-12-31"})
	}
	if !to.After(from) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "to must be after from"})
	}

	var property models.Property
	if err := db.First(&property, "id = ?", propertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property not found"})
	}

	days, err := ledger.DaysInRange(propertyID, from, to)
	if err != nil {
		return domainError(c, err)
	}

	unavailable := make([]string, 0, len(days))
	for _, day := range days {
		unavailable = append(unavailable, day.Date.Format("2006-01-02"))
	}
	return c.JSON(fiber.Map{
		"property_id": propertyID,
		"from":        from.Format("2006-01-02"),
		"to":          to.Format("2006-01-02"),
		"unavailable": unavailable,
	})
}

func GetPropertyReviews(c *fiber.Ctx) error {
	propertyID, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid property id"})
	}

	var property models.Property
	if err := db.First(&property, "id = ?", propertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Property not found"})
	}

	views, err := reviews.PublicForProperty(propertyID, time.Now())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(views)
}
