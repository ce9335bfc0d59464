package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/mkamau21/villastay/models"
	"github.com/mkamau21/villastay/notifications"
	"github.com/mkamau21/villastay/services"
	"github.com/mkamau21/villastay/utils"
	"gorm.io/gorm"
)

var validate = validator.New()

var (
	db       *gorm.DB
	ledger   *services.Ledger
	bookings *services.Booking
	reviews  *services.Reviews
)

// Init wires the handler package to the shared database once at startup.
// The booking service is returned so cmd/api can hand it to the cron jobs;
// everything must share one ledger or its per-property locks mean nothing.
func Init(database *gorm.DB) *services.Booking {
	db = database
	ledger = services.NewLedger(database)
	bookings = services.NewBooking(database, ledger, notifications.NewEvents(database))
	reviews = services.NewReviews(database)
	return bookings
}

func currentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	id, _ := uuid.Parse(claims["user_id"].(string))
	return id
}

var statusForCode = map[string]int{
	services.CodeInvalidRange:     fiber.StatusBadRequest,
	services.CodeCapacityExceeded: fiber.StatusBadRequest,
	services.CodeDateConflict:     fiber.StatusConflict,
	services.CodeForbidden:        fiber.StatusForbidden,
	services.CodeNotFound:         fiber.StatusNotFound,
	services.CodeStaleTransition:  fiber.StatusConflict,
}

// domainError maps a coded service error onto an HTTP response; anything
// uncoded is an infrastructure failure and becomes a 500.
func domainError(c *fiber.Ctx, err error) error {
	if e, ok := services.AsError(err); ok {
		status, found := statusForCode[e.Code]
		if !found {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(e)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong, please try again."})
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// reservationResponse is the party-facing reservation view: effective
// status folded in and money rendered alongside the cent fields.
func reservationResponse(r *models.Reservation) fiber.Map {
	resp := fiber.Map{
		"id":                r.ID,
		"property_id":       r.PropertyID,
		"guest_id":          r.GuestID,
		"host_id":           r.HostID,
		"check_in":          r.CheckIn.Format("2006-01-02"),
		"check_out":         r.CheckOut.Format("2006-01-02"),
		"guest_count":       r.GuestCount,
		"message":           r.Message,
		"confirmation_code": r.ConfirmationCode,
		"status":            r.EffectiveStatus(time.Now()),
		"created_at":        r.CreatedAt,
		"updated_at":        r.UpdatedAt,
		"price": fiber.Map{
			"nights":        r.Nights,
			"nightly_rate":  utils.FormatAmount(r.NightlyRateCents),
			"nightly_total": utils.FormatAmount(r.NightlyTotalCents),
			"cleaning_fee":  utils.FormatAmount(r.CleaningFeeCents),
			"total":         utils.FormatAmount(r.TotalCents),
			"total_cents":   r.TotalCents,
		},
	}
	if r.CancellationReason != nil {
		resp["cancellation_reason"] = *r.CancellationReason
	}
	if r.CancellationMessage != nil {
		resp["cancellation_message"] = *r.CancellationMessage
	}
	return resp
}
