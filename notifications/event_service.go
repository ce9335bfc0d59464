package notifications

import (
	"encoding/json"
	"log"

	"github.com/mkamau21/villastay/models"
	"gorm.io/gorm"
)

// Lifecycle event types consumed by the messaging layer.
const (
	EventReservationCreated   = "reservation_created"
	EventReservationAccepted  = "reservation_accepted"
	EventReservationDeclined  = "reservation_declined"
	EventReservationCancelled = "reservation_cancelled"
)

// Events records lifecycle events as outbox rows. Delivery to the other
// party happens outside this service; a failed write is logged, never
// propagated, because notifying must not fail a booking.
type Events struct {
	db *gorm.DB
}

func NewEvents(db *gorm.DB) *Events {
	return &Events{db: db}
}

func (e *Events) Emit(eventType string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("events: failed to marshal %s payload: %v", eventType, err)
		return
	}

	event := models.Event{Type: eventType, Payload: string(body)}
	if err := e.db.Create(&event).Error; err != nil {
		log.Printf("events: failed to record %s: %v", eventType, err)
	}
}

// ReservationPayload is the event body shared by all lifecycle events.
type ReservationPayload struct {
	ReservationID string `json:"reservation_id"`
	PropertyID    string `json:"property_id"`
	GuestID       string `json:"guest_id"`
	HostID        string `json:"host_id"`
	Status        string `json:"status"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
}

func PayloadFor(r *models.Reservation) ReservationPayload {
	return ReservationPayload{
		ReservationID: r.ID.String(),
		PropertyID:    r.PropertyID.String(),
		GuestID:       r.GuestID.String(),
		HostID:        r.HostID.String(),
		Status:        string(r.Status),
		CheckIn:       r.CheckIn.Format("2006-01-02"),
		CheckOut:      r.CheckOut.Format("2006-01-02"),
	}
}
