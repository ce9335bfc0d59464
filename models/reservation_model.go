package models

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"

	// ReservationCompleted is never stored; it is derived from a confirmed
	// reservation whose check-out date has passed.
	ReservationCompleted ReservationStatus = "completed"
)

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCancelled},
}

// CanTransition reports whether the stored-state machine allows s -> to.
func (s ReservationStatus) CanTransition(to ReservationStatus) bool {
	for _, next := range reservationTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PropertyID uuid.UUID `gorm:"not null;index" json:"property_id"`
	GuestID    uuid.UUID `gorm:"not null;index" json:"guest_id"`
	HostID     uuid.UUID `gorm:"not null;index" json:"host_id"`

	CheckIn    time.Time `gorm:"not null" json:"check_in"`
	CheckOut   time.Time `gorm:"not null" json:"check_out"`
	GuestCount int       `gorm:"not null" json:"guest_count"`
	Message    string    `gorm:"type:text" json:"message"`

	// Price snapshot, computed once at creation. Later rate changes on the
	// property never touch these fields.
	Nights            int   `gorm:"not null" json:"nights"`
	NightlyRateCents  int64 `gorm:"not null" json:"nightly_rate_cents"`
	NightlyTotalCents int64 `gorm:"not null" json:"nightly_total_cents"`
	CleaningFeeCents  int64 `gorm:"not null;default:0" json:"cleaning_fee_cents"`
	TotalCents        int64 `gorm:"not null" json:"total_cents"`

	Status ReservationStatus `gorm:"size:20;not null;default:'pending'" json:"-"`
	HoldID uuid.UUID         `gorm:"type:uuid;not null;index" json:"-"`

	ConfirmationCode    string  `gorm:"size:10;unique" json:"confirmation_code"`
	CancellationReason  *string `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancellationMessage *string `gorm:"type:text" json:"cancellation_message,omitempty"`
	CheckInInstructions *string `gorm:"type:text" json:"-"`

	Property Property `gorm:"foreignkey:PropertyID" json:"property,omitempty"`
	Guest    User     `gorm:"foreignkey:GuestID" json:"guest,omitempty"`
	Host     User     `gorm:"foreignkey:HostID" json:"host,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveStatus folds the derived completed state into the stored status.
func (r *Reservation) EffectiveStatus(now time.Time) ReservationStatus {
	if r.Status == ReservationConfirmed && !now.Before(r.CheckOut) {
		return ReservationCompleted
	}
	return r.Status
}

func (r *Reservation) IsParty(userID uuid.UUID) bool {
	return r.GuestID == userID || r.HostID == userID
}
