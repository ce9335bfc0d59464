package models

import (
	"time"

	"github.com/google/uuid"
)

// Property carries only the fields the booking core reads. Photos,
// amenities and descriptions live in the listing management service.
type Property struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	HostID   uuid.UUID `gorm:"not null;index" json:"host_id"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	Location string    `gorm:"size:255" json:"location"`

	NightlyRateCents int64  `gorm:"not null" json:"nightly_rate_cents"`
	CleaningFeeCents *int64 `json:"cleaning_fee_cents"`
	MinNights        int    `gorm:"not null;default:1" json:"min_nights"`
	Capacity         int    `gorm:"not null;default:1" json:"capacity"`

	Host User `gorm:"foreignkey:HostID" json:"host,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
