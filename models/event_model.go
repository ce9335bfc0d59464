package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is an outbox row for the external messaging/notification layer.
// The core only writes these; delivery is someone else's problem.
type Event struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Type      string    `gorm:"size:50;not null;index" json:"type"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
