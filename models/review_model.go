package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is one side of a two-sided blind review pair. PrivateFeedback is
// never serialized; it is only reachable through operator tooling.
type Review struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReservationID uuid.UUID `gorm:"not null;uniqueIndex:idx_review_reservation_author" json:"reservation_id"`
	AuthorID      uuid.UUID `gorm:"not null;uniqueIndex:idx_review_reservation_author" json:"author_id"`
	SubjectID     uuid.UUID `gorm:"not null;index" json:"subject_id"`

	Rating          int    `gorm:"not null" json:"rating"`
	Comment         string `gorm:"type:text" json:"comment"`
	PrivateFeedback string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
