package models

import (
	"time"

	"github.com/google/uuid"
)

type CalendarDayStatus string

const (
	DayHeld    CalendarDayStatus = "held"
	DayBooked  CalendarDayStatus = "booked"
	DayBlocked CalendarDayStatus = "blocked"
)

// CalendarDay is one occupied night of a property's calendar. A date with
// no row is free. Rows with a HoldID belong to a reservation's hold; rows
// without one are host-blocked dates.
type CalendarDay struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	PropertyID uuid.UUID         `gorm:"not null;uniqueIndex:idx_calendar_property_date" json:"property_id"`
	Date       time.Time         `gorm:"not null;uniqueIndex:idx_calendar_property_date" json:"date"`
	Status     CalendarDayStatus `gorm:"size:20;not null" json:"status"`
	HoldID     *uuid.UUID        `gorm:"index" json:"-"`
}
