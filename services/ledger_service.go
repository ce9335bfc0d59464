package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau21/villastay/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger is the single source of truth for a property's calendar. Every
// status change of a date goes through it; callers never touch calendar
// rows directly.
//
// TryHold serializes per property: a mutex keyed by property id plus a
// transaction (with a row lock on the property when the database supports
// it) makes the free-check and the hold insert one atomic unit. Calls for
// different properties do not contend.
type Ledger struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db, locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (l *Ledger) propertyLock(propertyID uuid.UUID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[propertyID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[propertyID] = lock
	}
	return lock
}

func (l *Ledger) lockProperty(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// TryHold atomically checks that every night in [checkIn, checkOut) is free
// and, if so, marks them held under a fresh hold token. On any overlap it
// returns a date_conflict error naming the occupied dates and mutates
// nothing.
func (l *Ledger) TryHold(propertyID uuid.UUID, checkIn, checkOut time.Time) (uuid.UUID, error) {
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return uuid.Nil, newError(CodeInvalidRange, "check-out must be after check-in")
	}

	lock := l.propertyLock(propertyID)
	lock.Lock()
	defer lock.Unlock()

	holdID := uuid.New()
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := l.lockProperty(tx).First(&property, "id = ?", propertyID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return newError(CodeNotFound, "property not found")
			}
			return err
		}

		occupied, err := l.daysIn(tx, propertyID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if len(occupied) > 0 {
			return l.conflictError(tx, occupied)
		}

		days := make([]models.CalendarDay, 0, nights)
		for d := DateOnly(checkIn); d.Before(DateOnly(checkOut)); d = d.AddDate(0, 0, 1) {
			days = append(days, models.CalendarDay{
				PropertyID: propertyID,
				Date:       d,
				Status:     models.DayHeld,
				HoldID:     &holdID,
			})
		}
		return tx.Create(&days).Error
	})
	if err != nil {
		return uuid.Nil, err
	}
	return holdID, nil
}

// Commit flips every night of a hold from held to booked. Committing a
// token that is not currently held is a caller bug, not a business outcome.
func (l *Ledger) Commit(holdID uuid.UUID) error {
	return l.commit(l.db, holdID)
}

func (l *Ledger) commit(tx *gorm.DB, holdID uuid.UUID) error {
	result := tx.Model(&models.CalendarDay{}).
		Where("hold_id = ? AND status = ?", holdID, models.DayHeld).
		Update("status", models.DayBooked)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("ledger: commit of hold %s that is not held", holdID)
	}
	return nil
}

// Release frees every night of a hold, whether held or booked. Releasing a
// hold that no longer owns any nights is a no-op.
func (l *Ledger) Release(holdID uuid.UUID) error {
	return l.release(l.db, holdID)
}

func (l *Ledger) release(tx *gorm.DB, holdID uuid.UUID) error {
	return tx.Where("hold_id = ?", holdID).Delete(&models.CalendarDay{}).Error
}

// BlockDates marks individual dates unavailable without a reservation.
// Dates already blocked are left alone; dates held or booked by a
// reservation are a conflict.
func (l *Ledger) BlockDates(propertyID uuid.UUID, dates []time.Time) error {
	lock := l.propertyLock(propertyID)
	lock.Lock()
	defer lock.Unlock()

	return l.db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := l.lockProperty(tx).First(&property, "id = ?", propertyID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return newError(CodeNotFound, "property not found")
			}
			return err
		}

		for _, date := range dates {
			date = DateOnly(date)
			var existing models.CalendarDay
			err := tx.Where("property_id = ? AND date = ?", propertyID, date).First(&existing).Error
			if err == nil {
				if existing.Status == models.DayBlocked {
					continue
				}
				return l.conflictError(tx, []models.CalendarDay{existing})
			}
			if err != gorm.ErrRecordNotFound {
				return err
			}

			day := models.CalendarDay{
				PropertyID: propertyID,
				Date:       date,
				Status:     models.DayBlocked,
			}
			if err := tx.Create(&day).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UnblockDates removes host blocks. Dates held or booked by a reservation
// are untouched.
func (l *Ledger) UnblockDates(propertyID uuid.UUID, dates []time.Time) error {
	lock := l.propertyLock(propertyID)
	lock.Lock()
	defer lock.Unlock()

	normalized := make([]time.Time, 0, len(dates))
	for _, date := range dates {
		normalized = append(normalized, DateOnly(date))
	}
	return l.db.
		Where("property_id = ? AND status = ? AND date IN ?", propertyID, models.DayBlocked, normalized).
		Delete(&models.CalendarDay{}).Error
}

// DaysInRange returns the occupied nights of a property over [from, to),
// for the public availability view.
func (l *Ledger) DaysInRange(propertyID uuid.UUID, from, to time.Time) ([]models.CalendarDay, error) {
	return l.daysIn(l.db, propertyID, from, to)
}

func (l *Ledger) daysIn(tx *gorm.DB, propertyID uuid.UUID, from, to time.Time) ([]models.CalendarDay, error) {
	var days []models.CalendarDay
	err := tx.
		Where("property_id = ? AND date >= ? AND date < ?", propertyID, DateOnly(from), DateOnly(to)).
		Order("date").
		Find(&days).Error
	return days, err
}

func (l *Ledger) conflictError(tx *gorm.DB, occupied []models.CalendarDay) error {
	e := newError(CodeDateConflict, "requested dates are not available")
	holdIDs := make([]uuid.UUID, 0, len(occupied))
	for _, day := range occupied {
		e.ConflictingDates = append(e.ConflictingDates, day.Date.Format("2006-01-02"))
		if day.HoldID != nil {
			holdIDs = append(holdIDs, *day.HoldID)
		}
	}

	if len(holdIDs) > 0 {
		var reservationIDs []uuid.UUID
		err := tx.Model(&models.Reservation{}).
			Where("hold_id IN ?", holdIDs).
			Pluck("id", &reservationIDs).Error
		if err == nil {
			for _, id := range reservationIDs {
				e.ConflictingReservationIDs = append(e.ConflictingReservationIDs, id.String())
			}
		}
	}
	return e
}
