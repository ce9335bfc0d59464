package services

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau21/villastay/models"
	"github.com/mkamau21/villastay/notifications"
	"github.com/mkamau21/villastay/utils"
	"gorm.io/gorm"
)

// Booking owns the reservation state machine. It is the only writer of a
// reservation's status; the ledger is the only writer of calendar state.
type Booking struct {
	db     *gorm.DB
	ledger *Ledger
	events *notifications.Events
}

func NewBooking(db *gorm.DB, ledger *Ledger, events *notifications.Events) *Booking {
	return &Booking{db: db, ledger: ledger, events: events}
}

type CreateReservationInput struct {
	PropertyID uuid.UUID
	GuestID    uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	GuestCount int
	Message    string
}

// Create validates the request, snapshots the price, holds the dates and
// persists a pending reservation. Validation happens before the ledger is
// touched so a doomed request never consumes a hold.
func (s *Booking) Create(in CreateReservationInput) (*models.Reservation, error) {
	var property models.Property
	if err := s.db.First(&property, "id = ?", in.PropertyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, newError(CodeNotFound, "property not found")
		}
		return nil, err
	}

	if property.HostID == in.GuestID {
		return nil, newError(CodeForbidden, "hosts cannot book their own property")
	}

	nights := Nights(in.CheckIn, in.CheckOut)
	if nights <= 0 {
		return nil, newError(CodeInvalidRange, "check-out must be after check-in")
	}
	if nights < property.MinNights {
		return nil, newError(CodeInvalidRange, "stay is shorter than the property minimum nights")
	}
	if in.GuestCount < 1 {
		return nil, newError(CodeInvalidRange, "guest count must be at least 1")
	}
	if in.GuestCount > property.Capacity {
		return nil, newError(CodeCapacityExceeded, "guest count exceeds property capacity")
	}

	breakdown, err := Quote(property.NightlyRateCents, property.CleaningFeeCents, in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}

	holdID, err := s.ledger.TryHold(in.PropertyID, in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}

	var reservation models.Reservation
	err = s.db.Transaction(func(tx *gorm.DB) error {
		code, err := utils.GenerateConfirmationCode(tx)
		if err != nil {
			return err
		}

		reservation = models.Reservation{
			PropertyID:        in.PropertyID,
			GuestID:           in.GuestID,
			HostID:            property.HostID,
			CheckIn:           DateOnly(in.CheckIn),
			CheckOut:          DateOnly(in.CheckOut),
			GuestCount:        in.GuestCount,
			Message:           in.Message,
			Nights:            breakdown.Nights,
			NightlyRateCents:  breakdown.NightlyRateCents,
			NightlyTotalCents: breakdown.NightlyTotalCents,
			CleaningFeeCents:  breakdown.CleaningFeeCents,
			TotalCents:        breakdown.TotalCents,
			Status:            models.ReservationPending,
			HoldID:            holdID,
			ConfirmationCode:  code,
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		if releaseErr := s.ledger.Release(holdID); releaseErr != nil {
			log.Printf("booking: failed to release hold %s after create error: %v", holdID, releaseErr)
		}
		return nil, err
	}

	s.events.Emit(notifications.EventReservationCreated, notifications.PayloadFor(&reservation))
	return &reservation, nil
}

// Accept confirms a pending reservation. Host only.
func (s *Booking) Accept(reservationID, actorID uuid.UUID) (*models.Reservation, error) {
	reservation, err := s.transition(reservationID, transitionRule{
		actor:      actorID,
		allowHost:  true,
		from:       models.ReservationPending,
		to:         models.ReservationConfirmed,
		ledgerStep: s.ledger.commit,
	})
	if err != nil {
		return nil, err
	}
	s.events.Emit(notifications.EventReservationAccepted, notifications.PayloadFor(reservation))
	return reservation, nil
}

// Decline rejects a pending reservation and frees the held dates. Host
// only; a reason is required.
func (s *Booking) Decline(reservationID, actorID uuid.UUID, reason string) (*models.Reservation, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, newError(CodeInvalidRange, "a reason is required to decline a reservation")
	}
	reservation, err := s.transition(reservationID, transitionRule{
		actor:      actorID,
		allowHost:  true,
		from:       models.ReservationPending,
		to:         models.ReservationCancelled,
		reason:     &reason,
		ledgerStep: s.ledger.release,
	})
	if err != nil {
		return nil, err
	}
	s.events.Emit(notifications.EventReservationDeclined, notifications.PayloadFor(reservation))
	return reservation, nil
}

// Withdraw lets the guest pull back their own pending request.
func (s *Booking) Withdraw(reservationID, actorID uuid.UUID) (*models.Reservation, error) {
	reservation, err := s.transition(reservationID, transitionRule{
		actor:      actorID,
		allowGuest: true,
		from:       models.ReservationPending,
		to:         models.ReservationCancelled,
		ledgerStep: s.ledger.release,
	})
	if err != nil {
		return nil, err
	}
	s.events.Emit(notifications.EventReservationCancelled, notifications.PayloadFor(reservation))
	return reservation, nil
}

// Cancel tears down a confirmed reservation; either party may do it. The
// booked dates go back to free.
func (s *Booking) Cancel(reservationID, actorID uuid.UUID, message string) (*models.Reservation, error) {
	var msg *string
	if m := strings.TrimSpace(message); m != "" {
		msg = &m
	}
	reservation, err := s.transition(reservationID, transitionRule{
		actor:      actorID,
		allowGuest: true,
		allowHost:  true,
		from:       models.ReservationConfirmed,
		to:         models.ReservationCancelled,
		message:    msg,
		ledgerStep: s.ledger.release,
	})
	if err != nil {
		return nil, err
	}
	s.events.Emit(notifications.EventReservationCancelled, notifications.PayloadFor(reservation))
	return reservation, nil
}

type transitionRule struct {
	actor      uuid.UUID
	allowGuest bool
	allowHost  bool
	from       models.ReservationStatus
	to         models.ReservationStatus
	reason     *string
	message    *string
	ledgerStep func(tx *gorm.DB, holdID uuid.UUID) error
}

// transition applies one state-machine edge. Authorization and state are
// checked against a fresh read, then the status write is guarded by the
// expected current status: losing a race against another transition
// surfaces as stale_transition instead of a silent overwrite.
func (s *Booking) transition(reservationID uuid.UUID, rule transitionRule) (*models.Reservation, error) {
	if !rule.from.CanTransition(rule.to) {
		return nil, newError(CodeForbidden, "transition not permitted")
	}

	var reservation models.Reservation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reservation, "id = ?", reservationID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return newError(CodeNotFound, "reservation not found")
			}
			return err
		}

		actorIsGuest := reservation.GuestID == rule.actor
		actorIsHost := reservation.HostID == rule.actor
		if !(rule.allowGuest && actorIsGuest) && !(rule.allowHost && actorIsHost) {
			return newError(CodeForbidden, "you are not allowed to perform this action")
		}

		now := time.Now()
		if reservation.EffectiveStatus(now) != rule.from {
			return newError(CodeForbidden, "reservation is not in a state that permits this action")
		}

		updates := map[string]any{"status": rule.to}
		if rule.reason != nil {
			updates["cancellation_reason"] = *rule.reason
		}
		if rule.message != nil {
			updates["cancellation_message"] = *rule.message
		}

		result := tx.Model(&models.Reservation{}).
			Where("id = ? AND status = ?", reservation.ID, rule.from).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return newError(CodeStaleTransition, "reservation status changed, re-fetch and retry")
		}

		if rule.ledgerStep != nil {
			if err := rule.ledgerStep(tx, reservation.HoldID); err != nil {
				return err
			}
		}

		reservation.Status = rule.to
		if rule.reason != nil {
			reservation.CancellationReason = rule.reason
		}
		if rule.message != nil {
			reservation.CancellationMessage = rule.message
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// SetCheckInInstructions attaches host instructions to a confirmed stay.
func (s *Booking) SetCheckInInstructions(reservationID, actorID uuid.UUID, instructions string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.First(&reservation, "id = ?", reservationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, newError(CodeNotFound, "reservation not found")
		}
		return nil, err
	}
	if reservation.HostID != actorID {
		return nil, newError(CodeForbidden, "only the host can set check-in instructions")
	}
	if reservation.Status != models.ReservationConfirmed {
		return nil, newError(CodeForbidden, "instructions can only be set on a confirmed reservation")
	}

	// The write is guarded on the status so a cancellation landing after the
	// read above cannot be clobbered by a full-row save.
	result := s.db.Model(&models.Reservation{}).
		Where("id = ? AND status = ?", reservation.ID, models.ReservationConfirmed).
		Update("check_in_instructions", instructions)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, newError(CodeStaleTransition, "reservation status changed, re-fetch and retry")
	}
	reservation.CheckInInstructions = &instructions
	return &reservation, nil
}

// Get returns a reservation to one of its parties.
func (s *Booking) Get(reservationID, actorID uuid.UUID) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.Preload("Property").First(&reservation, "id = ?", reservationID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, newError(CodeNotFound, "reservation not found")
		}
		return nil, err
	}
	if !reservation.IsParty(actorID) {
		return nil, newError(CodeForbidden, "you are not a party to this reservation")
	}
	return &reservation, nil
}

func (s *Booking) ListForGuest(guestID uuid.UUID) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.Preload("Property").
		Where("guest_id = ?", guestID).
		Order("check_in desc").
		Find(&reservations).Error
	return reservations, err
}

func (s *Booking) ListForHost(hostID uuid.UUID) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.Preload("Property").Preload("Guest").
		Where("host_id = ?", hostID).
		Order("check_in desc").
		Find(&reservations).Error
	return reservations, err
}

// ExpireStalePending cancels pending reservations whose check-in date has
// arrived without a host decision and releases their holds. Returns how
// many were expired.
func (s *Booking) ExpireStalePending(now time.Time) (int, error) {
	var stale []models.Reservation
	err := s.db.
		Where("status = ? AND check_in <= ?", models.ReservationPending, DateOnly(now)).
		Find(&stale).Error
	if err != nil {
		return 0, err
	}

	expired := 0
	reason := "expired: host did not respond before check-in"
	for _, reservation := range stale {
		won := false
		err := s.db.Transaction(func(tx *gorm.DB) error {
			result := tx.Model(&models.Reservation{}).
				Where("id = ? AND status = ?", reservation.ID, models.ReservationPending).
				Updates(map[string]any{"status": models.ReservationCancelled, "cancellation_reason": reason})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return nil
			}
			won = true
			return s.ledger.release(tx, reservation.HoldID)
		})
		if err != nil {
			log.Printf("booking: failed to expire reservation %s: %v", reservation.ID, err)
			continue
		}
		if !won {
			continue
		}
		expired++
		reservation.Status = models.ReservationCancelled
		s.events.Emit(notifications.EventReservationCancelled, notifications.PayloadFor(&reservation))
	}
	return expired, nil
}
