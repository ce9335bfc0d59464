package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau21/villastay/models"
	"gorm.io/gorm"
)

// ReviewReleaseWindow is how long after check-out a lone review waits for
// its counterpart before going public anyway.
const ReviewReleaseWindow = 14 * 24 * time.Hour

// Reviews implements the blind-review pair: neither side's public fields
// are disclosed until both have written, or the release window has passed.
// Visibility is evaluated on every read; nothing is precomputed.
type Reviews struct {
	db *gorm.DB
}

func NewReviews(db *gorm.DB) *Reviews {
	return &Reviews{db: db}
}

// ReviewView is the only review shape that leaves this service. Private
// feedback has no field here on purpose.
type ReviewView struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	AuthorID      uuid.UUID `json:"author_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

func viewOf(r *models.Review) ReviewView {
	return ReviewView{
		ID:            r.ID,
		ReservationID: r.ReservationID,
		AuthorID:      r.AuthorID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
}

type SubmitReviewInput struct {
	ReservationID   uuid.UUID
	AuthorID        uuid.UUID
	Rating          int
	Comment         string
	PrivateFeedback string
}

// Submit stores one side of the pair. Only a party to a completed stay may
// write, and only once; reviews are immutable after creation.
func (s *Reviews) Submit(in SubmitReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, newError(CodeInvalidRange, "rating must be between 1 and 5")
	}
	if strings.TrimSpace(in.Comment) == "" {
		return nil, newError(CodeInvalidRange, "a public comment is required")
	}

	var review models.Review
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, "id = ?", in.ReservationID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return newError(CodeNotFound, "reservation not found")
			}
			return err
		}
		if !reservation.IsParty(in.AuthorID) {
			return newError(CodeForbidden, "you are not a party to this reservation")
		}
		if reservation.EffectiveStatus(time.Now()) != models.ReservationCompleted {
			return newError(CodeForbidden, "reviews can only be submitted for completed stays")
		}

		var existing models.Review
		err := tx.Where("reservation_id = ? AND author_id = ?", in.ReservationID, in.AuthorID).
			First(&existing).Error
		if err == nil {
			return newError(CodeForbidden, "you have already reviewed this stay")
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		subjectID := reservation.HostID
		if in.AuthorID == reservation.HostID {
			subjectID = reservation.GuestID
		}

		review = models.Review{
			ReservationID:   in.ReservationID,
			AuthorID:        in.AuthorID,
			SubjectID:       subjectID,
			Rating:          in.Rating,
			Comment:         in.Comment,
			PrivateFeedback: in.PrivateFeedback,
		}
		return tx.Create(&review).Error
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// pairVisible is the release rule: both sides submitted, or the window
// since check-out has elapsed.
func pairVisible(reviews []models.Review, checkOut, now time.Time) bool {
	if len(reviews) >= 2 {
		return true
	}
	return now.Sub(checkOut) >= ReviewReleaseWindow
}

// ForReservation returns the reviews of a stay as seen by one of its
// parties. Before release, each side sees only their own submission; the
// other side's review is treated as absent.
func (s *Reviews) ForReservation(reservationID, readerID uuid.UUID, now time.Time) ([]ReviewView, error) {
	var reservation models.Reservation
	if err := s.db.First(&reservation, "id = ?", reservationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, newError(CodeNotFound, "reservation not found")
		}
		return nil, err
	}
	if !reservation.IsParty(readerID) {
		return nil, newError(CodeForbidden, "you are not a party to this reservation")
	}

	var reviews []models.Review
	err := s.db.Where("reservation_id = ?", reservationID).Order("created_at").Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	visible := pairVisible(reviews, reservation.CheckOut, now)
	views := make([]ReviewView, 0, len(reviews))
	for i := range reviews {
		if visible || reviews[i].AuthorID == readerID {
			views = append(views, viewOf(&reviews[i]))
		}
	}
	return views, nil
}

// PublicForProperty returns released guest-authored reviews for a
// property's listing page.
func (s *Reviews) PublicForProperty(propertyID uuid.UUID, now time.Time) ([]ReviewView, error) {
	var reservations []models.Reservation
	err := s.db.
		Where("property_id = ? AND status = ? AND check_out <= ?",
			propertyID, models.ReservationConfirmed, DateOnly(now)).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return []ReviewView{}, nil
	}

	ids := make([]uuid.UUID, 0, len(reservations))
	byID := make(map[uuid.UUID]*models.Reservation, len(reservations))
	for i := range reservations {
		ids = append(ids, reservations[i].ID)
		byID[reservations[i].ID] = &reservations[i]
	}

	var reviews []models.Review
	err = s.db.Where("reservation_id IN ?", ids).Order("created_at desc").Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	byReservation := make(map[uuid.UUID][]models.Review)
	for _, review := range reviews {
		byReservation[review.ReservationID] = append(byReservation[review.ReservationID], review)
	}

	// Walk the fetched newest-first order so the listing page is stable.
	views := make([]ReviewView, 0, len(reviews))
	for i := range reviews {
		reservation := byID[reviews[i].ReservationID]
		if reviews[i].AuthorID != reservation.GuestID {
			continue
		}
		if !pairVisible(byReservation[reviews[i].ReservationID], reservation.CheckOut, now) {
			continue
		}
		views = append(views, viewOf(&reviews[i]))
	}
	return views, nil
}
