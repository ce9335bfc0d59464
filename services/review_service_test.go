package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau21/villastay/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completedStay books and confirms a stay whose check-out lies daysAgo in
// the past, so it reads as completed.
func (f *fixture) completedStay(t *testing.T, daysAgo int) *models.Reservation {
	t.Helper()
	checkOut := DateOnly(time.Now()).AddDate(0, 0, -daysAgo)
	reservation := f.createReservation(t, checkOut.AddDate(0, 0, -3), checkOut)
	_, err := f.bookings.Accept(reservation.ID, f.host.ID)
	require.NoError(t, err)
	return reservation
}

func (f *fixture) submitReview(t *testing.T, reservationID, authorID uuid.UUID, comment string) *models.Review {
	t.Helper()
	review, err := f.reviews.Submit(SubmitReviewInput{
		ReservationID:   reservationID,
		AuthorID:        authorID,
		Rating:          5,
		Comment:         comment,
		PrivateFeedback: "between us only",
	})
	require.NoError(t, err)
	return review
}

func TestSubmitRequiresCompletedStay(t *testing.T) {
	f := newFixture(t)

	reservation := f.createReservation(t, date(2030, time.June, 1), date(2030, time.June, 4))
	_, err := f.reviews.Submit(SubmitReviewInput{
		ReservationID: reservation.ID,
		AuthorID:      f.guest.ID,
		Rating:        5,
		Comment:       "too early",
	})
	assert.True(t, IsCode(err, CodeForbidden))
}

func TestSubmitIsPartyOnlyAndOncePerAuthor(t *testing.T) {
	f := newFixture(t)
	reservation := f.completedStay(t, 5)

	stranger := f.newGuest(t, "stranger@example.com")
	_, err := f.reviews.Submit(SubmitReviewInput{
		ReservationID: reservation.ID,
		AuthorID:      stranger.ID,
		Rating:        4,
		Comment:       "never stayed here",
	})
	assert.True(t, IsCode(err, CodeForbidden))

	f.submitReview(t, reservation.ID, f.guest.ID, "lovely villa")
	_, err = f.reviews.Submit(SubmitReviewInput{
		ReservationID: reservation.ID,
		AuthorID:      f.guest.ID,
		Rating:        1,
		Comment:       "changed my mind",
	})
	assert.True(t, IsCode(err, CodeForbidden))
}

func TestSubmitSetsSubject(t *testing.T) {
	f := newFixture(t)
	reservation := f.completedStay(t, 5)

	guestReview := f.submitReview(t, reservation.ID, f.guest.ID, "lovely villa")
	assert.Equal(t, f.host.ID, guestReview.SubjectID)

	hostReview := f.submitReview(t, reservation.ID, f.host.ID, "model guest")
	assert.Equal(t, f.guest.ID, hostReview.SubjectID)
}

func TestBlindUntilBothSubmitted(t *testing.T) {
	f := newFixture(t)
	reservation := f.completedStay(t, 5)
	now := time.Now()

	f.submitReview(t, reservation.ID, f.guest.ID, "lovely villa")

	// The guest sees their own submission; the host sees nothing yet.
	guestSees, err := f.reviews.ForReservation(reservation.ID, f.guest.ID, now)
	require.NoError(t, err)
	require.Len(t, guestSees, 1)
	assert.Equal(t, f.guest.ID, guestSees[0].AuthorID)

	hostSees, err := f.reviews.ForReservation(reservation.ID, f.host.ID, now)
	require.NoError(t, err)
	assert.Empty(t, hostSees)

	// The counterpart lands and both sides open up immediately.
	f.submitReview(t, reservation.ID, f.host.ID, "model guest")

	guestSees, err = f.reviews.ForReservation(reservation.ID, f.guest.ID, now)
	require.NoError(t, err)
	assert.Len(t, guestSees, 2)

	hostSees, err = f.reviews.ForReservation(reservation.ID, f.host.ID, now)
	require.NoError(t, err)
	assert.Len(t, hostSees, 2)
}

func TestReleaseWindowOpensLoneReview(t *testing.T) {
	f := newFixture(t)
	reservation := f.completedStay(t, 15)

	f.submitReview(t, reservation.ID, f.guest.ID, "lovely villa")

	// Fifteen days past check-out: the lone guest review is public even
	// though the host never wrote one, and no host review materializes.
	views, err := f.reviews.ForReservation(reservation.ID, f.host.ID, time.Now())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, f.guest.ID, views[0].AuthorID)

	public, err := f.reviews.PublicForProperty(f.property.ID, time.Now())
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, f.guest.ID, public[0].AuthorID)
}

func TestPublicListingHidesUnreleasedPairs(t *testing.T) {
	f := newFixture(t)
	reservation := f.completedStay(t, 5)

	f.submitReview(t, reservation.ID, f.guest.ID, "lovely villa")

	public, err := f.reviews.PublicForProperty(f.property.ID, time.Now())
	require.NoError(t, err)
	assert.Empty(t, public)

	// Both sides in: the guest-authored review reaches the listing page,
	// the host-authored one stays on the reservation.
	f.submitReview(t, reservation.ID, f.host.ID, "model guest")

	public, err = f.reviews.PublicForProperty(f.property.ID, time.Now())
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, f.guest.ID, public[0].AuthorID)
	assert.Equal(t, "lovely villa", public[0].Comment)
}

func TestPublicListingIsNewestFirst(t *testing.T) {
	f := newFixture(t)

	older := f.completedStay(t, 20)
	newer := f.completedStay(t, 16)

	f.submitReview(t, older.ID, f.guest.ID, "first stay")
	f.submitReview(t, newer.ID, f.guest.ID, "second stay")

	public, err := f.reviews.PublicForProperty(f.property.ID, time.Now())
	require.NoError(t, err)
	require.Len(t, public, 2)
	assert.Equal(t, "second stay", public[0].Comment)
	assert.Equal(t, "first stay", public[1].Comment)
}

func TestReviewReadsArePartyOnly(t *testing.T) {
	f := newFixture(t)
	reservation := f.completedStay(t, 5)

	stranger := f.newGuest(t, "nosy@example.com")
	_, err := f.reviews.ForReservation(reservation.ID, stranger.ID, time.Now())
	assert.True(t, IsCode(err, CodeForbidden))

	_, err = f.reviews.ForReservation(uuid.New(), f.guest.ID, time.Now())
	assert.True(t, IsCode(err, CodeNotFound))
}
