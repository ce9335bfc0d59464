package services

import (
	"fmt"
	"time"
)

// PriceBreakdown is the snapshot stored on a reservation at creation time.
// All values are integer cents.
type PriceBreakdown struct {
	Nights            int   `json:"nights"`
	NightlyRateCents  int64 `json:"nightly_rate_cents"`
	NightlyTotalCents int64 `json:"nightly_total_cents"`
	CleaningFeeCents  int64 `json:"cleaning_fee_cents"`
	TotalCents        int64 `json:"total_cents"`
}

// Quote computes the price breakdown for a stay. It is a pure function:
// same inputs, same output, so historical snapshots stay reproducible.
func Quote(nightlyRateCents int64, cleaningFeeCents *int64, checkIn, checkOut time.Time) (PriceBreakdown, error) {
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return PriceBreakdown{}, newError(CodeInvalidRange, "check-out must be after check-in")
	}
	if nightlyRateCents <= 0 {
		return PriceBreakdown{}, fmt.Errorf("pricing: nightly rate must be positive, got %d", nightlyRateCents)
	}

	cleaning := int64(0)
	if cleaningFeeCents != nil {
		cleaning = *cleaningFeeCents
	}

	nightlyTotal := int64(nights) * nightlyRateCents
	return PriceBreakdown{
		Nights:            nights,
		NightlyRateCents:  nightlyRateCents,
		NightlyTotalCents: nightlyTotal,
		CleaningFeeCents:  cleaning,
		TotalCents:        nightlyTotal + cleaning,
	}, nil
}

// Nights counts whole days between two dates after truncating both to
// midnight UTC.
func Nights(checkIn, checkOut time.Time) int {
	return int(DateOnly(checkOut).Sub(DateOnly(checkIn)).Hours() / 24)
}

// DateOnly truncates a timestamp to its calendar date in UTC. The ledger
// and all reservation dates are stored in this form.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
