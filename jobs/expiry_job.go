package jobs

import (
	"log"
	"time"

	"github.com/mkamau21/villastay/services"
)

// ExpirePendingReservations sweeps pending reservations whose check-in
// date has arrived with no host decision, cancelling them and freeing
// their held dates.
func ExpirePendingReservations(bookings *services.Booking) {
	log.Println("Running job: ExpirePendingReservations...")

	expired, err := bookings.ExpireStalePending(time.Now())
	if err != nil {
		log.Printf("Error expiring pending reservations: %v", err)
		return
	}

	if expired == 0 {
		log.Println("No stale pending reservations found.")
		return
	}
	log.Printf("Expired %d stale pending reservation(s).", expired)
}
