package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkamau21/villastay/models"
	"github.com/mkamau21/villastay/notifications"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One shared in-memory database per test, one connection so sqlite
	// never sees concurrent writers.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.CalendarDay{},
		&models.Reservation{},
		&models.Review{},
		&models.Event{},
	))
	return db
}

type fixture struct {
	db       *gorm.DB
	ledger   *Ledger
	bookings *Booking
	reviews  *Reviews

	host     models.User
	guest    models.User
	property models.Property
}

// newFixture wires the services against a fresh database with one host,
// one guest and the villa_1-style property: rate 100.00, cleaning fee
// 20.00, min nights 2, capacity 4.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	ledger := NewLedger(db)
	f := &fixture{
		db:       db,
		ledger:   ledger,
		bookings: NewBooking(db, ledger, notifications.NewEvents(db)),
		reviews:  NewReviews(db),
	}

	f.host = models.User{FullName: "Harriet Host", Email: "host@example.com", Password: "x", Role: "host"}
	require.NoError(t, db.Create(&f.host).Error)
	f.guest = models.User{FullName: "Gloria Guest", Email: "guest@example.com", Password: "x", Role: "guest"}
	require.NoError(t, db.Create(&f.guest).Error)

	cleaningFee := int64(2000)
	f.property = models.Property{
		HostID:           f.host.ID,
		Title:            "Villa One",
		Location:         "Diani Beach",
		NightlyRateCents: 10000,
		CleaningFeeCents: &cleaningFee,
		MinNights:        2,
		Capacity:         4,
	}
	require.NoError(t, db.Create(&f.property).Error)
	return f
}

func (f *fixture) newGuest(t *testing.T, email string) models.User {
	t.Helper()
	guest := models.User{FullName: "Another Guest", Email: email, Password: "x", Role: "guest"}
	require.NoError(t, f.db.Create(&guest).Error)
	return guest
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (f *fixture) countDays(t *testing.T, status models.CalendarDayStatus) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.CalendarDay{}).
		Where("property_id = ? AND status = ?", f.property.ID, status).
		Count(&n).Error)
	return n
}

func (f *fixture) countEvents(t *testing.T, eventType string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Event{}).Where("type = ?", eventType).Count(&n).Error)
	return n
}

func (f *fixture) reload(t *testing.T, id uuid.UUID) models.Reservation {
	t.Helper()
	var r models.Reservation
	require.NoError(t, f.db.First(&r, "id = ?", id).Error)
	return r
}
