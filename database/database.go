package database

import (
	"fmt"
	"log"

	config "github.com/mkamau21/villastay/configs"
	"github.com/mkamau21/villastay/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.CalendarDay{},
		&models.Reservation{},
		&models.Review{},
		&models.Event{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// SeedDemo creates a demo host account with one property so a fresh
// install has something to book against. Controlled by DEMO_SEED=true.
func SeedDemo() {
	if config.Config("DEMO_SEED") != "true" {
		return
	}

	hostEmail := config.Config("DEMO_HOST_EMAIL")
	hostPassword := config.Config("DEMO_HOST_PASSWORD")
	if hostEmail == "" || hostPassword == "" {
		log.Println("DEMO_SEED set but demo host credentials are missing, skipping seed")
		return
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", hostEmail).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for demo host: %v", err)
	}
	if count > 0 {
		log.Println("Demo host already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(hostPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash demo host password: %v", err)
	}

	host := models.User{
		FullName: "Demo Host",
		Email:    hostEmail,
		Password: string(hashedPassword),
		Role:     "host",
	}
	if err := DB.Create(&host).Error; err != nil {
		log.Fatalf("🔥 Failed to seed demo host: %v", err)
	}

	cleaningFee := int64(2000)
	property := models.Property{
		HostID:           host.ID,
		Title:            "Villa One",
		Location:         "Diani Beach",
		NightlyRateCents: 10000,
		CleaningFeeCents: &cleaningFee,
		MinNights:        2,
		Capacity:         4,
	}
	if err := DB.Create(&property).Error; err != nil {
		log.Fatalf("🔥 Failed to seed demo property: %v", err)
	}

	log.Println("✅ Demo host and property seeded successfully")
}
