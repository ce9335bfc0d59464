package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config reads one of the VillaStay environment keys (DATABASE_URL,
// JWT_SECRET, PORT, DEMO_SEED, DEMO_HOST_EMAIL, DEMO_HOST_PASSWORD),
// loading .env first when one is present.
func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// ConfigOr falls back to a default when the key is unset.
func ConfigOr(key, fallback string) string {
	if value := Config(key); value != "" {
		return value
	}
	return fallback
}
