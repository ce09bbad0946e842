package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDSN         string
	MediaDir      string
	LogFile       string
	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	// Outbound mail; sending is disabled when the API key is empty.
	SendgridKey      string
	ContactSender    string
	ContactRecipient string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found, using environment")
	}

	cfg := Config{
		Port:             getenv("PORT", "5000"),
		DBDSN:            getenv("DB_DSN", "bakes.db"),
		MediaDir:         getenv("MEDIA_DIR", "./media"),
		LogFile:          getenv("LOG_FILE", "./bakes.log"),
		JWTSecret:        getenv("JWT_SECRET", "dev-only-secret"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		SendgridKey:      os.Getenv("SENDGRID_API_KEY"),
		ContactSender:    os.Getenv("CONTACT_SENDER"),
		ContactRecipient: os.Getenv("CONTACT_RECIPIENT"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
