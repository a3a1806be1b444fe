package config

import (
	"os"
)

type Config struct {
	// Server
	Port string

	// Storage
	DataDir    string
	UploadsDir string

	// Email delivery; notifications stay file-only when the key is empty.
	SendGridAPIKey    string
	SendGridFromName  string
	SendGridFromEmail string
}

func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		DataDir:           getEnv("DATA_DIR", "."),
		UploadsDir:        getEnv("UPLOADS_DIR", "uploads"),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Segnalapp"),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", "noreply@segnalapp.local"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
