package config

import (
	"os"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// LLM collaborator
	GroqAPIKey string
	GroqModel  string

	// Google collaborators
	GoogleCredentialsFile string
	GoogleTokenFile       string
	CalendarID            string

	// Fallback email transport
	ResendAPIKey string
	ResendFrom   string

	// Assistant behavior
	Timezone  string
	Signature string
}

func LoadFromEnv() *Config {
	return &Config{
		GroqAPIKey: os.Getenv("GROQ_API_KEY"),
		GroqModel:  getEnvOrDefault("GROQ_MODEL", "gemma2-9b-it"),

		GoogleCredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "./credentials.json"),
		GoogleTokenFile:       getEnvOrDefault("GOOGLE_TOKEN_FILE", "./token.json"),
		CalendarID:            getEnvOrDefault("ASSISTANT_CALENDAR_ID", "primary"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		ResendFrom:   os.Getenv("RESEND_FROM"),

		Timezone:  getEnvOrDefault("ASSISTANT_TIMEZONE", "Asia/Kolkata"),
		Signature: getEnvOrDefault("ASSISTANT_SIGNATURE", "Milind Warade"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
