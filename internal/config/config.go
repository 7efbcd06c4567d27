package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config is built once in main and passed by reference to everything
// that needs it. No package-level globals.
type Config struct {
	HTTPPort    string
	PostgresDSN string

	JWTSecret      string
	AccessTokenTTL time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFromName string

	TwilioAccountSID    string
	TwilioAuthToken     string
	TwilioPhoneNumber   string
	TwilioWhatsAppFrom  string
	TwilioWebhookBase   string

	// Pacing between sends inside a campaign execution unit.
	EmailSendDelay    time.Duration
	WhatsAppSendDelay time.Duration
	VoiceDialDelay    time.Duration

	OfferDeadlineDays int
	DispatchWorkers   int
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		PostgresDSN: getEnv("DATABASE_URL", ""),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		AccessTokenTTL: getDuration("ACCESS_TOKEN_TTL", 30*time.Minute),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Training & Placement Cell"),

		TwilioAccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber:  getEnv("TWILIO_PHONE_NUMBER", ""),
		TwilioWhatsAppFrom: getEnv("TWILIO_WHATSAPP_FROM", ""),
		TwilioWebhookBase:  getEnv("TWILIO_WEBHOOK_BASE_URL", "http://localhost:8080"),

		EmailSendDelay:    getDuration("EMAIL_SEND_DELAY", 2*time.Second),
		WhatsAppSendDelay: getDuration("WHATSAPP_SEND_DELAY", 500*time.Millisecond),
		VoiceDialDelay:    getDuration("VOICE_DIAL_DELAY", time.Second),

		OfferDeadlineDays: getInt("OFFER_DEADLINE_DAYS", 7),
		DispatchWorkers:   getInt("DISPATCH_WORKERS", 4),
	}

	if cfg.PostgresDSN == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
