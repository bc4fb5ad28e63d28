package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	JWTSecret string
	TokenTTL  time.Duration

	// ResetTokenTTL is how long a password-reset token stays redeemable.
	ResetTokenTTL time.Duration

	// StudentEmailDomain is the required suffix for student registrations.
	StudentEmailDomain string

	// Bootstrap admin provisioned at startup (see internal/bootstrap).
	BootstrapAdminEmail    string
	BootstrapAdminPassword string
	BootstrapAdminName     string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	ResetLinkURL string

	RateLimitLogin  time.Duration
	RateLimitForgot time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		StudentEmailDomain: getEnv("STUDENT_EMAIL_DOMAIN", "std.foc.sab.ac.lk"),

		BootstrapAdminEmail:    os.Getenv("BOOTSTRAP_ADMIN_EMAIL"),
		BootstrapAdminPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
		BootstrapAdminName:     getEnv("BOOTSTRAP_ADMIN_NAME", "Administrator"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@foc.sab.ac.lk"),
		ResetLinkURL: getEnv("RESET_LINK_URL", "http://localhost:3000/reset-password"),
	}

	var err error
	cfg.SMTPPort, err = strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	tokenHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS: %w", err)
	}
	cfg.TokenTTL = time.Duration(tokenHours) * time.Hour

	resetMinutes, err := strconv.Atoi(getEnv("RESET_TOKEN_TTL_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESET_TOKEN_TTL_MINUTES: %w", err)
	}
	cfg.ResetTokenTTL = time.Duration(resetMinutes) * time.Minute

	cfg.RateLimitLogin, err = time.ParseDuration(getEnv("RATE_LIMIT_LOGIN", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_LOGIN: %w", err)
	}
	cfg.RateLimitForgot, err = time.ParseDuration(getEnv("RATE_LIMIT_FORGOT", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_FORGOT: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
