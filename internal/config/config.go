package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	// ----------------------------
	// Email provider
	// ----------------------------
	EmailProvider string `envconfig:"EMAIL_PROVIDER" default:"resend"`
	ResendAPIKey  string `envconfig:"RESEND_API_KEY" default:""`
	ResendBaseURL string `envconfig:"RESEND_BASE_URL" default:"https://api.resend.com"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"1025"`
	SMTPUser     string `envconfig:"SMTP_USER" default:""`
	SMTPPassword string `envconfig:"SMTP_PASSWORD" default:""`

	// ----------------------------
	// Mail identities
	// ----------------------------
	FromAddress   string `envconfig:"FROM_ADDRESS" default:"Aphonix Studios <onboarding@resend.dev>"`
	OperatorInbox string `envconfig:"OPERATOR_INBOX" default:"aphonixstudios@gmail.com"`

	// ----------------------------
	// Admin auth
	// ----------------------------
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`
	SessionTTLMinutes int    `envconfig:"SESSION_TTL_MINUTES" default:"60"`

	// ----------------------------
	// HTTP API
	// ----------------------------
	APIPort   string `envconfig:"API_PORT" default:"8080"`
	RateLimit int    `envconfig:"RATE_LIMIT" default:"10"`

	// ----------------------------
	// Metrics
	// ----------------------------
	MetricsPort string `envconfig:"METRICS_PORT" default:"9090"`

	// ----------------------------
	// Database
	// ----------------------------
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
}

func Load() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return &cfg, err
}
