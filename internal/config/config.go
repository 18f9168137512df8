package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "admin", "password",
}

type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	Env         string `env:"APP_ENV" envDefault:"development"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
	RedisURL    string `env:"REDIS_URL"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	SiteURL       string `env:"SITE_URL" envDefault:"http://localhost:8080"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:"dev-secret-change-me"`
	EncryptionKey string `env:"ENCRYPTION_KEY"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"no-reply@localhost"`
	StaffEmail   string `env:"STAFF_EMAIL"`

	TranslateAPIURL string `env:"TRANSLATE_API_URL" envDefault:"https://api.openai.com/v1"`
	TranslateAPIKey string `env:"TRANSLATE_API_KEY"`
	TranslateModel  string `env:"TRANSLATE_MODEL" envDefault:"gpt-4o-mini"`

	UpstreamTimeoutSeconds int `env:"UPSTREAM_TIMEOUT_SECONDS" envDefault:"5"`
	ContactRateLimitPerMin int `env:"CONTACT_RATE_LIMIT_PER_MIN" envDefault:"5"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) UpstreamTimeout() time.Duration {
	if c.UpstreamTimeoutSeconds <= 0 {
		return DefaultUpstreamTimeout
	}
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}

func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

func (c *Config) TranslationEnabled() bool {
	return c.TranslateAPIKey != ""
}

// PublicSiteURL is SITE_URL without a trailing slash.
func (c *Config) PublicSiteURL() string {
	return strings.TrimRight(c.SiteURL, "/")
}

func (c *Config) Validate() error {
	if c.EncryptionKey != "" && len(c.EncryptionKey) != 64 {
		return fmt.Errorf("ENCRYPTION_KEY must be 64 hex characters (generate with: openssl rand -hex 32)")
	}

	if c.IsProduction() {
		if err := validateSecret("SESSION_SECRET", c.SessionSecret); err != nil {
			return err
		}

		if !strings.HasPrefix(c.SiteURL, "https://") {
			log.Warn().Str("site_url", c.SiteURL).Msg("SITE_URL is not https in production")
		}
		if c.RedisURL == "" {
			log.Warn().Msg("REDIS_URL is empty in production: rate limits are per instance")
		}
		if c.EncryptionKey == "" {
			log.Warn().Msg("ENCRYPTION_KEY is empty in production: contact details will not be encrypted at rest")
		}
		if !c.MailEnabled() {
			log.Warn().Msg("SMTP_HOST is empty in production: contact notifications are disabled")
		}
	}

	return nil
}

func validateSecret(name, value string) error {
	if len(value) < 32 {
		return fmt.Errorf("%s must be at least 32 characters in production (generate with: openssl rand -base64 32)", name)
	}
	for _, weak := range knownWeakSecrets {
		if value == weak {
			return fmt.Errorf("%s is a known weak default; set a strong secret in production", name)
		}
	}
	return nil
}

// Load reads the environment, after merging a .env file from the working directory when one exists.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
