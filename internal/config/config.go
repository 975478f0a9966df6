package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the service reads at startup.
type Config struct {
	AppPort     string
	AppEnv      string
	CORSOrigins string

	DatabaseDriver string
	DatabaseDSN    string
	RabbitMQURL    string

	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	StripeSecretKey     string
	StripeWebhookSecret string

	EmailAPIKey            string
	EmailFrom              string
	AdminNotificationEmail string

	// PriceCents is the flat price of every course, in minor units.
	PriceCents int64
	Currency   string

	SweeperInterval  time.Duration
	SweeperOrphanAge time.Duration
}

// IsProduction reports whether the service runs in production.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// New returns a viper instance with every default registered.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=academy port=5432 sslmode=disable")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("JWT_SECRET", "change_me")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	v.SetDefault("EMAIL_API_KEY", "")
	v.SetDefault("EMAIL_FROM", "Academy <noreply@academy.example>")
	v.SetDefault("ADMIN_NOTIFICATION_EMAIL", "admin@academy.example")
	v.SetDefault("CHECKOUT_PRICE_CENTS", 29700)
	v.SetDefault("CHECKOUT_CURRENCY", "USD")
	v.SetDefault("SWEEPER_INTERVAL", "10m")
	v.SetDefault("SWEEPER_ORPHAN_AGE", "1h")
	v.AutomaticEnv()
	return v
}

// Load reads an optional .env file and the environment into a Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	return FromViper(New())
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppPort:                v.GetString("APP_PORT"),
		AppEnv:                 v.GetString("APP_ENV"),
		CORSOrigins:            v.GetString("CORS_ALLOW_ORIGINS"),
		DatabaseDriver:         v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:            v.GetString("DATABASE_DSN"),
		RabbitMQURL:            v.GetString("RABBITMQ_URL"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		AdminEmail:             v.GetString("ADMIN_EMAIL"),
		AdminPassword:          v.GetString("ADMIN_PASSWORD"),
		StripeSecretKey:        v.GetString("STRIPE_SECRET_KEY"),
		StripeWebhookSecret:    v.GetString("STRIPE_WEBHOOK_SECRET"),
		EmailAPIKey:            v.GetString("EMAIL_API_KEY"),
		EmailFrom:              v.GetString("EMAIL_FROM"),
		AdminNotificationEmail: v.GetString("ADMIN_NOTIFICATION_EMAIL"),
		PriceCents:             v.GetInt64("CHECKOUT_PRICE_CENTS"),
		Currency:               strings.ToUpper(v.GetString("CHECKOUT_CURRENCY")),
		SweeperInterval:        v.GetDuration("SWEEPER_INTERVAL"),
		SweeperOrphanAge:       v.GetDuration("SWEEPER_ORPHAN_AGE"),
	}

	if cfg.PriceCents <= 0 {
		return Config{}, fmt.Errorf("CHECKOUT_PRICE_CENTS must be positive, got %d", cfg.PriceCents)
	}
	if len(cfg.Currency) != 3 {
		return Config{}, fmt.Errorf("CHECKOUT_CURRENCY must be a 3-letter ISO code, got %q", cfg.Currency)
	}
	if cfg.SweeperInterval <= 0 {
		return Config{}, fmt.Errorf("SWEEPER_INTERVAL must be a positive duration, got %q", v.GetString("SWEEPER_INTERVAL"))
	}
	if cfg.SweeperOrphanAge < 0 {
		return Config{}, fmt.Errorf("SWEEPER_ORPHAN_AGE must not be negative, got %s", cfg.SweeperOrphanAge)
	}
	if cfg.IsProduction() {
		if cfg.StripeSecretKey == "" {
			return Config{}, fmt.Errorf("STRIPE_SECRET_KEY is required in production")
		}
		if cfg.StripeWebhookSecret == "" {
			return Config{}, fmt.Errorf("STRIPE_WEBHOOK_SECRET is required in production")
		}
		if cfg.JWTSecret == "change_me" {
			return Config{}, fmt.Errorf("JWT_SECRET must be set in production")
		}
	}
	return cfg, nil
}
