package config

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "WIREWATCH_CONFIG"

	portEnv            = "PORT"
	databaseURLEnv     = "DATABASE_URL"
	providerKeyEnv     = "PROVIDER_API_KEY"
	providerModelEnv   = "PROVIDER_MODEL"
	squareTokenEnv     = "SQUARE_ACCESS_TOKEN"
	sendgridKeyEnv     = "SENDGRID_API_KEY"
	receiptFromEnv     = "RECEIPT_FROM_EMAIL"
	jwtSecretEnv       = "JWT_SECRET"
	degradedFetchEnv   = "DEGRADED_FALLBACK"
	refreshTimeoutSecs = 30
)

// Config holds all settings the application needs at construction time.
// Nothing reads the environment after Load returns.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Provider ProviderConfig `yaml:"provider"`
	Payments PaymentsConfig `yaml:"payments"`
	Email    EmailConfig    `yaml:"email"`
	Auth     AuthConfig     `yaml:"auth"`
	Features Features       `yaml:"features"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// ProviderConfig defines how to contact the generative content provider.
type ProviderConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// Timeout bounds a single provider call.
func (p ProviderConfig) Timeout() time.Duration {
	return refreshTimeoutSecs * time.Second
}

// PaymentsConfig defines the card-processor connection.
type PaymentsConfig struct {
	BaseURL     string `yaml:"baseUrl"`
	AccessToken string `yaml:"accessToken"`
}

type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgridApiKey"`
	FromAddress    string `yaml:"fromAddress"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwtSecret"`
}

// Features toggles optional behavior. DegradedFallback opts the content
// fetcher into placeholder updates when the provider is unavailable; the
// default (strict) surfaces the failure instead.
type Features struct {
	DegradedFallback bool `yaml:"degradedFallback"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides on top of defaults.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("config: cannot read file, using defaults")
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("config: cannot parse file, using defaults")
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(portEnv); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv(databaseURLEnv); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv(providerKeyEnv); v != "" {
		c.Provider.APIKey = v
	}
	if v := os.Getenv(providerModelEnv); v != "" {
		c.Provider.Model = v
	}
	if v := os.Getenv(squareTokenEnv); v != "" {
		c.Payments.AccessToken = v
	}
	if v := os.Getenv(sendgridKeyEnv); v != "" {
		c.Email.SendGridAPIKey = v
	}
	if v := os.Getenv(receiptFromEnv); v != "" {
		c.Email.FromAddress = v
	}
	if v := os.Getenv(jwtSecretEnv); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv(degradedFetchEnv); v != "" {
		c.Features.DegradedFallback = v == "true"
	}
}

func defaultConfig() Config {
	return Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{URL: ""},
		Provider: ProviderConfig{
			Endpoint: "https://api.perplexity.ai/chat/completions",
			Model:    "llama-3.1-sonar-small-128k-online",
		},
		Payments: PaymentsConfig{BaseURL: "https://connect.squareup.com"},
		Email:    EmailConfig{FromAddress: "updates@wirewatch.app"},
	}
}
