// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
}

// AdminSeedConfig provides the bootstrap admin account credentials.
type AdminSeedConfig interface {
	GetAdminEmail() string
	GetAdminPassword() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// AmoCRMConfig provides settings for the AmoCRM/Kommo client.
// Custom field identifiers are account-specific and therefore injected here,
// never hardcoded in client logic.
type AmoCRMConfig interface {
	GetAmoCRMSubdomain() string
	GetAmoCRMAccessToken() string
	GetAmoCRMPhoneFieldID() int64
	GetAmoCRMJobFieldID() int64
	GetAmoCRMLeadPrice() int64
	GetAmoCRMTimeout() time.Duration
	IsAmoCRMEnabled() bool
}

// PlacementDefaultsConfig provides environment-level pipeline/stage defaults,
// used when the settings store holds no explicit selection.
type PlacementDefaultsConfig interface {
	GetDefaultPipelineID() *int64
	GetDefaultStatusID() *int64
}

// EmailConfig provides settings for lead alert emails.
type EmailConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetLeadAlertAddress() string
	IsEmailEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env             string
	HTTPAddr        string
	DatabaseURL     string
	JWTAccessSecret string
	AccessTokenTTL  time.Duration
	CORSAllowAll    bool
	CORSOrigins     []string
	CORSAllowCreds  bool
	AdminEmail      string
	AdminPassword   string

	AmoCRMSubdomain    string
	AmoCRMAccessToken  string
	AmoCRMPipelineID   *int64
	AmoCRMStatusID     *int64
	AmoCRMPhoneFieldID int64
	AmoCRMJobFieldID   int64
	AmoCRMLeadPrice    int64
	AmoCRMTimeout      time.Duration

	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string
	LeadAlertAddress string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig / AuthServiceConfig implementation
func (c *Config) GetJWTAccessSecret() string       { return c.JWTAccessSecret }
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }

// AdminSeedConfig implementation
func (c *Config) GetAdminEmail() string    { return c.AdminEmail }
func (c *Config) GetAdminPassword() string { return c.AdminPassword }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// AmoCRMConfig implementation
func (c *Config) GetAmoCRMSubdomain() string        { return c.AmoCRMSubdomain }
func (c *Config) GetAmoCRMAccessToken() string      { return c.AmoCRMAccessToken }
func (c *Config) GetAmoCRMPhoneFieldID() int64      { return c.AmoCRMPhoneFieldID }
func (c *Config) GetAmoCRMJobFieldID() int64        { return c.AmoCRMJobFieldID }
func (c *Config) GetAmoCRMLeadPrice() int64         { return c.AmoCRMLeadPrice }
func (c *Config) GetAmoCRMTimeout() time.Duration   { return c.AmoCRMTimeout }
func (c *Config) IsAmoCRMEnabled() bool {
	return c.AmoCRMSubdomain != "" && c.AmoCRMAccessToken != ""
}

// PlacementDefaultsConfig implementation
func (c *Config) GetDefaultPipelineID() *int64 { return c.AmoCRMPipelineID }
func (c *Config) GetDefaultStatusID() *int64   { return c.AmoCRMStatusID }

// EmailConfig implementation
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) GetLeadAlertAddress() string { return c.LeadAlertAddress }
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.EmailFromAddress != "" && c.LeadAlertAddress != ""
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTAccessSecret: getEnv("JWT_ACCESS_SECRET", ""),
		AccessTokenTTL:  mustDuration(getEnv("JWT_ACCESS_TTL", "12h")),
		CORSAllowAll:    strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		CORSAllowCreds:  strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AdminEmail:      getEnv("ADMIN_EMAIL", ""),
		AdminPassword:   getEnv("ADMIN_PASSWORD", ""),

		AmoCRMSubdomain:    getEnv("AMOCRM_SUBDOMAIN", ""),
		AmoCRMAccessToken:  getEnv("AMOCRM_ACCESS_TOKEN", ""),
		AmoCRMPipelineID:   optionalInt64(getEnv("AMOCRM_PIPELINE_ID", "")),
		AmoCRMStatusID:     optionalInt64(getEnv("AMOCRM_STATUS_ID", "")),
		AmoCRMPhoneFieldID: mustInt64(getEnv("AMOCRM_PHONE_FIELD_ID", "0")),
		AmoCRMJobFieldID:   mustInt64(getEnv("AMOCRM_JOB_FIELD_ID", "0")),
		AmoCRMLeadPrice:    mustInt64(getEnv("AMOCRM_LEAD_PRICE", "0")),
		AmoCRMTimeout:      mustDuration(getEnv("AMOCRM_TIMEOUT", "10s")),

		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         int(mustInt64(getEnv("SMTP_PORT", "587"))),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Oratoria"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),
		LeadAlertAddress: getEnv("LEAD_ALERT_ADDRESS", ""),
	}

	if containsWildcard(cfg.CORSOrigins) {
		cfg.CORSAllowAll = true
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func optionalInt64(value string) *int64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
