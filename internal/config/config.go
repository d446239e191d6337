// Package config provides configuration loading and validation for the service and CLI.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration. Values come from an optional config
// file, CAREER_* environment variables, and a few legacy variable names.
type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Database  DatabaseConfig   `mapstructure:"database"`
	JWT       JWTSettings      `mapstructure:"jwt"`
	Password  PasswordSettings `mapstructure:"password"`
	Log       LogConfig        `mapstructure:"log"`
	Catalog   CatalogConfig    `mapstructure:"catalog"`
	LLM       LLMConfig        `mapstructure:"llm"`
	Resume    ResumeConfig     `mapstructure:"resume"`
	RateLimit RateLimitConfig  `mapstructure:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds the PostgreSQL connection string.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// JWTSettings is the raw JWT section; see JWTConfig for the validated form.
type JWTSettings struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// PasswordSettings is the raw password section; see PasswordConfig for the validated form.
type PasswordSettings struct {
	BcryptCost int    `mapstructure:"bcrypt_cost"`
	Pepper     string `mapstructure:"pepper"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// CatalogConfig points at dataset files. Empty paths use the embedded datasets.
type CatalogConfig struct {
	JobsPath      string `mapstructure:"jobs_path"`
	ReferencePath string `mapstructure:"reference_path"`
}

// LLMConfig configures the optional Gemini skill extractor.
type LLMConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ResumeConfig limits resume uploads.
type ResumeConfig struct {
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

// RateLimitConfig sets the token bucket tiers per endpoint class.
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Auth    RateLimitTier `mapstructure:"auth"`
	Upload  RateLimitTier `mapstructure:"upload"`
	Default RateLimitTier `mapstructure:"default"`
}

// RateLimitTier is a refill rate per minute plus a burst size.
type RateLimitTier struct {
	PerMinute int `mapstructure:"per_minute"`
	Burst     int `mapstructure:"burst"`
}

// legacyEnv maps config keys to the environment variables older deployments use.
var legacyEnv = map[string]string{
	"database.url":            "DATABASE_URL",
	"jwt.secret":              "JWT_SECRET",
	"jwt.expiration_hours":    "JWT_EXPIRATION_HOURS",
	"password.bcrypt_cost":    "BCRYPT_COST",
	"password.pepper":         "PASSWORD_PEPPER",
	"llm.api_key":             "GEMINI_API_KEY",
	"server.port":             "PORT",
	"server.allowed_origins":  "ALLOWED_ORIGINS",
	"log.level":               "LOG_LEVEL",
	"rate_limit.enabled":      "RATE_LIMIT_ENABLED",
	"resume.max_upload_bytes": "RESUME_MAX_UPLOAD_BYTES",
}

func setDefaults(v *viper.Viper) {
	// Keys without a default or binding are invisible to Unmarshal, so even
	// empty values are registered.
	v.SetDefault("database.url", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("password.pepper", "")
	v.SetDefault("log.file", "")
	v.SetDefault("catalog.jobs_path", "")
	v.SetDefault("catalog.reference_path", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("password.bcrypt_cost", 12)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("resume.max_upload_bytes", 5<<20)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.auth.per_minute", 10)
	v.SetDefault("rate_limit.auth.burst", 5)
	v.SetDefault("rate_limit.upload.per_minute", 6)
	v.SetDefault("rate_limit.upload.burst", 2)
	v.SetDefault("rate_limit.default.per_minute", 120)
	v.SetDefault("rate_limit.default.burst", 30)
}

// Load reads configuration. path may be empty, in which case only defaults and
// the environment are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CAREER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		// Prefixed names win over legacy ones because they are listed first.
		if err := v.BindEnv(key, "CAREER_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that do not depend on secrets being present. Secrets are
// checked when the JWT and password configs are built, so offline CLI commands
// work without them.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' out of range: %d", c.Server.Port)
	}
	if c.Resume.MaxUploadBytes <= 0 {
		return fmt.Errorf("config error: 'resume.max_upload_bytes' must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("config error: 'log.format' must be console or json, got %q", c.Log.Format)
	}
	for name, tier := range map[string]RateLimitTier{
		"auth":    c.RateLimit.Auth,
		"upload":  c.RateLimit.Upload,
		"default": c.RateLimit.Default,
	} {
		if tier.PerMinute <= 0 || tier.Burst <= 0 {
			return fmt.Errorf("config error: rate limit tier %q needs positive per_minute and burst", name)
		}
	}
	return nil
}

// Address returns the listen address for the HTTP server.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}
