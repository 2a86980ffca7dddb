package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Auth   AuthConfig
	Log    LogConfig
	CORS   CORSConfig
	OpenAI OpenAIConfig
	Fetch  FetchConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings for the audit store.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig holds bearer token verification settings. Tokens are issued
// by the hosted identity provider; this service only verifies them.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ModelProfile is a named budget for one completion call: which model to
// use, how many output tokens to allow, the sampling temperature, and the
// hard client-side deadline.
type ModelProfile struct {
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	TimeoutMS   int     `mapstructure:"timeout_ms"`
}

// Timeout returns the profile deadline as a duration.
func (p *ModelProfile) Timeout() time.Duration {
	return time.Duration(p.TimeoutMS) * time.Millisecond
}

// OpenAIConfig holds completion API settings, including the three named
// task profiles. Fast covers single-object extraction, Balanced covers
// suggestion lists, Quality covers multi-item generation.
type OpenAIConfig struct {
	APIKey   string       `mapstructure:"api_key"`
	Endpoint string       `mapstructure:"endpoint"`
	Fast     ModelProfile `mapstructure:"fast"`
	Balanced ModelProfile `mapstructure:"balanced"`
	Quality  ModelProfile `mapstructure:"quality"`
}

// FetchConfig holds settings for the page content fetcher.
type FetchConfig struct {
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	MaxContentLen int    `mapstructure:"max_content_len"`
	UserAgent     string `mapstructure:"user_agent"`
}

// Load reads configuration from environment variables with the
// ACTIVITYMAGIC_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ACTIVITYMAGIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "45s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "activitymagic")
	v.SetDefault("db.password", "activitymagic_secret")
	v.SetDefault("db.name", "activitymagic_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.issuer", "activitymagic")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.endpoint", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("openai.fast.model", "gpt-3.5-turbo")
	v.SetDefault("openai.fast.max_tokens", 500)
	v.SetDefault("openai.fast.temperature", 0.3)
	v.SetDefault("openai.fast.timeout_ms", 10000)
	v.SetDefault("openai.balanced.model", "gpt-3.5-turbo")
	v.SetDefault("openai.balanced.max_tokens", 800)
	v.SetDefault("openai.balanced.temperature", 0.5)
	v.SetDefault("openai.balanced.timeout_ms", 15000)
	v.SetDefault("openai.quality.model", "gpt-4")
	v.SetDefault("openai.quality.max_tokens", 1000)
	v.SetDefault("openai.quality.temperature", 0.7)
	v.SetDefault("openai.quality.timeout_ms", 30000)

	// Fetch defaults
	v.SetDefault("fetch.timeout_secs", 10)
	v.SetDefault("fetch.max_content_len", 2000)
	v.SetDefault("fetch.user_agent", "ActivityMagic/1.0 (Activity Processing Bot)")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "ACTIVITYMAGIC_SERVER_PORT",
		"server.read_timeout":          "ACTIVITYMAGIC_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "ACTIVITYMAGIC_SERVER_WRITE_TIMEOUT",
		"server.environment":           "ACTIVITYMAGIC_SERVER_ENVIRONMENT",
		"db.host":                      "ACTIVITYMAGIC_DB_HOST",
		"db.port":                      "ACTIVITYMAGIC_DB_PORT",
		"db.user":                      "ACTIVITYMAGIC_DB_USER",
		"db.password":                  "ACTIVITYMAGIC_DB_PASSWORD",
		"db.name":                      "ACTIVITYMAGIC_DB_NAME",
		"db.sslmode":                   "ACTIVITYMAGIC_DB_SSLMODE",
		"db.max_open":                  "ACTIVITYMAGIC_DB_MAX_OPEN",
		"db.max_idle":                  "ACTIVITYMAGIC_DB_MAX_IDLE",
		"auth.jwt_secret":              "ACTIVITYMAGIC_AUTH_JWT_SECRET",
		"auth.issuer":                  "ACTIVITYMAGIC_AUTH_ISSUER",
		"log.level":                    "ACTIVITYMAGIC_LOG_LEVEL",
		"log.format":                   "ACTIVITYMAGIC_LOG_FORMAT",
		"cors.allowed_origins":         "ACTIVITYMAGIC_CORS_ALLOWED_ORIGINS",
		"openai.api_key":               "ACTIVITYMAGIC_OPENAI_API_KEY",
		"openai.endpoint":              "ACTIVITYMAGIC_OPENAI_ENDPOINT",
		"openai.fast.model":            "ACTIVITYMAGIC_OPENAI_FAST_MODEL",
		"openai.fast.max_tokens":       "ACTIVITYMAGIC_OPENAI_FAST_MAX_TOKENS",
		"openai.fast.temperature":      "ACTIVITYMAGIC_OPENAI_FAST_TEMPERATURE",
		"openai.fast.timeout_ms":       "ACTIVITYMAGIC_OPENAI_FAST_TIMEOUT_MS",
		"openai.balanced.model":        "ACTIVITYMAGIC_OPENAI_BALANCED_MODEL",
		"openai.balanced.max_tokens":   "ACTIVITYMAGIC_OPENAI_BALANCED_MAX_TOKENS",
		"openai.balanced.temperature":  "ACTIVITYMAGIC_OPENAI_BALANCED_TEMPERATURE",
		"openai.balanced.timeout_ms":   "ACTIVITYMAGIC_OPENAI_BALANCED_TIMEOUT_MS",
		"openai.quality.model":         "ACTIVITYMAGIC_OPENAI_QUALITY_MODEL",
		"openai.quality.max_tokens":    "ACTIVITYMAGIC_OPENAI_QUALITY_MAX_TOKENS",
		"openai.quality.temperature":   "ACTIVITYMAGIC_OPENAI_QUALITY_TEMPERATURE",
		"openai.quality.timeout_ms":    "ACTIVITYMAGIC_OPENAI_QUALITY_TIMEOUT_MS",
		"fetch.timeout_secs":           "ACTIVITYMAGIC_FETCH_TIMEOUT_SECS",
		"fetch.max_content_len":        "ACTIVITYMAGIC_FETCH_MAX_CONTENT_LEN",
		"fetch.user_agent":             "ACTIVITYMAGIC_FETCH_USER_AGENT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if
	// ACTIVITYMAGIC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ACTIVITYMAGIC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Auth = AuthConfig{
		JWTSecret: v.GetString("auth.jwt_secret"),
		Issuer:    v.GetString("auth.issuer"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.OpenAI = OpenAIConfig{
		APIKey:   v.GetString("openai.api_key"),
		Endpoint: v.GetString("openai.endpoint"),
		Fast: ModelProfile{
			Model:       v.GetString("openai.fast.model"),
			MaxTokens:   v.GetInt("openai.fast.max_tokens"),
			Temperature: v.GetFloat64("openai.fast.temperature"),
			TimeoutMS:   v.GetInt("openai.fast.timeout_ms"),
		},
		Balanced: ModelProfile{
			Model:       v.GetString("openai.balanced.model"),
			MaxTokens:   v.GetInt("openai.balanced.max_tokens"),
			Temperature: v.GetFloat64("openai.balanced.temperature"),
			TimeoutMS:   v.GetInt("openai.balanced.timeout_ms"),
		},
		Quality: ModelProfile{
			Model:       v.GetString("openai.quality.model"),
			MaxTokens:   v.GetInt("openai.quality.max_tokens"),
			Temperature: v.GetFloat64("openai.quality.temperature"),
			TimeoutMS:   v.GetInt("openai.quality.timeout_ms"),
		},
	}

	cfg.Fetch = FetchConfig{
		TimeoutSecs:   v.GetInt("fetch.timeout_secs"),
		MaxContentLen: v.GetInt("fetch.max_content_len"),
		UserAgent:     v.GetString("fetch.user_agent"),
	}

	return cfg, nil
}

// ProfileFor returns the model profile assigned to a task kind. Single
// object extractions run fast, suggestion lists balanced, and multi-item
// generation quality.
func (c *OpenAIConfig) ProfileFor(task string) *ModelProfile {
	switch task {
	case "activity-from-text", "recipe-analysis-from-url":
		return &c.Fast
	case "meal-suggestions-for-category":
		return &c.Balanced
	default:
		return &c.Quality
	}
}
