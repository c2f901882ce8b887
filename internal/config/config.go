package config

import (
	"os"
	"strconv"
	"time"

	"pdf-summarizer/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort         string
	LogLevel           string
	MaxFileSize        int64
	AnonMaxFileSize    int64
	SupabaseURL        string
	SupabaseKey        string
	JWTSecret          string
	OpenAIKey          string
	OpenAIBaseURL      string
	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectURL   string
	SummaryTimeout     time.Duration
	Testing            bool
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:      getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		MaxFileSize:     getEnvInt64OrDefault("MAX_FILE_SIZE", 10*1024*1024),      // 10MB hard ceiling
		AnonMaxFileSize: getEnvInt64OrDefault("ANON_MAX_FILE_SIZE", 5*1024*1024), // 5MB for anonymous callers
		SupabaseURL:     getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:     getEnvOrDefault("SUPABASE_SERVICE_ROLE_KEY", ""),
		JWTSecret:       getEnvOrDefault("JWT_SECRET", "your-secret-key-change-in-production"),
		OpenAIKey:       getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		GoogleClientID:     getEnvOrDefault("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnvOrDefault("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectURL:   getEnvOrDefault("OAUTH_REDIRECT_URL", "http://localhost:8080/api/v1/auth/google/callback"),

		SummaryTimeout: getEnvDurationOrDefault("SUMMARY_TIMEOUT", 60*time.Second),
		Testing:        getEnvBoolOrDefault("TESTING", false),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetMaxFileSize returns the maximum allowed upload size for any caller
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetAnonMaxFileSize returns the lower upload ceiling for anonymous callers
func (c *AppConfig) GetAnonMaxFileSize() int64 {
	return c.AnonMaxFileSize
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase service role key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetJWTSecret returns the JWT secret key
func (c *AppConfig) GetJWTSecret() string {
	return c.JWTSecret
}

// GetOpenAIKey returns the OpenAI API key
func (c *AppConfig) GetOpenAIKey() string {
	return c.OpenAIKey
}

// GetOpenAIBaseURL returns the OpenAI-compatible API base URL
func (c *AppConfig) GetOpenAIBaseURL() string {
	return c.OpenAIBaseURL
}

// GetGoogleClientID returns the Google OAuth client id
func (c *AppConfig) GetGoogleClientID() string {
	return c.GoogleClientID
}

// GetGoogleClientSecret returns the Google OAuth client secret
func (c *AppConfig) GetGoogleClientSecret() string {
	return c.GoogleClientSecret
}

// GetOAuthRedirectURL returns the OAuth callback URL
func (c *AppConfig) GetOAuthRedirectURL() string {
	return c.OAuthRedirectURL
}

// GetSummaryTimeout returns the bounded timeout applied to summarization calls
func (c *AppConfig) GetSummaryTimeout() time.Duration {
	return c.SummaryTimeout
}

// IsTesting reports whether test-only endpoints and sandbox collaborators are enabled
func (c *AppConfig) IsTesting() bool {
	return c.Testing
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
