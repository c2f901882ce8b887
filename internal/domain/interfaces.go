package domain

import (
	"context"
	"time"
)

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetMaxFileSize() int64
	GetAnonMaxFileSize() int64
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetJWTSecret() string
	GetOpenAIKey() string
	GetOpenAIBaseURL() string
	GetGoogleClientID() string
	GetGoogleClientSecret() string
	GetOAuthRedirectURL() string
	GetSummaryTimeout() time.Duration
	IsTesting() bool
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePlan(ctx context.Context, userID string, plan PlanTier, start time.Time, end *time.Time) error
	// DeleteAll wipes the users table. Test-only.
	DeleteAll(ctx context.Context) error
}

// UsageRepository defines persistence for monthly usage and upload records.
// GetOrCreatePeriod must be insert-if-absent under a uniqueness constraint on
// (user_id, month_start); RecordUpload must apply the counter increments and
// the upload insert in a single transaction.
type UsageRepository interface {
	GetOrCreatePeriod(ctx context.Context, userID string, monthStart, monthEnd time.Time) (*MonthlyUsage, error)
	RecordUpload(ctx context.Context, upload *Upload) (*MonthlyUsage, error)
	ListUploads(ctx context.Context, userID string) ([]*Upload, error)
	// DeleteAll wipes usage and upload tables. Test-only.
	DeleteAll(ctx context.Context) error
}

// ExtractedText is the result of text extraction from a PDF.
type ExtractedText struct {
	Text      string
	PageCount int
}

// TextExtractor turns raw PDF bytes into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (*ExtractedText, error)
	// PageCount reads only the page count, without extracting text.
	PageCount(data []byte) (int, error)
}

// Summarizer produces a summary of the given text using the given model.
type Summarizer interface {
	Summarize(ctx context.Context, text string, model string, format SummaryFormat) (string, error)
}

// AuthService is the authentication provider: it turns credentials or an
// OAuth assertion into an authenticated identity plus a session token.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	ValidateToken(ctx context.Context, token string) (*User, error)
	GoogleLoginURL(state string) string
	GoogleCallback(ctx context.Context, code string) (*User, string, error)
}

// UsageService tracks consumption against the current calendar month.
type UsageService interface {
	GetOrCreateCurrentPeriod(ctx context.Context, userID string) (*MonthlyUsage, error)
	RecordUpload(ctx context.Context, userID, filename string, pageCount int, docType DocumentType, format SummaryFormat) (*Upload, *MonthlyUsage, error)
	ListUploads(ctx context.Context, userID string) ([]*Upload, error)
}

// PlanService manages plan selection and exposes the catalog.
type PlanService interface {
	Catalog() []PlanCapabilities
	SelectPlan(ctx context.Context, user *User, tier PlanTier) (*User, error)
}

// UploadService is the upload orchestrator.
type UploadService interface {
	ProcessUpload(ctx context.Context, user *User, req UploadRequest) (*UploadResult, error)
	ProcessAnonymousPreview(ctx context.Context, req PreviewRequest) (*PreviewResult, error)
}

// DTOs

// UploadRequest is one authenticated upload to be summarized.
type UploadRequest struct {
	Filename      string
	Data          []byte
	DocumentType  DocumentType
	SummaryFormat SummaryFormat
	// Model is an explicit override. Empty means "use the plan's model".
	Model string
}

// UploadResult is returned to the caller after a completed upload.
type UploadResult struct {
	Summary         string        `json:"summary"`
	Model           string        `json:"model"`
	Priority        bool          `json:"priority"`
	PageCount       int           `json:"page_count"`
	EstimatedTokens int           `json:"estimated_tokens"`
	Upload          *Upload       `json:"upload"`
	Usage           *MonthlyUsage `json:"usage"`
}

// PreviewRequest is an anonymous upload routed through the reduced path.
type PreviewRequest struct {
	Filename string
	Data     []byte
}

// PreviewResult is the truncated extraction preview for anonymous callers.
type PreviewResult struct {
	Preview   string `json:"preview"`
	PageCount int    `json:"page_count"`
	Truncated bool   `json:"truncated"`
}
