package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pdf-summarizer/internal/domain"
)

// Mock implementations shared by the service tests.

type mockLogger struct{}

func (l *mockLogger) Info(msg string, fields ...interface{})             {}
func (l *mockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *mockLogger) Debug(msg string, fields ...interface{})            {}
func (l *mockLogger) Warn(msg string, fields ...interface{})             {}

type mockUserRepository struct {
	users      map[string]*domain.User
	createErr  error
	updateErr  error
	lastPlan   domain.PlanTier
	lastEnd    *time.Time
	planCalls  int
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if user, exists := m.users[id]; exists {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) UpdatePlan(ctx context.Context, userID string, plan domain.PlanTier, start time.Time, end *time.Time) error {
	m.planCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	user, exists := m.users[userID]
	if !exists {
		return domain.ErrUserNotFound
	}
	user.PlanType = plan
	user.PlanStartDate = start
	user.PlanEndDate = end
	m.lastPlan = plan
	m.lastEnd = end
	return nil
}

func (m *mockUserRepository) DeleteAll(ctx context.Context) error {
	m.users = make(map[string]*domain.User)
	return nil
}

type mockUsageRepository struct {
	periods   map[string]*domain.MonthlyUsage
	uploads   []*domain.Upload
	getErr    error
	recordErr error
	nextID    int
}

func newMockUsageRepository() *mockUsageRepository {
	return &mockUsageRepository{periods: make(map[string]*domain.MonthlyUsage)}
}

func periodKey(userID string, monthStart time.Time) string {
	return userID + "|" + monthStart.Format(time.RFC3339)
}

func (m *mockUsageRepository) GetOrCreatePeriod(ctx context.Context, userID string, monthStart, monthEnd time.Time) (*domain.MonthlyUsage, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	key := periodKey(userID, monthStart)
	if usage, exists := m.periods[key]; exists {
		return usage, nil
	}
	m.nextID++
	usage := &domain.MonthlyUsage{
		ID:         fmt.Sprintf("usage-%d", m.nextID),
		UserID:     userID,
		MonthStart: monthStart,
		MonthEnd:   monthEnd,
	}
	m.periods[key] = usage
	return usage, nil
}

func (m *mockUsageRepository) RecordUpload(ctx context.Context, upload *domain.Upload) (*domain.MonthlyUsage, error) {
	if m.recordErr != nil {
		return nil, m.recordErr
	}
	monthStart, monthEnd := domain.MonthWindow(upload.UploadDate)
	usage, err := m.GetOrCreatePeriod(ctx, upload.UserID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	usage.PDFCount++
	usage.TokenCount += upload.TokenCount
	m.uploads = append(m.uploads, upload)
	return usage, nil
}

func (m *mockUsageRepository) ListUploads(ctx context.Context, userID string) ([]*domain.Upload, error) {
	var out []*domain.Upload
	for _, u := range m.uploads {
		if u.UserID == userID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUsageRepository) DeleteAll(ctx context.Context) error {
	m.periods = make(map[string]*domain.MonthlyUsage)
	m.uploads = nil
	return nil
}

type mockExtractor struct {
	text       string
	pageCount  int
	extractErr error
	pageErr    error
	calls      int
}

func (m *mockExtractor) Extract(ctx context.Context, data []byte) (*domain.ExtractedText, error) {
	m.calls++
	if m.extractErr != nil {
		return nil, m.extractErr
	}
	return &domain.ExtractedText{Text: m.text, PageCount: m.pageCount}, nil
}

func (m *mockExtractor) PageCount(data []byte) (int, error) {
	if m.pageErr != nil {
		return 0, m.pageErr
	}
	return m.pageCount, nil
}

type mockSummarizer struct {
	summary   string
	err       error
	lastModel string
	calls     int
}

func (m *mockSummarizer) Summarize(ctx context.Context, text string, model string, format domain.SummaryFormat) (string, error) {
	m.calls++
	m.lastModel = model
	if m.err != nil {
		return "", m.err
	}
	return m.summary, nil
}

// testConfig implements domain.Config with fixed values.
type testConfig struct {
	maxFileSize     int64
	anonMaxFileSize int64
	jwtSecret       string
	testing         bool
	openAIBaseURL   string
}

func (c *testConfig) GetServerPort() string       { return "8080" }
func (c *testConfig) GetLogLevel() string         { return "error" }
func (c *testConfig) GetMaxFileSize() int64       { return c.maxFileSize }
func (c *testConfig) GetAnonMaxFileSize() int64   { return c.anonMaxFileSize }
func (c *testConfig) GetSupabaseURL() string      { return "" }
func (c *testConfig) GetSupabaseKey() string      { return "" }
func (c *testConfig) GetJWTSecret() string {
	if c.jwtSecret == "" {
		return "test-secret"
	}
	return c.jwtSecret
}
func (c *testConfig) GetOpenAIKey() string { return "test-api-key" }
func (c *testConfig) GetOpenAIBaseURL() string {
	if c.openAIBaseURL == "" {
		return "https://api.openai.com/v1"
	}
	return c.openAIBaseURL
}
func (c *testConfig) GetGoogleClientID() string     { return "client-id" }
func (c *testConfig) GetGoogleClientSecret() string { return "client-secret" }
func (c *testConfig) GetOAuthRedirectURL() string {
	return "http://localhost:8080/api/v1/auth/google/callback"
}
func (c *testConfig) GetSummaryTimeout() time.Duration { return 5 * time.Second }
func (c *testConfig) IsTesting() bool                  { return c.testing }

var errBoom = errors.New("boom")
