package handler

import (
	"context"
	"net/http"
	"time"

	"pdf-summarizer/internal/domain"
	apperrors "pdf-summarizer/pkg/errors"
)

// Mock services shared by the handler package tests.

func createContextWithUser(r *http.Request, user *domain.User) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

type mockAuthService struct {
	user        *domain.User
	token       string
	registerErr error
	loginErr    error
	validateErr error
	callbackErr error
	lastEmail   string
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	m.lastEmail = email
	if m.registerErr != nil {
		return nil, "", m.registerErr
	}
	return m.user, m.token, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	m.lastEmail = email
	if m.loginErr != nil {
		return nil, "", m.loginErr
	}
	return m.user, m.token, nil
}

func (m *mockAuthService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return m.user, nil
}

func (m *mockAuthService) GoogleLoginURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (m *mockAuthService) GoogleCallback(ctx context.Context, code string) (*domain.User, string, error) {
	if m.callbackErr != nil {
		return nil, "", m.callbackErr
	}
	return m.user, m.token, nil
}

type mockPlanService struct {
	selectErr error
	lastTier  domain.PlanTier
}

func (m *mockPlanService) Catalog() []domain.PlanCapabilities {
	return []domain.PlanCapabilities{
		domain.CapabilitiesFor(domain.PlanFree),
		domain.CapabilitiesFor(domain.PlanStarter),
		domain.CapabilitiesFor(domain.PlanPro),
	}
}

func (m *mockPlanService) SelectPlan(ctx context.Context, user *domain.User, tier domain.PlanTier) (*domain.User, error) {
	m.lastTier = tier
	if m.selectErr != nil {
		return nil, m.selectErr
	}
	updated := *user
	updated.PlanType = tier
	return &updated, nil
}

type mockUploadService struct {
	result     *domain.UploadResult
	preview    *domain.PreviewResult
	uploadErr  error
	previewErr error
	lastReq    domain.UploadRequest
}

func (m *mockUploadService) ProcessUpload(ctx context.Context, user *domain.User, req domain.UploadRequest) (*domain.UploadResult, error) {
	m.lastReq = req
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	return m.result, nil
}

func (m *mockUploadService) ProcessAnonymousPreview(ctx context.Context, req domain.PreviewRequest) (*domain.PreviewResult, error) {
	if m.previewErr != nil {
		return nil, m.previewErr
	}
	return m.preview, nil
}

type mockUsageService struct {
	usage   *domain.MonthlyUsage
	uploads []*domain.Upload
	getErr  error
	listErr error
}

func (m *mockUsageService) GetOrCreateCurrentPeriod(ctx context.Context, userID string) (*domain.MonthlyUsage, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.usage, nil
}

func (m *mockUsageService) RecordUpload(ctx context.Context, userID, filename string, pageCount int, docType domain.DocumentType, format domain.SummaryFormat) (*domain.Upload, *domain.MonthlyUsage, error) {
	return nil, nil, nil
}

func (m *mockUsageService) ListUploads(ctx context.Context, userID string) ([]*domain.Upload, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.uploads, nil
}

type mockUserRepo struct {
	deleteCalls int
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }
func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (m *mockUserRepo) UpdatePlan(ctx context.Context, userID string, plan domain.PlanTier, start time.Time, end *time.Time) error {
	return nil
}
func (m *mockUserRepo) DeleteAll(ctx context.Context) error {
	m.deleteCalls++
	return nil
}

type mockUsageRepo struct {
	deleteCalls int
}

func (m *mockUsageRepo) GetOrCreatePeriod(ctx context.Context, userID string, monthStart, monthEnd time.Time) (*domain.MonthlyUsage, error) {
	return nil, nil
}
func (m *mockUsageRepo) RecordUpload(ctx context.Context, upload *domain.Upload) (*domain.MonthlyUsage, error) {
	return nil, nil
}
func (m *mockUsageRepo) ListUploads(ctx context.Context, userID string) ([]*domain.Upload, error) {
	return nil, nil
}
func (m *mockUsageRepo) DeleteAll(ctx context.Context) error {
	m.deleteCalls++
	return nil
}

// testConfig implements domain.Config with fixed values.
type testConfig struct {
	testing bool
}

func (c *testConfig) GetServerPort() string               { return "8080" }
func (c *testConfig) GetLogLevel() string                 { return "error" }
func (c *testConfig) GetMaxFileSize() int64               { return 10 * 1024 * 1024 }
func (c *testConfig) GetAnonMaxFileSize() int64           { return 5 * 1024 * 1024 }
func (c *testConfig) GetSupabaseURL() string              { return "" }
func (c *testConfig) GetSupabaseKey() string              { return "" }
func (c *testConfig) GetJWTSecret() string                { return "test-secret" }
func (c *testConfig) GetOpenAIKey() string                { return "test-api-key" }
func (c *testConfig) GetOpenAIBaseURL() string            { return "https://api.openai.com/v1" }
func (c *testConfig) GetGoogleClientID() string           { return "client-id" }
func (c *testConfig) GetGoogleClientSecret() string       { return "client-secret" }
func (c *testConfig) GetOAuthRedirectURL() string         { return "http://localhost:8080/api/v1/auth/google/callback" }
func (c *testConfig) GetSummaryTimeout() time.Duration    { return 5 * time.Second }
func (c *testConfig) IsTesting() bool                     { return c.testing }

var errEntitlementDenied = apperrors.NewEntitlementError("your current plan does not allow this upload", string(domain.DenyQuotaExceeded))
