package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pdf-summarizer/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	sessionTokenTTL    = 24 * time.Hour
	defaultUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// AuthService implements domain.AuthService: password registration/login and
// the Google OAuth code exchange, both producing a signed session JWT.
type AuthService struct {
	userRepo  domain.UserRepository
	logger    domain.Logger
	jwtSecret []byte

	oauthConfig *oauth2.Config
	userinfoURL string
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo domain.UserRepository, config domain.Config, logger domain.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		logger:    logger,
		jwtSecret: []byte(config.GetJWTSecret()),
		oauthConfig: &oauth2.Config{
			ClientID:     config.GetGoogleClientID(),
			ClientSecret: config.GetGoogleClientSecret(),
			RedirectURL:  config.GetOAuthRedirectURL(),
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userinfoURL: defaultUserinfoURL,
	}
}

// Register creates a password-credentialed account and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, "", &domain.ValidationError{Field: "name", Message: "name is required"}
	}
	if !validEmail(email) {
		return nil, "", &domain.ValidationError{Field: "email", Message: "invalid email address"}
	}
	if len(password) < 8 {
		return nil, "", &domain.ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:            uuid.NewString(),
		Email:         email,
		Name:          name,
		PasswordHash:  string(hash),
		PlanType:      domain.PlanFree,
		PlanStartDate: now,
		CreatedAt:     now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("User registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login verifies a password credential and returns the user with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	// OAuth-only accounts have no password credential.
	if user.PasswordHash == "" {
		return nil, "", domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ValidateToken parses and verifies a session JWT and loads the current user,
// so plan changes take effect on the very next request.
func (s *AuthService) ValidateToken(ctx context.Context, tokenStr string) (*domain.User, error) {
	parsed, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, sub)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// GoogleLoginURL returns the Google consent URL for the given CSRF state.
func (s *AuthService) GoogleLoginURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state)
}

type googleUserinfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleCallback exchanges the authorization code, fetches the Google profile
// and upserts the account. First-time OAuth users start on the free plan.
func (s *AuthService) GoogleCallback(ctx context.Context, code string) (*domain.User, string, error) {
	oauthToken, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		s.logger.Error("OAuth code exchange failed", err)
		return nil, "", domain.ErrOAuthFailed
	}

	info, err := s.fetchUserinfo(ctx, oauthToken)
	if err != nil {
		s.logger.Error("OAuth userinfo fetch failed", err)
		return nil, "", domain.ErrOAuthFailed
	}
	if info.Email == "" {
		return nil, "", domain.ErrOAuthFailed
	}

	email := strings.ToLower(info.Email)
	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		now := time.Now().UTC()
		user = &domain.User{
			ID:            uuid.NewString(),
			Email:         email,
			Name:          info.Name,
			ProfilePic:    info.Picture,
			PlanType:      domain.PlanFree,
			PlanStartDate: now,
			CreatedAt:     now,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, "", fmt.Errorf("failed to create oauth user: %w", err)
		}
		s.logger.Info("User created via Google OAuth", "user_id", user.ID, "email", user.Email)
	} else if err != nil {
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) fetchUserinfo(ctx context.Context, token *oauth2.Token) (*googleUserinfo, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(s.userinfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	return &info, nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(sessionTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func validEmail(email string) bool {
	parts := strings.Split(email, "@")
	return len(parts) == 2 && parts[0] != "" && parts[1] != "" &&
		strings.Contains(parts[1], ".") &&
		!strings.HasPrefix(parts[1], ".") && !strings.HasSuffix(parts[1], ".")
}
