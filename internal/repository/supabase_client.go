package repository

import (
	"fmt"
	"sync"

	"pdf-summarizer/internal/domain"

	"github.com/supabase-community/supabase-go"
)

// SupabaseClient wraps the Supabase connection used by all repositories.
// The service runs server-side with the service role key; per-request user
// tokens are not forwarded to the database.
type SupabaseClient struct {
	client *supabase.Client
	config domain.Config
	logger domain.Logger

	initOnce sync.Once
	initErr  error
}

// NewSupabaseClient creates a new Supabase client instance
func NewSupabaseClient(config domain.Config, logger domain.Logger) *SupabaseClient {
	return &SupabaseClient{
		config: config,
		logger: logger,
	}
}

// Initialize establishes the connection to Supabase. It runs at most once;
// repositories call it implicitly through Client, and main calls it eagerly
// so a misconfigured server fails at startup rather than on the first request.
func (s *SupabaseClient) Initialize() error {
	s.initOnce.Do(func() {
		s.initErr = s.connect()
	})
	return s.initErr
}

func (s *SupabaseClient) connect() error {
	supabaseURL := s.config.GetSupabaseURL()
	supabaseKey := s.config.GetSupabaseKey()

	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("Supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return fmt.Errorf("failed to create Supabase client: %w", err)
	}

	s.client = client
	s.logger.Info("Supabase client initialized successfully", "url", supabaseURL)
	return nil
}

// Client returns the typed Supabase client for repository use, initializing
// the connection on first use.
func (s *SupabaseClient) Client() (*supabase.Client, error) {
	if err := s.Initialize(); err != nil {
		return nil, err
	}
	return s.client, nil
}
