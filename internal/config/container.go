package config

import (
	"pdf-summarizer/internal/domain"
	"pdf-summarizer/internal/repository"
	"pdf-summarizer/internal/service"
	"pdf-summarizer/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config          domain.Config
	Logger          domain.Logger
	SupabaseClient  *repository.SupabaseClient
	UserRepository  domain.UserRepository
	UsageRepository domain.UsageRepository
	AuthService     domain.AuthService
	PlanService     domain.PlanService
	UsageService    domain.UsageService
	UploadService   domain.UploadService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	// Initialize Supabase client
	supabaseClient := repository.NewSupabaseClient(config, appLogger)

	// Initialize repositories
	userRepo := repository.NewSupabaseUserRepository(supabaseClient, appLogger)
	usageRepo := repository.NewSupabaseUsageRepository(supabaseClient, appLogger)

	// Initialize services
	authService := service.NewAuthService(userRepo, config, appLogger)
	planService := service.NewPlanService(userRepo, appLogger)
	usageService := service.NewUsageService(usageRepo, appLogger)
	extractor := service.NewExtractionService(appLogger, config.IsTesting())
	summarizer := service.NewSummaryService(config, appLogger)
	uploadService := service.NewUploadService(extractor, summarizer, usageService, config, appLogger)

	return &Container{
		Config:          config,
		Logger:          appLogger,
		SupabaseClient:  supabaseClient,
		UserRepository:  userRepo,
		UsageRepository: usageRepo,
		AuthService:     authService,
		PlanService:     planService,
		UsageService:    usageService,
		UploadService:   uploadService,
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
