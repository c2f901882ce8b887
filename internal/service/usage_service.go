package service

import (
	"context"
	"fmt"
	"time"

	"pdf-summarizer/internal/domain"

	"github.com/google/uuid"
)

// UsageService implements domain.UsageService: it owns the calendar-month
// window computation and delegates the atomic persistence to the repository.
type UsageService struct {
	usageRepo domain.UsageRepository
	logger    domain.Logger
	now       func() time.Time
}

// NewUsageService creates a new usage service instance
func NewUsageService(usageRepo domain.UsageRepository, logger domain.Logger) *UsageService {
	return &UsageService{
		usageRepo: usageRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// GetOrCreateCurrentPeriod returns the usage record for the calendar month
// containing now, creating it with zeroed counters when absent. Creation is
// insert-if-absent at the persistence layer, so two racing requests at a
// month boundary resolve to the same row.
func (s *UsageService) GetOrCreateCurrentPeriod(ctx context.Context, userID string) (*domain.MonthlyUsage, error) {
	monthStart, monthEnd := domain.MonthWindow(s.now())
	usage, err := s.usageRepo.GetOrCreatePeriod(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create usage period: %w", err)
	}
	return usage, nil
}

// RecordUpload books one processed document: pdf_count increments by one,
// token_count by the page-based estimate, and an immutable Upload row is
// appended. The repository applies all of it in a single transaction.
func (s *UsageService) RecordUpload(ctx context.Context, userID, filename string, pageCount int, docType domain.DocumentType, format domain.SummaryFormat) (*domain.Upload, *domain.MonthlyUsage, error) {
	upload := &domain.Upload{
		ID:            uuid.NewString(),
		UserID:        userID,
		Filename:      filename,
		PageCount:     pageCount,
		TokenCount:    domain.EstimateTokens(pageCount),
		DocumentType:  docType,
		SummaryFormat: format,
		UploadDate:    s.now().UTC(),
	}

	usage, err := s.usageRepo.RecordUpload(ctx, upload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to record upload: %w", err)
	}

	s.logger.Info("Upload recorded",
		"user_id", userID,
		"pages", pageCount,
		"tokens", upload.TokenCount,
		"pdf_count", usage.PDFCount,
	)
	return upload, usage, nil
}

// ListUploads returns the user's upload history, newest first.
func (s *UsageService) ListUploads(ctx context.Context, userID string) ([]*domain.Upload, error) {
	uploads, err := s.usageRepo.ListUploads(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	return uploads, nil
}
