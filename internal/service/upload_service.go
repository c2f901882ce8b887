package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"pdf-summarizer/internal/domain"
	apperrors "pdf-summarizer/pkg/errors"
)

// previewLimit caps the extracted text returned to anonymous callers.
const previewLimit = 500

// UploadService is the upload orchestrator. One authenticated upload walks
// validate -> entitle -> extract -> summarize -> record; any failure before
// record leaves no usage behind. Anonymous callers get the reduced preview
// path: validate against the lower ceiling, extract, truncate — no
// summarization and no usage accounting.
type UploadService struct {
	extractor    domain.TextExtractor
	summarizer   domain.Summarizer
	usageService domain.UsageService
	logger       domain.Logger

	maxFileSize     int64
	anonMaxFileSize int64
}

// NewUploadService creates a new upload orchestrator instance
func NewUploadService(
	extractor domain.TextExtractor,
	summarizer domain.Summarizer,
	usageService domain.UsageService,
	config domain.Config,
	logger domain.Logger,
) *UploadService {
	return &UploadService{
		extractor:       extractor,
		summarizer:      summarizer,
		usageService:    usageService,
		logger:          logger,
		maxFileSize:     config.GetMaxFileSize(),
		anonMaxFileSize: config.GetAnonMaxFileSize(),
	}
}

// ProcessUpload runs the full pipeline for an authenticated user.
func (s *UploadService) ProcessUpload(ctx context.Context, user *domain.User, req domain.UploadRequest) (*domain.UploadResult, error) {
	if err := validateFile(req.Filename, req.Data, s.maxFileSize); err != nil {
		return nil, err
	}

	pageCount, err := s.extractor.PageCount(req.Data)
	if err != nil {
		return nil, apperrors.NewExtractionError("could not read the PDF", err)
	}

	caps := user.Capabilities()
	usage, err := s.usageService.GetOrCreateCurrentPeriod(ctx, user.ID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("could not load usage for this month", err)
	}

	decision := domain.CheckEntitlement(caps, usage, domain.EntitlementRequest{
		DocumentType:  req.DocumentType,
		SummaryFormat: req.SummaryFormat,
		PageCount:     pageCount,
		Model:         req.Model,
	})
	if !decision.Allowed {
		s.logger.Info("Upload denied by plan limits",
			"user_id", user.ID,
			"plan", caps.Tier,
			"reason", decision.Reason,
		)
		return nil, apperrors.NewEntitlementError("your current plan does not allow this upload", string(decision.Reason))
	}

	extracted, err := s.extractor.Extract(ctx, req.Data)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyDocument) {
			return nil, apperrors.NewExtractionError("the document contains no extractable text", err)
		}
		return nil, apperrors.NewExtractionError("text extraction failed", err)
	}

	summary, err := s.summarizer.Summarize(ctx, extracted.Text, decision.Model, req.SummaryFormat)
	if err != nil {
		return nil, apperrors.NewSummarizationError("summary generation failed", err)
	}

	upload, updatedUsage, err := s.usageService.RecordUpload(ctx, user.ID, req.Filename, pageCount, req.DocumentType, req.SummaryFormat)
	if err != nil {
		// The summary exists but was not billed against quota. This is a
		// known inconsistency window; it is logged distinctly and surfaced
		// as a persistence failure rather than silently retried.
		s.logger.Error("Summary generated but usage not recorded", err,
			"user_id", user.ID,
			"filename", req.Filename,
			"pages", pageCount,
		)
		return nil, apperrors.NewPersistenceError("the summary could not be recorded", err)
	}

	return &domain.UploadResult{
		Summary:         summary,
		Model:           decision.Model,
		Priority:        decision.Priority,
		PageCount:       pageCount,
		EstimatedTokens: upload.TokenCount,
		Upload:          upload,
		Usage:           updatedUsage,
	}, nil
}

// ProcessAnonymousPreview runs the reduced path for unauthenticated callers.
// No collaborator beyond extraction is invoked and nothing is recorded.
func (s *UploadService) ProcessAnonymousPreview(ctx context.Context, req domain.PreviewRequest) (*domain.PreviewResult, error) {
	if err := validateFile(req.Filename, req.Data, s.anonMaxFileSize); err != nil {
		return nil, err
	}

	extracted, err := s.extractor.Extract(ctx, req.Data)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyDocument) {
			return nil, apperrors.NewExtractionError("the document contains no extractable text", err)
		}
		return nil, apperrors.NewExtractionError("text extraction failed", err)
	}

	preview := extracted.Text
	truncated := false
	if len(preview) > previewLimit {
		// Back the cut up to a rune boundary so the preview stays valid UTF-8.
		cut := previewLimit
		for cut > 0 && !utf8.RuneStart(preview[cut]) {
			cut--
		}
		preview = preview[:cut]
		truncated = true
	}

	return &domain.PreviewResult{
		Preview:   preview,
		PageCount: extracted.PageCount,
		Truncated: truncated,
	}, nil
}

// validateFile enforces the shape checks shared by both paths: a file must be
// present, non-empty, carry a .pdf name and fit under the given ceiling.
func validateFile(filename string, data []byte, maxSize int64) error {
	if filename == "" {
		return apperrors.NewValidationError("no file selected")
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return apperrors.NewValidationError("only PDF files are allowed")
	}
	if len(data) == 0 {
		return apperrors.NewValidationError("the uploaded file is empty")
	}
	if int64(len(data)) > maxSize {
		return apperrors.NewValidationError("the uploaded file exceeds the size limit")
	}
	return nil
}
