package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"pdf-summarizer/internal/domain"
)

// SupabaseUsageRepository implements domain.UsageRepository on the
// `monthly_usage` and `uploads` tables.
//
// Both mutating operations go through Postgres functions rather than
// PostgREST reads followed by writes: `get_or_create_monthly_usage` is an
// INSERT .. ON CONFLICT (user_id, month_start) DO NOTHING plus a SELECT, and
// `record_pdf_upload` increments the counters and inserts the upload row in
// one transaction. Two concurrent uploads can therefore never both observe
// the same pdf_count, and a month-boundary race cannot create duplicate rows.
type SupabaseUsageRepository struct {
	supabaseClient *SupabaseClient
	logger         domain.Logger
}

// NewSupabaseUsageRepository creates a new usage repository instance
func NewSupabaseUsageRepository(supabaseClient *SupabaseClient, logger domain.Logger) *SupabaseUsageRepository {
	return &SupabaseUsageRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

type usageRow struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	MonthStart time.Time `json:"month_start"`
	MonthEnd   time.Time `json:"month_end"`
	PDFCount   int       `json:"pdf_count"`
	TokenCount int       `json:"token_count"`
}

func (r usageRow) toDomain() *domain.MonthlyUsage {
	return &domain.MonthlyUsage{
		ID:         r.ID,
		UserID:     r.UserID,
		MonthStart: r.MonthStart,
		MonthEnd:   r.MonthEnd,
		PDFCount:   r.PDFCount,
		TokenCount: r.TokenCount,
	}
}

func (r *SupabaseUsageRepository) GetOrCreatePeriod(ctx context.Context, userID string, monthStart, monthEnd time.Time) (*domain.MonthlyUsage, error) {
	client, err := r.supabaseClient.Client()
	if err != nil {
		return nil, err
	}

	params := map[string]interface{}{
		"p_user_id":     userID,
		"p_month_start": monthStart.Format(time.RFC3339Nano),
		"p_month_end":   monthEnd.Format(time.RFC3339Nano),
	}

	resp := client.Rpc("get_or_create_monthly_usage", "", params)
	if resp == "" {
		return nil, fmt.Errorf("get_or_create_monthly_usage returned empty response")
	}

	var row usageRow
	if err := json.Unmarshal([]byte(resp), &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal usage row: %w", err)
	}
	return row.toDomain(), nil
}

func (r *SupabaseUsageRepository) RecordUpload(ctx context.Context, upload *domain.Upload) (*domain.MonthlyUsage, error) {
	client, err := r.supabaseClient.Client()
	if err != nil {
		return nil, err
	}

	monthStart, monthEnd := domain.MonthWindow(upload.UploadDate)
	params := map[string]interface{}{
		"p_upload_id":      upload.ID,
		"p_user_id":        upload.UserID,
		"p_filename":       upload.Filename,
		"p_page_count":     upload.PageCount,
		"p_token_count":    upload.TokenCount,
		"p_document_type":  string(upload.DocumentType),
		"p_summary_format": string(upload.SummaryFormat),
		"p_upload_date":    upload.UploadDate.Format(time.RFC3339Nano),
		"p_month_start":    monthStart.Format(time.RFC3339Nano),
		"p_month_end":      monthEnd.Format(time.RFC3339Nano),
	}

	resp := client.Rpc("record_pdf_upload", "", params)
	if resp == "" {
		return nil, fmt.Errorf("record_pdf_upload returned empty response")
	}

	var row usageRow
	if err := json.Unmarshal([]byte(resp), &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal usage row: %w", err)
	}
	return row.toDomain(), nil
}

type uploadRow struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Filename      string    `json:"filename"`
	PageCount     int       `json:"page_count"`
	TokenCount    int       `json:"token_count"`
	DocumentType  string    `json:"document_type"`
	SummaryFormat string    `json:"summary_format"`
	UploadDate    time.Time `json:"upload_date"`
}

func (r *SupabaseUsageRepository) ListUploads(ctx context.Context, userID string) ([]*domain.Upload, error) {
	client, err := r.supabaseClient.Client()
	if err != nil {
		return nil, err
	}

	resp, _, err := client.From("uploads").
		Select("*", "", false).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	var rows []uploadRow
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal uploads: %w", err)
	}

	uploads := make([]*domain.Upload, len(rows))
	for i, row := range rows {
		uploads[i] = &domain.Upload{
			ID:            row.ID,
			UserID:        row.UserID,
			Filename:      row.Filename,
			PageCount:     row.PageCount,
			TokenCount:    row.TokenCount,
			DocumentType:  domain.DocumentType(row.DocumentType),
			SummaryFormat: domain.SummaryFormat(row.SummaryFormat),
			UploadDate:    row.UploadDate,
		}
	}
	// Newest first.
	sort.Slice(uploads, func(i, j int) bool {
		return uploads[i].UploadDate.After(uploads[j].UploadDate)
	})
	return uploads, nil
}

// DeleteAll wipes usage and upload tables. Only reachable through the
// test-reset endpoint, which is gated behind the TESTING flag.
func (r *SupabaseUsageRepository) DeleteAll(ctx context.Context) error {
	client, err := r.supabaseClient.Client()
	if err != nil {
		return err
	}

	if _, _, err := client.From("uploads").Delete("", "").Neq("id", nilUUID).Execute(); err != nil {
		return fmt.Errorf("failed to delete uploads: %w", err)
	}
	if _, _, err := client.From("monthly_usage").Delete("", "").Neq("id", nilUUID).Execute(); err != nil {
		return fmt.Errorf("failed to delete monthly usage: %w", err)
	}
	return nil
}
