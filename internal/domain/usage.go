package domain

import "time"

// TokensPerPage is the fixed heuristic used to estimate AI token cost per
// document page. Usage accounting is based on this estimate, not on the
// actual summarization response.
const TokensPerPage = 500

// MonthlyUsage tracks a user's consumption within one calendar month.
// There is at most one row per (user, month start).
type MonthlyUsage struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	MonthStart time.Time `json:"month_start"`
	MonthEnd   time.Time `json:"month_end"`
	PDFCount   int       `json:"pdf_count"`
	TokenCount int       `json:"token_count"`
}

// Upload is the immutable record of one successfully processed document.
type Upload struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	Filename      string        `json:"filename"`
	PageCount     int           `json:"page_count"`
	TokenCount    int           `json:"token_count"`
	DocumentType  DocumentType  `json:"document_type"`
	SummaryFormat SummaryFormat `json:"summary_format"`
	UploadDate    time.Time     `json:"upload_date"`
}

// EstimateTokens returns the estimated token cost for a document of the
// given page count.
func EstimateTokens(pageCount int) int {
	return pageCount * TokensPerPage
}

// MonthWindow returns the calendar-month boundaries containing the given
// instant: the first instant of the month and the last instant before the
// next month begins. Boundaries are computed in UTC.
func MonthWindow(now time.Time) (start, end time.Time) {
	now = now.UTC()
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
