package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"pdf-summarizer/internal/domain"
)

// UploadHandler handles PDF upload, anonymous preview and usage requests
type UploadHandler struct {
	uploadService domain.UploadService
	usageService  domain.UsageService
	config        domain.Config
	logger        domain.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService domain.UploadService, usageService domain.UsageService, config domain.Config, logger domain.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		usageService:  usageService,
		config:        config,
		logger:        logger,
	}
}

// readMultipartFile pulls the "file" part out of a multipart request. The
// parse limit sits one megabyte above the configured ceiling so oversized
// files reach the validation layer and get a proper error message.
func (h *UploadHandler) readMultipartFile(r *http.Request, limit int64) (string, []byte, error) {
	if err := r.ParseMultipartForm(limit + 1<<20); err != nil {
		return "", nil, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, err
	}

	// Strip any path components from the client-supplied filename.
	filename := strings.TrimSpace(filepath.Base(header.Filename))
	return filename, data, nil
}

// Upload summarizes an authenticated PDF upload
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	filename, data, err := h.readMultipartFile(r, h.config.GetMaxFileSize())
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}

	req := domain.UploadRequest{
		Filename:      filename,
		Data:          data,
		DocumentType:  domain.DocumentType(r.FormValue("document_type")),
		SummaryFormat: domain.SummaryFormat(r.FormValue("summary_format")),
		Model:         r.FormValue("model"),
	}
	if req.DocumentType == "" {
		req.DocumentType = domain.DocTypeAcademic
	}
	if req.SummaryFormat == "" {
		req.SummaryFormat = domain.FormatPlainText
	}

	result, err := h.uploadService.ProcessUpload(r.Context(), user, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Preview extracts a truncated text preview for anonymous callers
func (h *UploadHandler) Preview(w http.ResponseWriter, r *http.Request) {
	filename, data, err := h.readMultipartFile(r, h.config.GetAnonMaxFileSize())
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}

	result, err := h.uploadService.ProcessAnonymousPreview(r.Context(), domain.PreviewRequest{
		Filename: filename,
		Data:     data,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type usageResponse struct {
	Usage     *domain.MonthlyUsage `json:"usage"`
	Limit     int                  `json:"limit"`
	Remaining int                  `json:"remaining"`
	Uploads   []*domain.Upload     `json:"uploads"`
}

// GetUsage returns the current month's consumption and the upload history
func (h *UploadHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	usage, err := h.usageService.GetOrCreateCurrentPeriod(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to load usage", err, "user_id", user.ID)
		writeServiceError(w, err)
		return
	}

	uploads, err := h.usageService.ListUploads(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("Failed to list uploads", err, "user_id", user.ID)
		writeServiceError(w, err)
		return
	}
	// Ensure JSON is [] not null when there are no uploads.
	if uploads == nil {
		uploads = make([]*domain.Upload, 0)
	}

	caps := user.Capabilities()
	remaining := caps.MaxPDFsPerMonth - usage.PDFCount
	if remaining < 0 {
		remaining = 0
	}

	writeJSON(w, http.StatusOK, usageResponse{
		Usage:     usage,
		Limit:     caps.MaxPDFsPerMonth,
		Remaining: remaining,
		Uploads:   uploads,
	})
}
