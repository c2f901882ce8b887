package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pdf-summarizer/internal/domain"
	apperrors "pdf-summarizer/pkg/errors"
)

func TestWriteServiceError_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "Validation app error", err: apperrors.NewValidationError("bad file"), wantStatus: http.StatusBadRequest},
		{name: "Entitlement", err: errEntitlementDenied, wantStatus: http.StatusForbidden},
		{name: "Extraction", err: apperrors.NewExtractionError("broken pdf", nil), wantStatus: http.StatusUnprocessableEntity},
		{name: "Summarization", err: apperrors.NewSummarizationError("model down", nil), wantStatus: http.StatusServiceUnavailable},
		{name: "Persistence", err: apperrors.NewPersistenceError("db down", nil), wantStatus: http.StatusInternalServerError},
		{name: "Domain validation", err: &domain.ValidationError{Field: "plan", Message: "invalid plan selected"}, wantStatus: http.StatusBadRequest},
		{name: "Email taken", err: domain.ErrEmailTaken, wantStatus: http.StatusConflict},
		{name: "Invalid credentials", err: domain.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "User not found", err: domain.ErrUserNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeServiceError(rr, tt.err)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("Content-Type = %q", ct)
			}
		})
	}
}

func TestWriteServiceError_UnknownErrorIsGeneric(t *testing.T) {
	rr := httptest.NewRecorder()
	writeServiceError(rr, errors.New("pq: connection refused on 10.0.0.7"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["error"] != "An unexpected error occurred" {
		t.Fatalf("error = %q, want the generic message", resp["error"])
	}
	if strings.Contains(rr.Body.String(), "10.0.0.7") {
		t.Fatal("internal error detail must not leak to the client")
	}
}
