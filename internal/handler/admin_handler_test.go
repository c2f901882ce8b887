package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdminHandler_ResetState_ForbiddenOutsideTesting(t *testing.T) {
	userRepo := &mockUserRepo{}
	usageRepo := &mockUsageRepo{}
	handler := NewAdminHandler(userRepo, usageRepo, &testConfig{testing: false}, NewMockHandlerLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/test/reset", nil)
	rr := httptest.NewRecorder()
	handler.ResetState(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, rr.Code)
	}
	if userRepo.deleteCalls != 0 || usageRepo.deleteCalls != 0 {
		t.Fatal("nothing may be deleted outside testing mode")
	}
}

func TestAdminHandler_ResetState_OK(t *testing.T) {
	userRepo := &mockUserRepo{}
	usageRepo := &mockUsageRepo{}
	handler := NewAdminHandler(userRepo, usageRepo, &testConfig{testing: true}, NewMockHandlerLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/test/reset", nil)
	rr := httptest.NewRecorder()
	handler.ResetState(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if userRepo.deleteCalls != 1 {
		t.Fatalf("expected one user wipe, got %d", userRepo.deleteCalls)
	}
	if usageRepo.deleteCalls != 1 {
		t.Fatalf("expected one usage wipe, got %d", usageRepo.deleteCalls)
	}
}
