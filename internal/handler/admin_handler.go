package handler

import (
	"net/http"

	"pdf-summarizer/internal/domain"
)

// AdminHandler exposes test-support endpoints. Every route it serves is
// refused unless the server was started in testing mode.
type AdminHandler struct {
	userRepo  domain.UserRepository
	usageRepo domain.UsageRepository
	config    domain.Config
	logger    domain.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(userRepo domain.UserRepository, usageRepo domain.UsageRepository, config domain.Config, logger domain.Logger) *AdminHandler {
	return &AdminHandler{
		userRepo:  userRepo,
		usageRepo: usageRepo,
		config:    config,
		logger:    logger,
	}
}

// ResetState wipes users, usage counters and upload records so automated
// test runs start from a clean slate
func (h *AdminHandler) ResetState(w http.ResponseWriter, r *http.Request) {
	if !h.config.IsTesting() {
		writeError(w, http.StatusForbidden, "Reset is only available in testing mode")
		return
	}

	if err := h.usageRepo.DeleteAll(r.Context()); err != nil {
		h.logger.Error("Failed to reset usage data", err)
		writeError(w, http.StatusInternalServerError, "Failed to reset usage data")
		return
	}
	if err := h.userRepo.DeleteAll(r.Context()); err != nil {
		h.logger.Error("Failed to reset users", err)
		writeError(w, http.StatusInternalServerError, "Failed to reset users")
		return
	}

	h.logger.Info("Test state reset")
	writeJSON(w, http.StatusOK, map[string]string{"message": "State reset"})
}
