package handler

import (
	"encoding/json"
	"net/http"

	"pdf-summarizer/internal/domain"
)

// PlanHandler handles plan catalog and plan selection requests
type PlanHandler struct {
	planService domain.PlanService
	logger      domain.Logger
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planService domain.PlanService, logger domain.Logger) *PlanHandler {
	return &PlanHandler{
		planService: planService,
		logger:      logger,
	}
}

// GetPlans returns the capability sets of all selectable plans
func (h *PlanHandler) GetPlans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"plans": h.planService.Catalog(),
	})
}

type selectPlanRequest struct {
	Plan string `json:"plan"`
}

// SelectPlan switches the authenticated user to the requested plan
func (h *PlanHandler) SelectPlan(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	var req selectPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Plan == "" {
		writeError(w, http.StatusBadRequest, "Plan is required")
		return
	}

	updated, err := h.planService.SelectPlan(r.Context(), user, domain.PlanTier(req.Plan))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":         toUserResponse(updated),
		"plan_start":   updated.PlanStartDate,
		"plan_end":     updated.PlanEndDate,
		"capabilities": updated.Capabilities(),
	})
}
