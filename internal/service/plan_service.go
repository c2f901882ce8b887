package service

import (
	"context"
	"fmt"
	"time"

	"pdf-summarizer/internal/domain"
)

// paidPlanDuration is the mock billing cycle applied when a paid plan is
// selected. There is no real payment processing.
const paidPlanDuration = 30 * 24 * time.Hour

// PlanService implements domain.PlanService: plan selection and the catalog.
type PlanService struct {
	userRepo domain.UserRepository
	logger   domain.Logger
	now      func() time.Time
}

// NewPlanService creates a new plan service instance
func NewPlanService(userRepo domain.UserRepository, logger domain.Logger) *PlanService {
	return &PlanService{
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// Catalog returns the capability sets of every selectable plan.
func (s *PlanService) Catalog() []domain.PlanCapabilities {
	return []domain.PlanCapabilities{
		domain.CapabilitiesFor(domain.PlanFree),
		domain.CapabilitiesFor(domain.PlanStarter),
		domain.CapabilitiesFor(domain.PlanPro),
	}
}

// SelectPlan switches the user onto the given tier. The free plan takes
// effect immediately and has no end date; paid plans simulate a successful
// payment and run for one billing cycle.
func (s *PlanService) SelectPlan(ctx context.Context, user *domain.User, tier domain.PlanTier) (*domain.User, error) {
	if !domain.ValidPlanTier(string(tier)) {
		return nil, &domain.ValidationError{Field: "plan", Message: "invalid plan selected"}
	}

	// A paid cycle runs to its end date. Upgrades take effect immediately;
	// dropping below the current tier before the cycle ends would forfeit a
	// paid period, so it is rejected until the end date passes.
	if !domain.MeetsMinimum(tier, user.Plan()) && user.PlanEndDate != nil && user.PlanEndDate.After(s.now()) {
		return nil, &domain.ValidationError{Field: "plan", Message: "current plan is active until the end of the billing cycle"}
	}

	start := s.now().UTC()
	var end *time.Time
	if tier != domain.PlanFree {
		e := start.Add(paidPlanDuration)
		end = &e
	}

	if err := s.userRepo.UpdatePlan(ctx, user.ID, tier, start, end); err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	updated := *user
	updated.PlanType = tier
	updated.PlanStartDate = start
	updated.PlanEndDate = end

	s.logger.Info("Plan changed", "user_id", user.ID, "plan", tier)
	return &updated, nil
}
