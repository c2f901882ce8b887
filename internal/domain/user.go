package domain

import (
	"time"
)

// User represents a registered account and its current plan.
type User struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	PasswordHash  string     `json:"-"`
	ProfilePic    string     `json:"profile_pic,omitempty"`
	PlanType      PlanTier   `json:"plan_type"`
	PlanStartDate time.Time  `json:"plan_start_date"`
	PlanEndDate   *time.Time `json:"plan_end_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Plan returns the user's plan tier, defaulting to free when unset.
func (u *User) Plan() PlanTier {
	if u == nil || u.PlanType == "" {
		return PlanFree
	}
	return u.PlanType
}

// Capabilities returns the capability set of the user's current plan.
func (u *User) Capabilities() PlanCapabilities {
	return CapabilitiesFor(u.Plan())
}
