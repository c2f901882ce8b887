package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pdf-summarizer/internal/domain"
)

const nilUUID = "00000000-0000-0000-0000-000000000000"

// SupabaseUserRepository implements domain.UserRepository on the `users` table.
type SupabaseUserRepository struct {
	supabaseClient *SupabaseClient
	logger         domain.Logger
}

// NewSupabaseUserRepository creates a new user repository instance
func NewSupabaseUserRepository(supabaseClient *SupabaseClient, logger domain.Logger) *SupabaseUserRepository {
	return &SupabaseUserRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

type userRow struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	PasswordHash  string     `json:"password_hash"`
	ProfilePic    string     `json:"profile_pic"`
	PlanType      string     `json:"plan_type"`
	PlanStartDate time.Time  `json:"plan_start_date"`
	PlanEndDate   *time.Time `json:"plan_end_date"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:            r.ID,
		Email:         r.Email,
		Name:          r.Name,
		PasswordHash:  r.PasswordHash,
		ProfilePic:    r.ProfilePic,
		PlanType:      domain.PlanTier(r.PlanType),
		PlanStartDate: r.PlanStartDate,
		PlanEndDate:   r.PlanEndDate,
		CreatedAt:     r.CreatedAt,
	}
}

func (r *SupabaseUserRepository) Create(ctx context.Context, user *domain.User) error {
	client, err := r.supabaseClient.Client()
	if err != nil {
		return err
	}

	data := map[string]interface{}{
		"id":              user.ID,
		"email":           user.Email,
		"name":            user.Name,
		"password_hash":   user.PasswordHash,
		"profile_pic":     user.ProfilePic,
		"plan_type":       string(user.Plan()),
		"plan_start_date": user.PlanStartDate,
		"created_at":      user.CreatedAt,
	}
	if user.PlanEndDate != nil {
		data["plan_end_date"] = user.PlanEndDate
	}

	_, _, err = client.From("users").Insert(data, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *SupabaseUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getByColumn("id", id)
}

func (r *SupabaseUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getByColumn("email", email)
}

func (r *SupabaseUserRepository) getByColumn(column, value string) (*domain.User, error) {
	client, err := r.supabaseClient.Client()
	if err != nil {
		return nil, err
	}

	resp, _, err := client.From("users").
		Select("*", "", false).
		Eq(column, value).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var rows []userRow
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return rows[0].toDomain(), nil
}

func (r *SupabaseUserRepository) UpdatePlan(ctx context.Context, userID string, plan domain.PlanTier, start time.Time, end *time.Time) error {
	client, err := r.supabaseClient.Client()
	if err != nil {
		return err
	}

	data := map[string]interface{}{
		"plan_type":       string(plan),
		"plan_start_date": start,
		"plan_end_date":   end,
	}

	_, _, err = client.From("users").Update(data, "", "").Eq("id", userID).Execute()
	if err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}
	return nil
}

// DeleteAll wipes the users table. Only reachable through the test-reset
// endpoint, which is gated behind the TESTING flag.
func (r *SupabaseUserRepository) DeleteAll(ctx context.Context) error {
	client, err := r.supabaseClient.Client()
	if err != nil {
		return err
	}

	_, _, err = client.From("users").Delete("", "").Neq("id", nilUUID).Execute()
	if err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}
	return nil
}
