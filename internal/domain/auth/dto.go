package auth

import (
	"time"

	"videorental/internal/domain/employee"
	"videorental/internal/domain/rental"
)

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	Employee  *employee.Employee `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// Profile is the caller's employee record with processing counters.
type Profile struct {
	*employee.Employee
	Stats employee.Stats `json:"stats"`
}

// Statistics is the per-period view shown on the profile page.
type Statistics struct {
	Period         rental.Period      `json:"period"`
	Rentals        rental.PeriodStats `json:"rentals"`
	RecentActivity []rental.Rental    `json:"recent_activity"`
}
