package auth

import (
	"context"

	"videorental/internal/domain/audit"
	"videorental/internal/domain/employee"
	"videorental/internal/domain/rental"
)

// EmployeeStore is the part of the employee service auth relies on.
type EmployeeStore interface {
	GetByID(ctx context.Context, id int64) (*employee.Employee, error)
	GetByLogin(ctx context.Context, login string) (*employee.Employee, error)
	TouchLogin(ctx context.Context, e *employee.Employee) error
	Stats(ctx context.Context, id int64) (employee.Stats, error)
	UpdateProfile(ctx context.Context, id int64, req employee.ProfileUpdate) (*employee.Employee, error)
	ChangePassword(ctx context.Context, id int64, current, next string) error
}

// RentalStats reads per-employee rental activity.
type RentalStats interface {
	Statistics(ctx context.Context, employeeID int64, period rental.Period) (*rental.PeriodStats, error)
	RecentByEmployee(ctx context.Context, employeeID int64, limit int) ([]rental.Rental, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, ev audit.Event)
}
