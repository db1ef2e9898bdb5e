package stats

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"videorental/internal/domain"
)

// Repository runs the read-only aggregate queries behind the dashboard.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const dashboardQuery = `
	SELECT
		(SELECT COUNT(*) FROM clients) AS total_clients,
		(SELECT COUNT(*) FROM ` + domain.RentalsTable + `
			WHERE status = ? AND planned_return_date >= ?) AS active_rentals,
		(SELECT COUNT(*) FROM ` + domain.RentalsTable + `
			WHERE status = ? OR (status = ? AND planned_return_date < ?)) AS overdue_rentals,
		(SELECT COUNT(*) FROM movies) AS total_movies
`

func (r *Repository) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	var d Dashboard
	err := r.db.GetContext(ctx, &d, r.db.Rebind(dashboardQuery),
		domain.RentalActive, now,
		domain.RentalOverdue, domain.RentalActive, now,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

const activityQuery = `
	SELECT a.id, a.type, a.action,
		COALESCE(a.entity_type, '') AS entity_type,
		COALESCE(a.entity_id, 0) AS entity_id,
		a.created_at, a.employee_id,
		COALESCE(e.full_name, '') AS employee_name,
		COALESCE(e.role, '') AS employee_role
	FROM audit_log_entries a
	LEFT JOIN employees e ON e.id = a.employee_id
`

// RecentActivity lists the newest audit entries. A zero employeeID means
// all employees.
func (r *Repository) RecentActivity(ctx context.Context, employeeID int64, limit int) ([]Activity, error) {
	query := activityQuery
	args := []any{}
	if employeeID > 0 {
		query += ` WHERE a.employee_id = ?`
		args = append(args, employeeID)
	}
	query += ` ORDER BY a.created_at DESC LIMIT ?`
	args = append(args, limit)

	out := []Activity{}
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return out, nil
}
