package stats

import "time"

// Dashboard holds the headline counters. Active and overdue follow the
// derived status rule: an active rental past its planned return is overdue.
type Dashboard struct {
	TotalClients   int64 `db:"total_clients" json:"total_clients"`
	ActiveRentals  int64 `db:"active_rentals" json:"active_rentals"`
	OverdueRentals int64 `db:"overdue_rentals" json:"overdue_rentals"`
	TotalMovies    int64 `db:"total_movies" json:"total_movies"`
}

type ActivityEmployee struct {
	ID       int64  `db:"employee_id" json:"id"`
	FullName string `db:"employee_name" json:"full_name"`
	Role     string `db:"employee_role" json:"role"`
}

// Activity is an audit entry with its employee resolved.
type Activity struct {
	ID         string    `db:"id" json:"id"`
	Type       string    `db:"type" json:"type"`
	Action     string    `db:"action" json:"action"`
	EntityType string    `db:"entity_type" json:"entity_type,omitempty"`
	EntityID   int64     `db:"entity_id" json:"entity_id,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`

	ActivityEmployee `json:"employee"`
}
