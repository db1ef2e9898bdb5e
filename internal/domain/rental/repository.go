package rental

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"videorental/internal/domain"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// DB exposes the handle the ledgers join the transaction through.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

func (r *Repository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Client").
		Preload("MediaUnit").
		Preload("MediaUnit.Movie").
		Preload("Tariff").
		Preload("Employee")
}

func (r *Repository) Create(ctx context.Context, rental *Rental) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rental).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Rental, error) {
	var out Rental
	err := r.withRelations(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRentalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkReturned closes a live rental. It reports false when the rental was
// no longer live, which happens when two returns race.
func (r *Repository) MarkReturned(ctx context.Context, rental *Rental) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Rental{}).
		Where("id = ? AND status IN ?", rental.ID, domain.LiveRentalStatuses).
		Updates(map[string]any{
			"status":             domain.RentalReturned,
			"actual_return_date": rental.ActualReturnDate,
			"condition_after":    rental.ConditionAfter,
			"overdue_fine":       rental.OverdueFine,
			"damage_fine":        rental.DamageFine,
			"total_fines":        rental.TotalFines,
			"returned_by":        rental.ReturnedBy,
			"notes":              rental.Notes,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Rental{}, id).Error
}

// MarkOverdue persists the overdue status for every active rental past due.
func (r *Repository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Rental{}).
		Where("status = ? AND planned_return_date < ?", domain.RentalActive, now).
		Update("status", domain.RentalOverdue)
	return res.RowsAffected, res.Error
}

func (r *Repository) ListOverdue(ctx context.Context) ([]Rental, error) {
	var out []Rental
	err := r.withRelations(ctx).
		Where("status = ?", domain.RentalOverdue).
		Order("planned_return_date ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// statusScope filters on the derived status at now.
func statusScope(status domain.RentalStatus, now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch status {
		case domain.RentalActive:
			return db.Where("status = ? AND planned_return_date >= ?", domain.RentalActive, now)
		case domain.RentalOverdue:
			return db.Where("(status = ? OR (status = ? AND planned_return_date < ?))",
				domain.RentalOverdue, domain.RentalActive, now)
		default:
			return db.Where("status = ?", status)
		}
	}
}

func (r *Repository) List(ctx context.Context, f Filter, now time.Time) ([]Rental, int64, error) {
	q := r.db.WithContext(ctx).Model(&Rental{})
	if f.Status != "" {
		q = q.Scopes(statusScope(f.Status, now))
	}
	if f.ClientID > 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("client_id IN (?)", r.db.Table("clients").Select("id").
			Where("LOWER(full_name) LIKE ? OR phone LIKE ?", like, like))
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := q.Preload("Client").Preload("MediaUnit").Preload("MediaUnit.Movie").
		Preload("Tariff").Preload("Employee").
		Order("rental_date DESC").Order("id DESC")
	if f.Limit > 0 {
		page = page.Limit(f.Limit).Offset(f.Offset)
	}
	var out []Rental
	if err := page.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *Repository) Counts(ctx context.Context, now time.Time) (Counts, error) {
	var c Counts
	for _, item := range []struct {
		status domain.RentalStatus
		dst    *int64
	}{
		{domain.RentalActive, &c.Active},
		{domain.RentalReturned, &c.Completed},
		{domain.RentalOverdue, &c.Overdue},
	} {
		err := r.db.WithContext(ctx).Model(&Rental{}).
			Scopes(statusScope(item.status, now)).
			Count(item.dst).Error
		if err != nil {
			return Counts{}, err
		}
	}
	return c, nil
}

// IssuedBy returns the rentals an employee issued since the given time.
func (r *Repository) IssuedBy(ctx context.Context, employeeID int64, since, until time.Time) ([]Rental, error) {
	var out []Rental
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND rental_date >= ? AND rental_date <= ?", employeeID, since, until).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) RecentByEmployee(ctx context.Context, employeeID int64, limit int) ([]Rental, error) {
	var out []Rental
	err := r.db.WithContext(ctx).
		Preload("Client").Preload("MediaUnit").Preload("MediaUnit.Movie").
		Where("employee_id = ?", employeeID).
		Order("rental_date DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
