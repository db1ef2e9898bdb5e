package employee

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

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

func (r *Repository) GetByID(ctx context.Context, id int64) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) GetByLogin(ctx context.Context, login string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).Where("login = ?", strings.ToLower(strings.TrimSpace(login))).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) List(ctx context.Context, role Role, activeOnly bool) ([]Employee, error) {
	q := r.db.WithContext(ctx).Order("full_name ASC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []Employee
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *Repository) Save(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Employee{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (r *Repository) LoginExists(ctx context.Context, login string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Employee{}).Where("login = ?", login).Count(&n).Error
	return n > 0, err
}

// CountActiveAdmins is read inside the caller's transaction so the guard
// sees the same state the delete or demotion commits against.
func (r *Repository) CountActiveAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Employee{}).
		Where("role = ? AND is_active = ?", RoleAdmin, true).
		Count(&n).Error
	return n, err
}

func (r *Repository) Stats(ctx context.Context, employeeID int64) (Stats, error) {
	var s Stats
	db := r.db.WithContext(ctx)
	if err := db.Table(domain.RentalsTable).Where("employee_id = ?", employeeID).Count(&s.RentalsProcessed).Error; err != nil {
		return s, err
	}
	err := db.Table(domain.RentalsTable).
		Where("returned_by = ? AND status = ?", employeeID, domain.RentalReturned).
		Count(&s.ReturnsProcessed).Error
	return s, err
}
