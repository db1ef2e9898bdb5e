package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"videorental/internal/domain"
)

const recentRentalsLimit = 10

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

// DB exposes the handle so a ledger can share the repository's transaction.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

func (r *Repository) List(ctx context.Context, f Filter) ([]MediaUnit, int64, error) {
	q := r.db.WithContext(ctx).Model(&MediaUnit{})
	if f.MovieID > 0 {
		q = q.Where("movie_id = ?", f.MovieID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Available != nil {
		if *f.Available {
			q = q.Where("status = ?", StatusAvailable)
		} else {
			q = q.Where("status <> ?", StatusAvailable)
		}
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("serial LIKE ?", "%"+strings.ToUpper(s)+"%")
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := q.Preload("Movie").Order("serial ASC")
	if f.Limit > 0 {
		page = page.Limit(f.Limit).Offset(f.Offset)
	}
	var out []MediaUnit
	if err := page.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*MediaUnit, error) {
	var u MediaUnit
	err := r.db.WithContext(ctx).Preload("Movie").First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) SerialTaken(ctx context.Context, serial string, excludeID int64) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&MediaUnit{}).Where("serial = ?", serial)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// NextSerial proposes CAS-000001 style serials from the unit count,
// skipping numbers that are already taken.
func (r *Repository) NextSerial(ctx context.Context) (string, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&MediaUnit{}).Count(&n).Error; err != nil {
		return "", err
	}
	for {
		n++
		serial := fmt.Sprintf("CAS-%06d", n)
		taken, err := r.SerialTaken(ctx, serial, 0)
		if err != nil {
			return "", err
		}
		if !taken {
			return serial, nil
		}
	}
}

func (r *Repository) Create(ctx context.Context, u *MediaUnit) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error
}

// SaveDetails writes the named catalog columns of u. Status and the rental
// counters belong to the ledger and are never written here.
func (r *Repository) SaveDetails(ctx context.Context, u *MediaUnit, cols ...string) error {
	cols = append(cols, "updated_at")
	return r.db.WithContext(ctx).Model(u).
		Select(cols).
		Omit(clause.Associations).
		Updates(u).Error
}

// SetStatus moves a unit that is not rented to status. It reports false
// when the unit was reserved in the meantime.
func (r *Repository) SetStatus(ctx context.Context, id int64, status Status) (bool, error) {
	res := r.db.WithContext(ctx).Model(&MediaUnit{}).
		Where("id = ? AND status <> ?", id, StatusRented).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&MediaUnit{}, id).Error
}

// RecentRentals returns the unit's latest rentals, newest first.
func (r *Repository) RecentRentals(ctx context.Context, unitID int64) ([]RentalSummary, error) {
	var out []RentalSummary
	err := r.db.WithContext(ctx).
		Table(domain.RentalsTable+" AS r").
		Select("r.id, r.client_id, COALESCE(c.full_name, '') AS client_name, r.rental_date, r.planned_return_date, r.actual_return_date, r.status, r.total_cost").
		Joins("LEFT JOIN clients c ON c.id = r.client_id").
		Where("r.media_unit_id = ?", unitID).
		Order("r.rental_date DESC").
		Limit(recentRentalsLimit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
