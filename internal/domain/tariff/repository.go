package tariff

import (
	"context"
	"errors"
	"strings"

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

// Transaction runs fn with a repository bound to a single transaction.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("DurationDiscounts", func(db *gorm.DB) *gorm.DB { return db.Order("min_days ASC") }).
		Preload("AllowedGenres")
}

func (r *Repository) List(ctx context.Context, activeOnly bool) ([]Tariff, error) {
	q := r.withChildren(ctx).Order("base_price_per_day ASC").Order("id ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []Tariff
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Tariff, error) {
	var t Tariff
	err := r.withChildren(ctx).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTariffNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindDefault returns the active default tariff, falling back to the
// cheapest active one.
func (r *Repository) FindDefault(ctx context.Context) (*Tariff, error) {
	var t Tariff
	err := r.withChildren(ctx).
		Where("is_default = ? AND is_active = ?", true, true).
		First(&t).Error
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.withChildren(ctx).
		Where("is_active = ?", true).
		Order("base_price_per_day ASC").Order("id ASC").
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveTariff
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&Tariff{}).Where("LOWER(name) = ?", strings.ToLower(name))
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repository) Create(ctx context.Context, t *Tariff) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Save writes scalar fields and replaces the discount and genre children.
func (r *Repository) Save(ctx context.Context, t *Tariff) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Save(t).Error; err != nil {
		return err
	}
	if err := db.Where("tariff_id = ?", t.ID).Delete(&DurationDiscount{}).Error; err != nil {
		return err
	}
	for i := range t.DurationDiscounts {
		t.DurationDiscounts[i].ID = 0
		t.DurationDiscounts[i].TariffID = t.ID
	}
	if len(t.DurationDiscounts) > 0 {
		if err := db.Create(&t.DurationDiscounts).Error; err != nil {
			return err
		}
	}
	if err := db.Where("tariff_id = ?", t.ID).Delete(&AllowedGenre{}).Error; err != nil {
		return err
	}
	for i := range t.AllowedGenres {
		t.AllowedGenres[i].TariffID = t.ID
	}
	if len(t.AllowedGenres) > 0 {
		if err := db.Create(&t.AllowedGenres).Error; err != nil {
			return err
		}
	}
	return nil
}

// ClearDefault unsets is_default on every tariff except keepID.
func (r *Repository) ClearDefault(ctx context.Context, keepID int64) error {
	return r.db.WithContext(ctx).Model(&Tariff{}).
		Where("is_default = ? AND id <> ?", true, keepID).
		Update("is_default", false).Error
}

func (r *Repository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Tariff{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}

func (r *Repository) CountDefault(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Tariff{}).Where("is_default = ?", true).Count(&n).Error
	return n, err
}

// CountRentals counts rentals under the tariff; liveOnly restricts to
// rentals still holding a unit.
func (r *Repository) CountRentals(ctx context.Context, tariffID int64, liveOnly bool) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Table(domain.RentalsTable).Where("tariff_id = ?", tariffID)
	if liveOnly {
		q = q.Where("status IN ?", domain.LiveRentalStatuses)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("tariff_id = ?", id).Delete(&DurationDiscount{}).Error; err != nil {
		return err
	}
	if err := db.Where("tariff_id = ?", id).Delete(&AllowedGenre{}).Error; err != nil {
		return err
	}
	res := db.Delete(&Tariff{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTariffNotFound
	}
	return nil
}
