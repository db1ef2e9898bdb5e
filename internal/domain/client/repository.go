package client

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"videorental/internal/domain"
)

var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"fullName":      "full_name",
	"totalRentals":  "total_rentals",
	"activeRentals": "active_rentals",
	"lastRental":    "last_rental_date",
}

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

func (r *Repository) DB() *gorm.DB {
	return r.db
}

func (r *Repository) List(ctx context.Context, f Filter) ([]Client, int64, error) {
	q := r.db.WithContext(ctx).Model(&Client{})
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(full_name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?)", like, like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		dir = "ASC"
	}
	page := q.Order(column + " " + dir).Order("id " + dir)
	if f.Limit > 0 {
		page = page.Limit(f.Limit).Offset(f.Offset)
	}

	var out []Client
	if err := page.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Client, error) {
	var c Client
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) PhoneTaken(ctx context.Context, phone string, excludeID int64) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&Client{}).Where("phone = ?", phone)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repository) Create(ctx context.Context, c *Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// SaveProfile writes profile columns only; the ledger owns the counters.
func (r *Repository) SaveProfile(ctx context.Context, c *Client) error {
	return r.db.WithContext(ctx).Model(c).
		Select("full_name", "phone", "email", "status", "notes", "updated_at").
		Updates(c).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Client{}, id).Error
}

// History returns every rental of the client, newest first.
func (r *Repository) History(ctx context.Context, clientID int64) ([]HistoryRow, error) {
	var out []HistoryRow
	err := r.db.WithContext(ctx).
		Table(domain.RentalsTable+" AS r").
		Select(`r.id, r.media_unit_id, COALESCE(u.serial, '') AS serial,
			COALESCE(m.title, '') AS movie_title, COALESCE(m.year, 0) AS movie_year,
			COALESCE(t.name, '') AS tariff_name, r.rental_date, r.planned_return_date,
			r.actual_return_date, r.status, r.total_cost, r.total_fines`).
		Joins("LEFT JOIN "+domain.MediaUnitsTable+" u ON u.id = r.media_unit_id").
		Joins("LEFT JOIN movies m ON m.id = u.movie_id").
		Joins("LEFT JOIN tariffs t ON t.id = r.tariff_id").
		Where("r.client_id = ?", clientID).
		Order("r.rental_date DESC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
