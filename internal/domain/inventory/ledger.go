package inventory

import (
	"context"
	"time"

	"gorm.io/gorm"

	"videorental/internal/domain"
)

// Ledger owns media unit availability. Every transition is a single
// conditional UPDATE so concurrent rentals of one unit cannot both win.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// WithTx binds the ledger to tx.
func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	return &Ledger{db: tx}
}

// Reserve moves an available unit to rented.
func (l *Ledger) Reserve(ctx context.Context, unitID int64, at time.Time) error {
	res := l.db.WithContext(ctx).Model(&MediaUnit{}).
		Where("id = ? AND status = ?", unitID, StatusAvailable).
		Updates(map[string]any{
			"status":           StatusRented,
			"rental_count":     gorm.Expr("rental_count + 1"),
			"last_rental_date": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return l.missOrConflict(ctx, unitID, ErrUnitUnavailable)
	}
	return nil
}

// Release returns a rented unit in condition c. A poor unit is parked as
// damaged instead of going back on the shelf.
func (l *Ledger) Release(ctx context.Context, unitID int64, c domain.Condition) error {
	status := StatusAvailable
	if c == domain.ConditionPoor {
		status = StatusDamaged
	}
	res := l.db.WithContext(ctx).Model(&MediaUnit{}).
		Where("id = ? AND status = ?", unitID, StatusRented).
		Updates(map[string]any{"status": status, "condition": c})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return l.missOrConflict(ctx, unitID, ErrUnitNotRented)
	}
	return nil
}

// ReleaseUnchanged puts a rented unit back to available as it was.
func (l *Ledger) ReleaseUnchanged(ctx context.Context, unitID int64) error {
	res := l.db.WithContext(ctx).Model(&MediaUnit{}).
		Where("id = ? AND status = ?", unitID, StatusRented).
		Update("status", StatusAvailable)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return l.missOrConflict(ctx, unitID, ErrUnitNotRented)
	}
	return nil
}

// IsDeletable reports whether no live rental references the unit.
func (l *Ledger) IsDeletable(ctx context.Context, unitID int64) (bool, error) {
	var n int64
	err := l.db.WithContext(ctx).Table(domain.RentalsTable).
		Where("media_unit_id = ? AND status IN ?", unitID, domain.LiveRentalStatuses).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func (l *Ledger) missOrConflict(ctx context.Context, unitID int64, conflict error) error {
	var n int64
	if err := l.db.WithContext(ctx).Model(&MediaUnit{}).Where("id = ?", unitID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrUnitNotFound
	}
	return conflict
}
