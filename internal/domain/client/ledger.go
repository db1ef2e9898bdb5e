package client

import (
	"context"
	"time"

	"gorm.io/gorm"

	"videorental/internal/domain"
)

// Ledger maintains the rental counters on clients. ActiveRentals is always
// recomputed from the rentals table rather than adjusted.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	return &Ledger{db: tx}
}

// RecordRentalIssued counts a new rental for the client.
func (l *Ledger) RecordRentalIssued(ctx context.Context, clientID int64, at time.Time) error {
	res := l.db.WithContext(ctx).Model(&Client{}).
		Where("id = ?", clientID).
		Updates(map[string]any{
			"total_rentals":    gorm.Expr("total_rentals + 1"),
			"last_rental_date": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return l.SyncActiveRentals(ctx, clientID)
}

// SyncActiveRentals sets active_rentals to the live rental count.
func (l *Ledger) SyncActiveRentals(ctx context.Context, clientID int64) error {
	live, err := l.liveCount(ctx, clientID)
	if err != nil {
		return err
	}
	return l.db.WithContext(ctx).Model(&Client{}).
		Where("id = ?", clientID).
		Update("active_rentals", live).Error
}

func (l *Ledger) IsDeletable(ctx context.Context, clientID int64) (bool, error) {
	live, err := l.liveCount(ctx, clientID)
	if err != nil {
		return false, err
	}
	return live == 0, nil
}

func (l *Ledger) liveCount(ctx context.Context, clientID int64) (int64, error) {
	var n int64
	err := l.db.WithContext(ctx).Table(domain.RentalsTable).
		Where("client_id = ? AND status IN ?", clientID, domain.LiveRentalStatuses).
		Count(&n).Error
	return n, err
}
