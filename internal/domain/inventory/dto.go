package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"videorental/internal/domain"
)

type CreateUnitRequest struct {
	MovieID       int64            `json:"movie_id" validate:"required"`
	Serial        string           `json:"serial_number" validate:"max=50"`
	Format        Format           `json:"format"`
	Condition     domain.Condition `json:"condition"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	PurchaseDate  *time.Time       `json:"purchase_date"`
	Notes         string           `json:"notes" validate:"max=1000"`
}

// UpdateUnitRequest is a partial update. Status may move between available,
// damaged and lost; rented is owned by the rental lifecycle.
type UpdateUnitRequest struct {
	Serial        *string           `json:"serial_number" validate:"omitempty,max=50"`
	Format        *Format           `json:"format"`
	Condition     *domain.Condition `json:"condition"`
	Status        *Status           `json:"status"`
	PurchasePrice *decimal.Decimal  `json:"purchase_price"`
	PurchaseDate  *time.Time        `json:"purchase_date"`
	Notes         *string           `json:"notes" validate:"omitempty,max=1000"`
}

type UnitListResponse struct {
	Units []MediaUnit `json:"cassettes"`
	Total int64       `json:"total"`
}

type UnitDetails struct {
	*MediaUnit
	RecentRentals []RentalSummary `json:"recent_rentals"`
}
