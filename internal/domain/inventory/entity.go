package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"videorental/internal/domain"
	"videorental/internal/domain/catalog"
)

type Format string

const (
	FormatVHS     Format = "VHS"
	FormatBetamax Format = "Betamax"
	FormatVideo8  Format = "Video8"
	FormatHi8     Format = "Hi8"
)

func (f Format) Valid() bool {
	switch f {
	case FormatVHS, FormatBetamax, FormatVideo8, FormatHi8:
		return true
	}
	return false
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusRented    Status = "rented"
	StatusDamaged   Status = "damaged"
	StatusLost      Status = "lost"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusRented, StatusDamaged, StatusLost:
		return true
	}
	return false
}

// MediaUnit is one physical cassette of a movie. Status is rented exactly
// while one live rental references the unit.
type MediaUnit struct {
	ID             int64            `gorm:"primaryKey" json:"id"`
	MovieID        int64            `gorm:"not null;index" json:"movie_id"`
	Movie          *catalog.Movie   `gorm:"foreignKey:MovieID" json:"movie,omitempty"`
	Serial         string           `gorm:"size:50;not null;uniqueIndex" json:"serial_number"`
	Format         Format           `gorm:"size:20;not null" json:"format"`
	Condition      domain.Condition `gorm:"size:20;not null" json:"condition"`
	Status         Status           `gorm:"size:20;not null;index" json:"status"`
	PurchasePrice  decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"purchase_price"`
	PurchaseDate   *time.Time       `json:"purchase_date,omitempty"`
	Notes          string           `gorm:"size:1000" json:"notes,omitempty"`
	RentalCount    int              `gorm:"not null;default:0" json:"rental_count"`
	LastRentalDate *time.Time       `json:"last_rental_date,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func (MediaUnit) TableName() string { return domain.MediaUnitsTable }

type Filter struct {
	MovieID   int64
	Status    Status
	Available *bool
	Search    string
	Limit     int
	Offset    int
}

// RentalSummary is a row of a unit's rental history.
type RentalSummary struct {
	ID                int64               `json:"id"`
	ClientID          int64               `json:"client_id"`
	ClientName        string              `json:"client_name"`
	RentalDate        time.Time           `json:"rental_date"`
	PlannedReturnDate time.Time           `json:"planned_return_date"`
	ActualReturnDate  *time.Time          `json:"actual_return_date,omitempty"`
	Status            domain.RentalStatus `json:"status"`
	TotalCost         decimal.Decimal     `json:"total_cost"`
}
