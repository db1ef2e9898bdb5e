package client

import (
	"time"

	"github.com/shopspring/decimal"

	"videorental/internal/domain"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
	StatusPending Status = "pending"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusBlocked, StatusPending:
		return true
	}
	return false
}

// Client is a store customer. TotalRentals, ActiveRentals and LastRentalDate
// belong to the Ledger; profile edits never touch them.
type Client struct {
	ID               int64      `gorm:"primaryKey" json:"id"`
	FullName         string     `gorm:"size:200;not null;index" json:"full_name"`
	Phone            string     `gorm:"size:30;not null;uniqueIndex" json:"phone"`
	Email            string     `gorm:"size:255" json:"email,omitempty"`
	Status           Status     `gorm:"size:20;not null;index" json:"status"`
	Notes            string     `gorm:"size:500" json:"notes,omitempty"`
	TotalRentals     int        `gorm:"not null;default:0" json:"total_rentals"`
	ActiveRentals    int        `gorm:"not null;default:0" json:"active_rentals"`
	LastRentalDate   *time.Time `json:"last_rental_date,omitempty"`
	RegistrationDate time.Time  `gorm:"not null" json:"registration_date"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (Client) TableName() string { return "clients" }

type Filter struct {
	Search    string
	Status    Status
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// HistoryRow is one rental in a client's history.
type HistoryRow struct {
	ID                int64               `json:"id"`
	MediaUnitID       int64               `json:"cassette_id"`
	Serial            string              `json:"serial_number"`
	MovieTitle        string              `json:"movie_title"`
	MovieYear         int                 `json:"movie_year"`
	TariffName        string              `json:"tariff_name"`
	RentalDate        time.Time           `json:"rental_date"`
	PlannedReturnDate time.Time           `json:"planned_return_date"`
	ActualReturnDate  *time.Time          `json:"actual_return_date,omitempty"`
	Status            domain.RentalStatus `json:"status"`
	TotalCost         decimal.Decimal     `json:"total_cost"`
	TotalFines        decimal.Decimal     `json:"total_fines"`
}
