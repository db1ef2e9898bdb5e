package rental

import (
	"time"

	"github.com/shopspring/decimal"

	"videorental/internal/domain"
	"videorental/internal/domain/client"
	"videorental/internal/domain/employee"
	"videorental/internal/domain/inventory"
	"videorental/internal/domain/tariff"
)

// Rental is one media unit lent to one client under one tariff. Price fields
// are frozen at issue time.
type Rental struct {
	ID                int64                `gorm:"primaryKey" json:"id"`
	ClientID          int64                `gorm:"not null;index" json:"client_id"`
	Client            *client.Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	MediaUnitID       int64                `gorm:"not null;index" json:"cassette_id"`
	MediaUnit         *inventory.MediaUnit `gorm:"foreignKey:MediaUnitID" json:"cassette,omitempty"`
	TariffID          int64                `gorm:"not null;index" json:"tariff_id"`
	Tariff            *tariff.Tariff       `gorm:"foreignKey:TariffID" json:"tariff,omitempty"`
	EmployeeID        int64                `gorm:"not null;index" json:"employee_id"`
	Employee          *employee.Employee   `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	ReturnedBy        *int64               `json:"returned_by,omitempty"`
	RentalDate        time.Time            `gorm:"not null;index" json:"rental_date"`
	PlannedReturnDate time.Time            `gorm:"not null;index" json:"planned_return_date"`
	ActualReturnDate  *time.Time           `json:"actual_return_date,omitempty"`
	Days              int                  `gorm:"not null" json:"days"`
	PricePerDay       decimal.Decimal      `gorm:"type:decimal(12,2);not null" json:"price_per_day"`
	Discount          decimal.Decimal      `gorm:"type:decimal(5,2);not null" json:"discount"`
	TotalCost         decimal.Decimal      `gorm:"type:decimal(12,2);not null" json:"total_cost"`
	Status            domain.RentalStatus  `gorm:"size:20;not null;index" json:"status"`
	ConditionBefore   domain.Condition     `gorm:"size:20;not null" json:"condition_before"`
	ConditionAfter    domain.Condition     `gorm:"size:20" json:"condition_after,omitempty"`
	OverdueFine       decimal.Decimal      `gorm:"type:decimal(12,2);not null" json:"overdue_fine"`
	DamageFine        decimal.Decimal      `gorm:"type:decimal(12,2);not null" json:"damage_fine"`
	TotalFines        decimal.Decimal      `gorm:"type:decimal(12,2);not null" json:"total_fines"`
	Notes             string               `gorm:"size:1000" json:"notes,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

func (Rental) TableName() string { return domain.RentalsTable }

type FineType string

const (
	FineOverdue FineType = "overdue"
	FineDamage  FineType = "damage"
)

type Fine struct {
	Type    FineType        `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	Details string          `json:"details"`
}

type Summary struct {
	RentalCost  decimal.Decimal `json:"rental_cost"`
	Fines       decimal.Decimal `json:"fines"`
	Total       decimal.Decimal `json:"total"`
	OverdueDays int             `json:"overdue_days"`
}

type ReturnResult struct {
	Rental     *Rental         `json:"rental"`
	Fines      []Fine          `json:"fines"`
	TotalFines decimal.Decimal `json:"total_fines"`
	Summary    Summary         `json:"summary"`
}

type Filter struct {
	Status   domain.RentalStatus
	ClientID int64
	Search   string
	Limit    int
	Offset   int
}

// Counts are taken over all rentals using derived statuses.
type Counts struct {
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Overdue   int64 `json:"overdue"`
}

type ListResult struct {
	Rentals []Rental `json:"rentals"`
	Total   int64    `json:"total"`
	Stats   Counts   `json:"stats"`
}

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// PeriodStats summarizes the rentals one employee issued in a period.
type PeriodStats struct {
	TotalRentals      int64           `json:"total_rentals"`
	ActiveRentals     int64           `json:"active_rentals"`
	CompletedRentals  int64           `json:"completed_rentals"`
	OverdueRentals    int64           `json:"overdue_rentals"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageRentalDays decimal.Decimal `json:"average_rental_days"`
}
