package tariff

import (
	"time"

	"github.com/shopspring/decimal"

	"videorental/internal/domain"
)

// Tariff is a named pricing policy applied to rentals.
type Tariff struct {
	ID                int64              `gorm:"primaryKey" json:"id"`
	Name              string             `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description       string             `gorm:"size:500" json:"description"`
	BasePricePerDay   decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"base_price_per_day"`
	DurationDiscounts []DurationDiscount `gorm:"foreignKey:TariffID;constraint:OnDelete:CASCADE" json:"duration_discounts"`
	OverdueMultiplier decimal.Decimal    `gorm:"type:decimal(6,2);not null" json:"overdue_multiplier"`
	DamageMultipliers DamageMultipliers  `gorm:"embedded;embeddedPrefix:damage_" json:"damage_multipliers"`
	AllowedGenres     []AllowedGenre     `gorm:"foreignKey:TariffID;constraint:OnDelete:CASCADE" json:"-"`
	IsActive          bool               `gorm:"not null;index" json:"is_active"`
	IsDefault         bool               `gorm:"not null;index" json:"is_default"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

func (Tariff) TableName() string { return "tariffs" }

// DurationDiscount applies Discount percent once a rental reaches MinDays.
type DurationDiscount struct {
	ID       int64           `gorm:"primaryKey" json:"-"`
	TariffID int64           `gorm:"not null;uniqueIndex:idx_tariff_min_days" json:"-"`
	MinDays  int             `gorm:"not null;uniqueIndex:idx_tariff_min_days" json:"min_days"`
	Discount decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount"`
}

func (DurationDiscount) TableName() string { return "tariff_duration_discounts" }

// AllowedGenre records that a tariff is meant for a genre. Stored only;
// cost calculation and rental issuance do not consult it.
type AllowedGenre struct {
	TariffID int64 `gorm:"primaryKey"`
	GenreID  int64 `gorm:"primaryKey"`
}

func (AllowedGenre) TableName() string { return "tariff_allowed_genres" }

// DamageMultipliers maps the condition a unit comes back in to the share of
// its purchase price charged as a damage fine.
type DamageMultipliers struct {
	Excellent decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"excellent"`
	Good      decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"good"`
	Fair      decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"fair"`
	Poor      decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"poor"`
}

// For returns the multiplier for c, zero for unknown conditions.
func (m DamageMultipliers) For(c domain.Condition) decimal.Decimal {
	switch c {
	case domain.ConditionExcellent:
		return m.Excellent
	case domain.ConditionGood:
		return m.Good
	case domain.ConditionFair:
		return m.Fair
	case domain.ConditionPoor:
		return m.Poor
	}
	return decimal.Zero
}

// DefaultDamageMultipliers is applied when a tariff is created without its own.
func DefaultDamageMultipliers() DamageMultipliers {
	return DamageMultipliers{
		Excellent: decimal.Zero,
		Good:      decimal.Zero,
		Fair:      decimal.RequireFromString("0.5"),
		Poor:      decimal.NewFromInt(1),
	}
}

// DefaultOverdueMultiplier is applied when a tariff is created without one.
var DefaultOverdueMultiplier = decimal.NewFromInt(2)

// AllowedGenreIDs returns the stored genre restriction.
func (t *Tariff) AllowedGenreIDs() []int64 {
	ids := make([]int64, 0, len(t.AllowedGenres))
	for _, g := range t.AllowedGenres {
		ids = append(ids, g.GenreID)
	}
	return ids
}
