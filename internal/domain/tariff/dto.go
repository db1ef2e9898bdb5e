package tariff

import "github.com/shopspring/decimal"

type DiscountInput struct {
	MinDays  int             `json:"min_days"`
	Discount decimal.Decimal `json:"discount"`
}

type CreateTariffRequest struct {
	Name              string             `json:"name" validate:"required,max=100"`
	Description       string             `json:"description" validate:"max=500"`
	BasePricePerDay   decimal.Decimal    `json:"base_price_per_day"`
	DurationDiscounts []DiscountInput    `json:"duration_discounts"`
	OverdueMultiplier *decimal.Decimal   `json:"overdue_multiplier"`
	DamageMultipliers *DamageMultipliers `json:"damage_multipliers"`
	AllowedGenreIDs   []int64            `json:"allowed_genre_ids"`
	IsActive          *bool              `json:"is_active"`
	IsDefault         bool               `json:"is_default"`
}

// UpdateTariffRequest is a partial update; nil fields are left unchanged.
type UpdateTariffRequest struct {
	Name              *string            `json:"name" validate:"omitempty,max=100"`
	Description       *string            `json:"description" validate:"omitempty,max=500"`
	BasePricePerDay   *decimal.Decimal   `json:"base_price_per_day"`
	DurationDiscounts *[]DiscountInput   `json:"duration_discounts"`
	OverdueMultiplier *decimal.Decimal   `json:"overdue_multiplier"`
	DamageMultipliers *DamageMultipliers `json:"damage_multipliers"`
	AllowedGenreIDs   *[]int64           `json:"allowed_genre_ids"`
	IsActive          *bool              `json:"is_active"`
	IsDefault         *bool              `json:"is_default"`
}

type CalculateRequest struct {
	TariffID int64 `json:"tariff_id" validate:"required"`
	Days     int   `json:"days" validate:"required,min=1"`
	MovieID  int64 `json:"movie_id"`
}

// TariffView is the API shape of a tariff.
type TariffView struct {
	*Tariff
	AllowedGenreIDs []int64 `json:"allowed_genre_ids"`
	RentalsCount    *int64  `json:"rentals_count,omitempty"`
}

type CalculationResult struct {
	TariffID    int64           `json:"tariff_id"`
	TariffName  string          `json:"tariff_name"`
	MovieID     int64           `json:"movie_id,omitempty"`
	Days        int             `json:"days"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Discount    decimal.Decimal `json:"discount"`
}

func newView(t *Tariff) TariffView {
	return TariffView{Tariff: t, AllowedGenreIDs: t.AllowedGenreIDs()}
}
