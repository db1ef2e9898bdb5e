package tariff

import (
	"github.com/shopspring/decimal"

	"videorental/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Cost is the frozen price of a rental.
type Cost struct {
	PricePerDay decimal.Decimal `json:"price_per_day"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Discount    decimal.Decimal `json:"discount"`
}

// RoundMoney rounds to cents, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CalculateRentalCost prices a rental of days under t. The best discount is
// the one with the largest MinDays not exceeding days. genreIDs is accepted
// for callers that know the title's genres; it does not affect the price.
func CalculateRentalCost(t *Tariff, days int, genreIDs []int64) Cost {
	_ = genreIDs

	pricePerDay := t.BasePricePerDay
	total := pricePerDay.Mul(decimal.NewFromInt(int64(days)))

	discount := decimal.Zero
	if d, ok := bestDiscount(t.DurationDiscounts, days); ok {
		discount = d.Discount
		total = total.Mul(hundred.Sub(discount)).Div(hundred)
	}

	return Cost{
		PricePerDay: RoundMoney(pricePerDay),
		TotalCost:   RoundMoney(total),
		Discount:    discount,
	}
}

func bestDiscount(discounts []DurationDiscount, days int) (DurationDiscount, bool) {
	var (
		best  DurationDiscount
		found bool
	)
	for _, d := range discounts {
		if d.MinDays > days {
			continue
		}
		if !found || d.MinDays > best.MinDays {
			best, found = d, true
		}
	}
	return best, found
}

// CalculateOverdueFine charges overdueDays at pricePerDay times the tariff's
// overdue multiplier.
func CalculateOverdueFine(t *Tariff, overdueDays int, pricePerDay decimal.Decimal) decimal.Decimal {
	if overdueDays <= 0 {
		return decimal.Zero
	}
	fine := decimal.NewFromInt(int64(overdueDays)).Mul(pricePerDay).Mul(t.OverdueMultiplier)
	return RoundMoney(fine)
}

// CalculateDamageFine charges a share of the purchase price when a unit
// comes back in a strictly worse condition. Only the multiplier of the
// returned condition applies.
func CalculateDamageFine(t *Tariff, before, after domain.Condition, purchasePrice decimal.Decimal) decimal.Decimal {
	if before == after || !after.WorseThan(before) {
		return decimal.Zero
	}
	return RoundMoney(purchasePrice.Mul(t.DamageMultipliers.For(after)))
}
