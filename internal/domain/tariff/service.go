package tariff

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"videorental/internal/domain/audit"
	"videorental/internal/pkg/apperr"
)

// AuditRecorder receives best-effort audit events.
type AuditRecorder interface {
	Record(ctx context.Context, ev audit.Event)
}

// GenreSource resolves a title's genres for cost calculation.
type GenreSource interface {
	MovieGenreIDs(ctx context.Context, movieID int64) ([]int64, error)
}

type Service struct {
	repo   *Repository
	audit  AuditRecorder
	genres GenreSource
}

func NewService(repo *Repository, recorder AuditRecorder, genres GenreSource) *Service {
	return &Service{repo: repo, audit: recorder, genres: genres}
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]TariffView, error) {
	tariffs, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]TariffView, 0, len(tariffs))
	for i := range tariffs {
		out = append(out, newView(&tariffs[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*TariffView, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountRentals(ctx, id, false)
	if err != nil {
		return nil, err
	}
	v := newView(t)
	v.RentalsCount = &count
	return &v, nil
}

// GetByID returns the stored tariff for pricing.
func (s *Service) GetByID(ctx context.Context, id int64) (*Tariff, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetDefault(ctx context.Context) (*TariffView, error) {
	t, err := s.repo.FindDefault(ctx)
	if err != nil {
		return nil, err
	}
	v := newView(t)
	return &v, nil
}

// Calculate quotes a rental without issuing it.
func (s *Service) Calculate(ctx context.Context, req CalculateRequest) (*CalculationResult, error) {
	if req.Days < 1 {
		return nil, ErrInvalidDays
	}
	t, err := s.repo.GetByID(ctx, req.TariffID)
	if err != nil {
		return nil, err
	}

	var genreIDs []int64
	if req.MovieID > 0 && s.genres != nil {
		if genreIDs, err = s.genres.MovieGenreIDs(ctx, req.MovieID); err != nil {
			return nil, err
		}
	}

	cost := CalculateRentalCost(t, req.Days, genreIDs)
	return &CalculationResult{
		TariffID:    t.ID,
		TariffName:  t.Name,
		MovieID:     req.MovieID,
		Days:        req.Days,
		PricePerDay: cost.PricePerDay,
		TotalCost:   cost.TotalCost,
		Discount:    cost.Discount,
	}, nil
}

func (s *Service) Create(ctx context.Context, staffID int64, req CreateTariffRequest) (*TariffView, error) {
	t := &Tariff{
		Name:              strings.TrimSpace(req.Name),
		Description:       strings.TrimSpace(req.Description),
		BasePricePerDay:   req.BasePricePerDay,
		OverdueMultiplier: DefaultOverdueMultiplier,
		DamageMultipliers: DefaultDamageMultipliers(),
		IsActive:          true,
		IsDefault:         req.IsDefault,
	}
	if req.OverdueMultiplier != nil {
		t.OverdueMultiplier = *req.OverdueMultiplier
	}
	if req.DamageMultipliers != nil {
		t.DamageMultipliers = *req.DamageMultipliers
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	discounts, err := normalizeDiscounts(req.DurationDiscounts)
	if err != nil {
		return nil, err
	}
	t.DurationDiscounts = discounts
	t.AllowedGenres = allowedGenres(req.AllowedGenreIDs)

	if err := validateTariff(t); err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx *Repository) error {
		taken, err := tx.NameTaken(ctx, t.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrNameTaken
		}
		if err := tx.Create(ctx, t); err != nil {
			if apperr.IsUniqueViolation(err) {
				return ErrNameTaken
			}
			return err
		}
		if t.IsDefault {
			return tx.ClearDefault(ctx, t.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeTariffCreate,
		Action:     fmt.Sprintf("Created tariff %q", t.Name),
		EntityType: audit.EntityTariff,
		EntityID:   t.ID,
	})

	v := newView(t)
	return &v, nil
}

func (s *Service) Update(ctx context.Context, staffID, id int64, req UpdateTariffRequest) (*TariffView, error) {
	var updated *Tariff
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		t, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			t.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			t.Description = strings.TrimSpace(*req.Description)
		}
		if req.BasePricePerDay != nil {
			t.BasePricePerDay = *req.BasePricePerDay
		}
		if req.OverdueMultiplier != nil {
			t.OverdueMultiplier = *req.OverdueMultiplier
		}
		if req.DamageMultipliers != nil {
			t.DamageMultipliers = *req.DamageMultipliers
		}
		if req.IsActive != nil {
			t.IsActive = *req.IsActive
		}
		if req.IsDefault != nil {
			t.IsDefault = *req.IsDefault
		}
		if req.DurationDiscounts != nil {
			discounts, err := normalizeDiscounts(*req.DurationDiscounts)
			if err != nil {
				return err
			}
			t.DurationDiscounts = discounts
		}
		if req.AllowedGenreIDs != nil {
			t.AllowedGenres = allowedGenres(*req.AllowedGenreIDs)
		}

		if err := validateTariff(t); err != nil {
			return err
		}
		if req.Name != nil {
			taken, err := tx.NameTaken(ctx, t.Name, t.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrNameTaken
			}
		}

		if err := tx.Save(ctx, t); err != nil {
			if apperr.IsUniqueViolation(err) {
				return ErrNameTaken
			}
			return err
		}
		if t.IsDefault {
			if err := tx.ClearDefault(ctx, t.ID); err != nil {
				return err
			}
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeTariffUpdate,
		Action:     fmt.Sprintf("Updated tariff %q", updated.Name),
		EntityType: audit.EntityTariff,
		EntityID:   updated.ID,
	})

	v := newView(updated)
	return &v, nil
}

// Delete removes a tariff unless rentals still use it or it is the only
// active tariff left. Both counts are taken inside the transaction.
func (s *Service) Delete(ctx context.Context, staffID, id int64) error {
	var name string
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		t, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		name = t.Name

		live, err := tx.CountRentals(ctx, id, true)
		if err != nil {
			return err
		}
		if live > 0 {
			return ErrTariffHasRentals
		}

		if t.IsActive {
			active, err := tx.CountActive(ctx)
			if err != nil {
				return err
			}
			if active <= 1 {
				return ErrLastActiveTariff
			}
		}
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeTariffDelete,
		Action:     fmt.Sprintf("Deleted tariff %q", name),
		EntityType: audit.EntityTariff,
		EntityID:   id,
	})
	return nil
}

// normalizeDiscounts drops thresholds below one day, rejects duplicates and
// out-of-range percentages, and sorts by MinDays.
func normalizeDiscounts(in []DiscountInput) ([]DurationDiscount, error) {
	seen := make(map[int]bool, len(in))
	out := make([]DurationDiscount, 0, len(in))
	for _, d := range in {
		if d.MinDays <= 0 {
			continue
		}
		if d.Discount.IsNegative() || d.Discount.GreaterThan(hundred) {
			return nil, ErrInvalidDiscount
		}
		if seen[d.MinDays] {
			return nil, ErrDuplicateMinDays
		}
		seen[d.MinDays] = true
		out = append(out, DurationDiscount{MinDays: d.MinDays, Discount: d.Discount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MinDays < out[j].MinDays })
	return out, nil
}

func allowedGenres(ids []int64) []AllowedGenre {
	seen := make(map[int64]bool, len(ids))
	out := make([]AllowedGenre, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, AllowedGenre{GenreID: id})
	}
	return out
}

func validateTariff(t *Tariff) error {
	if t.Name == "" {
		return ErrNameRequired
	}
	if t.BasePricePerDay.IsNegative() {
		return ErrInvalidPrice
	}
	if t.OverdueMultiplier.LessThan(decimal.NewFromInt(1)) {
		return ErrInvalidMultiplier
	}
	m := t.DamageMultipliers
	for _, v := range []decimal.Decimal{m.Excellent, m.Good, m.Fair, m.Poor} {
		if v.IsNegative() {
			return ErrInvalidDamageRates
		}
	}
	return nil
}
