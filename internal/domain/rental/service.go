package rental

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"videorental/internal/domain"
	"videorental/internal/domain/audit"
	"videorental/internal/domain/client"
	"videorental/internal/domain/inventory"
	"videorental/internal/domain/tariff"
)

type AuditRecorder interface {
	Record(ctx context.Context, ev audit.Event)
}

type ClientReader interface {
	GetByID(ctx context.Context, id int64) (*client.Client, error)
}

type UnitReader interface {
	GetByID(ctx context.Context, id int64) (*inventory.MediaUnit, error)
}

type TariffReader interface {
	GetByID(ctx context.Context, id int64) (*tariff.Tariff, error)
}

type GenreSource interface {
	MovieGenreIDs(ctx context.Context, movieID int64) ([]int64, error)
}

type Deps struct {
	Repo         *Repository
	Units        UnitReader
	UnitLedger   *inventory.Ledger
	Clients      ClientReader
	ClientLedger *client.Ledger
	Tariffs      TariffReader
	Genres       GenreSource
	Audit        AuditRecorder
}

// Service runs the rental lifecycle. Issue, return and delete each touch the
// rental, the media unit and the client inside one transaction.
type Service struct {
	repo         *Repository
	units        UnitReader
	unitLedger   *inventory.Ledger
	clients      ClientReader
	clientLedger *client.Ledger
	tariffs      TariffReader
	genres       GenreSource
	audit        AuditRecorder
	tracer       trace.Tracer
	now          func() time.Time
}

func NewService(d Deps) *Service {
	return &Service{
		repo:         d.Repo,
		units:        d.Units,
		unitLedger:   d.UnitLedger,
		clients:      d.Clients,
		clientLedger: d.ClientLedger,
		tariffs:      d.Tariffs,
		genres:       d.Genres,
		audit:        d.Audit,
		tracer:       otel.Tracer("videorental/rental"),
		now:          time.Now,
	}
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

// Issue lends a media unit to a client.
func (s *Service) Issue(ctx context.Context, in IssueInput) (_ *Rental, err error) {
	ctx, span := s.tracer.Start(ctx, "rental.issue", trace.WithAttributes(
		attribute.Int64("rental.client_id", in.ClientID),
		attribute.Int64("rental.media_unit_id", in.MediaUnitID),
		attribute.Int64("rental.tariff_id", in.TariffID),
		attribute.Int("rental.days", in.Days),
	))
	defer func() { endSpan(span, err) }()

	if in.ClientID <= 0 || in.MediaUnitID <= 0 || in.TariffID <= 0 {
		return nil, ErrMissingReference
	}
	if in.Days < 1 {
		return nil, ErrInvalidDays
	}

	cl, err := s.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	unit, err := s.units.GetByID(ctx, in.MediaUnitID)
	if err != nil {
		return nil, err
	}
	if unit.Status != inventory.StatusAvailable {
		return nil, inventory.ErrUnitUnavailable
	}
	t, err := s.tariffs.GetByID(ctx, in.TariffID)
	if err != nil {
		return nil, err
	}

	var genreIDs []int64
	if s.genres != nil {
		if genreIDs, err = s.genres.MovieGenreIDs(ctx, unit.MovieID); err != nil {
			return nil, err
		}
	}
	cost := tariff.CalculateRentalCost(t, in.Days, genreIDs)

	now := s.clock()
	r := &Rental{
		ClientID:          cl.ID,
		MediaUnitID:       unit.ID,
		TariffID:          t.ID,
		EmployeeID:        in.StaffID,
		RentalDate:        now,
		PlannedReturnDate: now.AddDate(0, 0, in.Days),
		Days:              in.Days,
		PricePerDay:       cost.PricePerDay,
		Discount:          cost.Discount,
		TotalCost:         cost.TotalCost,
		Status:            domain.RentalActive,
		ConditionBefore:   unit.Condition,
		OverdueFine:       decimal.Zero,
		DamageFine:        decimal.Zero,
		TotalFines:        decimal.Zero,
		Notes:             in.Notes,
	}

	err = s.repo.Transaction(ctx, func(tx *Repository) error {
		if err := tx.Create(ctx, r); err != nil {
			return err
		}
		if err := s.unitLedger.WithTx(tx.DB()).Reserve(ctx, unit.ID, now); err != nil {
			return err
		}
		return s.clientLedger.WithTx(tx.DB()).RecordRentalIssued(ctx, cl.ID, now)
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("rental.id", r.ID))

	title := ""
	if unit.Movie != nil {
		title = unit.Movie.Title
	}
	s.audit.Record(ctx, audit.Event{
		EmployeeID: in.StaffID,
		Type:       audit.TypeRentalCreate,
		Action:     fmt.Sprintf("Issued %q (%s) to %s for %d day(s)", title, unit.Serial, cl.FullName, in.Days),
		EntityType: audit.EntityRental,
		EntityID:   r.ID,
		Details: map[string]any{
			"client_id":  cl.ID,
			"cassette":   unit.Serial,
			"days":       in.Days,
			"total_cost": r.TotalCost.StringFixed(2),
		},
	})

	unit.Status = inventory.StatusRented
	unit.RentalCount++
	unit.LastRentalDate = &now
	cl.TotalRentals++
	cl.ActiveRentals++
	cl.LastRentalDate = &now
	r.Client, r.MediaUnit, r.Tariff = cl, unit, t
	r.Status = DeriveStatus(r, now)
	return r, nil
}

// Return closes a live rental and charges overdue and damage fines.
func (s *Service) Return(ctx context.Context, id int64, in ReturnInput) (_ *ReturnResult, err error) {
	ctx, span := s.tracer.Start(ctx, "rental.return", trace.WithAttributes(
		attribute.Int64("rental.id", id),
		attribute.String("rental.condition", string(in.Condition)),
	))
	defer func() { endSpan(span, err) }()

	if in.Condition != "" && !in.Condition.Valid() {
		return nil, ErrInvalidCondition
	}

	var (
		fines       []Fine
		totalFines  = decimal.Zero
		overdueDays int
		returned    *Rental
	)
	err = s.repo.Transaction(ctx, func(tx *Repository) error {
		r, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		switch {
		case r.Status == domain.RentalReturned:
			return ErrAlreadyReturned
		case !r.Status.Live():
			return ErrNotReturnable
		}

		t := r.Tariff
		if t == nil {
			if t, err = s.tariffs.GetByID(ctx, r.TariffID); err != nil {
				return err
			}
		}
		purchasePrice := decimal.Zero
		if r.MediaUnit != nil {
			purchasePrice = r.MediaUnit.PurchasePrice
		}

		now := s.clock()
		after := in.Condition
		if after == "" {
			after = r.ConditionBefore
		}

		overdueDays = OverdueDays(r.PlannedReturnDate, now)
		overdueFine := tariff.CalculateOverdueFine(t, overdueDays, r.PricePerDay)
		if overdueFine.IsPositive() {
			fines = append(fines, Fine{
				Type:    FineOverdue,
				Amount:  overdueFine,
				Details: fmt.Sprintf("%d day(s) overdue", overdueDays),
			})
		}
		damageFine := tariff.CalculateDamageFine(t, r.ConditionBefore, after, purchasePrice)
		if damageFine.IsPositive() {
			fines = append(fines, Fine{
				Type:    FineDamage,
				Amount:  damageFine,
				Details: fmt.Sprintf("condition %s -> %s", r.ConditionBefore, after),
			})
		}
		totalFines = overdueFine.Add(damageFine)

		staffID := in.StaffID
		r.ActualReturnDate = &now
		r.ConditionAfter = after
		r.OverdueFine = overdueFine
		r.DamageFine = damageFine
		r.TotalFines = totalFines
		r.ReturnedBy = &staffID
		if in.Notes != "" {
			r.Notes = in.Notes
		}

		ok, err := tx.MarkReturned(ctx, r)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyReturned
		}
		if err := s.unitLedger.WithTx(tx.DB()).Release(ctx, r.MediaUnitID, after); err != nil {
			return err
		}
		if err := s.clientLedger.WithTx(tx.DB()).SyncActiveRentals(ctx, r.ClientID); err != nil {
			return err
		}
		r.Status = domain.RentalReturned
		returned = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: in.StaffID,
		Type:       audit.TypeRentalReturn,
		Action:     fmt.Sprintf("Returned rental #%d", returned.ID),
		EntityType: audit.EntityRental,
		EntityID:   returned.ID,
		Details: map[string]any{
			"condition":    string(returned.ConditionAfter),
			"overdue_days": overdueDays,
			"total_fines":  totalFines.StringFixed(2),
		},
	})

	if fines == nil {
		fines = []Fine{}
	}
	fresh, err := s.Get(ctx, returned.ID)
	if err != nil {
		return nil, err
	}
	returned = fresh
	return &ReturnResult{
		Rental:     returned,
		Fines:      fines,
		TotalFines: totalFines,
		Summary: Summary{
			RentalCost:  returned.TotalCost,
			Fines:       totalFines,
			Total:       returned.TotalCost.Add(totalFines),
			OverdueDays: overdueDays,
		},
	}, nil
}

// Delete removes an erroneous rental that is still active and puts its unit
// back on the shelf unchanged.
func (s *Service) Delete(ctx context.Context, id, staffID int64) (err error) {
	ctx, span := s.tracer.Start(ctx, "rental.delete", trace.WithAttributes(attribute.Int64("rental.id", id)))
	defer func() { endSpan(span, err) }()

	var deleted *Rental
	err = s.repo.Transaction(ctx, func(tx *Repository) error {
		r, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if DeriveStatus(r, s.clock()) != domain.RentalActive {
			return ErrNotDeletable
		}
		if err := tx.Delete(ctx, r.ID); err != nil {
			return err
		}
		if err := s.unitLedger.WithTx(tx.DB()).ReleaseUnchanged(ctx, r.MediaUnitID); err != nil {
			return err
		}
		if err := s.clientLedger.WithTx(tx.DB()).SyncActiveRentals(ctx, r.ClientID); err != nil {
			return err
		}
		deleted = r
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeRentalDeleted,
		Action:     fmt.Sprintf("Deleted rental #%d", deleted.ID),
		EntityType: audit.EntityRental,
		EntityID:   deleted.ID,
		Details: map[string]any{
			"client_id":   deleted.ClientID,
			"cassette_id": deleted.MediaUnitID,
		},
	})
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Rental, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Status = DeriveStatus(r, s.clock())
	return r, nil
}

func (s *Service) List(ctx context.Context, f Filter) (*ListResult, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	now := s.clock()
	rentals, total, err := s.repo.List(ctx, f, now)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.Counts(ctx, now)
	if err != nil {
		return nil, err
	}
	for i := range rentals {
		rentals[i].Status = DeriveStatus(&rentals[i], now)
	}
	return &ListResult{Rentals: rentals, Total: total, Stats: counts}, nil
}

// MarkOverdue persists the derived overdue status and reports how many
// rentals changed.
func (s *Service) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.MarkOverdue(ctx, now.UTC())
}

// ListOverdue returns every overdue rental, oldest planned return first.
func (s *Service) ListOverdue(ctx context.Context) ([]Rental, error) {
	if _, err := s.MarkOverdue(ctx, s.clock()); err != nil {
		return nil, err
	}
	return s.repo.ListOverdue(ctx)
}

// Statistics summarizes what employeeID issued during period.
func (s *Service) Statistics(ctx context.Context, employeeID int64, period Period) (*PeriodStats, error) {
	now := s.clock()
	rentals, err := s.repo.IssuedBy(ctx, employeeID, PeriodStart(period, now), now)
	if err != nil {
		return nil, err
	}
	st := &PeriodStats{TotalRentals: int64(len(rentals)), TotalRevenue: decimal.Zero, AverageRentalDays: decimal.Zero}
	days := 0
	for i := range rentals {
		switch DeriveStatus(&rentals[i], now) {
		case domain.RentalActive:
			st.ActiveRentals++
		case domain.RentalReturned:
			st.CompletedRentals++
		case domain.RentalOverdue:
			st.OverdueRentals++
		}
		st.TotalRevenue = st.TotalRevenue.Add(rentals[i].TotalCost)
		days += rentals[i].Days
	}
	if len(rentals) > 0 {
		st.AverageRentalDays = decimal.NewFromInt(int64(days)).
			Div(decimal.NewFromInt(int64(len(rentals)))).Round(1)
	}
	return st, nil
}

func (s *Service) RecentByEmployee(ctx context.Context, employeeID int64, limit int) ([]Rental, error) {
	rentals, err := s.repo.RecentByEmployee(ctx, employeeID, limit)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	for i := range rentals {
		rentals[i].Status = DeriveStatus(&rentals[i], now)
	}
	return rentals, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
