package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"videorental/internal/domain"
	"videorental/internal/domain/audit"
	"videorental/internal/domain/catalog"
	"videorental/internal/pkg/apperr"
)

type AuditRecorder interface {
	Record(ctx context.Context, ev audit.Event)
}

// MovieLookup resolves the title a unit belongs to.
type MovieLookup interface {
	GetMovie(ctx context.Context, id int64) (*catalog.Movie, error)
}

type Service struct {
	repo   *Repository
	ledger *Ledger
	movies MovieLookup
	audit  AuditRecorder
	now    func() time.Time
}

func NewService(repo *Repository, ledger *Ledger, movies MovieLookup, recorder AuditRecorder) *Service {
	return &Service{repo: repo, ledger: ledger, movies: movies, audit: recorder, now: time.Now}
}

func (s *Service) List(ctx context.Context, f Filter) (*UnitListResponse, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	units, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &UnitListResponse{Units: units, Total: total}, nil
}

// Get returns the unit with its last rentals; their statuses are derived.
func (s *Service) Get(ctx context.Context, id int64) (*UnitDetails, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rentals, err := s.repo.RecentRentals(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range rentals {
		rentals[i].Status = domain.EffectiveStatus(rentals[i].Status, rentals[i].PlannedReturnDate, now)
	}
	return &UnitDetails{MediaUnit: u, RecentRentals: rentals}, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*MediaUnit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, staffID int64, req CreateUnitRequest) (*MediaUnit, error) {
	if req.MovieID <= 0 {
		return nil, ErrMovieRequired
	}
	if req.PurchasePrice == nil {
		return nil, ErrPurchasePriceNeed
	}
	u := &MediaUnit{
		MovieID:       req.MovieID,
		Serial:        normalizeSerial(req.Serial),
		Format:        req.Format,
		Condition:     req.Condition,
		Status:        StatusAvailable,
		PurchasePrice: *req.PurchasePrice,
		PurchaseDate:  req.PurchaseDate,
		Notes:         strings.TrimSpace(req.Notes),
	}
	if u.Format == "" {
		u.Format = FormatVHS
	}
	if u.Condition == "" {
		u.Condition = domain.ConditionGood
	}
	if err := validateUnit(u); err != nil {
		return nil, err
	}

	movie, err := s.movies.GetMovie(ctx, req.MovieID)
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx *Repository) error {
		if u.Serial == "" {
			serial, err := tx.NextSerial(ctx)
			if err != nil {
				return err
			}
			u.Serial = serial
		} else {
			taken, err := tx.SerialTaken(ctx, u.Serial, 0)
			if err != nil {
				return err
			}
			if taken {
				return ErrSerialTaken
			}
		}
		if err := tx.Create(ctx, u); err != nil {
			if apperr.IsUniqueViolation(err) {
				return ErrSerialTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.Movie = movie

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeCassetteCreate,
		Action:     fmt.Sprintf("Added cassette %s of %q", u.Serial, movie.Title),
		EntityType: audit.EntityCassette,
		EntityID:   u.ID,
	})
	return u, nil
}

func (s *Service) Update(ctx context.Context, staffID, id int64, req UpdateUnitRequest) (*MediaUnit, error) {
	var updated *MediaUnit
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		u, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}

		var status *Status
		if req.Status != nil && *req.Status != u.Status {
			if *req.Status == StatusRented {
				return ErrStatusRented
			}
			if u.Status == StatusRented {
				return ErrUnitRented
			}
			status = req.Status
			u.Status = *status
		}

		var cols []string
		if req.Serial != nil {
			serial := normalizeSerial(*req.Serial)
			if serial != "" && serial != u.Serial {
				taken, err := tx.SerialTaken(ctx, serial, u.ID)
				if err != nil {
					return err
				}
				if taken {
					return ErrSerialTaken
				}
				u.Serial = serial
				cols = append(cols, "serial")
			}
		}
		if req.Format != nil {
			u.Format = *req.Format
			cols = append(cols, "format")
		}
		if req.Condition != nil {
			u.Condition = *req.Condition
			cols = append(cols, "condition")
		}
		if req.PurchasePrice != nil {
			u.PurchasePrice = *req.PurchasePrice
			cols = append(cols, "purchase_price")
		}
		if req.PurchaseDate != nil {
			u.PurchaseDate = req.PurchaseDate
			cols = append(cols, "purchase_date")
		}
		if req.Notes != nil {
			u.Notes = strings.TrimSpace(*req.Notes)
			cols = append(cols, "notes")
		}
		if err := validateUnit(u); err != nil {
			return err
		}

		if len(cols) > 0 {
			if err := tx.SaveDetails(ctx, u, cols...); err != nil {
				if apperr.IsUniqueViolation(err) {
					return ErrSerialTaken
				}
				return err
			}
		}
		if status != nil {
			ok, err := tx.SetStatus(ctx, u.ID, *status)
			if err != nil {
				return err
			}
			if !ok {
				return ErrUnitRented
			}
		}

		updated, err = tx.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeCassetteUpdate,
		Action:     fmt.Sprintf("Updated cassette %s", updated.Serial),
		EntityType: audit.EntityCassette,
		EntityID:   updated.ID,
	})
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, staffID, id int64) error {
	var serial string
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		u, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		serial = u.Serial
		ok, err := s.ledger.WithTx(tx.DB()).IsDeletable(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUnitInUse
		}
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeCassetteDelete,
		Action:     fmt.Sprintf("Deleted cassette %s", serial),
		EntityType: audit.EntityCassette,
		EntityID:   id,
	})
	return nil
}

func normalizeSerial(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func validateUnit(u *MediaUnit) error {
	if !u.Format.Valid() {
		return ErrInvalidFormat
	}
	if !u.Condition.Valid() {
		return ErrInvalidCondition
	}
	if !u.Status.Valid() {
		return ErrInvalidStatus
	}
	if u.PurchasePrice.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}
