package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"videorental/internal/domain"
	"videorental/internal/domain/audit"
	"videorental/internal/pkg/apperr"
	"videorental/internal/pkg/validator"
)

type AuditRecorder interface {
	Record(ctx context.Context, ev audit.Event)
}

type Service struct {
	repo   *Repository
	ledger *Ledger
	audit  AuditRecorder
	now    func() time.Time
}

func NewService(repo *Repository, ledger *Ledger, recorder AuditRecorder) *Service {
	return &Service{repo: repo, ledger: ledger, audit: recorder, now: time.Now}
}

func (s *Service) List(ctx context.Context, f Filter) (*ListResponse, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	clients, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ListResponse{Clients: clients, Total: total}, nil
}

// Get returns the client with the full rental history.
func (s *Service) Get(ctx context.Context, id int64) (*Details, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rentals, err := s.repo.History(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range rentals {
		rentals[i].Status = domain.EffectiveStatus(rentals[i].Status, rentals[i].PlannedReturnDate, now)
	}
	return &Details{Client: c, Rentals: rentals}, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, staffID int64, req CreateClientRequest) (*Client, error) {
	c := &Client{
		FullName:         strings.TrimSpace(req.FullName),
		Phone:            strings.TrimSpace(req.Phone),
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		Status:           req.Status,
		Notes:            strings.TrimSpace(req.Notes),
		RegistrationDate: s.now().UTC(),
	}
	if c.Status == "" {
		c.Status = StatusActive
	}
	if err := validateClient(c); err != nil {
		return nil, err
	}

	taken, err := s.repo.PhoneTaken(ctx, c.Phone, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrPhoneTaken
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeClientCreate,
		Action:     fmt.Sprintf("Registered client %s", c.FullName),
		EntityType: audit.EntityClient,
		EntityID:   c.ID,
	})
	return c, nil
}

func (s *Service) Update(ctx context.Context, staffID, id int64, req UpdateClientRequest) (*Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		c.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		c.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.Notes != nil {
		c.Notes = strings.TrimSpace(*req.Notes)
	}
	if err := validateClient(c); err != nil {
		return nil, err
	}

	if req.Phone != nil {
		taken, err := s.repo.PhoneTaken(ctx, c.Phone, c.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrPhoneTaken
		}
	}
	if err := s.repo.SaveProfile(ctx, c); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeClientUpdate,
		Action:     fmt.Sprintf("Updated client %s", c.FullName),
		EntityType: audit.EntityClient,
		EntityID:   c.ID,
	})
	return c, nil
}

// Delete refuses while the client still holds an active or overdue rental.
func (s *Service) Delete(ctx context.Context, staffID, id int64) error {
	var name string
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		c, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		name = c.FullName
		ok, err := s.ledger.WithTx(tx.DB()).IsDeletable(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrHasRentals
		}
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeClientDelete,
		Action:     fmt.Sprintf("Deleted client %s", name),
		EntityType: audit.EntityClient,
		EntityID:   id,
	})
	return nil
}

func validateClient(c *Client) error {
	if c.FullName == "" {
		return ErrNameRequired
	}
	if c.Phone == "" {
		return ErrPhoneRequired
	}
	if !validator.Phone(c.Phone) {
		return ErrInvalidPhone
	}
	if !c.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
