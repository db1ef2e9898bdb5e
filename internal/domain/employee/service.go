package employee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"videorental/internal/domain/audit"
	"videorental/internal/pkg/apperr"
)

const minPasswordLen = 6

type AuditRecorder interface {
	Record(ctx context.Context, ev audit.Event)
}

type Service struct {
	repo  *Repository
	audit AuditRecorder
	cost  int
	now   func() time.Time
}

func NewService(repo *Repository, recorder AuditRecorder) *Service {
	return &Service{repo: repo, audit: recorder, cost: PasswordCost, now: time.Now}
}

// SetPasswordCost overrides the bcrypt cost, e.g. for seeding and tests.
func (s *Service) SetPasswordCost(cost int) {
	s.cost = cost
}

func (s *Service) List(ctx context.Context, role Role, activeOnly bool) ([]WithStats, error) {
	employees, err := s.repo.List(ctx, role, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]WithStats, 0, len(employees))
	for i := range employees {
		stats, err := s.repo.Stats(ctx, employees[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, WithStats{Employee: &employees[i], Stats: stats})
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*WithStats, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.Stats(ctx, id)
	if err != nil {
		return nil, err
	}
	return &WithStats{Employee: e, Stats: stats}, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByLogin(ctx context.Context, login string) (*Employee, error) {
	return s.repo.GetByLogin(ctx, login)
}

func (s *Service) Create(ctx context.Context, staffID int64, req CreateEmployeeRequest) (*Employee, error) {
	login := strings.ToLower(strings.TrimSpace(req.Login))
	if len(login) < 3 {
		return nil, ErrLoginTooShort
	}
	if len(req.Password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}
	role := req.Role
	if role == "" {
		role = RoleCashier
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	exists, err := s.repo.LoginExists(ctx, login)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrLoginTaken
	}

	hash, err := HashPassword(req.Password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	e := &Employee{
		FullName:     strings.TrimSpace(req.FullName),
		Login:        login,
		PasswordHash: hash,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
		IsActive:     true,
		Bio:          req.Bio,
		BirthDate:    req.BirthDate,
		HireDate:     s.now().UTC(),
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	if req.HireDate != nil {
		e.HireDate = req.HireDate.UTC()
	}

	if err := s.repo.Create(ctx, e); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, ErrLoginTaken
		}
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeEmployeeCreate,
		Action:     fmt.Sprintf("Created employee %s (%s)", e.FullName, e.Role),
		EntityType: audit.EntityEmployee,
		EntityID:   e.ID,
	})
	return e, nil
}

// Update applies an admin edit. Demoting or deactivating the last active
// admin is refused.
func (s *Service) Update(ctx context.Context, staffID, id int64, req UpdateEmployeeRequest) (*Employee, error) {
	var updated *Employee
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		e, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}

		wasActiveAdmin := e.IsAdmin() && e.IsActive

		if req.FullName != nil {
			e.FullName = strings.TrimSpace(*req.FullName)
		}
		if req.Email != nil {
			e.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		}
		if req.Phone != nil {
			e.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Role != nil {
			if !req.Role.Valid() {
				return ErrInvalidRole
			}
			e.Role = *req.Role
		}
		if req.IsActive != nil {
			e.IsActive = *req.IsActive
		}
		if req.Avatar != nil {
			e.Avatar = *req.Avatar
		}
		if req.Bio != nil {
			e.Bio = *req.Bio
		}
		if req.BirthDate != nil {
			e.BirthDate = req.BirthDate
		}
		if req.HireDate != nil {
			e.HireDate = req.HireDate.UTC()
		}
		if req.Password != nil {
			if len(*req.Password) < minPasswordLen {
				return ErrPasswordTooShort
			}
			hash, err := HashPassword(*req.Password, s.cost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			e.PasswordHash = hash
		}

		if wasActiveAdmin && !(e.IsAdmin() && e.IsActive) {
			admins, err := tx.CountActiveAdmins(ctx)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return ErrLastActiveAdmin
			}
		}

		if err := tx.Save(ctx, e); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeEmployeeUpdate,
		Action:     fmt.Sprintf("Updated employee %s", updated.FullName),
		EntityType: audit.EntityEmployee,
		EntityID:   updated.ID,
	})
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, staffID, id int64) error {
	if staffID == id {
		return ErrDeleteSelf
	}

	var name string
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		e, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		name = e.FullName

		if e.IsAdmin() && e.IsActive {
			admins, err := tx.CountActiveAdmins(ctx)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return ErrLastActiveAdmin
			}
		}
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.Event{
		EmployeeID: staffID,
		Type:       audit.TypeEmployeeDelete,
		Action:     fmt.Sprintf("Deleted employee %s", name),
		EntityType: audit.EntityEmployee,
		EntityID:   id,
	})
	return nil
}

// UpdateProfile applies a self-service profile edit.
func (s *Service) UpdateProfile(ctx context.Context, id int64, req ProfileUpdate) (*Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		e.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		e.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		e.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Avatar != nil {
		e.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		e.Bio = *req.Bio
	}
	if req.BirthDate != nil {
		e.BirthDate = req.BirthDate
	}
	if err := s.repo.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) ChangePassword(ctx context.Context, id int64, current, next string) error {
	if current == "" || next == "" {
		return apperr.Validation("current and new password are required")
	}
	if len(next) < minPasswordLen {
		return ErrPasswordTooShort
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !e.CheckPassword(current) {
		return ErrWrongPassword
	}
	hash, err := HashPassword(next, s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	e.PasswordHash = hash
	return s.repo.Save(ctx, e)
}

// TouchLogin records a successful login time.
func (s *Service) TouchLogin(ctx context.Context, e *Employee) error {
	at := s.now().UTC()
	e.LastLoginAt = &at
	return s.repo.Save(ctx, e)
}

// Stats returns how many rentals the employee has processed.
func (s *Service) Stats(ctx context.Context, id int64) (Stats, error) {
	return s.repo.Stats(ctx, id)
}
