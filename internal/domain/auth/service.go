package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"videorental/internal/domain/audit"
	"videorental/internal/domain/employee"
	"videorental/internal/domain/rental"
	"videorental/internal/pkg/jwt"
)

const recentActivityLimit = 5

type Service struct {
	employees EmployeeStore
	rentals   RentalStats
	tokens    *jwt.Service
	audit     AuditRecorder
}

func NewService(employees EmployeeStore, rentals RentalStats, tokens *jwt.Service, recorder AuditRecorder) *Service {
	return &Service{employees: employees, rentals: rentals, tokens: tokens, audit: recorder}
}

// Login checks credentials and issues an access token. Unknown logins and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	login := strings.ToLower(strings.TrimSpace(req.Login))
	if login == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	e, err := s.employees.GetByLogin(ctx, login)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !e.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !e.IsActive {
		return nil, ErrAccountDisabled
	}

	issued := time.Now()
	token, err := s.tokens.Issue(e.ID, string(e.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	if err := s.employees.TouchLogin(ctx, e); err != nil {
		return nil, err
	}

	origin := audit.OriginFrom(ctx)
	s.audit.Record(ctx, audit.Event{
		EmployeeID: e.ID,
		Type:       audit.TypeLogin,
		Action:     fmt.Sprintf("%s logged in", e.FullName),
		EntityType: audit.EntityAuth,
		EntityID:   e.ID,
		Details:    map[string]any{"ip": origin.IP},
	})

	return &LoginResult{Token: token, ExpiresAt: issued.Add(s.tokens.TTL()).UTC(), Employee: e}, nil
}

// Me returns the active caller. Tokens of deactivated employees stop
// working here even before they expire.
func (s *Service) Me(ctx context.Context, id int64) (*employee.Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !e.IsActive {
		return nil, ErrAccountDisabled
	}
	return e, nil
}

func (s *Service) Profile(ctx context.Context, id int64) (*Profile, error) {
	e, err := s.Me(ctx, id)
	if err != nil {
		return nil, err
	}
	st, err := s.employees.Stats(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile{Employee: e, Stats: st}, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id int64, req employee.ProfileUpdate) (*Profile, error) {
	if _, err := s.employees.UpdateProfile(ctx, id, req); err != nil {
		return nil, err
	}
	return s.Profile(ctx, id)
}

func (s *Service) ChangePassword(ctx context.Context, id int64, req ChangePasswordRequest) error {
	return s.employees.ChangePassword(ctx, id, req.CurrentPassword, req.NewPassword)
}

// Statistics summarizes the caller's rentals for the period together with
// their latest issued rentals.
func (s *Service) Statistics(ctx context.Context, id int64, period rental.Period) (*Statistics, error) {
	switch period {
	case rental.PeriodWeek, rental.PeriodMonth, rental.PeriodYear:
	default:
		period = rental.PeriodMonth
	}
	st, err := s.rentals.Statistics(ctx, id, period)
	if err != nil {
		return nil, err
	}
	recent, err := s.rentals.RecentByEmployee(ctx, id, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	return &Statistics{Period: period, Rentals: *st, RecentActivity: recent}, nil
}
