package audit

import (
	"context"
	"time"
)

const (
	defaultListLimit  = 50
	loginHistoryLimit = 10
)

type Service struct {
	repo *Repository
	now  func() time.Time
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns entries visible to the viewer. Admins may filter by any
// employee; everyone else only sees their own entries.
func (s *Service) List(ctx context.Context, viewerID int64, viewerIsAdmin bool, f Filter) ([]Entry, int64, error) {
	if !viewerIsAdmin {
		f.EmployeeID = viewerID
	}
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.repo.List(ctx, f)
}

// LoginHistory returns the employee's most recent logins.
func (s *Service) LoginHistory(ctx context.Context, employeeID int64) ([]LoginRecord, error) {
	entries, _, err := s.repo.List(ctx, Filter{
		EmployeeID: employeeID,
		Type:       TypeLogin,
		Limit:      loginHistoryLimit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]LoginRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, LoginRecord{Timestamp: e.CreatedAt, IP: e.IP, UserAgent: e.UserAgent})
	}
	return out, nil
}

// Purge deletes entries past their retention window.
func (s *Service) Purge(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now().UTC())
}
