package stats

import (
	"context"
	"time"
)

const (
	defaultActivityLimit = 10
	maxActivityLimit     = 100
)

type Service struct {
	repo *Repository
	now  func() time.Time
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	return s.repo.Dashboard(ctx, s.now().UTC())
}

// RecentActivity returns the latest audit entries. Admins see everyone's,
// other staff only their own.
func (s *Service) RecentActivity(ctx context.Context, viewerID int64, viewerIsAdmin bool, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	employeeID := viewerID
	if viewerIsAdmin {
		employeeID = 0
	}
	return s.repo.RecentActivity(ctx, employeeID, limit)
}
