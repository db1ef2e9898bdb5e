package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"videorental/internal/config"
	"videorental/internal/logger"
)

const jobTimeout = 5 * time.Minute

// OverdueMarker persists the overdue status of rentals past their planned return.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// AuditPurger removes audit entries past retention.
type AuditPurger interface {
	Purge(ctx context.Context) (int64, error)
}

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron    *cron.Cron
	overdue OverdueMarker
	audit   AuditPurger
	now     func() time.Time
}

// New registers the configured jobs. An empty schedule disables its job.
func New(cfg config.JobsConfig, overdue OverdueMarker, audit AuditPurger) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithSeconds(),
		),
		overdue: overdue,
		audit:   audit,
		now:     time.Now,
	}

	if cfg.OverdueSchedule != "" {
		if _, err := s.cron.AddFunc(cfg.OverdueSchedule, s.MarkOverdueRentals); err != nil {
			return nil, fmt.Errorf("register overdue job: %w", err)
		}
	}
	if cfg.AuditPurgeSchedule != "" {
		if _, err := s.cron.AddFunc(cfg.AuditPurgeSchedule, s.PurgeAuditLog); err != nil {
			return nil, fmt.Errorf("register audit purge job: %w", err)
		}
	}
	return s, nil
}

// MarkOverdueRentals reconciles stored rental statuses with the clock.
func (s *Scheduler) MarkOverdueRentals() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.overdue.MarkOverdue(ctx, s.now().UTC())
	if err != nil {
		logger.Error("mark overdue rentals failed", "error", err)
		return
	}
	if n > 0 {
		logger.Info("marked rentals overdue", "count", n)
	}
}

// PurgeAuditLog drops audit entries older than the retention window.
func (s *Scheduler) PurgeAuditLog() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.audit.Purge(ctx)
	if err != nil {
		logger.Error("audit purge failed", "error", err)
		return
	}
	logger.Info("audit log purged", "deleted", n)
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("starting cron scheduler", "jobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("cron scheduler stopped")
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}
