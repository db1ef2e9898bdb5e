package audit

import (
	"context"
	"log/slog"
	"time"

	"videorental/internal/logger"
)

// Publisher pushes stored entries to live subscribers.
type Publisher interface {
	Publish(e *Entry)
}

// Recorder writes audit entries on a best-effort basis. A failed write is
// logged and dropped; it never reaches the caller.
type Recorder struct {
	repo *Repository
	feed Publisher
	log  *slog.Logger
	now  func() time.Time
}

func NewRecorder(repo *Repository, feed Publisher) *Recorder {
	return &Recorder{
		repo: repo,
		feed: feed,
		log:  logger.WithService("audit"),
		now:  time.Now,
	}
}

func (r *Recorder) Record(ctx context.Context, ev Event) {
	origin := OriginFrom(ctx)
	createdAt := r.now().UTC()

	e := &Entry{
		EmployeeID: ev.EmployeeID,
		Type:       ev.Type,
		Action:     ev.Action,
		EntityType: ev.EntityType,
		EntityID:   ev.EntityID,
		Details:    ev.Details,
		IP:         origin.IP,
		UserAgent:  origin.UserAgent,
		CreatedAt:  createdAt,
		ExpiresAt:  createdAt.Add(Retention),
	}

	// the primary operation has already committed; a cancelled request
	// should not drop its audit entry
	if err := r.repo.Create(context.WithoutCancel(ctx), e); err != nil {
		r.log.ErrorContext(ctx, "audit write failed",
			"type", ev.Type,
			"employee_id", ev.EmployeeID,
			"entity_type", ev.EntityType,
			"entity_id", ev.EntityID,
			"error", err,
		)
		return
	}

	if r.feed != nil {
		r.feed.Publish(e)
	}
}

// Nop discards every event.
type Nop struct{}

func (Nop) Record(context.Context, Event) {}
