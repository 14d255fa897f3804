// Package activity builds the recent-activity feed shown next to the
// dashboard: the latest leads, quotes and invoices merged into one stream
// with human-readable relative-time labels.
package activity

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/infrastructure/datasource"
	"github.com/crm/backend/internal/infrastructure/demo"
)

// RepositorySource yields the repository set for a caller's session
type RepositorySource interface {
	For(caller identity.Identity) datasource.Repositories
}

// Activity is a single feed entry
type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"` // lead, quote, invoice
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	TimeLabel   string    `json:"time_label"`
	Href        string    `json:"href"`
	CreatedAt   time.Time `json:"created_at"`
}

// Service assembles the activity feed
type Service struct {
	source       RepositorySource
	window       time.Duration
	defaultLimit int
	log          *zap.Logger
	now          func() time.Time
}

// NewService creates an activity service. window bounds how far back the
// feed looks; non-positive values default to seven days. defaultLimit
// caps the feed when the request does not name a limit; non-positive
// values default to ten.
func NewService(source RepositorySource, window time.Duration, defaultLimit int, log *zap.Logger, now func() time.Time) *Service {
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Service{source: source, window: window, defaultLimit: defaultLimit, log: log, now: now}
}

// Recent returns the caller's latest activities, newest first, capped at
// limit. Demo sessions get the fixed fixture time label because fixture
// timestamps are synthetic.
func (s *Service) Recent(ctx context.Context, caller identity.Identity, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	now := s.now()
	since := now.Add(-s.window)
	repos := s.source.For(caller)

	leads, err := repos.Leads.CreatedSince(ctx, caller, since)
	if err != nil {
		return nil, err
	}
	quotes, err := repos.Quotes.CreatedSince(ctx, caller, since, "")
	if err != nil {
		return nil, err
	}
	invoices, err := repos.Invoices.CreatedSince(ctx, caller, since, "")
	if err != nil {
		return nil, err
	}

	activities := make([]Activity, 0, len(leads)+len(quotes)+len(invoices))
	for _, l := range leads {
		activities = append(activities, Activity{
			ID:          l.ID.String(),
			Type:        "lead",
			Title:       "Nový dopyt: " + l.Name,
			Description: l.Company,
			Href:        "/leads/" + l.ID.String(),
			CreatedAt:   l.CreatedAt,
		})
	}
	for _, q := range quotes {
		activities = append(activities, Activity{
			ID:          q.ID.String(),
			Type:        "quote",
			Title:       "Cenová ponuka " + q.Number,
			Description: string(q.Status),
			Href:        "/quotes/" + q.ID.String(),
			CreatedAt:   q.CreatedAt,
		})
	}
	for _, inv := range invoices {
		activities = append(activities, Activity{
			ID:          inv.ID.String(),
			Type:        "invoice",
			Title:       "Faktúra " + inv.Number,
			Description: string(inv.Status),
			Href:        "/invoices/" + inv.ID.String(),
			CreatedAt:   inv.CreatedAt,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}

	for i := range activities {
		if caller.Demo {
			activities[i].TimeLabel = demo.ActivityTimeLabel
		} else {
			activities[i].TimeLabel = RelativeLabel(now, activities[i].CreatedAt)
		}
	}
	return activities, nil
}

// RelativeLabel renders the elapsed time since t in the short Slovak form
// the feed uses
func RelativeLabel(now, t time.Time) string {
	elapsed := now.Sub(t)
	switch {
	case elapsed < time.Minute:
		return "Práve teraz"
	case elapsed < time.Hour:
		return fmt.Sprintf("Pred %d min", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("Pred %d hod", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("Pred %d dňami", int(elapsed.Hours()/24))
	}
}
