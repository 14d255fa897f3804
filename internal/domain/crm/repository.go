package crm

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LeadRepository is the read-side gateway for leads. Every method applies
// the caller's visibility scope before dispatch.
type LeadRepository interface {
	FindByID(ctx context.Context, caller identity.Identity, id uuid.UUID) (*Lead, error)
	List(ctx context.Context, caller identity.Identity, filter shared.Filter) (shared.Paginated[Lead], error)
	// CreatedSince returns leads created on or after the given instant,
	// newest first. Used by the funnel aggregation and the activity feed.
	CreatedSince(ctx context.Context, caller identity.Identity, since time.Time) ([]Lead, error)
	// Search matches query case-insensitively against name, email, phone
	// and company, capped at limit rows.
	Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]Lead, error)
}

// ClientRepository is the read-side gateway for clients
type ClientRepository interface {
	FindByID(ctx context.Context, caller identity.Identity, id uuid.UUID) (*Client, error)
	List(ctx context.Context, caller identity.Identity, filter shared.Filter) (shared.Paginated[Client], error)
	Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]Client, error)
}
