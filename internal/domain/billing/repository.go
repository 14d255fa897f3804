package billing

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// QuoteRepository is the read-side gateway for quotes
type QuoteRepository interface {
	FindByID(ctx context.Context, caller identity.Identity, id uuid.UUID) (*Quote, error)
	List(ctx context.Context, caller identity.Identity, filter shared.Filter) (shared.Paginated[Quote], error)
	// CreatedSince returns quotes created on or after the given instant,
	// newest first, optionally restricted to a status.
	CreatedSince(ctx context.Context, caller identity.Identity, since time.Time, status QuoteStatus) ([]Quote, error)
	// Search matches query case-insensitively against the quote number.
	Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]Quote, error)
}

// InvoiceRepository is the read-side gateway for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, caller identity.Identity, id uuid.UUID) (*Invoice, error)
	List(ctx context.Context, caller identity.Identity, filter shared.Filter) (shared.Paginated[Invoice], error)
	CreatedSince(ctx context.Context, caller identity.Identity, since time.Time, status InvoiceStatus) ([]Invoice, error)
	Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]Invoice, error)
}
