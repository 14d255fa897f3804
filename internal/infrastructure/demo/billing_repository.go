package demo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/billing"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/search"
	"github.com/crm/backend/internal/domain/shared"
)

// QuoteRepository serves quotes from the fixture dataset
type QuoteRepository struct {
	data *Dataset
}

// NewQuoteRepository creates a fixture-backed quote repository
func NewQuoteRepository(data *Dataset) *QuoteRepository {
	return &QuoteRepository{data: data}
}

func (r *QuoteRepository) visible(caller identity.Identity) ([]billing.Quote, error) {
	v := visibility{caller: caller}
	if err := v.check(); err != nil {
		return nil, err
	}
	var quotes []billing.Quote
	for _, q := range r.data.Quotes {
		if v.allowsRegional(q.RegionID) {
			quotes = append(quotes, q)
		}
	}
	sortNewestFirst(quotes, func(q billing.Quote) time.Time { return q.CreatedAt })
	return quotes, nil
}

// FindByID finds a quote by ID within the caller's visibility scope
func (r *QuoteRepository) FindByID(ctx context.Context, caller identity.Identity, id uuid.UUID) (*billing.Quote, error) {
	quotes, err := r.visible(caller)
	if err != nil {
		return nil, err
	}
	for _, q := range quotes {
		if q.ID == id {
			quote := q
			return &quote, nil
		}
	}
	return nil, shared.ErrNotFound
}

// List returns a page of quotes matching the filter
func (r *QuoteRepository) List(ctx context.Context, caller identity.Identity, filter shared.Filter) (shared.Paginated[billing.Quote], error) {
	quotes, err := r.visible(caller)
	if err != nil {
		return shared.Paginated[billing.Quote]{}, err
	}
	var matched []billing.Quote
	for _, q := range quotes {
		if filter.Search != "" && !search.Matches(q.Number, filter.Search) {
			continue
		}
		if status, ok := filter.Filters["status"]; ok && string(q.Status) != status {
			continue
		}
		matched = append(matched, q)
	}
	return paginate(matched, filter), nil
}

// CreatedSince returns quotes created on or after the given instant, newest
// first, optionally restricted to a status
func (r *QuoteRepository) CreatedSince(ctx context.Context, caller identity.Identity, since time.Time, status billing.QuoteStatus) ([]billing.Quote, error) {
	quotes, err := r.visible(caller)
	if err != nil {
		return nil, err
	}
	var recent []billing.Quote
	for _, q := range quotes {
		if q.CreatedAt.Before(since) {
			continue
		}
		if status != "" && q.Status != status {
			continue
		}
		recent = append(recent, q)
	}
	return recent, nil
}

// Search matches query case-insensitively against the quote number
func (r *QuoteRepository) Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]billing.Quote, error) {
	quotes, err := r.visible(caller)
	if err != nil {
		return nil, err
	}
	var matched []billing.Quote
	for _, q := range quotes {
		if search.Matches(q.Number, query) {
			matched = append(matched, q)
		}
	}
	return capped(matched, limit), nil
}

var _ billing.QuoteRepository = (*QuoteRepository)(nil)

// InvoiceRepository serves invoices from the fixture dataset
type InvoiceRepository struct {
	data *Dataset
}

// NewInvoiceRepository creates a fixture-backed invoice repository
func NewInvoiceRepository(data *Dataset) *InvoiceRepository {
	return &InvoiceRepository{data: data}
}

func (r *InvoiceRepository) visible(caller identity.Identity) ([]billing.Invoice, error) {
	v := visibility{caller: caller}
	if err := v.check(); err != nil {
		return nil, err
	}
	var invoices []billing.Invoice
	for _, inv := range r.data.Invoices {
		if v.allowsRegional(inv.RegionID) {
			invoices = append(invoices, inv)
		}
	}
	sortNewestFirst(invoices, func(inv billing.Invoice) time.Time { return inv.CreatedAt })
	return invoices, nil
}

// FindByID finds an invoice by ID within the caller's visibility scope
func (r *InvoiceRepository) FindByID(ctx context.Context, caller identity.Identity, id uuid.UUID) (*billing.Invoice, error) {
	invoices, err := r.visible(caller)
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		if inv.ID == id {
			invoice := inv
			return &invoice, nil
		}
	}
	return nil, shared.ErrNotFound
}

// List returns a page of invoices matching the filter
func (r *InvoiceRepository) List(ctx context.Context, caller identity.Identity, filter shared.Filter) (shared.Paginated[billing.Invoice], error) {
	invoices, err := r.visible(caller)
	if err != nil {
		return shared.Paginated[billing.Invoice]{}, err
	}
	var matched []billing.Invoice
	for _, inv := range invoices {
		if filter.Search != "" && !search.Matches(inv.Number, filter.Search) {
			continue
		}
		if status, ok := filter.Filters["status"]; ok && string(inv.Status) != status {
			continue
		}
		matched = append(matched, inv)
	}
	return paginate(matched, filter), nil
}

// CreatedSince returns invoices created on or after the given instant,
// newest first, optionally restricted to a status
func (r *InvoiceRepository) CreatedSince(ctx context.Context, caller identity.Identity, since time.Time, status billing.InvoiceStatus) ([]billing.Invoice, error) {
	invoices, err := r.visible(caller)
	if err != nil {
		return nil, err
	}
	var recent []billing.Invoice
	for _, inv := range invoices {
		if inv.CreatedAt.Before(since) {
			continue
		}
		if status != "" && inv.Status != status {
			continue
		}
		recent = append(recent, inv)
	}
	return recent, nil
}

// Search matches query case-insensitively against the invoice number
func (r *InvoiceRepository) Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]billing.Invoice, error) {
	invoices, err := r.visible(caller)
	if err != nil {
		return nil, err
	}
	var matched []billing.Invoice
	for _, inv := range invoices {
		if search.Matches(inv.Number, query) {
			matched = append(matched, inv)
		}
	}
	return capped(matched, limit), nil
}

var _ billing.InvoiceRepository = (*InvoiceRepository)(nil)
