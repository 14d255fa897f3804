package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/crm/backend/internal/domain/billing"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/scope"
)

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB, log *zap.Logger) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db, log: log}
}

// FindByID finds an invoice by its ID within the caller's visibility scope
func (r *GormInvoiceRepository) FindByID(ctx context.Context, caller identity.Identity, id uuid.UUID) (*billing.Invoice, error) {
	sc, err := scope.NewFilter(caller, r.log).Scope(scope.EntityInvoice)
	if err != nil {
		return nil, err
	}
	var invoice billing.Invoice
	if err := r.db.WithContext(ctx).Scopes(sc).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, classify(err)
	}
	return &invoice, nil
}

// List returns a page of invoices visible to the caller
func (r *GormInvoiceRepository) List(ctx context.Context, caller identity.Identity, filter shared.Filter) (shared.Paginated[billing.Invoice], error) {
	var empty shared.Paginated[billing.Invoice]
	sc, err := scope.NewFilter(caller, r.log).Scope(scope.EntityInvoice)
	if err != nil {
		return empty, err
	}

	query := r.db.WithContext(ctx).Model(&billing.Invoice{}).Scopes(sc)
	query = applySearch(query, filter.Search, "number")
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return empty, classify(err)
	}

	var invoices []billing.Invoice
	if err := applyPagination(applyOrder(query, filter), filter).Find(&invoices).Error; err != nil {
		return empty, classify(err)
	}
	return shared.NewPaginated(invoices, total, filter.Page, filter.PageSize), nil
}

// CreatedSince returns invoices created on or after the given instant,
// newest first, optionally restricted to a status
func (r *GormInvoiceRepository) CreatedSince(ctx context.Context, caller identity.Identity, since time.Time, status billing.InvoiceStatus) ([]billing.Invoice, error) {
	sc, err := scope.NewFilter(caller, r.log).Scope(scope.EntityInvoice)
	if err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Scopes(sc).Where("created_at >= ?", since)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var invoices []billing.Invoice
	if err := query.Order("created_at DESC").Find(&invoices).Error; err != nil {
		return nil, classify(err)
	}
	return invoices, nil
}

// Search matches query case-insensitively against the invoice number
func (r *GormInvoiceRepository) Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]billing.Invoice, error) {
	sc, err := scope.NewFilter(caller, r.log).SearchScope(scope.EntityInvoice)
	if err != nil {
		return nil, err
	}
	var invoices []billing.Invoice
	q := applySearch(r.db.WithContext(ctx).Scopes(sc), query, "number")
	if err := q.Order("created_at DESC").Limit(limit).Find(&invoices).Error; err != nil {
		return nil, classify(err)
	}
	return invoices, nil
}

var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
