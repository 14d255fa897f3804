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

// GormQuoteRepository implements billing.QuoteRepository using GORM
type GormQuoteRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB, log *zap.Logger) *GormQuoteRepository {
	return &GormQuoteRepository{db: db, log: log}
}

// FindByID finds a quote by its ID within the caller's visibility scope
func (r *GormQuoteRepository) FindByID(ctx context.Context, caller identity.Identity, id uuid.UUID) (*billing.Quote, error) {
	sc, err := scope.NewFilter(caller, r.log).Scope(scope.EntityQuote)
	if err != nil {
		return nil, err
	}
	var quote billing.Quote
	if err := r.db.WithContext(ctx).Scopes(sc).First(&quote, "id = ?", id).Error; err != nil {
		return nil, classify(err)
	}
	return &quote, nil
}

// List returns a page of quotes visible to the caller
func (r *GormQuoteRepository) List(ctx context.Context, caller identity.Identity, filter shared.Filter) (shared.Paginated[billing.Quote], error) {
	var empty shared.Paginated[billing.Quote]
	sc, err := scope.NewFilter(caller, r.log).Scope(scope.EntityQuote)
	if err != nil {
		return empty, err
	}

	query := r.db.WithContext(ctx).Model(&billing.Quote{}).Scopes(sc)
	query = applySearch(query, filter.Search, "number")
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return empty, classify(err)
	}

	var quotes []billing.Quote
	if err := applyPagination(applyOrder(query, filter), filter).Find(&quotes).Error; err != nil {
		return empty, classify(err)
	}
	return shared.NewPaginated(quotes, total, filter.Page, filter.PageSize), nil
}

// CreatedSince returns quotes created on or after the given instant, newest
// first, optionally restricted to a status. An empty status matches all.
func (r *GormQuoteRepository) CreatedSince(ctx context.Context, caller identity.Identity, since time.Time, status billing.QuoteStatus) ([]billing.Quote, error) {
	sc, err := scope.NewFilter(caller, r.log).Scope(scope.EntityQuote)
	if err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Scopes(sc).Where("created_at >= ?", since)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var quotes []billing.Quote
	if err := query.Order("created_at DESC").Find(&quotes).Error; err != nil {
		return nil, classify(err)
	}
	return quotes, nil
}

// Search matches query case-insensitively against the quote number
func (r *GormQuoteRepository) Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]billing.Quote, error) {
	sc, err := scope.NewFilter(caller, r.log).SearchScope(scope.EntityQuote)
	if err != nil {
		return nil, err
	}
	var quotes []billing.Quote
	q := applySearch(r.db.WithContext(ctx).Scopes(sc), query, "number")
	if err := q.Order("created_at DESC").Limit(limit).Find(&quotes).Error; err != nil {
		return nil, classify(err)
	}
	return quotes, nil
}

var _ billing.QuoteRepository = (*GormQuoteRepository)(nil)
