package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/scope"
)

// GormLeadRepository implements crm.LeadRepository using GORM
type GormLeadRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB, log *zap.Logger) *GormLeadRepository {
	return &GormLeadRepository{db: db, log: log}
}

// FindByID finds a lead by its ID within the caller's visibility scope
func (r *GormLeadRepository) FindByID(ctx context.Context, caller identity.Identity, id uuid.UUID) (*crm.Lead, error) {
	sc, err := scope.NewFilter(caller, r.log).Scope(scope.EntityLead)
	if err != nil {
		return nil, err
	}
	var lead crm.Lead
	if err := r.db.WithContext(ctx).Scopes(sc).First(&lead, "id = ?", id).Error; err != nil {
		return nil, classify(err)
	}
	return &lead, nil
}

// List returns a page of leads visible to the caller
func (r *GormLeadRepository) List(ctx context.Context, caller identity.Identity, filter shared.Filter) (shared.Paginated[crm.Lead], error) {
	var empty shared.Paginated[crm.Lead]
	sc, err := scope.NewFilter(caller, r.log).Scope(scope.EntityLead)
	if err != nil {
		return empty, err
	}

	query := r.db.WithContext(ctx).Model(&crm.Lead{}).Scopes(sc)
	query = applySearch(query, filter.Search, "name", "email", "phone", "company")
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return empty, classify(err)
	}

	var leads []crm.Lead
	if err := applyPagination(applyOrder(query, filter), filter).Find(&leads).Error; err != nil {
		return empty, classify(err)
	}
	return shared.NewPaginated(leads, total, filter.Page, filter.PageSize), nil
}

// CreatedSince returns leads created on or after the given instant, newest first
func (r *GormLeadRepository) CreatedSince(ctx context.Context, caller identity.Identity, since time.Time) ([]crm.Lead, error) {
	sc, err := scope.NewFilter(caller, r.log).Scope(scope.EntityLead)
	if err != nil {
		return nil, err
	}
	var leads []crm.Lead
	if err := r.db.WithContext(ctx).
		Scopes(sc).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Find(&leads).Error; err != nil {
		return nil, classify(err)
	}
	return leads, nil
}

// Search matches query case-insensitively against name, email, phone and company
func (r *GormLeadRepository) Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]crm.Lead, error) {
	sc, err := scope.NewFilter(caller, r.log).SearchScope(scope.EntityLead)
	if err != nil {
		return nil, err
	}
	var leads []crm.Lead
	q := applySearch(r.db.WithContext(ctx).Scopes(sc), query, "name", "email", "phone", "company")
	if err := q.Order("created_at DESC").Limit(limit).Find(&leads).Error; err != nil {
		return nil, classify(err)
	}
	return leads, nil
}

var _ crm.LeadRepository = (*GormLeadRepository)(nil)
