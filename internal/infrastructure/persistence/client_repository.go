package persistence

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/scope"
)

// GormClientRepository implements crm.ClientRepository using GORM
type GormClientRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB, log *zap.Logger) *GormClientRepository {
	return &GormClientRepository{db: db, log: log}
}

// FindByID finds a client by its ID within the caller's visibility scope
func (r *GormClientRepository) FindByID(ctx context.Context, caller identity.Identity, id uuid.UUID) (*crm.Client, error) {
	sc, err := scope.NewFilter(caller, r.log).Scope(scope.EntityClient)
	if err != nil {
		return nil, err
	}
	var client crm.Client
	if err := r.db.WithContext(ctx).Scopes(sc).First(&client, "id = ?", id).Error; err != nil {
		return nil, classify(err)
	}
	return &client, nil
}

// List returns a page of clients visible to the caller
func (r *GormClientRepository) List(ctx context.Context, caller identity.Identity, filter shared.Filter) (shared.Paginated[crm.Client], error) {
	var empty shared.Paginated[crm.Client]
	sc, err := scope.NewFilter(caller, r.log).Scope(scope.EntityClient)
	if err != nil {
		return empty, err
	}

	query := r.db.WithContext(ctx).Model(&crm.Client{}).Scopes(sc)
	query = applySearch(query, filter.Search, "name", "email", "phone", "company")
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return empty, classify(err)
	}

	var clients []crm.Client
	if err := applyPagination(applyOrder(query, filter), filter).Find(&clients).Error; err != nil {
		return empty, classify(err)
	}
	return shared.NewPaginated(clients, total, filter.Page, filter.PageSize), nil
}

// Search matches query case-insensitively against name, email, phone and company
func (r *GormClientRepository) Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]crm.Client, error) {
	sc, err := scope.NewFilter(caller, r.log).SearchScope(scope.EntityClient)
	if err != nil {
		return nil, err
	}
	var clients []crm.Client
	q := applySearch(r.db.WithContext(ctx).Scopes(sc), query, "name", "email", "phone", "company")
	if err := q.Order("created_at DESC").Limit(limit).Find(&clients).Error; err != nil {
		return nil, classify(err)
	}
	return clients, nil
}

var _ crm.ClientRepository = (*GormClientRepository)(nil)
