package persistence

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/persistence/scope"
)

// GormInventoryRepository implements catalog.InventoryRepository using GORM
type GormInventoryRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB, log *zap.Logger) *GormInventoryRepository {
	return &GormInventoryRepository{db: db, log: log}
}

// List returns a page of inventory items. The catalog is not region-scoped
// but the filter still rejects unrecognized roles.
func (r *GormInventoryRepository) List(ctx context.Context, caller identity.Identity, filter shared.Filter) (shared.Paginated[catalog.InventoryItem], error) {
	var empty shared.Paginated[catalog.InventoryItem]
	sc, err := scope.NewFilter(caller, r.log).Scope(scope.EntityInventory)
	if err != nil {
		return empty, err
	}

	query := r.db.WithContext(ctx).Model(&catalog.InventoryItem{}).Scopes(sc)
	query = applySearch(query, filter.Search, "name", "sku")
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return empty, classify(err)
	}

	var items []catalog.InventoryItem
	if err := applyPagination(applyOrder(query, filter), filter).Find(&items).Error; err != nil {
		return empty, classify(err)
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Search matches query case-insensitively against name and SKU
func (r *GormInventoryRepository) Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]catalog.InventoryItem, error) {
	sc, err := scope.NewFilter(caller, r.log).SearchScope(scope.EntityInventory)
	if err != nil {
		return nil, err
	}
	var items []catalog.InventoryItem
	q := applySearch(r.db.WithContext(ctx).Scopes(sc), query, "name", "sku")
	if err := q.Order("name ASC").Limit(limit).Find(&items).Error; err != nil {
		return nil, classify(err)
	}
	return items, nil
}

var _ catalog.InventoryRepository = (*GormInventoryRepository)(nil)
