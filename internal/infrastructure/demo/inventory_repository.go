package demo

import (
	"context"
	"sort"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/search"
	"github.com/crm/backend/internal/domain/shared"
)

// InventoryRepository serves inventory items from the fixture dataset
type InventoryRepository struct {
	data *Dataset
}

// NewInventoryRepository creates a fixture-backed inventory repository
func NewInventoryRepository(data *Dataset) *InventoryRepository {
	return &InventoryRepository{data: data}
}

func (r *InventoryRepository) visible(caller identity.Identity) ([]catalog.InventoryItem, error) {
	v := visibility{caller: caller}
	if err := v.check(); err != nil {
		return nil, err
	}
	items := make([]catalog.InventoryItem, len(r.data.Inventory))
	copy(items, r.data.Inventory)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// List returns a page of inventory items matching the filter
func (r *InventoryRepository) List(ctx context.Context, caller identity.Identity, filter shared.Filter) (shared.Paginated[catalog.InventoryItem], error) {
	items, err := r.visible(caller)
	if err != nil {
		return shared.Paginated[catalog.InventoryItem]{}, err
	}
	var matched []catalog.InventoryItem
	for _, it := range items {
		if filter.Search != "" && !itemMatches(it, filter.Search) {
			continue
		}
		if category, ok := filter.Filters["category"]; ok && it.Category != category {
			continue
		}
		matched = append(matched, it)
	}
	return paginate(matched, filter), nil
}

// Search matches query case-insensitively against name and SKU
func (r *InventoryRepository) Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]catalog.InventoryItem, error) {
	items, err := r.visible(caller)
	if err != nil {
		return nil, err
	}
	var matched []catalog.InventoryItem
	for _, it := range items {
		if itemMatches(it, query) {
			matched = append(matched, it)
		}
	}
	return capped(matched, limit), nil
}

func itemMatches(it catalog.InventoryItem, query string) bool {
	return search.Matches(it.Name, query) || search.Matches(it.SKU, query)
}

var _ catalog.InventoryRepository = (*InventoryRepository)(nil)
