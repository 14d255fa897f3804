// Package catalog holds the inventory read model: stone and building
// material stock items searchable from the global search bar.
package catalog

import (
	"context"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryItem represents a stock item
type InventoryItem struct {
	shared.BaseEntity
	Name      string          `gorm:"type:varchar(200);not null" json:"name"`
	SKU       string          `gorm:"type:varchar(100);not null;uniqueIndex" json:"sku"`
	Category  string          `gorm:"type:varchar(100);index" json:"category"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"quantity"`
	Unit      string          `gorm:"type:varchar(20)" json:"unit"` // m2, t, pcs
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"unit_price"`
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// InventoryRepository is the read-side gateway for inventory items.
// Inventory is not region-scoped: every role sees the full catalog.
type InventoryRepository interface {
	List(ctx context.Context, caller identity.Identity, filter shared.Filter) (shared.Paginated[InventoryItem], error)
	// Search matches query case-insensitively against name and SKU.
	Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]InventoryItem, error)
}
