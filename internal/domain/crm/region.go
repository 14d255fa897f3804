package crm

import "github.com/crm/backend/internal/domain/shared"

// Region is the geographic partition used for access scoping
type Region struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(100);not null" json:"name"`
	Code string `gorm:"type:varchar(20);not null;uniqueIndex" json:"code"`
}

// TableName returns the table name for GORM
func (Region) TableName() string {
	return "regions"
}
