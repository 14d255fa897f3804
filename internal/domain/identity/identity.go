// Package identity holds the caller identity used for data visibility
// decisions. Authentication itself is delegated to the external backend;
// this module only decodes and carries the resulting claims.
package identity

import (
	"fmt"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role is the caller's access role
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleSales   Role = "sales"
)

// ParseRole validates a role string. Unknown roles are a configuration
// error and must result in denied access, never default-open.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleSales:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", shared.ErrInvalidRole, s)
	}
}

// Identity describes the caller of a scoped query
type Identity struct {
	UserID   uuid.UUID
	Role     Role
	RegionID *uuid.UUID // nil when the caller has no assigned region
	Demo     bool       // session is served from fixture data
}

// HasRegion reports whether the caller has an assigned region
func (i Identity) HasRegion() bool {
	return i.RegionID != nil && *i.RegionID != uuid.Nil
}
