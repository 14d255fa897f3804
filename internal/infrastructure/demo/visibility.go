package demo

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
)

// visibility mirrors the role and region rules the live scope filter
// applies in SQL, evaluated in-process against fixture rows.
type visibility struct {
	caller identity.Identity
	search bool
}

func (v visibility) check() error {
	switch v.caller.Role {
	case identity.RoleAdmin, identity.RoleManager, identity.RoleSales:
		return nil
	default:
		return fmt.Errorf("%w: %q", shared.ErrInvalidRole, v.caller.Role)
	}
}

// allowsScoped evaluates rows that carry both region and assignee columns
// (leads and clients).
func (v visibility) allowsScoped(regionID, assignedUserID *uuid.UUID) bool {
	switch v.caller.Role {
	case identity.RoleAdmin:
		return true
	case identity.RoleManager:
		if !v.caller.HasRegion() {
			return true
		}
		return regionID != nil && *regionID == *v.caller.RegionID
	case identity.RoleSales:
		assigned := assignedUserID != nil && *assignedUserID == v.caller.UserID
		if v.search && v.caller.HasRegion() {
			return assigned || (regionID != nil && *regionID == *v.caller.RegionID)
		}
		return assigned
	default:
		return false
	}
}

// allowsRegional evaluates rows that carry only a region column (quotes and
// invoices). Sales callers are not restricted on these.
func (v visibility) allowsRegional(regionID *uuid.UUID) bool {
	switch v.caller.Role {
	case identity.RoleAdmin, identity.RoleSales:
		return true
	case identity.RoleManager:
		if !v.caller.HasRegion() {
			return true
		}
		return regionID != nil && *regionID == *v.caller.RegionID
	default:
		return false
	}
}
