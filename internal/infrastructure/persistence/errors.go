package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/crm/backend/internal/domain/shared"
)

// classify maps low-level driver and postgres errors onto the shared error
// taxonomy so handlers and services never see raw driver errors. Unknown
// database errors become ErrQuery, unknown non-database errors pass through.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", shared.ErrAlreadyExists, pqErr.Constraint)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", shared.ErrConflict, pqErr.Constraint)
		}
		switch pqErr.Code.Class() {
		case "28": // invalid authorization specification
			return fmt.Errorf("%w: %v", shared.ErrAuthExpired, pqErr.Message)
		case "08": // connection exception
			return fmt.Errorf("%w: %v", shared.ErrTransport, pqErr.Message)
		}
		return fmt.Errorf("%w: %s %s", shared.ErrQuery, pqErr.Code, pqErr.Message)
	}

	return err
}
