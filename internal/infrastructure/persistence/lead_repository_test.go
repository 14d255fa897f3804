package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
)

// newMockLeadRepository creates a GormLeadRepository with a mocked SQL connection
func newMockLeadRepository(t *testing.T) (*GormLeadRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormLeadRepository(gormDB, nil), mock, mockDB
}

func leadRows(leads ...crm.Lead) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name", "email", "phone", "company", "status", "region_id", "assigned_user_id"})
	for _, l := range leads {
		rows.AddRow(l.ID, l.CreatedAt, l.UpdatedAt, l.Name, l.Email, l.Phone, l.Company, l.Status, l.RegionID, l.AssignedUserID)
	}
	return rows
}

func TestGormLeadRepository_FindByID(t *testing.T) {
	t.Run("finds lead for admin", func(t *testing.T) {
		repo, mock, mockDB := newMockLeadRepository(t)
		defer mockDB.Close()

		leadID := uuid.New()
		caller := identity.Identity{UserID: uuid.New(), Role: identity.RoleAdmin}
		lead := crm.Lead{Name: "Kamenárstvo Novák", Status: crm.LeadStatusNew}
		lead.ID = leadID
		lead.CreatedAt = time.Now()
		lead.UpdatedAt = lead.CreatedAt

		mock.ExpectQuery(`SELECT \* FROM "leads" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(leadID, 1).
			WillReturnRows(leadRows(lead))

		found, err := repo.FindByID(context.Background(), caller, leadID)

		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, leadID, found.ID)
		assert.Equal(t, "Kamenárstvo Novák", found.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sales caller is restricted to assigned leads", func(t *testing.T) {
		repo, mock, mockDB := newMockLeadRepository(t)
		defer mockDB.Close()

		leadID := uuid.New()
		userID := uuid.New()
		caller := identity.Identity{UserID: userID, Role: identity.RoleSales}

		mock.ExpectQuery(`SELECT \* FROM "leads" WHERE id = \$1 AND assigned_user_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(leadID, userID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		found, err := repo.FindByID(context.Background(), caller, leadID)

		assert.Nil(t, found)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unrecognized role is denied without a query", func(t *testing.T) {
		repo, mock, mockDB := newMockLeadRepository(t)
		defer mockDB.Close()

		caller := identity.Identity{UserID: uuid.New(), Role: identity.Role("superuser")}

		found, err := repo.FindByID(context.Background(), caller, uuid.New())

		assert.Nil(t, found)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidRole))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLeadRepository_CreatedSince(t *testing.T) {
	t.Run("manager queries are region scoped", func(t *testing.T) {
		repo, mock, mockDB := newMockLeadRepository(t)
		defer mockDB.Close()

		regionID := uuid.New()
		caller := identity.Identity{UserID: uuid.New(), Role: identity.RoleManager, RegionID: &regionID}
		since := time.Now().AddDate(0, 0, -30)

		mock.ExpectQuery(`SELECT \* FROM "leads" WHERE created_at >= \$1 AND region_id = \$2 ORDER BY created_at DESC`).
			WithArgs(since, regionID).
			WillReturnRows(leadRows())

		leads, err := repo.CreatedSince(context.Background(), caller, since)

		assert.NoError(t, err)
		assert.Empty(t, leads)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLeadRepository_Search(t *testing.T) {
	t.Run("matches across contact fields", func(t *testing.T) {
		repo, mock, mockDB := newMockLeadRepository(t)
		defer mockDB.Close()

		caller := identity.Identity{UserID: uuid.New(), Role: identity.RoleAdmin}
		lead := crm.Lead{Name: "Granit Plus", Status: crm.LeadStatusContacted}
		lead.ID = uuid.New()
		lead.CreatedAt = time.Now()
		lead.UpdatedAt = lead.CreatedAt

		mock.ExpectQuery(`SELECT \* FROM "leads" WHERE name ILIKE \$1 OR email ILIKE \$2 OR phone ILIKE \$3 OR company ILIKE \$4 ORDER BY created_at DESC LIMIT .*`).
			WithArgs("%granit%", "%granit%", "%granit%", "%granit%", 5).
			WillReturnRows(leadRows(lead))

		leads, err := repo.Search(context.Background(), caller, "granit", 5)

		assert.NoError(t, err)
		require.Len(t, leads, 1)
		assert.Equal(t, "Granit Plus", leads[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
