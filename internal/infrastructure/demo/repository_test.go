package demo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crm/backend/internal/domain/billing"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
}

func adminCaller() identity.Identity {
	return identity.Identity{UserID: uuid.New(), Role: identity.RoleAdmin, Demo: true}
}

func TestNewDatasetIsDeterministic(t *testing.T) {
	a := NewDataset(fixedNow())
	b := NewDataset(fixedNow())

	require.Equal(t, len(a.Leads), len(b.Leads))
	for i := range a.Leads {
		assert.Equal(t, a.Leads[i].ID, b.Leads[i].ID)
		assert.Equal(t, a.Leads[i].CreatedAt, b.Leads[i].CreatedAt)
	}
	require.Equal(t, len(a.Quotes), len(b.Quotes))
	for i := range a.Quotes {
		assert.Equal(t, a.Quotes[i].ID, b.Quotes[i].ID)
		assert.True(t, a.Quotes[i].Total.Equal(b.Quotes[i].Total))
	}
}

func TestLeadRepositoryList(t *testing.T) {
	repo := NewLeadRepository(NewDataset(fixedNow()))

	t.Run("paginates newest first", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.PageSize = 3

		page, err := repo.List(context.Background(), adminCaller(), filter)
		require.NoError(t, err)

		assert.Len(t, page.Items, 3)
		assert.Equal(t, int64(7), page.Total)
		assert.Equal(t, 3, page.TotalPages)
		for i := 1; i < len(page.Items); i++ {
			assert.False(t, page.Items[i].CreatedAt.After(page.Items[i-1].CreatedAt))
		}
	})

	t.Run("applies status filter", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = "won"

		page, err := repo.List(context.Background(), adminCaller(), filter)
		require.NoError(t, err)

		require.Len(t, page.Items, 1)
		assert.Equal(t, "Peter Kováč", page.Items[0].Name)
	})

	t.Run("applies search text", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "tóth"

		page, err := repo.List(context.Background(), adminCaller(), filter)
		require.NoError(t, err)

		require.Len(t, page.Items, 1)
		assert.Equal(t, "Marek Tóth", page.Items[0].Name)
	})

	t.Run("rejects unrecognized role", func(t *testing.T) {
		caller := identity.Identity{UserID: uuid.New(), Role: identity.Role("root"), Demo: true}

		_, err := repo.List(context.Background(), caller, shared.DefaultFilter())
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidRole))
	})
}

func TestLeadRepositoryScoping(t *testing.T) {
	data := NewDataset(fixedNow())
	repo := NewLeadRepository(data)
	salesRep := fixtureID("user/sales-rep")
	west := fixtureID("region/west")

	t.Run("sales list is restricted to assigned leads", func(t *testing.T) {
		caller := identity.Identity{UserID: salesRep, Role: identity.RoleSales, RegionID: &west, Demo: true}

		page, err := repo.List(context.Background(), caller, shared.DefaultFilter())
		require.NoError(t, err)

		assert.NotEmpty(t, page.Items)
		for _, l := range page.Items {
			require.NotNil(t, l.AssignedUserID)
			assert.Equal(t, salesRep, *l.AssignedUserID)
		}
	})

	t.Run("sales search also covers the caller region", func(t *testing.T) {
		caller := identity.Identity{UserID: salesRep, Role: identity.RoleSales, RegionID: &west, Demo: true}

		leads, err := repo.Search(context.Background(), caller, "example.sk", 20)
		require.NoError(t, err)

		for _, l := range leads {
			assigned := l.AssignedUserID != nil && *l.AssignedUserID == salesRep
			inRegion := l.RegionID != nil && *l.RegionID == west
			assert.True(t, assigned || inRegion)
		}
	})

	t.Run("manager sees only their region", func(t *testing.T) {
		east := fixtureID("region/east")
		caller := identity.Identity{UserID: uuid.New(), Role: identity.RoleManager, RegionID: &east, Demo: true}

		page, err := repo.List(context.Background(), caller, shared.DefaultFilter())
		require.NoError(t, err)

		assert.NotEmpty(t, page.Items)
		for _, l := range page.Items {
			require.NotNil(t, l.RegionID)
			assert.Equal(t, east, *l.RegionID)
		}
	})
}

func TestQuoteRepositoryCreatedSince(t *testing.T) {
	repo := NewQuoteRepository(NewDataset(fixedNow()))
	since := fixedNow().AddDate(0, 0, -30)

	quotes, err := repo.CreatedSince(context.Background(), adminCaller(), since, billing.QuoteStatusAccepted)
	require.NoError(t, err)

	require.Len(t, quotes, 2)
	for _, q := range quotes {
		assert.Equal(t, billing.QuoteStatusAccepted, q.Status)
		assert.False(t, q.CreatedAt.Before(since))
	}
}

func TestNotificationRepositoryMarkRead(t *testing.T) {
	repo := NewNotificationRepository(NewDataset(fixedNow()), fixedNow)
	caller := identity.Identity{UserID: uuid.New(), Role: identity.RoleSales, Demo: true}

	unread, err := repo.CountUnread(context.Background(), caller)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	notes, err := repo.ListForUser(context.Background(), caller, true, 0)
	require.NoError(t, err)
	require.NotEmpty(t, notes)

	require.NoError(t, repo.MarkRead(context.Background(), caller, notes[0].ID))

	unread, err = repo.CountUnread(context.Background(), caller)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, repo.MarkAllRead(context.Background(), caller))
	unread, err = repo.CountUnread(context.Background(), caller)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
