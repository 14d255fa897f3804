package datasource

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crm/backend/internal/domain/identity"
)

func demoCaller() identity.Identity {
	return identity.Identity{UserID: uuid.New(), Role: identity.RoleAdmin, Demo: true}
}

func liveCaller() identity.Identity {
	return identity.Identity{UserID: uuid.New(), Role: identity.RoleAdmin}
}

func TestProviderFor(t *testing.T) {
	t.Run("live sessions get the live set", func(t *testing.T) {
		live := Repositories{}
		p := NewProvider(live, true, nil, nil)

		assert.Equal(t, live, p.For(liveCaller()))
	})

	t.Run("demo sessions get the fixture set", func(t *testing.T) {
		p := NewProvider(Repositories{}, true, nil, nil)

		repos := p.For(demoCaller())

		require.NotNil(t, repos.Leads)
		leads, err := repos.Leads.CreatedSince(context.Background(), demoCaller(), time.Now().Add(-7*24*time.Hour))
		require.NoError(t, err)
		assert.NotEmpty(t, leads)
	})

	t.Run("demo session falls back to live when disabled", func(t *testing.T) {
		live := Repositories{}
		p := NewProvider(live, false, nil, nil)

		assert.Equal(t, live, p.For(demoCaller()))
	})
}

func TestProviderReanchorsDemoSet(t *testing.T) {
	current := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }
	p := NewProvider(Repositories{}, true, nil, clock)

	first := p.For(demoCaller())

	// Within the refresh interval the set is reused.
	current = current.Add(2 * time.Hour)
	assert.Equal(t, first, p.For(demoCaller()))

	// After a long uptime the fixtures are rebuilt against the current
	// clock, so the recent window stays populated.
	current = current.Add(40 * 24 * time.Hour)
	refreshed := p.For(demoCaller())
	assert.NotEqual(t, first, refreshed)

	leads, err := refreshed.Leads.CreatedSince(context.Background(), demoCaller(), current.Add(-7*24*time.Hour))
	require.NoError(t, err)
	assert.NotEmpty(t, leads)
}
