package activity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/datasource"
	"github.com/crm/backend/internal/infrastructure/demo"
)

type fixedSource struct {
	repos datasource.Repositories
}

func (f *fixedSource) For(caller identity.Identity) datasource.Repositories {
	return f.repos
}

func demoService(now time.Time) *Service {
	clock := func() time.Time { return now }
	source := &fixedSource{repos: datasource.NewDemoRepositories(clock)}
	return NewService(source, 0, 0, nil, clock)
}

func TestRecentDemoMode(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	svc := demoService(now)
	caller := identity.Identity{UserID: uuid.New(), Role: identity.RoleAdmin, Demo: true}

	t.Run("limit of three returns exactly three fixture entries", func(t *testing.T) {
		activities, err := svc.Recent(context.Background(), caller, 3)

		require.NoError(t, err)
		require.Len(t, activities, 3)
		for _, a := range activities {
			assert.Equal(t, "Pred 1 hod", a.TimeLabel)
		}
	})

	t.Run("label is fixed regardless of clock", func(t *testing.T) {
		later := demoService(now.Add(93 * time.Hour))

		activities, err := later.Recent(context.Background(), caller, 3)

		require.NoError(t, err)
		require.Len(t, activities, 3)
		for _, a := range activities {
			assert.Equal(t, demo.ActivityTimeLabel, a.TimeLabel)
		}
	})

	t.Run("entries are newest first", func(t *testing.T) {
		activities, err := svc.Recent(context.Background(), caller, 10)

		require.NoError(t, err)
		require.NotEmpty(t, activities)
		for i := 1; i < len(activities); i++ {
			assert.False(t, activities[i].CreatedAt.After(activities[i-1].CreatedAt))
		}
	})

	t.Run("configured default caps an unbounded request", func(t *testing.T) {
		clock := func() time.Time { return now }
		source := &fixedSource{repos: datasource.NewDemoRepositories(clock)}
		svc := NewService(source, 0, 2, nil, clock)

		activities, err := svc.Recent(context.Background(), caller, 0)

		require.NoError(t, err)
		assert.Len(t, activities, 2)
	})

	t.Run("rejects unrecognized role", func(t *testing.T) {
		bad := identity.Identity{UserID: uuid.New(), Role: identity.Role("root"), Demo: true}

		_, err := svc.Recent(context.Background(), bad, 3)
		assert.ErrorIs(t, err, shared.ErrInvalidRole)
	})
}

func TestRelativeLabel(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"under a minute", 20 * time.Second, "Práve teraz"},
		{"minutes", 5 * time.Minute, "Pred 5 min"},
		{"just under an hour", 59 * time.Minute, "Pred 59 min"},
		{"hours", 3 * time.Hour, "Pred 3 hod"},
		{"just under a day", 23 * time.Hour, "Pred 23 hod"},
		{"days", 49 * time.Hour, "Pred 2 dňami"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeLabel(now, now.Add(-tt.elapsed)))
		})
	}
}
