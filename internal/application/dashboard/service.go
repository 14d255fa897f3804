// Package dashboard assembles the analytics overview the dashboard screen
// renders: monthly revenue trend, sales funnel and KPI deltas over the
// caller's visible rows.
package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/crm/backend/internal/domain/analytics"
	"github.com/crm/backend/internal/domain/billing"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/datasource"
)

// RepositorySource yields the repository set for a caller's session
type RepositorySource interface {
	For(caller identity.Identity) datasource.Repositories
}

// Cache stores assembled overviews keyed by visibility scope. A nil cache
// disables caching.
type Cache interface {
	Key(caller identity.Identity, months, days int) string
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// Overview is the full dashboard payload
type Overview struct {
	RevenueTrend []analytics.MonthRevenue `json:"revenue_trend"`
	Funnel       analytics.Funnel         `json:"funnel"`
	KPIs         analytics.KPIs           `json:"kpis"`
}

// Service orchestrates dashboard aggregation. Row fetches fail fast: a
// partially aggregated dashboard would silently misreport revenue.
type Service struct {
	source RepositorySource
	cache  Cache
	cfg    config.DashboardConfig
	log    *zap.Logger
	now    func() time.Time
}

// NewService creates a dashboard service. cache may be nil; now defaults to
// time.Now.
func NewService(source RepositorySource, cache Cache, cfg config.DashboardConfig, log *zap.Logger, now func() time.Time) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Service{source: source, cache: cache, cfg: cfg, log: log, now: now}
}

// Overview computes the dashboard for the caller. months bounds the revenue
// trend window, days the funnel window; non-positive values fall back to
// the configured defaults.
func (s *Service) Overview(ctx context.Context, caller identity.Identity, months, days int) (*Overview, error) {
	if months <= 0 {
		months = s.cfg.TrendMonths
	}
	if days <= 0 {
		days = s.cfg.FunnelDays
	}

	if s.cache != nil {
		key := s.cache.Key(caller, months, days)
		var cached Overview
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("dashboard cache read failed", zap.Error(err))
		}
		if hit {
			return &cached, nil
		}
	}

	overview, err := s.compute(ctx, caller, months, days)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		key := s.cache.Key(caller, months, days)
		if err := s.cache.Set(ctx, key, overview); err != nil {
			s.log.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return overview, nil
}

func (s *Service) compute(ctx context.Context, caller identity.Identity, months, days int) (*Overview, error) {
	now := s.now()
	repos := s.source.For(caller)

	trendStart := analytics.MonthsBack(now, months-1)
	acceptedQuotes, err := repos.Quotes.CreatedSince(ctx, caller, trendStart, billing.QuoteStatusAccepted)
	if err != nil {
		return nil, err
	}
	paidInvoices, err := repos.Invoices.CreatedSince(ctx, caller, trendStart, billing.InvoiceStatusPaid)
	if err != nil {
		return nil, err
	}

	// KPIs compare this month against last month across all quote statuses
	kpiStart := analytics.MonthsBack(now, 1)
	kpiQuotes, err := repos.Quotes.CreatedSince(ctx, caller, kpiStart, "")
	if err != nil {
		return nil, err
	}

	funnelStart := now.AddDate(0, 0, -days)
	leads, err := repos.Leads.CreatedSince(ctx, caller, funnelStart)
	if err != nil {
		return nil, err
	}

	return &Overview{
		RevenueTrend: analytics.MonthlyRevenue(now, months, acceptedQuotes, paidInvoices),
		Funnel:       analytics.SalesFunnel(leads),
		KPIs:         analytics.EnhancedKPIs(now, kpiQuotes),
	}, nil
}
