// Package datasource selects the repository set a request is served from.
// Live sessions hit the database; demo sessions are served from fixtures.
// The choice is made per caller from the session's demo claim, so flipping
// demo mode never requires a restart.
package datasource

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/crm/backend/internal/domain/billing"
	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/notification"
	"github.com/crm/backend/internal/infrastructure/demo"
	"github.com/crm/backend/internal/infrastructure/persistence"
)

// Repositories bundles the read-side gateways for one data source
type Repositories struct {
	Leads         crm.LeadRepository
	Clients       crm.ClientRepository
	Quotes        billing.QuoteRepository
	Invoices      billing.InvoiceRepository
	Inventory     catalog.InventoryRepository
	Notifications notification.NotificationRepository
}

// demoRefreshInterval bounds how stale the demo anchor may get. Fixtures
// are dated relative to their anchor, so a long-lived process has to
// re-anchor or the recent-window fixtures age out of every aggregation.
const demoRefreshInterval = 24 * time.Hour

// Provider hands out the repository set matching a caller's session
type Provider struct {
	live        Repositories
	demoEnabled bool
	log         *zap.Logger
	now         func() time.Time

	mu        sync.Mutex
	demo      Repositories
	demoBuilt time.Time
}

// NewProvider creates a Provider over the live repository set. The demo
// set is built fixture-side on first use and re-anchored as it ages.
// A nil now uses the wall clock.
func NewProvider(live Repositories, demoEnabled bool, log *zap.Logger, now func() time.Time) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Provider{live: live, demoEnabled: demoEnabled, log: log, now: now}
}

// For returns the repository set for the caller. Demo sessions fall back to
// live data when demo mode is disabled server-side.
func (p *Provider) For(caller identity.Identity) Repositories {
	if caller.Demo {
		if !p.demoEnabled {
			p.log.Warn("demo session requested but demo mode is disabled",
				zap.String("user_id", caller.UserID.String()))
			return p.live
		}
		return p.demoSet()
	}
	return p.live
}

func (p *Provider) demoSet() Repositories {
	p.mu.Lock()
	defer p.mu.Unlock()

	ts := p.now()
	if p.demoBuilt.IsZero() || ts.Sub(p.demoBuilt) >= demoRefreshInterval {
		p.demo = NewDemoRepositories(p.now)
		p.demoBuilt = ts
		p.log.Info("demo dataset anchored", zap.Time("anchor", ts))
	}
	return p.demo
}

// NewLiveRepositories wires the GORM-backed repository set
func NewLiveRepositories(db *gorm.DB, log *zap.Logger) Repositories {
	return Repositories{
		Leads:         persistence.NewGormLeadRepository(db, log),
		Clients:       persistence.NewGormClientRepository(db, log),
		Quotes:        persistence.NewGormQuoteRepository(db, log),
		Invoices:      persistence.NewGormInvoiceRepository(db, log),
		Inventory:     persistence.NewGormInventoryRepository(db, log),
		Notifications: persistence.NewGormNotificationRepository(db, log),
	}
}

// NewDemoRepositories wires the fixture-backed repository set
func NewDemoRepositories(now func() time.Time) Repositories {
	if now == nil {
		now = time.Now
	}
	data := demo.NewDataset(now())
	return Repositories{
		Leads:         demo.NewLeadRepository(data),
		Clients:       demo.NewClientRepository(data),
		Quotes:        demo.NewQuoteRepository(data),
		Invoices:      demo.NewInvoiceRepository(data),
		Inventory:     demo.NewInventoryRepository(data),
		Notifications: demo.NewNotificationRepository(data, now),
	}
}
