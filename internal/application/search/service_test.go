package search

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crm/backend/internal/domain/billing"
	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/search"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/datasource"
)

type fakeLeadSearch struct {
	crm.LeadRepository
	leads   []crm.Lead
	err     error
	calls   atomic.Int64
	queries []string
}

func (f *fakeLeadSearch) Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]crm.Lead, error) {
	f.calls.Add(1)
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.leads) > limit {
		return f.leads[:limit], nil
	}
	return f.leads, nil
}

type fakeClientSearch struct {
	crm.ClientRepository
	clients []crm.Client
	err     error
}

func (f *fakeClientSearch) Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]crm.Client, error) {
	return f.clients, f.err
}

type fakeQuoteSearch struct {
	billing.QuoteRepository
	quotes []billing.Quote
	err    error
}

func (f *fakeQuoteSearch) Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]billing.Quote, error) {
	return f.quotes, f.err
}

type fakeInvoiceSearch struct {
	billing.InvoiceRepository
	invoices []billing.Invoice
	err      error
}

func (f *fakeInvoiceSearch) Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]billing.Invoice, error) {
	return f.invoices, f.err
}

type fakeInventorySearch struct {
	catalog.InventoryRepository
	items []catalog.InventoryItem
	err   error
}

func (f *fakeInventorySearch) Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]catalog.InventoryItem, error) {
	return f.items, f.err
}

type fakeSource struct {
	repos datasource.Repositories
}

func (f *fakeSource) For(caller identity.Identity) datasource.Repositories {
	return f.repos
}

func namedLead(name string) crm.Lead {
	l := crm.Lead{Name: name}
	l.ID = uuid.New()
	return l
}

func namedClient(name string) crm.Client {
	c := crm.Client{Name: name}
	c.ID = uuid.New()
	return c
}

func numberedQuote(number string) billing.Quote {
	q := billing.Quote{Number: number}
	q.ID = uuid.New()
	return q
}

func testCaller() identity.Identity {
	return identity.Identity{UserID: uuid.New(), Role: identity.RoleAdmin}
}

func newFakeSource() (*fakeSource, *fakeLeadSearch) {
	leads := &fakeLeadSearch{}
	return &fakeSource{repos: datasource.Repositories{
		Leads:     leads,
		Clients:   &fakeClientSearch{},
		Quotes:    &fakeQuoteSearch{},
		Invoices:  &fakeInvoiceSearch{},
		Inventory: &fakeInventorySearch{},
	}}, leads
}

func TestServiceSearch(t *testing.T) {
	t.Run("merges categories in fixed order with highlights", func(t *testing.T) {
		source, leads := newFakeSource()
		leads.leads = []crm.Lead{namedLead("Granit Plus")}
		source.repos.Clients = &fakeClientSearch{clients: []crm.Client{namedClient("Granit Centrum")}}
		source.repos.Quotes = &fakeQuoteSearch{quotes: []billing.Quote{numberedQuote("CP-2024-101")}}
		svc := NewService(source, 2, 5, nil)

		results, err := svc.Search(context.Background(), testCaller(), "granit")

		require.NoError(t, err)
		require.Len(t, results.Leads, 1)
		assert.Equal(t, "Granit Plus", results.Leads[0].Title)
		assert.Equal(t, []search.Span{{Start: 0, End: 6}}, results.Leads[0].Highlights["title"])
		require.Len(t, results.Clients, 1)
		assert.Equal(t, search.TypeClient, results.Clients[0].Type)
		require.Len(t, results.Quotes, 1)
		assert.Empty(t, results.Quotes[0].Highlights)
		assert.Empty(t, results.Invoices)
		assert.Empty(t, results.Inventory)
		assert.Equal(t, 3, results.Total())
		assert.Empty(t, results.Failed)
	})

	t.Run("subtitle and metadata matches carry their own spans", func(t *testing.T) {
		source, leads := newFakeSource()
		l := namedLead("Peter Novák")
		l.Company = "Granit Centrum"
		l.Phone = "+421 900 111 222"
		leads.leads = []crm.Lead{l}
		svc := NewService(source, 2, 5, nil)

		results, err := svc.Search(context.Background(), testCaller(), "granit")

		require.NoError(t, err)
		require.Len(t, results.Leads, 1)
		highlights := results.Leads[0].Highlights
		assert.NotContains(t, highlights, "title")
		assert.Equal(t, []search.Span{{Start: 0, End: 6}}, highlights["subtitle"])

		results, err = svc.Search(context.Background(), testCaller(), "900 111")
		require.NoError(t, err)
		require.Len(t, results.Leads, 1)
		assert.Equal(t, []search.Span{{Start: 5, End: 12}}, results.Leads[0].Highlights["metadata.phone"])
	})

	t.Run("short query returns empty set without lookups", func(t *testing.T) {
		source, leads := newFakeSource()
		svc := NewService(source, 2, 5, nil)

		results, err := svc.Search(context.Background(), testCaller(), "a")

		require.NoError(t, err)
		assert.Zero(t, results.Total())
		assert.NotNil(t, results.Leads)
		assert.Zero(t, leads.calls.Load())
	})

	t.Run("whitespace does not count toward minimum length", func(t *testing.T) {
		source, leads := newFakeSource()
		svc := NewService(source, 2, 5, nil)

		_, err := svc.Search(context.Background(), testCaller(), "  a  ")

		require.NoError(t, err)
		assert.Zero(t, leads.calls.Load())
	})

	t.Run("failed category is fail-soft", func(t *testing.T) {
		source, leads := newFakeSearchWithError()
		svc := NewService(source, 2, 5, nil)

		results, err := svc.Search(context.Background(), testCaller(), "granit")

		require.NoError(t, err)
		assert.Contains(t, results.Failed, search.TypeQuote)
		require.Len(t, results.Leads, 1)
		assert.Equal(t, leads.leads[0].Name, results.Leads[0].Title)
		assert.Empty(t, results.Quotes)
		assert.NotNil(t, results.Quotes)
	})

	t.Run("caps each category at the limit", func(t *testing.T) {
		source, leads := newFakeSource()
		for i := 0; i < 12; i++ {
			leads.leads = append(leads.leads, namedLead("Granit"))
		}
		svc := NewService(source, 2, 5, nil)

		results, err := svc.Search(context.Background(), testCaller(), "granit")

		require.NoError(t, err)
		assert.Len(t, results.Leads, 5)
	})
}

func newFakeSearchWithError() (*fakeSource, *fakeLeadSearch) {
	source, leads := newFakeSource()
	leads.leads = []crm.Lead{namedLead("Granit Plus")}
	source.repos.Quotes = &fakeQuoteSearch{err: shared.ErrQuery}
	return source, leads
}

func TestServiceSearchDemoFixtures(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	repos := datasource.NewDemoRepositories(func() time.Time { return now })
	source := &fakeSource{repos: repos}
	svc := NewService(source, 2, 5, nil)
	caller := identity.Identity{UserID: uuid.New(), Role: identity.RoleAdmin, Demo: true}

	t.Run("finds inventory by SKU fragment", func(t *testing.T) {
		results, err := svc.Search(context.Background(), caller, "carr")
		require.NoError(t, err)
		require.NotEmpty(t, results.Inventory)
		assert.Equal(t, "MR-CARR-6130", results.Inventory[0].Subtitle)
		assert.Equal(t, []search.Span{{Start: 3, End: 7}}, results.Inventory[0].Highlights["subtitle"])
	})

	t.Run("finds quotes and invoices by number", func(t *testing.T) {
		results, err := svc.Search(context.Background(), caller, "2024-1")
		require.NoError(t, err)
		assert.NotEmpty(t, results.Quotes)
		assert.NotEmpty(t, results.Invoices)
	})
}

func TestDebouncer(t *testing.T) {
	t.Run("rapid updates trigger exactly one search for the last query", func(t *testing.T) {
		source, leads := newFakeSource()
		svc := NewService(source, 2, 5, nil)
		d := NewDebouncer(svc, 20*time.Millisecond)

		delivered := make(chan search.Results, 3)
		deliver := func(r search.Results, err error) {
			require.NoError(t, err)
			delivered <- r
		}

		caller := testCaller()
		d.Update(context.Background(), caller, "gr", deliver)
		d.Update(context.Background(), caller, "gra", deliver)
		d.Update(context.Background(), caller, "gran", deliver)

		select {
		case r := <-delivered:
			assert.Equal(t, "gran", r.Query)
		case <-time.After(time.Second):
			t.Fatal("debounced search was never delivered")
		}

		time.Sleep(50 * time.Millisecond)
		assert.Len(t, delivered, 0)
		assert.Equal(t, int64(1), leads.calls.Load())
		assert.Equal(t, []string{"gran"}, leads.queries)
	})

	t.Run("cancel discards the pending query", func(t *testing.T) {
		source, leads := newFakeSource()
		svc := NewService(source, 2, 5, nil)
		d := NewDebouncer(svc, 20*time.Millisecond)

		d.Update(context.Background(), testCaller(), "granit", func(search.Results, error) {
			t.Error("cancelled query must not be delivered")
		})
		d.Cancel()

		time.Sleep(60 * time.Millisecond)
		assert.Zero(t, leads.calls.Load())
	})

	t.Run("short queries still debounce to a single empty delivery", func(t *testing.T) {
		source, leads := newFakeSource()
		svc := NewService(source, 2, 5, nil)
		d := NewDebouncer(svc, 10*time.Millisecond)

		delivered := make(chan search.Results, 1)
		d.Update(context.Background(), testCaller(), "a", func(r search.Results, err error) {
			require.NoError(t, err)
			delivered <- r
		})

		select {
		case r := <-delivered:
			assert.Zero(t, r.Total())
		case <-time.After(time.Second):
			t.Fatal("debounced search was never delivered")
		}
		assert.Zero(t, leads.calls.Load())
	})
}
