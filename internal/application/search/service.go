// Package search implements the global search aggregator: one query fanned
// out concurrently across every searchable entity kind, merged into a
// category-ordered result set.
package search

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/crm/backend/internal/domain/billing"
	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/search"
	"github.com/crm/backend/internal/infrastructure/datasource"
)

// RepositorySource yields the repository set for a caller's session
type RepositorySource interface {
	For(caller identity.Identity) datasource.Repositories
}

// Service aggregates per-entity lookups into one result set
type Service struct {
	source           RepositorySource
	minQueryLength   int
	perCategoryLimit int
	log              *zap.Logger
}

// NewService creates a search service. Non-positive limits fall back to
// the defaults of 2 and 5.
func NewService(source RepositorySource, minQueryLength, perCategoryLimit int, log *zap.Logger) *Service {
	if minQueryLength <= 0 {
		minQueryLength = 2
	}
	if perCategoryLimit <= 0 {
		perCategoryLimit = 5
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		source:           source,
		minQueryLength:   minQueryLength,
		perCategoryLimit: perCategoryLimit,
		log:              log,
	}
}

// Search runs the query across all five entity kinds concurrently and
// waits for every lookup to settle. A failed category yields its empty
// slice and is recorded in Failed; the other categories still return.
// Queries below the minimum length return the empty set without any
// lookup.
func (s *Service) Search(ctx context.Context, caller identity.Identity, query string) (search.Results, error) {
	query = strings.TrimSpace(query)
	results := search.Empty(query)
	if utf8.RuneCountInString(query) < s.minQueryLength {
		return results, nil
	}

	repos := s.source.For(caller)
	limit := s.perCategoryLimit

	var mu sync.Mutex
	fail := func(t search.ResultType, err error) {
		mu.Lock()
		results.Failed[t] = struct{}{}
		mu.Unlock()
		s.log.Warn("search category lookup failed",
			zap.String("category", string(t)),
			zap.String("query", query),
			zap.Error(err))
	}

	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		leads, err := repos.Leads.Search(ctx, caller, query, limit)
		if err != nil {
			fail(search.TypeLead, err)
			return
		}
		results.Leads = leadResults(leads, query)
	}()

	go func() {
		defer wg.Done()
		clients, err := repos.Clients.Search(ctx, caller, query, limit)
		if err != nil {
			fail(search.TypeClient, err)
			return
		}
		results.Clients = clientResults(clients, query)
	}()

	go func() {
		defer wg.Done()
		quotes, err := repos.Quotes.Search(ctx, caller, query, limit)
		if err != nil {
			fail(search.TypeQuote, err)
			return
		}
		results.Quotes = quoteResults(quotes, query)
	}()

	go func() {
		defer wg.Done()
		invoices, err := repos.Invoices.Search(ctx, caller, query, limit)
		if err != nil {
			fail(search.TypeInvoice, err)
			return
		}
		results.Invoices = invoiceResults(invoices, query)
	}()

	go func() {
		defer wg.Done()
		items, err := repos.Inventory.Search(ctx, caller, query, limit)
		if err != nil {
			fail(search.TypeInventory, err)
			return
		}
		results.Inventory = inventoryResults(items, query)
	}()

	wg.Wait()
	return results, nil
}

func leadResults(leads []crm.Lead, query string) []search.Result {
	out := make([]search.Result, 0, len(leads))
	for _, l := range leads {
		subtitle := l.Company
		if subtitle == "" {
			subtitle = l.Email
		}
		metadata := map[string]string{
			"status": string(l.Status),
			"phone":  l.Phone,
		}
		out = append(out, search.Result{
			ID:         l.ID.String(),
			Type:       search.TypeLead,
			Title:      l.Name,
			Subtitle:   subtitle,
			Metadata:   metadata,
			Href:       "/leads/" + l.ID.String(),
			Highlights: search.FieldHighlights(l.Name, subtitle, metadata, query),
		})
	}
	return out
}

func clientResults(clients []crm.Client, query string) []search.Result {
	out := make([]search.Result, 0, len(clients))
	for _, c := range clients {
		subtitle := c.Company
		if subtitle == "" {
			subtitle = c.Email
		}
		metadata := map[string]string{
			"status": string(c.Status),
		}
		out = append(out, search.Result{
			ID:         c.ID.String(),
			Type:       search.TypeClient,
			Title:      c.Name,
			Subtitle:   subtitle,
			Metadata:   metadata,
			Href:       "/clients/" + c.ID.String(),
			Highlights: search.FieldHighlights(c.Name, subtitle, metadata, query),
		})
	}
	return out
}

func quoteResults(quotes []billing.Quote, query string) []search.Result {
	out := make([]search.Result, 0, len(quotes))
	for _, q := range quotes {
		metadata := map[string]string{
			"status": string(q.Status),
			"total":  q.Total.StringFixed(2),
		}
		out = append(out, search.Result{
			ID:         q.ID.String(),
			Type:       search.TypeQuote,
			Title:      q.Number,
			Metadata:   metadata,
			Href:       "/quotes/" + q.ID.String(),
			Highlights: search.FieldHighlights(q.Number, "", metadata, query),
		})
	}
	return out
}

func invoiceResults(invoices []billing.Invoice, query string) []search.Result {
	out := make([]search.Result, 0, len(invoices))
	for _, inv := range invoices {
		metadata := map[string]string{
			"status": string(inv.Status),
			"total":  inv.Total.StringFixed(2),
		}
		out = append(out, search.Result{
			ID:         inv.ID.String(),
			Type:       search.TypeInvoice,
			Title:      inv.Number,
			Metadata:   metadata,
			Href:       "/invoices/" + inv.ID.String(),
			Highlights: search.FieldHighlights(inv.Number, "", metadata, query),
		})
	}
	return out
}

func inventoryResults(items []catalog.InventoryItem, query string) []search.Result {
	out := make([]search.Result, 0, len(items))
	for _, it := range items {
		metadata := map[string]string{
			"category": it.Category,
			"quantity": it.Quantity.String() + " " + it.Unit,
		}
		out = append(out, search.Result{
			ID:         it.ID.String(),
			Type:       search.TypeInventory,
			Title:      it.Name,
			Subtitle:   it.SKU,
			Metadata:   metadata,
			Href:       "/inventory/" + it.ID.String(),
			Highlights: search.FieldHighlights(it.Name, it.SKU, metadata, query),
		})
	}
	return out
}
