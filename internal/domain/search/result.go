// Package search defines the unified global-search result model shared by
// the aggregator and the HTTP layer. Results are ephemeral: constructed
// per request, never persisted.
package search

// ResultType tags a search hit with its entity kind
type ResultType string

const (
	TypeLead      ResultType = "lead"
	TypeClient    ResultType = "client"
	TypeQuote     ResultType = "quote"
	TypeInvoice   ResultType = "invoice"
	TypeInventory ResultType = "inventory"
)

// CategoryOrder is the fixed display order of result categories. Within a
// category, lookup order is preserved; there is no relevance ranking.
var CategoryOrder = []ResultType{TypeLead, TypeClient, TypeQuote, TypeInvoice, TypeInventory}

// Result is a single normalized search hit. Highlights is keyed by the
// matched field: "title", "subtitle", or "metadata.<key>".
type Result struct {
	ID         string            `json:"id"`
	Type       ResultType        `json:"type"`
	Title      string            `json:"title"`
	Subtitle   string            `json:"subtitle,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Href       string            `json:"href"`
	Highlights map[string][]Span `json:"highlights,omitempty"`
}

// Results groups hits by category in the fixed display order
type Results struct {
	Query     string                  `json:"query"`
	Leads     []Result                `json:"leads"`
	Clients   []Result                `json:"clients"`
	Quotes    []Result                `json:"quotes"`
	Invoices  []Result                `json:"invoices"`
	Inventory []Result                `json:"inventory"`
	Failed    map[ResultType]struct{} `json:"-"` // categories whose lookup errored
}

// Empty returns a result set with all categories initialized. Handlers and
// consumers rely on the category slices never being nil.
func Empty(query string) Results {
	return Results{
		Query:     query,
		Leads:     []Result{},
		Clients:   []Result{},
		Quotes:    []Result{},
		Invoices:  []Result{},
		Inventory: []Result{},
		Failed:    make(map[ResultType]struct{}),
	}
}

// Total returns the number of hits across all categories
func (r Results) Total() int {
	return len(r.Leads) + len(r.Clients) + len(r.Quotes) + len(r.Invoices) + len(r.Inventory)
}
