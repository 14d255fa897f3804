package search

import (
	"context"
	"sync"
	"time"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/search"
)

// Debouncer coalesces rapid query updates into a single search. Each
// update restarts the quiet-period timer and bumps a generation counter;
// when a search finally runs, its results are delivered only if no newer
// update arrived in the meantime. Stale responses are discarded, never
// delivered out of order.
type Debouncer struct {
	svc      *Service
	interval time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
}

// NewDebouncer creates a debouncer over the given search service. A
// non-positive interval falls back to 300ms.
func NewDebouncer(svc *Service, interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = 300 * time.Millisecond
	}
	return &Debouncer{svc: svc, interval: interval}
}

// Update registers a new query. deliver is invoked at most once, after the
// quiet period, and only if this update is still the latest.
func (d *Debouncer) Update(ctx context.Context, caller identity.Identity, query string, deliver func(search.Results, error)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	gen := d.generation

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		if !d.current(gen) {
			return
		}
		results, err := d.svc.Search(ctx, caller, query)
		if !d.current(gen) {
			// a newer query was accepted while this one was in flight
			return
		}
		deliver(results, err)
	})
}

// Cancel discards any pending query without delivering it
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return gen == d.generation
}
