package demo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/search"
	"github.com/crm/backend/internal/domain/shared"
)

// LeadRepository serves leads from the fixture dataset
type LeadRepository struct {
	data *Dataset
}

// NewLeadRepository creates a fixture-backed lead repository
func NewLeadRepository(data *Dataset) *LeadRepository {
	return &LeadRepository{data: data}
}

func (r *LeadRepository) visible(caller identity.Identity, forSearch bool) ([]crm.Lead, error) {
	v := visibility{caller: caller, search: forSearch}
	if err := v.check(); err != nil {
		return nil, err
	}
	var leads []crm.Lead
	for _, l := range r.data.Leads {
		if v.allowsScoped(l.RegionID, l.AssignedUserID) {
			leads = append(leads, l)
		}
	}
	sortNewestFirst(leads, func(l crm.Lead) time.Time { return l.CreatedAt })
	return leads, nil
}

// FindByID finds a lead by ID within the caller's visibility scope
func (r *LeadRepository) FindByID(ctx context.Context, caller identity.Identity, id uuid.UUID) (*crm.Lead, error) {
	leads, err := r.visible(caller, false)
	if err != nil {
		return nil, err
	}
	for _, l := range leads {
		if l.ID == id {
			lead := l
			return &lead, nil
		}
	}
	return nil, shared.ErrNotFound
}

// List returns a page of leads matching the filter
func (r *LeadRepository) List(ctx context.Context, caller identity.Identity, filter shared.Filter) (shared.Paginated[crm.Lead], error) {
	leads, err := r.visible(caller, false)
	if err != nil {
		return shared.Paginated[crm.Lead]{}, err
	}
	var matched []crm.Lead
	for _, l := range leads {
		if filter.Search != "" && !leadMatches(l, filter.Search) {
			continue
		}
		if status, ok := filter.Filters["status"]; ok && string(l.Status) != status {
			continue
		}
		matched = append(matched, l)
	}
	return paginate(matched, filter), nil
}

// CreatedSince returns leads created on or after the given instant, newest first
func (r *LeadRepository) CreatedSince(ctx context.Context, caller identity.Identity, since time.Time) ([]crm.Lead, error) {
	leads, err := r.visible(caller, false)
	if err != nil {
		return nil, err
	}
	var recent []crm.Lead
	for _, l := range leads {
		if !l.CreatedAt.Before(since) {
			recent = append(recent, l)
		}
	}
	return recent, nil
}

// Search matches query case-insensitively against name, email, phone and company
func (r *LeadRepository) Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]crm.Lead, error) {
	leads, err := r.visible(caller, true)
	if err != nil {
		return nil, err
	}
	var matched []crm.Lead
	for _, l := range leads {
		if leadMatches(l, query) {
			matched = append(matched, l)
		}
	}
	return capped(matched, limit), nil
}

func leadMatches(l crm.Lead, query string) bool {
	return search.Matches(l.Name, query) ||
		search.Matches(l.Email, query) ||
		search.Matches(l.Phone, query) ||
		search.Matches(l.Company, query)
}

var _ crm.LeadRepository = (*LeadRepository)(nil)
