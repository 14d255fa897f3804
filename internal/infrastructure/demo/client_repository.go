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

// ClientRepository serves clients from the fixture dataset
type ClientRepository struct {
	data *Dataset
}

// NewClientRepository creates a fixture-backed client repository
func NewClientRepository(data *Dataset) *ClientRepository {
	return &ClientRepository{data: data}
}

func (r *ClientRepository) visible(caller identity.Identity, forSearch bool) ([]crm.Client, error) {
	v := visibility{caller: caller, search: forSearch}
	if err := v.check(); err != nil {
		return nil, err
	}
	var clients []crm.Client
	for _, c := range r.data.Clients {
		if v.allowsScoped(c.RegionID, c.AssignedUserID) {
			clients = append(clients, c)
		}
	}
	sortNewestFirst(clients, func(c crm.Client) time.Time { return c.CreatedAt })
	return clients, nil
}

// FindByID finds a client by ID within the caller's visibility scope
func (r *ClientRepository) FindByID(ctx context.Context, caller identity.Identity, id uuid.UUID) (*crm.Client, error) {
	clients, err := r.visible(caller, false)
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		if c.ID == id {
			client := c
			return &client, nil
		}
	}
	return nil, shared.ErrNotFound
}

// List returns a page of clients matching the filter
func (r *ClientRepository) List(ctx context.Context, caller identity.Identity, filter shared.Filter) (shared.Paginated[crm.Client], error) {
	clients, err := r.visible(caller, false)
	if err != nil {
		return shared.Paginated[crm.Client]{}, err
	}
	var matched []crm.Client
	for _, c := range clients {
		if filter.Search != "" && !clientMatches(c, filter.Search) {
			continue
		}
		if status, ok := filter.Filters["status"]; ok && string(c.Status) != status {
			continue
		}
		matched = append(matched, c)
	}
	return paginate(matched, filter), nil
}

// Search matches query case-insensitively against name, email, phone and company
func (r *ClientRepository) Search(ctx context.Context, caller identity.Identity, query string, limit int) ([]crm.Client, error) {
	clients, err := r.visible(caller, true)
	if err != nil {
		return nil, err
	}
	var matched []crm.Client
	for _, c := range clients {
		if clientMatches(c, query) {
			matched = append(matched, c)
		}
	}
	return capped(matched, limit), nil
}

func clientMatches(c crm.Client, query string) bool {
	return search.Matches(c.Name, query) ||
		search.Matches(c.Email, query) ||
		search.Matches(c.Phone, query) ||
		search.Matches(c.Company, query)
}

var _ crm.ClientRepository = (*ClientRepository)(nil)
