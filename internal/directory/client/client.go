package client

import (
	"context"

	"github.com/fossecrm/fosse/internal/directory/domain"
	"github.com/fossecrm/fosse/internal/upstream"
)

// lister fetches one upstream directory listing.
type lister struct {
	client *upstream.Client
	path   string
}

func (l *lister) List(ctx context.Context) ([]domain.Entry, error) {
	if !l.client.Session() {
		return nil, nil
	}
	var entries []domain.Entry
	if err := l.client.Get(ctx, l.path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func NewRoles(c *upstream.Client) domain.Roles     { return &lister{client: c, path: "/api/roles"} }
func NewSources(c *upstream.Client) domain.Sources { return &lister{client: c, path: "/api/sources"} }
func NewUsers(c *upstream.Client) domain.Users     { return &lister{client: c, path: "/api/users"} }
func NewTeams(c *upstream.Client) domain.Teams     { return &lister{client: c, path: "/api/teams"} }
