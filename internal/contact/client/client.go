package client

import (
	"context"
	"net/url"

	"github.com/fossecrm/fosse/internal/contact/domain"
	"github.com/fossecrm/fosse/internal/upstream"
)

type queryService struct {
	client *upstream.Client
}

func New(c *upstream.Client) domain.QueryService {
	return &queryService{client: c}
}

func (s *queryService) Query(ctx context.Context, params url.Values) (domain.Page, error) {
	if !s.client.Session() {
		return domain.Page{}, nil
	}
	var page domain.Page
	if err := s.client.Get(ctx, "/api/contacts", params, &page); err != nil {
		return domain.Page{}, err
	}
	return page, nil
}
