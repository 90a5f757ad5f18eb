package domain

import (
	"context"
	"net/url"
	"time"
)

// Contact is one pool member as returned by the upstream query service.
// Timestamps are pointers because older records miss most of them.
type Contact struct {
	ID             string            `json:"id"`
	Email          string            `json:"email"`
	CreatedAt      *time.Time        `json:"created_at"`
	UpdatedAt      *time.Time        `json:"updated_at"`
	LastActivityAt *time.Time        `json:"last_activity_at"`
	AssignedAt     *time.Time        `json:"assigned_at"`
	Fields         map[string]string `json:"fields,omitempty"`
}

// Page is one result page plus pagination metadata.
type Page struct {
	Contacts []Contact `json:"contacts"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

// QueryService runs paginated, filtered, ordered contact queries. Params are
// the flat key set produced by the query builder: page, page_size, order and
// repeated filter_<column> entries.
type QueryService interface {
	Query(ctx context.Context, params url.Values) (Page, error)
}
