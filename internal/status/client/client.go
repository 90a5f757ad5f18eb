package client

import (
	"context"

	directorydomain "github.com/fossecrm/fosse/internal/directory/domain"
	"github.com/fossecrm/fosse/internal/status/domain"
	"github.com/fossecrm/fosse/internal/upstream"
)

type directory struct {
	client *upstream.Client
}

func New(c *upstream.Client) domain.Directory {
	return &directory{client: c}
}

func (d *directory) List(ctx context.Context) ([]domain.Status, error) {
	if !d.client.Session() {
		return nil, nil
	}
	var statuses []domain.Status
	if err := d.client.Get(ctx, "/api/statuses", nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (d *directory) Update(ctx context.Context, status domain.Status) error {
	if !d.client.Session() {
		return nil
	}
	return d.client.Put(ctx, "/api/statuses/"+status.ID, status, nil)
}

// entryLister adapts the status directory to the plain {id, name} shape the
// label resolver expects.
type entryLister struct {
	dir domain.Directory
}

func NewEntryLister(dir domain.Directory) directorydomain.Lister {
	return &entryLister{dir: dir}
}

func (l *entryLister) List(ctx context.Context) ([]directorydomain.Entry, error) {
	statuses, err := l.dir.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]directorydomain.Entry, 0, len(statuses))
	for _, s := range statuses {
		entries = append(entries, directorydomain.Entry{ID: s.ID, Name: s.Name})
	}
	return entries, nil
}
