package directory

import (
	"context"
	"time"

	"github.com/fossecrm/fosse/internal/cache"
	"github.com/fossecrm/fosse/internal/clock"
	"github.com/fossecrm/fosse/internal/column"
	"github.com/fossecrm/fosse/internal/directory/domain"
	"go.uber.org/zap"
)

const entryTTL = 5 * time.Minute

// Resolver answers id→name lookups for filter option sources, caching each
// directory listing briefly. Lookups are best-effort: on fetch failure the
// resolver logs and answers as if the id were unknown.
type Resolver struct {
	log     *zap.Logger
	listers map[column.OptionSource]domain.Lister
	entries cache.Cache[column.OptionSource, []domain.Entry]
}

func NewResolver(log *zap.Logger, clk clock.Clock, listers map[column.OptionSource]domain.Lister) *Resolver {
	return &Resolver{
		log:     log.Named("directory.resolver"),
		listers: listers,
		entries: cache.NewTTLCache[column.OptionSource, []domain.Entry](clk),
	}
}

// NameByID returns the display name for an id within a source. The second
// return is false when the id is unknown, including when the source cannot
// be listed.
func (r *Resolver) NameByID(ctx context.Context, source column.OptionSource, id string) (string, bool) {
	for _, e := range r.list(ctx, source) {
		if e.ID == id {
			return e.Name, true
		}
	}
	return "", false
}

// Options returns the current entries of a source for option labelling.
func (r *Resolver) Options(ctx context.Context, source column.OptionSource) []domain.Entry {
	return r.list(ctx, source)
}

// Invalidate drops every cached listing so the next lookup refetches.
func (r *Resolver) Invalidate() {
	r.entries.Purge()
}

func (r *Resolver) list(ctx context.Context, source column.OptionSource) []domain.Entry {
	lister, ok := r.listers[source]
	if !ok {
		return nil
	}

	if cached, fresh := r.entries.Get(source); fresh {
		return cached
	}

	entries, err := lister.List(ctx)
	if err != nil {
		r.log.Warn("directory_list_failed", zap.String("source", string(source)), zap.Error(err))
		return nil
	}

	r.entries.Set(source, entries, entryTTL)
	return entries
}
