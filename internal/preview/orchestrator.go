package preview

import (
	"context"
	"sync"

	contactdomain "github.com/fossecrm/fosse/internal/contact/domain"
	"github.com/fossecrm/fosse/internal/observability/metrics"
	"github.com/fossecrm/fosse/internal/rolesetting/domain"
	"github.com/fossecrm/fosse/internal/rolesetting/order"
	"github.com/fossecrm/fosse/internal/rolesetting/query"
	"github.com/fossecrm/fosse/internal/session"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// fetchPageSize bounds the page pulled from the query service.
	fetchPageSize = 100
	// keepCount is how much of the page survives as the cached preview.
	keepCount = 10
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Contacts contactdomain.QueryService
	Session  session.Provider
	Metrics  *metrics.Metrics
}

// Orchestrator fetches bounded preview pages and caches the latest one per
// role. Responses are applied last-completed-wins, made explicit with a
// monotonic sequence counter per role so a superseded fetch can never
// overwrite a newer one.
type Orchestrator struct {
	log      *zap.Logger
	contacts contactdomain.QueryService
	session  session.Provider
	metrics  *metrics.Metrics

	mu         sync.Mutex
	activeRole string
	seq        map[string]uint64
	cache      map[string][]contactdomain.Contact
}

func New(p Params) *Orchestrator {
	return &Orchestrator{
		log:      p.Log.Named("preview"),
		contacts: p.Contacts,
		session:  p.Session,
		metrics:  p.Metrics,
		seq:      make(map[string]uint64),
		cache:    make(map[string][]contactdomain.Contact),
	}
}

// SetActive marks the role whose preview is currently open; settings updates
// for that role re-trigger a fetch. Empty clears the marker.
func (o *Orchestrator) SetActive(roleID string) {
	o.mu.Lock()
	o.activeRole = roleID
	o.mu.Unlock()
}

// Active returns the role currently under preview, if any.
func (o *Orchestrator) Active() (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activeRole, o.activeRole != ""
}

// Current returns the cached preview for a role.
func (o *Orchestrator) Current(roleID string) []contactdomain.Contact {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]contactdomain.Contact(nil), o.cache[roleID]...)
}

// Clear drops a role's cached preview.
func (o *Orchestrator) Clear(roleID string) {
	o.mu.Lock()
	delete(o.cache, roleID)
	o.mu.Unlock()
}

// Preview fetches one bounded page for the setting's role, defensively
// re-sorts it, truncates, and caches it. Failures clear the cache and are
// never propagated; the caller observes updated (or emptied) state only.
func (o *Orchestrator) Preview(ctx context.Context, setting domain.RoleSetting, orderOverride domain.Order) []contactdomain.Contact {
	if !o.session.Valid() {
		return nil
	}
	roleID := setting.RoleID

	resolved := orderOverride
	if resolved == "" || resolved == domain.OrderNone {
		resolved = setting.DefaultOrder
	}
	resolved = resolved.Effective()

	o.mu.Lock()
	o.seq[roleID]++
	issued := o.seq[roleID]
	o.mu.Unlock()

	params := query.Build(setting, resolved, 1, fetchPageSize)
	o.metrics.PreviewFetches.Inc()

	page, err := o.contacts.Query(ctx, params)
	if err != nil {
		o.metrics.PreviewFailures.Inc()
		o.log.Warn("preview_fetch_failed",
			zap.String("role_id", roleID),
			zap.String("order", string(resolved)),
			zap.Error(err))
		o.apply(roleID, issued, nil)
		return nil
	}

	// Backstop for servers that do not implement the requested order yet.
	sorted := order.Sort(page.Contacts, resolved)
	if len(sorted) > keepCount {
		sorted = sorted[:keepCount]
	}
	if !o.apply(roleID, issued, sorted) {
		o.mu.Lock()
		current := append([]contactdomain.Contact(nil), o.cache[roleID]...)
		o.mu.Unlock()
		return current
	}
	return append([]contactdomain.Contact(nil), sorted...)
}

// apply installs the result unless a newer fetch for the role was issued
// meanwhile.
func (o *Orchestrator) apply(roleID string, issued uint64, contacts []contactdomain.Contact) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.seq[roleID] != issued {
		o.metrics.PreviewStaleDrops.Inc()
		return false
	}
	if contacts == nil {
		delete(o.cache, roleID)
		return true
	}
	o.cache[roleID] = contacts
	return true
}

var Module = fx.Module("preview",
	fx.Provide(New),
)
