package preview

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	contactdomain "github.com/fossecrm/fosse/internal/contact/domain"
	"github.com/fossecrm/fosse/internal/observability/metrics"
	"github.com/fossecrm/fosse/internal/rolesetting/domain"
	"github.com/fossecrm/fosse/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeQueryService struct {
	mu      sync.Mutex
	pages   []contactdomain.Page
	err     error
	queries []url.Values
	block   chan struct{}
}

func (f *fakeQueryService) Query(_ context.Context, params url.Values) (contactdomain.Page, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, params)
	if f.err != nil {
		return contactdomain.Page{}, f.err
	}
	page := f.pages[0]
	if len(f.pages) > 1 {
		f.pages = f.pages[1:]
	}
	return page, nil
}

func newOrchestrator(contacts contactdomain.QueryService) *Orchestrator {
	return New(Params{
		Log:      zap.NewNop(),
		Contacts: contacts,
		Session:  session.Static(true),
		Metrics:  metrics.NewNop(),
	})
}

func makeContacts(n int) []contactdomain.Contact {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]contactdomain.Contact, n)
	for i := range out {
		ts := base.Add(time.Duration(i) * time.Hour)
		out[i] = contactdomain.Contact{
			ID:        fmt.Sprintf("c-%02d", i),
			Email:     fmt.Sprintf("user%02d@example.com", i),
			CreatedAt: &ts,
		}
	}
	return out
}

func TestPreview_TruncatesToTen(t *testing.T) {
	svc := &fakeQueryService{pages: []contactdomain.Page{{Contacts: makeContacts(40)}}}
	o := newOrchestrator(svc)
	setting := domain.RoleSetting{RoleID: "r1", DefaultOrder: domain.OrderCreatedAtAsc}

	got := o.Preview(context.Background(), setting, domain.OrderNone)

	assert.Len(t, got, 10)
	assert.Len(t, o.Current("r1"), 10)

	require.Len(t, svc.queries, 1)
	assert.Equal(t, "100", svc.queries[0].Get("page_size"))
	assert.Equal(t, "1", svc.queries[0].Get("page"))
	assert.Equal(t, "created_at_asc", svc.queries[0].Get("order"))
}

func TestPreview_OverrideWinsOverRecordOrder(t *testing.T) {
	svc := &fakeQueryService{pages: []contactdomain.Page{{Contacts: makeContacts(3)}}}
	o := newOrchestrator(svc)
	setting := domain.RoleSetting{RoleID: "r1", DefaultOrder: domain.OrderCreatedAtAsc}

	o.Preview(context.Background(), setting, domain.OrderEmailAsc)

	require.Len(t, svc.queries, 1)
	assert.Equal(t, "email_asc", svc.queries[0].Get("order"))
}

func TestPreview_EmptyOrdersFallBackToCreatedAtDesc(t *testing.T) {
	svc := &fakeQueryService{pages: []contactdomain.Page{{Contacts: makeContacts(3)}}}
	o := newOrchestrator(svc)
	setting := domain.RoleSetting{RoleID: "r1"}

	o.Preview(context.Background(), setting, domain.OrderNone)

	require.Len(t, svc.queries, 1)
	assert.Equal(t, "created_at_desc", svc.queries[0].Get("order"))
}

func TestPreview_ResortsAsBackstop(t *testing.T) {
	contacts := makeContacts(5)
	// Server returned them newest-first even though asc was requested.
	reversed := make([]contactdomain.Contact, len(contacts))
	for i, c := range contacts {
		reversed[len(contacts)-1-i] = c
	}
	svc := &fakeQueryService{pages: []contactdomain.Page{{Contacts: reversed}}}
	o := newOrchestrator(svc)
	setting := domain.RoleSetting{RoleID: "r1", DefaultOrder: domain.OrderCreatedAtAsc}

	got := o.Preview(context.Background(), setting, domain.OrderNone)

	require.Len(t, got, 5)
	assert.Equal(t, "c-00", got[0].ID)
	assert.Equal(t, "c-04", got[4].ID)
}

func TestPreview_FailureClearsCacheSilently(t *testing.T) {
	svc := &fakeQueryService{pages: []contactdomain.Page{{Contacts: makeContacts(5)}}}
	o := newOrchestrator(svc)
	setting := domain.RoleSetting{RoleID: "r1", DefaultOrder: domain.OrderCreatedAtDesc}

	o.Preview(context.Background(), setting, domain.OrderNone)
	require.NotEmpty(t, o.Current("r1"))

	svc.err = errors.New("query failed")
	got := o.Preview(context.Background(), setting, domain.OrderNone)

	assert.Nil(t, got)
	assert.Empty(t, o.Current("r1"))
}

func TestPreview_StaleResponseNeverOverwritesNewer(t *testing.T) {
	block := make(chan struct{})
	svc := &fakeQueryService{
		pages: []contactdomain.Page{
			{Contacts: makeContacts(3)},
			{Contacts: makeContacts(7)},
		},
		block: block,
	}
	o := newOrchestrator(svc)
	setting := domain.RoleSetting{RoleID: "r1", DefaultOrder: domain.OrderCreatedAtAsc}

	firstDone := make(chan []contactdomain.Contact, 1)
	go func() {
		firstDone <- o.Preview(context.Background(), setting, domain.OrderNone)
	}()

	// Issue a second fetch while the first is still in flight. Its sequence
	// number supersedes the first.
	secondDone := make(chan []contactdomain.Contact, 1)
	go func() {
		secondDone <- o.Preview(context.Background(), setting, domain.OrderNone)
	}()

	// Both goroutines have bumped seq before either response lands.
	time.Sleep(50 * time.Millisecond)
	close(block)

	first := <-firstDone
	second := <-secondDone

	// Whichever call carried the newer sequence installed its page; the other
	// returned the surviving cache instead of overwriting it.
	cached := o.Current("r1")
	assert.NotEmpty(t, cached)
	winner := first
	if len(second) >= len(winner) {
		winner = second
	}
	assert.Len(t, cached, len(winner))
}

func TestPreview_WithoutSessionIsNoOp(t *testing.T) {
	svc := &fakeQueryService{pages: []contactdomain.Page{{Contacts: makeContacts(3)}}}
	o := New(Params{
		Log:      zap.NewNop(),
		Contacts: svc,
		Session:  session.Static(false),
		Metrics:  metrics.NewNop(),
	})

	got := o.Preview(context.Background(), domain.RoleSetting{RoleID: "r1"}, domain.OrderNone)

	assert.Nil(t, got)
	assert.Empty(t, svc.queries)
}

func TestActiveRoleLifecycle(t *testing.T) {
	o := newOrchestrator(&fakeQueryService{})

	_, ok := o.Active()
	assert.False(t, ok)

	o.SetActive("r1")
	id, ok := o.Active()
	assert.True(t, ok)
	assert.Equal(t, "r1", id)

	o.SetActive("")
	_, ok = o.Active()
	assert.False(t, ok)
}
