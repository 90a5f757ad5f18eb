package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fossecrm/fosse/internal/observability/metrics"
	"github.com/fossecrm/fosse/internal/session"
	"github.com/fossecrm/fosse/internal/status/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDirectory struct {
	statuses  []domain.Status
	listErr   error
	updateErr map[string]error
	updates   []domain.Status
}

func (d *fakeDirectory) List(context.Context) ([]domain.Status, error) {
	if d.listErr != nil {
		return nil, d.listErr
	}
	out := make([]domain.Status, len(d.statuses))
	copy(out, d.statuses)
	return out, nil
}

func (d *fakeDirectory) Update(_ context.Context, s domain.Status) error {
	if err := d.updateErr[s.ID]; err != nil {
		return err
	}
	d.updates = append(d.updates, s)
	for i := range d.statuses {
		if d.statuses[i].ID == s.ID {
			d.statuses[i] = s
		}
	}
	return nil
}

func newCoordinator(dir *fakeDirectory) *Coordinator {
	return New(Params{
		Log:     zap.NewNop(),
		Dir:     dir,
		Session: session.Static(true),
		Metrics: metrics.NewNop(),
	}).(*Coordinator)
}

func threeStatuses() *fakeDirectory {
	return &fakeDirectory{statuses: []domain.Status{
		{ID: "s1", Name: "New", Type: domain.TypeLead, IsFosseDefault: true},
		{ID: "s2", Name: "Working", Type: domain.TypeLead},
		{ID: "s3", Name: "Converted", Type: domain.TypeClient},
	}}
}

func TestRefresh_DerivesDefaultFromFlag(t *testing.T) {
	dir := threeStatuses()
	c := newCoordinator(dir)

	require.NoError(t, c.Refresh(context.Background()))

	id, ok := c.Default()
	assert.True(t, ok)
	assert.Equal(t, "s1", id)
}

func TestRefresh_NoFlagMeansNoDefault(t *testing.T) {
	dir := threeStatuses()
	dir.statuses[0].IsFosseDefault = false
	c := newCoordinator(dir)

	require.NoError(t, c.Refresh(context.Background()))

	_, ok := c.Default()
	assert.False(t, ok)
}

func TestSetDefault_UnsetsOldThenSetsNew(t *testing.T) {
	dir := threeStatuses()
	c := newCoordinator(dir)
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.SetDefault(context.Background(), "s2"))

	require.Len(t, dir.updates, 2)
	assert.Equal(t, "s1", dir.updates[0].ID)
	assert.False(t, dir.updates[0].IsFosseDefault)
	assert.Equal(t, "s2", dir.updates[1].ID)
	assert.True(t, dir.updates[1].IsFosseDefault)

	id, _ := c.Default()
	assert.Equal(t, "s2", id)
}

func TestSetDefault_SameIDIsNoOp(t *testing.T) {
	dir := threeStatuses()
	c := newCoordinator(dir)
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.SetDefault(context.Background(), "s1"))

	assert.Empty(t, dir.updates)
}

func TestSetDefault_UnknownStatusRejected(t *testing.T) {
	dir := threeStatuses()
	c := newCoordinator(dir)
	require.NoError(t, c.Refresh(context.Background()))

	err := c.SetDefault(context.Background(), "s99")

	assert.ErrorIs(t, err, domain.ErrUnknownStatus)
	assert.Empty(t, dir.updates)
	id, _ := c.Default()
	assert.Equal(t, "s1", id)
}

func TestSetDefault_ClearWithEmptyID(t *testing.T) {
	dir := threeStatuses()
	c := newCoordinator(dir)
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.SetDefault(context.Background(), ""))

	require.Len(t, dir.updates, 1)
	assert.Equal(t, "s1", dir.updates[0].ID)
	assert.False(t, dir.updates[0].IsFosseDefault)
	_, ok := c.Default()
	assert.False(t, ok)
}

func TestSetDefault_SecondPhaseFailureRederives(t *testing.T) {
	dir := threeStatuses()
	dir.updateErr = map[string]error{"s2": errors.New("upstream rejected")}
	c := newCoordinator(dir)
	require.NoError(t, c.Refresh(context.Background()))

	err := c.SetDefault(context.Background(), "s2")

	require.Error(t, err)
	// The old flag was already cleared, so rederivation finds no default.
	_, ok := c.Default()
	assert.False(t, ok)
}

func TestSetDefault_FirstPhaseFailureKeepsOldDefault(t *testing.T) {
	dir := threeStatuses()
	dir.updateErr = map[string]error{"s1": errors.New("upstream rejected")}
	c := newCoordinator(dir)
	require.NoError(t, c.Refresh(context.Background()))

	err := c.SetDefault(context.Background(), "s2")

	require.Error(t, err)
	id, ok := c.Default()
	assert.True(t, ok)
	assert.Equal(t, "s1", id)
}

func TestSetDefault_WithoutSessionIsNoOp(t *testing.T) {
	dir := threeStatuses()
	c := New(Params{
		Log:     zap.NewNop(),
		Dir:     dir,
		Session: session.Static(false),
		Metrics: metrics.NewNop(),
	}).(*Coordinator)

	require.NoError(t, c.SetDefault(context.Background(), "s2"))
	assert.Empty(t, dir.updates)
}
