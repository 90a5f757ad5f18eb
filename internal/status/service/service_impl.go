package service

import (
	"context"
	"sync"

	"github.com/fossecrm/fosse/internal/observability/metrics"
	"github.com/fossecrm/fosse/internal/session"
	"github.com/fossecrm/fosse/internal/status/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Dir     domain.Directory
	Session session.Provider
	Metrics *metrics.Metrics
}

type Coordinator struct {
	log     *zap.Logger
	dir     domain.Directory
	session session.Provider
	metrics *metrics.Metrics

	mu        sync.Mutex
	defaultID string
}

func New(p Params) domain.Coordinator {
	return &Coordinator{
		log:     p.Log.Named("status.coordinator"),
		dir:     p.Dir,
		session: p.Session,
		metrics: p.Metrics,
	}
}

func (c *Coordinator) Default() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.defaultID, c.defaultID != ""
}

// SetDefault flips the flag off the old default and onto the new one as two
// separate directory updates. The window between the two calls can leave no
// status flagged; Refresh self-heals that on the next load.
func (c *Coordinator) SetDefault(ctx context.Context, newStatusID string) error {
	if !c.session.Valid() {
		return nil
	}

	c.mu.Lock()
	oldID := c.defaultID
	c.mu.Unlock()
	if newStatusID == oldID {
		return nil
	}

	statuses, err := c.dir.List(ctx)
	if err != nil {
		return c.failAndRederive(ctx, err)
	}
	byID := make(map[string]domain.Status, len(statuses))
	for _, s := range statuses {
		byID[s.ID] = s
	}
	if newStatusID != "" {
		if _, ok := byID[newStatusID]; !ok {
			return domain.ErrUnknownStatus
		}
	}

	if old, ok := byID[oldID]; ok && oldID != "" {
		old.IsFosseDefault = false
		if err := c.dir.Update(ctx, old); err != nil {
			return c.failAndRederive(ctx, err)
		}
	}
	if newStatusID != "" {
		next := byID[newStatusID]
		next.IsFosseDefault = true
		if err := c.dir.Update(ctx, next); err != nil {
			return c.failAndRederive(ctx, err)
		}
	}

	c.mu.Lock()
	c.defaultID = newStatusID
	c.mu.Unlock()
	c.metrics.DefaultStatusFlips.Inc()
	return nil
}

// Refresh derives the default strictly by scanning for the flag.
func (c *Coordinator) Refresh(ctx context.Context) error {
	if !c.session.Valid() {
		return nil
	}
	statuses, err := c.dir.List(ctx)
	if err != nil {
		return err
	}
	derived := ""
	for _, s := range statuses {
		if s.IsFosseDefault {
			derived = s.ID
			break
		}
	}
	c.mu.Lock()
	c.defaultID = derived
	c.mu.Unlock()
	return nil
}

func (c *Coordinator) failAndRederive(ctx context.Context, cause error) error {
	c.log.Warn("default_status_mutation_failed", zap.Error(cause))
	if err := c.Refresh(ctx); err != nil {
		c.log.Warn("default_status_rederive_failed", zap.Error(err))
	}
	return cause
}
