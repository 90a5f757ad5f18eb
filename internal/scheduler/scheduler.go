package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/fossecrm/fosse/internal/clock"
	"github.com/fossecrm/fosse/internal/directory"
	"github.com/fossecrm/fosse/internal/observability/metrics"
	rolesettingdomain "github.com/fossecrm/fosse/internal/rolesetting/domain"
	statusdomain "github.com/fossecrm/fosse/internal/status/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const jobTimeout = 30 * time.Second

type Config struct {
	RunInterval time.Duration
}

type Params struct {
	fx.In

	Log         *zap.Logger
	Clock       clock.Clock
	Store       rolesettingdomain.Store
	Coordinator statusdomain.Coordinator
	Resolver    *directory.Resolver
	Metrics     *metrics.Metrics
	Config      Config `optional:"true"`
}

// Scheduler keeps locally cached upstream state from drifting: it reloads the
// settings map, re-derives the pool default status, and drops stale directory
// listings on a fixed interval. The first sweep runs at startup and doubles
// as warmup.
type Scheduler struct {
	log         *zap.Logger
	clock       clock.Clock
	cfg         Config
	store       rolesettingdomain.Store
	coordinator statusdomain.Coordinator
	resolver    *directory.Resolver
	metrics     *metrics.Metrics
}

func New(p Params) *Scheduler {
	cfg := p.Config
	if cfg.RunInterval <= 0 {
		cfg.RunInterval = 5 * time.Minute
	}
	return &Scheduler{
		log:         p.Log.Named("scheduler"),
		clock:       p.Clock,
		cfg:         cfg,
		store:       p.Store,
		coordinator: p.Coordinator,
		resolver:    p.Resolver,
		metrics:     p.Metrics,
	}
}

func (s *Scheduler) runJob(parent context.Context, name string, fn func(ctx context.Context) error) error {
	start := s.clock.Now()
	ctx, cancel := context.WithTimeout(parent, jobTimeout)
	defer cancel()

	err := fn(ctx)
	if err != nil {
		s.metrics.RefreshFailures.WithLabelValues(name).Inc()
		s.log.Warn("refresh job failed",
			zap.String("job", name),
			zap.Duration("elapsed", s.clock.Now().Sub(start)),
			zap.Error(err))
		return err
	}
	return nil
}

// RunOnce executes one full refresh sweep. Job failures are joined, not
// short-circuited; a dead upstream should not stop the local invalidation.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.metrics.RefreshRuns.Inc()

	var err error
	err = errors.Join(err, s.runJob(ctx, "settings_reload", s.store.LoadAll))
	err = errors.Join(err, s.runJob(ctx, "default_status_refresh", s.coordinator.Refresh))
	err = errors.Join(err, s.runJob(ctx, "directory_invalidate", func(context.Context) error {
		s.resolver.Invalidate()
		return nil
	}))
	return err
}

// RunForever sweeps on the configured interval until the context ends.
func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("refresh sweep incomplete", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
