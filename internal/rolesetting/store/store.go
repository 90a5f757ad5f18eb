package store

import (
	"context"
	"errors"
	"sync"

	contactdomain "github.com/fossecrm/fosse/internal/contact/domain"
	"github.com/fossecrm/fosse/internal/notify"
	"github.com/fossecrm/fosse/internal/observability/metrics"
	"github.com/fossecrm/fosse/internal/rolesetting/domain"
	"github.com/fossecrm/fosse/internal/rolesetting/filterspec"
	"github.com/fossecrm/fosse/internal/session"
	"github.com/fossecrm/fosse/internal/upstream"
	"github.com/fossecrm/fosse/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// PreviewTrigger is the slice of the preview orchestrator the store needs:
// after a successful save for the actively previewed role it re-triggers a
// fetch with the record's now-current order.
type PreviewTrigger interface {
	Active() (string, bool)
	Preview(ctx context.Context, setting domain.RoleSetting, orderOverride domain.Order) []contactdomain.Contact
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Repo     domain.Repository
	Session  session.Provider
	Notifier notify.Notifier
	Metrics  *metrics.Metrics
	Lookup   filterspec.Lookup
	Preview  PreviewTrigger `optional:"true"`
}

// Store keeps one settings record per role and owns the optimistic-update
// contract: apply first, persist second, roll back by re-fetch only when the
// failure is definite. The mutex guards map integrity, not update
// serialization; concurrent updates for one role race last-issued-wins.
type Store struct {
	log      *zap.Logger
	repo     domain.Repository
	session  session.Provider
	notifier notify.Notifier
	metrics  *metrics.Metrics
	lookup   filterspec.Lookup
	preview  PreviewTrigger

	mu      sync.Mutex
	records map[string]domain.RoleSetting
	saving  map[string]bool
}

func New(p Params) domain.Store {
	return &Store{
		log:      p.Log.Named("rolesetting.store"),
		repo:     p.Repo,
		session:  p.Session,
		notifier: p.Notifier,
		metrics:  p.Metrics,
		lookup:   p.Lookup,
		preview:  p.Preview,
		records:  make(map[string]domain.RoleSetting),
		saving:   make(map[string]bool),
	}
}

func (s *Store) LoadAll(ctx context.Context) error {
	if !s.session.Valid() {
		return nil
	}
	settings, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	records := make(map[string]domain.RoleSetting, len(settings))
	for _, setting := range settings {
		records[setting.RoleID] = setting.Clone()
	}
	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	return nil
}

// LoadOne fetches or synthesizes the record for one role. A missing record
// is not an error: the caller gets the in-memory default, which becomes
// durable on its first successful update. Other fetch failures are logged
// and also yield the default so the caller stays navigable.
func (s *Store) LoadOne(ctx context.Context, roleID string) domain.RoleSetting {
	if !s.session.Valid() {
		if current, ok := s.Get(roleID); ok {
			return current
		}
		return domain.DefaultRoleSetting(roleID)
	}

	setting, err := s.repo.GetByRole(ctx, roleID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		setting = domain.DefaultRoleSetting(roleID)
	default:
		s.log.Warn("role_setting_fetch_failed", zap.String("role_id", roleID), zap.Error(err))
		setting = domain.DefaultRoleSetting(roleID)
	}

	s.mu.Lock()
	s.records[roleID] = setting.Clone()
	s.mu.Unlock()
	return setting
}

func (s *Store) Get(roleID string) (domain.RoleSetting, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	setting, ok := s.records[roleID]
	if !ok {
		return domain.RoleSetting{}, false
	}
	return setting.Clone(), true
}

func (s *Store) All() map[string]domain.RoleSetting {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.RoleSetting, len(s.records))
	for roleID, setting := range s.records {
		out[roleID] = setting.Clone()
	}
	return out
}

func (s *Store) Saving(roleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving[roleID]
}

// Update applies changes optimistically, persists the merge of changes over
// the pre-image, and reconciles afterwards: adopt server id and timestamps
// on success, roll back by re-fetch on definite failure, keep the optimistic
// value on ambiguous failure, swallow an auth redirect entirely.
func (s *Store) Update(ctx context.Context, roleID string, changes domain.UpdateChanges) domain.UpdateResult {
	if roleID == "" {
		return domain.UpdateResult{}
	}
	if !s.session.Valid() {
		current, _ := s.Get(roleID)
		return domain.UpdateResult{Setting: current}
	}
	if changes.ForcedFilters != nil {
		normalized := filterspec.NormalizeSet(ctx, *changes.ForcedFilters, s.lookup)
		changes.ForcedFilters = &normalized
	}

	s.mu.Lock()
	pre, ok := s.records[roleID]
	if !ok {
		pre = domain.DefaultRoleSetting(roleID)
	}
	pre = pre.Clone()
	optimistic := apply(pre, changes)
	s.records[roleID] = optimistic.Clone()
	s.saving[roleID] = true
	s.mu.Unlock()

	persisted, err := s.repo.Upsert(ctx, optimistic.Clone())

	s.mu.Lock()
	s.saving[roleID] = false
	s.mu.Unlock()

	if err == nil {
		s.adopt(roleID, persisted)
		s.metrics.SettingsSaves.WithLabelValues(metrics.SaveResultSuccess).Inc()
		s.triggerPreview(ctx, roleID)
		current, _ := s.Get(roleID)
		return domain.UpdateResult{Setting: current}
	}

	switch {
	case isAuthRedirect(err):
		s.log.Debug("role_setting_save_during_reauth", zap.String("role_id", roleID))
		s.metrics.SettingsSaves.WithLabelValues(metrics.SaveResultSwallowed).Inc()
		return domain.UpdateResult{Setting: optimistic}
	case isDefinite(err):
		notice := upstream.Notice(err)
		s.log.Warn("role_setting_save_rejected",
			zap.String("role_id", roleID), zap.Error(err))
		s.notifier.Failure(notice)
		rolledBack := s.LoadOne(ctx, roleID)
		s.metrics.SettingsSaves.WithLabelValues(metrics.SaveResultRolledBack).Inc()
		return domain.UpdateResult{Setting: rolledBack, RolledBack: true, Notice: notice}
	default:
		// The mutation may have applied server-side; keep the optimistic
		// value rather than guessing.
		s.log.Warn("role_setting_save_unconfirmed",
			zap.String("role_id", roleID), zap.Error(err))
		s.metrics.SettingsSaves.WithLabelValues(metrics.SaveResultKept).Inc()
		return domain.UpdateResult{Setting: optimistic}
	}
}

// adopt merges server-assigned identity into the in-memory record without
// touching the optimistically written fields.
func (s *Store) adopt(roleID string, persisted domain.RoleSetting) {
	if persisted.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.records[roleID]
	if !ok {
		return
	}
	current.ID = persisted.ID
	if !persisted.CreatedAt.IsZero() {
		current.CreatedAt = persisted.CreatedAt
	}
	if !persisted.UpdatedAt.IsZero() {
		current.UpdatedAt = persisted.UpdatedAt
	}
	s.records[roleID] = current
}

func (s *Store) triggerPreview(ctx context.Context, roleID string) {
	if s.preview == nil {
		return
	}
	active, ok := s.preview.Active()
	if !ok || active != roleID {
		return
	}
	current, ok := s.Get(roleID)
	if !ok {
		return
	}
	s.preview.Preview(ctx, current, domain.OrderNone)
}

func isAuthRedirect(err error) bool {
	return upstream.Classify(err) == upstream.ClassAuthRedirect
}

func isDefinite(err error) bool {
	return upstream.Classify(err) == upstream.ClassDefinite || db.IsDuplicateKeyErr(err)
}

func apply(base domain.RoleSetting, changes domain.UpdateChanges) domain.RoleSetting {
	out := base.Clone()
	if changes.ForcedColumns != nil {
		out.ForcedColumns = datatypes.JSONSlice[string](append([]string(nil), *changes.ForcedColumns...))
	}
	if changes.ForcedFilters != nil {
		out.ForcedFilters = changes.ForcedFilters.Clone()
	}
	if changes.DefaultOrder != nil {
		out.DefaultOrder = *changes.DefaultOrder
	}
	if changes.DefaultStatusID != nil {
		if *changes.DefaultStatusID == "" {
			out.DefaultStatusID = nil
		} else {
			id := *changes.DefaultStatusID
			out.DefaultStatusID = &id
		}
	}
	return out
}
