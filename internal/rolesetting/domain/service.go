package domain

import (
	"context"
	"errors"
)

// UpdateChanges is a partial mutation of a role's settings. Nil fields are
// left untouched. A DefaultStatusID pointing at the empty string clears the
// stored reference.
type UpdateChanges struct {
	ForcedColumns   *[]string
	ForcedFilters   *FilterSet
	DefaultOrder    *Order
	DefaultStatusID *string
}

// Empty reports whether the mutation changes nothing.
func (c UpdateChanges) Empty() bool {
	return c.ForcedColumns == nil && c.ForcedFilters == nil &&
		c.DefaultOrder == nil && c.DefaultStatusID == nil
}

// UpdateResult tells the caller what an update ended up doing. RolledBack is
// set when persistence failed definitively and the optimistic write was
// discarded; Notice carries the user-facing failure message in that case.
type UpdateResult struct {
	Setting    RoleSetting
	RolledBack bool
	Notice     string
}

// Store holds one settings record per role with optimistic mutation.
type Store interface {
	// LoadAll replaces the local map with every persisted record. Without a
	// valid session it silently does nothing.
	LoadAll(ctx context.Context) error
	// LoadOne fetches or synthesizes the record for one role. It never
	// returns an error to keep callers navigable; fetch failures other than
	// not-found are logged and yield the default record.
	LoadOne(ctx context.Context, roleID string) RoleSetting
	// Get returns the in-memory record for a role, if loaded.
	Get(roleID string) (RoleSetting, bool)
	// All returns a snapshot of every loaded record keyed by role id.
	All() map[string]RoleSetting
	// Update applies changes optimistically, persists them, and rolls back
	// on definite failure. See UpdateResult.
	Update(ctx context.Context, roleID string, changes UpdateChanges) UpdateResult
	// Saving reports whether a persistence call is in flight for the role.
	Saving(roleID string) bool
}

var (
	ErrNotFound    = errors.New("not_found")
	ErrInvalidRole = errors.New("invalid_role")
)
