package domain

import "context"

// Repository persists role settings. Implementations exist for the embedded
// database and for the upstream CRM's settings endpoints; the store does not
// care which one it talks to.
type Repository interface {
	// ListAll returns every persisted record.
	ListAll(ctx context.Context) ([]RoleSetting, error)
	// GetByRole returns the record for one role, ErrNotFound when none exists.
	GetByRole(ctx context.Context, roleID string) (RoleSetting, error)
	// Upsert writes the record for setting.RoleID and returns the stored
	// version. A record with an empty ID is created and assigned one.
	Upsert(ctx context.Context, setting RoleSetting) (RoleSetting, error)
}
