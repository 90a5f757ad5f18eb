package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/fossecrm/fosse/internal/rolesetting/domain"
	"github.com/fossecrm/fosse/internal/upstream"
)

// remote satisfies the settings repository against the upstream CRM's own
// settings endpoints, for deployments where the CRM stays the system of
// record.
type remote struct {
	client *upstream.Client
}

func New(c *upstream.Client) domain.Repository {
	return &remote{client: c}
}

func (r *remote) ListAll(ctx context.Context) ([]domain.RoleSetting, error) {
	var settings []domain.RoleSetting
	if err := r.client.Get(ctx, "/api/role-settings", nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *remote) GetByRole(ctx context.Context, roleID string) (domain.RoleSetting, error) {
	var setting domain.RoleSetting
	err := r.client.Get(ctx, "/api/role-settings/"+roleID, nil, &setting)
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return domain.RoleSetting{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.RoleSetting{}, err
	}
	return setting, nil
}

func (r *remote) Upsert(ctx context.Context, setting domain.RoleSetting) (domain.RoleSetting, error) {
	body := map[string]any{
		"forced_columns":    setting.ForcedColumns,
		"forced_filters":    setting.ForcedFilters,
		"default_order":     setting.DefaultOrder,
		"default_status_id": setting.DefaultStatusID,
	}
	// An empty confirmation body counts as success; the optimistic record
	// then keeps standing in for the server copy.
	var updated domain.RoleSetting
	if err := r.client.Put(ctx, "/api/role-settings/"+setting.RoleID, body, &updated); err != nil {
		return domain.RoleSetting{}, err
	}
	if updated.RoleID == "" {
		return setting, nil
	}
	return updated, nil
}
