package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fossecrm/fosse/internal/rolesetting/domain"
	"gorm.io/gorm"
)

type repo struct {
	db    *gorm.DB
	genID *snowflake.Node
}

// New returns the embedded, database-backed settings repository.
func New(db *gorm.DB, genID *snowflake.Node) domain.Repository {
	return &repo{db: db, genID: genID}
}

func (r *repo) ListAll(ctx context.Context) ([]domain.RoleSetting, error) {
	var settings []domain.RoleSetting
	err := r.db.WithContext(ctx).
		Order("role_id asc").
		Find(&settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *repo) GetByRole(ctx context.Context, roleID string) (domain.RoleSetting, error) {
	var setting domain.RoleSetting
	err := r.db.WithContext(ctx).
		Where("role_id = ?", roleID).
		First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RoleSetting{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.RoleSetting{}, err
	}
	return setting, nil
}

func (r *repo) Upsert(ctx context.Context, setting domain.RoleSetting) (domain.RoleSetting, error) {
	now := time.Now().UTC()

	existing, err := r.GetByRole(ctx, setting.RoleID)
	if errors.Is(err, domain.ErrNotFound) {
		setting.ID = r.genID.Generate().String()
		setting.CreatedAt = now
		setting.UpdatedAt = now
		if err := r.db.WithContext(ctx).Create(&setting).Error; err != nil {
			return domain.RoleSetting{}, err
		}
		return setting, nil
	}
	if err != nil {
		return domain.RoleSetting{}, err
	}

	setting.ID = existing.ID
	setting.CreatedAt = existing.CreatedAt
	setting.UpdatedAt = now
	err = r.db.WithContext(ctx).
		Model(&domain.RoleSetting{ID: existing.ID}).
		Select("forced_columns", "forced_filters", "default_order", "default_status_id", "updated_at").
		Updates(&setting).Error
	if err != nil {
		return domain.RoleSetting{}, err
	}
	return setting, nil
}
