package migration

import (
	"github.com/fossecrm/fosse/internal/config"
	"github.com/fossecrm/fosse/internal/rolesetting/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Module creates the settings schema on startup so embedded deployments are
// usable out of the box. Remote mode leaves the upstream CRM's schema alone.
var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.SettingsMode != config.SettingsModeEmbedded {
			return nil
		}
		return conn.AutoMigrate(&domain.RoleSetting{})
	}),
)
