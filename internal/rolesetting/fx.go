package rolesetting

import (
	"github.com/bwmarrin/snowflake"
	"github.com/fossecrm/fosse/internal/config"
	"github.com/fossecrm/fosse/internal/directory"
	"github.com/fossecrm/fosse/internal/preview"
	"github.com/fossecrm/fosse/internal/rolesetting/client"
	"github.com/fossecrm/fosse/internal/rolesetting/domain"
	"github.com/fossecrm/fosse/internal/rolesetting/filterspec"
	"github.com/fossecrm/fosse/internal/rolesetting/repository"
	"github.com/fossecrm/fosse/internal/rolesetting/store"
	"github.com/fossecrm/fosse/internal/upstream"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func provideRepository(cfg config.Config, db *gorm.DB, genID *snowflake.Node, up *upstream.Client) domain.Repository {
	if cfg.SettingsMode == config.SettingsModeRemote {
		return client.New(up)
	}
	return repository.New(db, genID)
}

var Module = fx.Module("rolesetting",
	fx.Provide(provideRepository),
	fx.Provide(store.New),
	fx.Provide(func(r *directory.Resolver) filterspec.Lookup { return r }),
	fx.Provide(func(o *preview.Orchestrator) store.PreviewTrigger { return o }),
)
