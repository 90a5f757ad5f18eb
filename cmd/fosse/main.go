package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/fossecrm/fosse/internal/clock"
	"github.com/fossecrm/fosse/internal/config"
	"github.com/fossecrm/fosse/internal/contact"
	"github.com/fossecrm/fosse/internal/directory"
	"github.com/fossecrm/fosse/internal/logger"
	"github.com/fossecrm/fosse/internal/migration"
	"github.com/fossecrm/fosse/internal/notify"
	"github.com/fossecrm/fosse/internal/observability/metrics"
	"github.com/fossecrm/fosse/internal/preview"
	"github.com/fossecrm/fosse/internal/rolesetting"
	"github.com/fossecrm/fosse/internal/scheduler"
	"github.com/fossecrm/fosse/internal/server"
	"github.com/fossecrm/fosse/internal/session"
	"github.com/fossecrm/fosse/internal/status"
	"github.com/fossecrm/fosse/internal/upstream"
	"github.com/fossecrm/fosse/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		fx.Provide(NewUpstreamClient),
		fx.Provide(clock.System),
		fx.Provide(notify.New),
		fx.Provide(metrics.Provide),
		db.Module,
		migration.Module,
		session.Module,

		directory.Module,
		status.Module,
		contact.Module,
		preview.Module,
		rolesetting.Module,

		scheduler.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func NewUpstreamClient(cfg config.Config) *upstream.Client {
	return upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamToken)
}
