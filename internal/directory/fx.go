package directory

import (
	"github.com/fossecrm/fosse/internal/clock"
	"github.com/fossecrm/fosse/internal/column"
	"github.com/fossecrm/fosse/internal/directory/client"
	"github.com/fossecrm/fosse/internal/directory/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type resolverParams struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	Sources  domain.Sources
	Users    domain.Users
	Teams    domain.Teams
	Statuses domain.Lister `name:"status_entries"`
}

func provideResolver(p resolverParams) *Resolver {
	return NewResolver(p.Log, p.Clock, map[column.OptionSource]domain.Lister{
		column.OptionsSources:  p.Sources,
		column.OptionsUsers:    p.Users,
		column.OptionsTeams:    p.Teams,
		column.OptionsStatuses: p.Statuses,
	})
}

var Module = fx.Module("directory",
	fx.Provide(client.NewRoles),
	fx.Provide(client.NewSources),
	fx.Provide(client.NewUsers),
	fx.Provide(client.NewTeams),
	fx.Provide(provideResolver),
)
