package status

import (
	"github.com/fossecrm/fosse/internal/status/client"
	"github.com/fossecrm/fosse/internal/status/service"
	"go.uber.org/fx"
)

var Module = fx.Module("status",
	fx.Provide(client.New),
	fx.Provide(fx.Annotate(client.NewEntryLister, fx.ResultTags(`name:"status_entries"`))),
	fx.Provide(service.New),
)
