package contact

import (
	"github.com/fossecrm/fosse/internal/contact/client"
	"go.uber.org/fx"
)

var Module = fx.Module("contact",
	fx.Provide(client.New),
)
