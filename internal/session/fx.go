package session

import (
	"github.com/fossecrm/fosse/internal/config"
	"github.com/fossecrm/fosse/internal/upstream"
	"go.uber.org/fx"
)

// Provide picks the session source: embedded deployments own their settings
// storage and are always "logged in"; remote ones follow the upstream
// credential.
func Provide(cfg config.Config, client *upstream.Client) Provider {
	if cfg.SettingsMode == config.SettingsModeEmbedded {
		return Static(true)
	}
	return FromClient(client)
}

var Module = fx.Module("session",
	fx.Provide(Provide),
)
