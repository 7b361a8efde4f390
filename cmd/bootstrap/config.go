package bootstrap

import (
	"sublet-booking/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule supplies a config that was already loaded, so the storage
// driver can be chosen before the graph is built.
func ConfigModule(cfg config.Config) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
	)
}
