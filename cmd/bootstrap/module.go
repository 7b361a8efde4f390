package bootstrap

import (
	"sublet-booking/cmd/bootstrap/components"
	"sublet-booking/internal/pkg/config"

	"go.uber.org/fx"
)

// CoreModule wires storage and use cases; Module adds the HTTP surface.
func CoreModule(cfg config.Config) fx.Option {
	return fx.Options(
		ConfigModule(cfg),
		LoggerModule,
		storageModule(cfg.Storage.Driver),
		components.UseCaseModule,
	)
}

func Module(cfg config.Config) fx.Option {
	return fx.Options(
		CoreModule(cfg),
		JWTModule,
		components.HandlerModule,
	)
}

func storageModule(driver string) fx.Option {
	if driver == config.StorageDriverMemory {
		return components.MemoryModule
	}
	return fx.Options(DBModule, components.PostgresModule)
}
