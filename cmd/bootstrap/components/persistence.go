package components

import (
	"log/slog"

	"sublet-booking/internal/infra/memstore"
	"sublet-booking/internal/infra/query"
	"sublet-booking/internal/infra/readstore"
	"sublet-booking/internal/infra/uow"
	"sublet-booking/internal/pkg/config"
	"sublet-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PostgresModule = fx.Module("persistence/postgres",
	fx.Provide(
		NewSQLQueries,
		NewDBTX,
		uow.NewPostgresUoW,
		// Booking
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.BookingViewQueries)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		// Payout
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.PayoutReadQueries)),
		),
		fx.Annotate(
			readstore.NewPayoutReadStore,
			fx.As(new(queries.PayoutReadStore)),
		),
		// Property
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.PropertyReadQueries)),
		),
		fx.Annotate(
			readstore.NewPropertyReadStore,
			fx.As(new(queries.PropertyReadStore)),
		),
	),
)

var MemoryModule = fx.Module("persistence/memory",
	fx.Provide(
		NewMemStore,
		memstore.NewUnitOfWork,
		fx.Annotate(
			memstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			memstore.NewPayoutReadStore,
			fx.As(new(queries.PayoutReadStore)),
		),
		fx.Annotate(
			memstore.NewPropertyReadStore,
			fx.As(new(queries.PropertyReadStore)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *query.Queries {
	return query.New()
}

func NewDBTX(pool *pgxpool.Pool) query.DBTX {
	return pool
}

func NewMemStore(cfg config.Config, logger *slog.Logger) (*memstore.Store, error) {
	store := memstore.New()
	if cfg.Storage.SeedFile == "" {
		logger.Warn("memory store started without seed data")
		return store, nil
	}
	if err := store.LoadSeedFile(cfg.Storage.SeedFile); err != nil {
		return nil, err
	}
	logger.Info("memory store seeded", "file", cfg.Storage.SeedFile)
	return store, nil
}
