package components

import (
	"sublet-booking/internal/domain/booking"
	"sublet-booking/internal/domain/payout"
	"sublet-booking/internal/pkg/clock"
	"sublet-booking/internal/pkg/config"
	"sublet-booking/internal/usecase/commands"
	"sublet-booking/internal/usecase/queries"
	"sublet-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) booking.PriceCalculator {
		return booking.NewDefaultPriceCalculator(cfg.Booking.GuestServiceFeePercent)
	},
	func(clk clock.Clock, calc booking.PriceCalculator, cfg config.Config) *booking.Factory {
		return booking.NewFactory(clk, calc, booking.StayPolicy{MinStayWeeks: cfg.Booking.MinStayWeeks})
	},
	func(cfg config.Config) *payout.Calculator {
		return payout.NewCalculator(cfg.Booking.PlatformFeePercent, cfg.Booking.PayoutDelay)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(u shared.UnitOfWork, f *booking.Factory, clk clock.Clock, cfg config.Config) commands.BookingCommands {
			return commands.NewBookingUseCase(u, f, clk, cfg.Booking.CompletionGraceDays)
		},
		commands.NewPayoutUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewPayoutQueries,
		queries.NewPropertyQueries,
	),
)
