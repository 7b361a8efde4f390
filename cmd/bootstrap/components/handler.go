package components

import (
	"sublet-booking/internal/handler"
	"sublet-booking/internal/handler/api"
	"sublet-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewPayoutHandler,
		api.NewPropertyHandler,
		api.NewAdminHandler,
		NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

type handlerParams struct {
	fx.In

	Booking  *api.BookingHandler
	Payout   *api.PayoutHandler
	Property *api.PropertyHandler
	Admin    *api.AdminHandler
}

func NewHandlers(p handlerParams) handler.Handlers {
	return handler.Handlers{
		Booking:  p.Booking,
		Payout:   p.Payout,
		Property: p.Property,
		Admin:    p.Admin,
	}
}
