package components

import (
	"table-reserve/internal/handler"
	"table-reserve/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewAvailabilityHandler,
		api.NewPaymentWebhookHandler,
	),
	fx.Invoke(handler.NewRouter),
)
