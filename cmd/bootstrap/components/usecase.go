package components

import (
	"log/slog"

	"table-reserve/internal/notifier"
	"table-reserve/internal/pkg/clock"
	"table-reserve/internal/usecase/commands"
	"table-reserve/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewChangeNotifier,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewReservationQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
	),
)

func NewChangeNotifier(logger *slog.Logger) *notifier.Notifier {
	return notifier.New(logger, notifier.NewLogConsumer(logger))
}
