package components

import (
	"slot-booking/internal/domain/budget"
	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/metrics"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	metrics.NewBookingMetrics,
	budget.NewAllocationGuard,
	func(cfg config.BookingConfig) *reservation.Factory {
		return reservation.NewFactory(cfg.HoldDuration)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationEngine,
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSlotQueries,
		queries.NewReservationQueries,
	),
)
