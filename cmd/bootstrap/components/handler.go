package components

import (
	"slot-booking/internal/domain/budget"
	"slot-booking/internal/handler"
	"slot-booking/internal/handler/api"
	"slot-booking/internal/worker"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(s *worker.ExpiryScanner) api.ScannerStats { return s },
		func(g *budget.AllocationGuard) api.AllocationGuard { return g },
		api.NewSlotHandler,
		api.NewReservationHandler,
		api.NewAdminHandler,
		api.NewBudgetHandler,
	),
	fx.Invoke(handler.NewRouter),
)
