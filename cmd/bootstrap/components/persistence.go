package components

import (
	"time"

	"slot-booking/internal/infra/catalog"
	"slot-booking/internal/infra/store"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	catalogModule,
	storeModule,
)

var catalogModule = fx.Module("persistence/catalog",
	fx.Provide(
		fx.Annotate(
			NewSlotCatalog,
			fx.As(new(commands.SlotCatalog)),
			fx.As(new(queries.SlotReadStore)),
		),
	),
)

var storeModule = fx.Module("persistence/store",
	fx.Provide(
		fx.Annotate(
			store.NewReservationStore,
			fx.As(new(commands.ReservationStore)),
			fx.As(new(queries.ReservationReadStore)),
		),
	),
)

// NewSlotCatalog loads the seed file when configured, otherwise the built-in
// schedule for the activity date (today when unset).
func NewSlotCatalog(cfg config.BookingConfig) (*catalog.SlotCatalog, error) {
	if cfg.SeedFile != "" {
		return catalog.LoadFile(cfg.SeedFile, cfg.Currency)
	}

	day := time.Now()
	if cfg.ActivityDate != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, cfg.ActivityDate, time.Local)
		if err != nil {
			return nil, err
		}
		day = parsed
	}
	return catalog.FromSeed(catalog.DefaultSeed(day), cfg.Currency)
}
