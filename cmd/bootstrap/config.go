package bootstrap

import (
	"slot-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	ConfigSections,
)

// ConfigSections lets constructors depend on the one section they read.
// Tests that supply their own Config reuse it.
var ConfigSections = fx.Provide(
	func(c config.Config) config.BookingConfig { return c.Booking },
	func(c config.Config) config.NotifierConfig { return c.Notifier },
	func(c config.Config) config.LogConfig { return c.Log },
)
