//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"slot-booking/cmd/bootstrap"
	"slot-booking/cmd/bootstrap/components"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// ActivityStart is the morning of the seeded activity day, before any slot begins.
var ActivityStart = time.Date(2026, 6, 6, 10, 0, 0, 0, time.Local)

// ------------------------------------------------------------
// Per-test application: fresh in-memory catalog and store
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) (*gin.Engine, *clock.MockClock, config.Config) {
	gin.SetMode(gin.TestMode)

	clk := clock.NewMockClock(ActivityStart)
	cfg := config.NewTestConfig()

	router, app := buildE2EApp(t, cfg, clk)
	require.NotNil(t, router, "router setup failed")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx application", "error", err.Error())
		}
	})

	return router, clk, cfg
}

// ------------------------------------------------------------
// E2E application wiring
// Returns router and fx.App for proper lifecycle management
// ------------------------------------------------------------
func buildE2EApp(t *testing.T, cfg config.Config, clk *clock.MockClock) (*gin.Engine, *fx.App) {
	var router *gin.Engine

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config { return cfg }),
	)

	app := fx.New(
		testConfigModule,
		bootstrap.ConfigSections,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.NotifierModule,
		components.PersistenceModule,
		components.UseCaseModule,
		bootstrap.WorkerModule,
		components.HandlerModule,

		// tests drive time by hand
		fx.Decorate(func(clock.Clock) clock.Clock { return clk }),

		fx.Populate(&router),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		t.Fatalf("failed to start fx app: %v", err)
	}
	if router == nil {
		panic(fmt.Sprintf("fx application started without a router (%s)", t.Name()))
	}

	return router, app
}

// ------------------------------------------------------------
// Shared setup for E2E suites
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	Clock  *clock.MockClock
	Config config.Config
}

func (s *SharedSuite) SetupSharedSuite(t *testing.T) {
	router, clk, cfg := setupE2EEnvironment(t)
	s.Router = router
	s.Clock = clk
	s.Config = cfg
	require.NotNil(t, s.Router, "router setup failed")
	require.NotEmpty(t, s.Config, "config missing")
}

// SetupTest rebuilds the application so every test starts with empty slots.
func (s *SharedSuite) SetupTest() {
	s.SetupSharedSuite(s.T())
}
