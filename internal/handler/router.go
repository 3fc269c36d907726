package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"slot-booking/internal/handler/api"
	"slot-booking/internal/handler/middleware"
	"slot-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Handlers struct {
	fx.In

	Slot        *api.SlotHandler
	Reservation *api.ReservationHandler
	Admin       *api.AdminHandler
	Budget      *api.BudgetHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler(logger))

	engine.HandleMethodNotAllowed = true
	engine.NoRoute(middleware.NoRoute)
	engine.NoMethod(middleware.NoMethod)
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		slots := apiGroup.Group("/slots")
		addRoutes(slots, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Slot.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Slot.Get},
			{Method: http.MethodGet, Path: "/:id/reservations", Handler: h.Reservation.ListBySlot},
			{Method: http.MethodPost, Path: "/:id/reservations", Handler: h.Reservation.Create},
		})

		reservations := apiGroup.Group("/reservations")
		addRoutes(reservations, []route{
			{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
			{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Reservation.Confirm},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Reservation.Cancel},
		})

		admin := apiGroup.Group("/admin")
		addRoutes(admin, []route{
			{Method: http.MethodPost, Path: "/reservations/sweep", Handler: h.Admin.Sweep},
			{Method: http.MethodGet, Path: "/scanner", Handler: h.Admin.ScannerStats},
			{Method: http.MethodPost, Path: "/budget/validate", Handler: h.Budget.Validate},
			{Method: http.MethodPost, Path: "/budget/check-edit", Handler: h.Budget.CheckEdit},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}
