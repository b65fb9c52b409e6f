package http

import (
	nethttp "net/http"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/jhoicas/Inventario-maquinas/internal/application/analytics"
	"github.com/jhoicas/Inventario-maquinas/internal/application/inventory"
	"github.com/jhoicas/Inventario-maquinas/internal/application/usecase"
	"github.com/jhoicas/Inventario-maquinas/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AllocationUC    *inventory.AllocationUseCase
	MaterialQueryUC *inventory.MaterialQueryUseCase
	MaterialUC      *usecase.MaterialUseCase
	ReferenceUC     *usecase.ReferenceUseCase
	DashboardUC     *appanalytics.DashboardUseCase
}

// AppConfig opciones del servidor Fiber. MetricsHandler nil o DocsFile vacío
// desactivan /metrics y /docs respectivamente.
type AppConfig struct {
	Name           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Log            *logger.Logger
	MetricsPath    string
	MetricsHandler nethttp.Handler
	DocsFile       string
}

// NewApp construye la aplicación Fiber con middlewares, endpoints de operación y rutas de la API.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(cfg.Log))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.DocsFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.DocsFile,
			Path:     "docs",
			Title:    "Inventario de máquinas API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})
	if cfg.MetricsHandler != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(cfg.MetricsHandler))
	}

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Asignaciones
	allocations := api.Group("/allocations")
	allocationHandler := NewAllocationHandler(deps.AllocationUC)
	allocations.Get("/", allocationHandler.List)
	allocations.Post("/", allocationHandler.Create)
	allocations.Get("/:id", allocationHandler.GetByID)
	allocations.Put("/:id", allocationHandler.Update)
	allocations.Delete("/:id", allocationHandler.Delete)

	// Materiales: rutas fijas antes de /:id
	materials := api.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialQueryUC, deps.MaterialUC)
	materials.Get("/", materialHandler.List)
	materials.Post("/", materialHandler.Create)
	materials.Get("/export.xlsx", materialHandler.Export)
	materials.Get("/filter-options/:field", materialHandler.FilterOptions)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", materialHandler.Delete)
	materials.Delete("/:id/reference-history/:index", materialHandler.RemoveReferenceChange)

	// Máquinas
	machines := api.Group("/machines")
	machineHandler := NewMachineHandler(deps.AllocationUC, deps.ReferenceUC, deps.DashboardUC)
	machines.Get("/", machineHandler.List)
	machines.Get("/:id/history", machineHandler.History)
	machines.Get("/:id/report.pdf", machineHandler.Report)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/machines", dashboardHandler.Machines)

	// Catálogos
	referenceHandler := NewReferenceHandler(deps.ReferenceUC)
	api.Get("/categories", referenceHandler.Categories)
	api.Get("/locations", referenceHandler.Locations)
	api.Get("/suppliers", referenceHandler.Suppliers)
}
