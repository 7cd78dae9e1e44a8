package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-inventario-api/internal/application/analytics"
	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
	"github.com/jhoicas/tienda-inventario-api/internal/application/inventory"
	"github.com/jhoicas/tienda-inventario-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC       *usecase.CategoryUseCase
	SupplierUC       *usecase.SupplierUseCase
	CustomerUC       *usecase.CustomerUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Reconciliation   *inventory.ReconciliationUseCase
	ReportUC         *analytics.ReportUseCase
	// Ping verifica el almacenamiento para /health.
	Ping        func(ctx context.Context) error
	ServiceName string
	Log         zerolog.Logger
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(AccessLog(deps.Log))

	app.Get("/health", healthHandler(deps))

	api := app.Group("/api/v1")

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := api.Group("/categorias")
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	reportHandler := NewReportHandler(deps.ReportUC)
	suppliers := api.Group("/proveedores")
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id/resumen", reportHandler.SupplierSummary)
	suppliers.Get("/:id", supplierHandler.GetByID)

	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := api.Group("/clientes")
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/productos")
	products.Post("/bulk", productHandler.BulkCreate)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Reconciliation, deps.ReportUC)
	inv := api.Group("/inventario")
	inv.Get("/", inventoryHandler.Status)
	inv.Post("/entradas", inventoryHandler.RegisterInbound)
	inv.Post("/salidas", inventoryHandler.RegisterOutbound)
	inv.Get("/movimientos", inventoryHandler.ListMovements)
	inv.Get("/conciliacion", inventoryHandler.Reconcile)

	reports := api.Group("/reportes")
	reports.Get("/ventas/pdf", reportHandler.SalesPDF)
	reports.Get("/ventas", reportHandler.Sales)
	reports.Get("/productos-mas-vendidos", reportHandler.BestSellers)
	reports.Get("/panel", reportHandler.Dashboard)
}

// healthHandler responde 200 si el almacenamiento contesta el ping, 503 si no.
func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.Ping(ctx); err != nil {
				zerolog.Ctx(c.UserContext()).Error().Err(err).Msg("health: almacenamiento no disponible")
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
					Code:    "STORAGE_UNAVAILABLE",
					Message: "almacenamiento no disponible",
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	}
}
