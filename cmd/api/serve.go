package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/tienda-inventario-api/internal/application/analytics"
	"github.com/jhoicas/tienda-inventario-api/internal/application/inventory"
	"github.com/jhoicas/tienda-inventario-api/internal/application/usecase"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/repository"
	"github.com/jhoicas/tienda-inventario-api/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-inventario-api/internal/infrastructure/observability"
	infrapdf "github.com/jhoicas/tienda-inventario-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-inventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tienda-inventario-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-inventario-api/pkg/config"
	"github.com/jhoicas/tienda-inventario-api/pkg/logger"
)

// storage lo implementan postgres.Store y memory.Store.
type storage interface {
	inventory.TxRunner
	Ping(ctx context.Context) error
	Categories() repository.CategoryRepository
	Suppliers() repository.SupplierRepository
	Customers() repository.CustomerRepository
	Products() repository.ProductRepository
	Movements() repository.InventoryMovementRepository
	Reports() repository.ReportRepository
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "migrate",
			Usage:   "aplica las migraciones pendientes antes de arrancar (solo postgres)",
			EnvVars: []string{"AUTO_MIGRATE"},
		},
		&cli.StringFlag{
			Name:  "swagger-file",
			Usage: "ruta del swagger.json servido en /docs (vacío = sin Swagger UI)",
			Value: "./docs/swagger.json",
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "arranca el servidor HTTP",
		Flags:  serveFlags(),
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	appLog := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	log := appLog.Zerolog()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Otel)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Error().Err(err).Msg("cierre de trazas")
		}
	}()

	store, closeStore, err := openStorage(ctx, cfg, c.Bool("migrate"), log)
	if err != nil {
		return err
	}
	defer closeStore()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if file := c.String("swagger-file"); file != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: file,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	}

	httpRouter.Router(app, buildRouterDeps(store, cfg, appLog))

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		errCh <- app.Listen(cfg.HTTP.Addr())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("servidor HTTP: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}

// openStorage abre el almacenamiento según DB_DRIVER. El func devuelto libera sus recursos.
func openStorage(ctx context.Context, cfg *config.Config, migrate bool, log zerolog.Logger) (storage, func(), error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return memory.NewStore(cfg.DB.TxTimeout), func() {}, nil
	}

	if migrate {
		if err := migrateUp(cfg.DB.ConnectionString(), log); err != nil {
			return nil, nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return postgres.NewStore(pool, cfg.DB.TxTimeout), pool.Close, nil
}

func buildRouterDeps(store storage, cfg *config.Config, appLog *logger.Logger) httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		CategoryUC:       usecase.NewCategoryUseCase(store, store.Categories()),
		SupplierUC:       usecase.NewSupplierUseCase(store, store.Suppliers()),
		CustomerUC:       usecase.NewCustomerUseCase(store, store.Customers()),
		ProductUC:        usecase.NewProductUseCase(store, store.Products(), appLog.Component("productos")),
		RegisterMovement: inventory.NewRegisterMovementUseCase(store, store.Movements(), appLog.Component("movimientos")),
		Reconciliation:   inventory.NewReconciliationUseCase(store.Reports(), appLog.Component("conciliacion")),
		ReportUC:         analytics.NewReportUseCase(store.Reports(), infrapdf.NewMarotoReportGenerator(cfg.App.Name)),
		Ping:             store.Ping,
		ServiceName:      cfg.App.Name,
		Log:              appLog.Component("http"),
	}
}
