package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/application/usecase"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/audit"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/metrics"
	httpRouter "github.com/jhoicas/almacen-ledger/internal/interfaces/http"
	"github.com/jhoicas/almacen-ledger/pkg/config"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.DB.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps := inventory.Deps{
		Tx:    store.tx,
		Repos: store.repos,
		Audit: audit.FanOut{
			audit.NewLogSink(log),
			audit.NewRepositorySink(store.audit, log),
		},
		Metrics:       metrics.NewLedgerMetrics(reg),
		DefaultSeries: cfg.Ledger.DefaultSeries,
	}
	ledgerUC := inventory.NewLedgerUseCase(deps)
	catalogUC := usecase.NewCatalogUseCase(store.tx, store.repos)

	importWorker := usecase.NewImportWorker(catalogUC, ledgerUC, log, cfg.Ledger.ImportQueueSize)
	importWorker.Start()

	app := fiber.New(fiber.Config{
		AppName:           cfg.App.Name,
		ReadTimeout:       time.Second * 10,
		WriteTimeout:      time.Second * 10,
		IdleTimeout:       time.Second * 60,
		UnescapePath:      true,
		EnablePrintRoutes: cfg.App.IsDev(),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: err.Error()})
		},
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Almacén Ledger API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "backend": cfg.DB.Backend})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Catalog:        catalogUC,
		WarehouseUC:    usecase.NewWarehouseUseCase(store.repos.Warehouses),
		CounterpartyUC: usecase.NewCounterpartyUseCase(store.repos.Counterparties),
		ImportWorker:   importWorker,
		Ledger:         ledgerUC,
		Movements:      inventory.NewMovementQueryUseCase(deps),
		Documents:      inventory.NewDocumentUseCase(deps),
		Replenishment:  inventory.NewReplenishmentUseCase(deps),
		Counts:         inventory.NewCountUseCase(deps),
		Gatherer:       reg,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	importWorker.Stop()

	log.Info().Msg("aplicación detenida")
}
