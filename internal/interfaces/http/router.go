package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Catalog        *usecase.CatalogUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	CounterpartyUC *usecase.CounterpartyUseCase
	ImportWorker   *usecase.ImportWorker
	Ledger         *inventory.LedgerUseCase
	Movements      *inventory.MovementQueryUseCase
	Documents      *inventory.DocumentUseCase
	Replenishment  *inventory.ReplenishmentUseCase
	Counts         *inventory.CountUseCase
	Gatherer       prometheus.Gatherer // nil = sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api", Identity())

	// Warehouses
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.Catalog)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Patch("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)
	warehouses.Get("/:id/products", warehouseHandler.Products)

	// Products (catálogo, alias y vínculos)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Catalog)
	products.Put("/", productHandler.Upsert)
	products.Get("/", productHandler.List)
	products.Get("/categories", productHandler.Categories)
	products.Get("/:code", productHandler.Get)
	products.Patch("/:code", productHandler.Update)
	products.Post("/:code/links", productHandler.Link)
	products.Get("/:code/links/:warehouse_id", productHandler.IsLinked)
	products.Delete("/:code/links/:warehouse_id", productHandler.Unlink)
	products.Get("/:code/aliases", productHandler.ListAliases)
	products.Post("/:code/aliases", productHandler.AddAlias)
	api.Delete("/aliases/:alias", productHandler.RemoveAlias)

	// Stock ledger
	stock := api.Group("/stock")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Movements)
	stock.Get("/", inventoryHandler.GetStock)
	stock.Post("/increment", inventoryHandler.Increment)
	stock.Post("/decrement", inventoryHandler.Decrement)
	stock.Post("/set-level", inventoryHandler.SetLevel)
	stock.Post("/transfer", inventoryHandler.Transfer)
	api.Get("/movements", inventoryHandler.ListMovements)

	// Documents
	documents := api.Group("/documents")
	documentHandler := NewDocumentHandler(deps.Documents)
	documents.Post("/", documentHandler.Create)
	documents.Get("/", documentHandler.List)
	documents.Post("/batch", documentHandler.Post)
	documents.Post("/adjustments", documentHandler.Adjust)
	documents.Get("/:id", documentHandler.Get)

	// Replenishment
	repl := api.Group("/replenishment")
	replHandler := NewReplenishmentHandler(deps.Replenishment)
	repl.Get("/low-stock", replHandler.LowStock)
	repl.Get("/suggestions", replHandler.Suggestions)
	repl.Get("/proposals", replHandler.Proposals)
	repl.Put("/thresholds", replHandler.SetThreshold)
	repl.Get("/thresholds", replHandler.ListThresholds)
	repl.Put("/rules", replHandler.SetRule)
	repl.Get("/rules", replHandler.ListRules)
	repl.Delete("/rules", replHandler.DeleteRule)

	// Cycle counts
	counts := api.Group("/counts")
	countHandler := NewCountHandler(deps.Counts)
	counts.Post("/", countHandler.Open)
	counts.Get("/", countHandler.List)
	counts.Get("/:id", countHandler.Get)
	counts.Put("/:id/lines", countHandler.SetCounted)
	counts.Post("/:id/reconcile", countHandler.Reconcile)

	// Counterparties
	counterparties := api.Group("/counterparties")
	counterpartyHandler := NewCounterpartyHandler(deps.CounterpartyUC)
	counterparties.Post("/", counterpartyHandler.Create)
	counterparties.Get("/", counterpartyHandler.List)
	counterparties.Put("/:id", counterpartyHandler.Update)
	counterparties.Delete("/:id", counterpartyHandler.Delete)

	// Imports
	if deps.ImportWorker != nil {
		api.Post("/imports", NewImportHandler(deps.ImportWorker).Import)
	}
}
