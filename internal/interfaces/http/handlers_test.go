package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/application/usecase"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/almacen-ledger/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp monta el router completo sobre el almacén en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	d := inventory.Deps{Tx: store, Repos: store.Repos(), Metrics: metrics.NewLedgerMetrics(reg)}

	catalog := usecase.NewCatalogUseCase(store, store.Repos())
	ledger := inventory.NewLedgerUseCase(d)
	worker := usecase.NewImportWorker(catalog, ledger, nil, 4)
	worker.Start()
	t.Cleanup(worker.Stop)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	apphttp.Router(app, apphttp.RouterDeps{
		Catalog:        catalog,
		WarehouseUC:    usecase.NewWarehouseUseCase(store.Repos().Warehouses),
		CounterpartyUC: usecase.NewCounterpartyUseCase(store.Repos().Counterparties),
		ImportWorker:   worker,
		Ledger:         ledger,
		Movements:      inventory.NewMovementQueryUseCase(d),
		Documents:      inventory.NewDocumentUseCase(d),
		Replenishment:  inventory.NewReplenishmentUseCase(d),
		Counts:         inventory.NewCountUseCase(d),
		Gatherer:       reg,
	})
	return app
}

type header struct{ key, value string }

func do(t *testing.T, app *fiber.App, method, path string, body any, headers ...header) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		req.Header.Set(h.key, h.value)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// seed crea una bodega y el producto P1 vinculado; devuelve el ID de la bodega.
func seed(t *testing.T, app *fiber.App, name string) string {
	t.Helper()
	resp := do(t, app, http.MethodPost, "/api/warehouses", dto.CreateWarehouseRequest{Name: name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	w := decode[dto.WarehouseResponse](t, resp)

	productName := "Tornillo"
	resp = do(t, app, http.MethodPut, "/api/products", dto.UpsertProductRequest{Code: "P1", Name: &productName, WarehouseID: w.ID})
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, resp.StatusCode)
	return w.ID
}

func move(t *testing.T, app *fiber.App, op, warehouseID string, qty int64) *http.Response {
	t.Helper()
	return do(t, app, http.MethodPost, "/api/stock/"+op, dto.MovementRequest{ProductCode: "P1", WarehouseID: warehouseID, Quantity: qty})
}

// ──────────────────────────────────────────────────────────────────────────────
// Bodegas y catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouses_CrearDuplicadoYValidacion(t *testing.T) {
	app := buildTestApp(t)
	seed(t, app, "Central")

	resp := do(t, app, http.MethodPost, "/api/warehouses", dto.CreateWarehouseRequest{Name: "Central"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodPost, "/api/warehouses", dto.CreateWarehouseRequest{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Message, "name es requerido")

	resp = do(t, app, http.MethodGet, "/api/warehouses/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWarehouses_CuerpoInvalido(t *testing.T) {
	app := buildTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/warehouses", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestProducts_UpsertAliasYVinculos(t *testing.T) {
	app := buildTestApp(t)
	wid := seed(t, app, "Central")

	resp := do(t, app, http.MethodPut, "/api/products", dto.UpsertProductRequest{Code: "P1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	up := decode[dto.UpsertProductResponse](t, resp)
	assert.False(t, up.Created)
	assert.Equal(t, "Tornillo", up.Product.Name)

	resp = do(t, app, http.MethodPost, "/api/products/P1/aliases", dto.AliasRequest{Alias: "T-01"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/products/T-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "P1", got.Code)
	assert.Equal(t, []string{"T-01"}, got.Aliases)

	resp = do(t, app, http.MethodGet, "/api/products/P1/links/"+wid, nil)
	assert.True(t, decode[dto.LinkStatusResponse](t, resp).Linked)

	require.Equal(t, http.StatusOK, move(t, app, "increment", wid, 2).StatusCode)
	resp = do(t, app, http.MethodDelete, "/api/products/P1/links/"+wid, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodGet, "/api/warehouses/"+wid+"/products", nil)
	levels := decode[dto.ListResponse[dto.StockLevelResponse]](t, resp)
	require.Len(t, levels.Items, 1)
	assert.Equal(t, int64(2), levels.Items[0].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de existencias
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_SalidaInsuficienteDevuelveDisponible(t *testing.T) {
	app := buildTestApp(t)
	wid := seed(t, app, "Central")
	require.Equal(t, http.StatusOK, move(t, app, "increment", wid, 10).StatusCode)

	resp := move(t, app, "decrement", wid, 15)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	short := decode[dto.InsufficientStockResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", short.Code)
	assert.Equal(t, "P1", short.ProductCode)
	assert.Equal(t, int64(15), short.Requested)
	assert.Equal(t, int64(10), short.Available)

	resp = do(t, app, http.MethodGet, "/api/stock?product_code=P1&warehouse_id="+wid, nil)
	assert.Equal(t, int64(10), decode[dto.StockResponse](t, resp).Quantity)
}

func TestStock_CantidadCeroNoAplica(t *testing.T) {
	app := buildTestApp(t)
	wid := seed(t, app, "Central")

	resp := move(t, app, "increment", wid, 0)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.MutationResponse](t, resp)
	assert.False(t, out.Applied)
	assert.Nil(t, out.Movement)
}

func TestStock_TrasladoYDiarioConUsuario(t *testing.T) {
	app := buildTestApp(t)
	w1 := seed(t, app, "W1")
	w2 := seed(t, app, "W2")
	require.Equal(t, http.StatusOK, move(t, app, "increment", w1, 10).StatusCode)

	resp := do(t, app, http.MethodPost, "/api/stock/transfer",
		dto.TransferRequest{ProductCode: "P1", FromWarehouseID: w1, ToWarehouseID: w2, Quantity: 4},
		header{apphttp.HeaderUserID, "operario-7"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tr := decode[dto.TransferResponse](t, resp)
	require.True(t, tr.Applied)
	assert.Equal(t, "XFER-OUT", tr.Out.Kind)
	assert.Equal(t, int64(-4), tr.Out.Quantity)
	assert.Equal(t, tr.Out.ID, tr.In.RefID)
	assert.Equal(t, "operario-7", tr.In.UserID)

	resp = do(t, app, http.MethodGet, "/api/movements?warehouse_id="+w2, nil)
	movs := decode[dto.ListResponse[dto.MovementResponse]](t, resp)
	require.Len(t, movs.Items, 1)
	assert.Equal(t, "XFER-IN", movs.Items[0].Kind)

	resp = do(t, app, http.MethodGet, "/api/movements?from=ayer", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStock_SetLevelNegativoEsInvalido(t *testing.T) {
	app := buildTestApp(t)
	wid := seed(t, app, "Central")

	resp := do(t, app, http.MethodPost, "/api/stock/set-level", dto.SetLevelRequest{ProductCode: "P1", WarehouseID: wid, Target: -1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/stock/set-level", dto.SetLevelRequest{ProductCode: "P1", WarehouseID: wid, Target: 7})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.MutationResponse](t, resp)
	require.True(t, out.Applied)
	assert.Equal(t, "ADJ", out.Movement.Kind)
	assert.Equal(t, int64(7), out.Movement.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos y conteos
// ──────────────────────────────────────────────────────────────────────────────

func TestDocuments_LoteYFolios(t *testing.T) {
	app := buildTestApp(t)
	wid := seed(t, app, "Central")

	resp := do(t, app, http.MethodPost, "/api/documents/batch", dto.PostDocumentRequest{
		Type: "IN", WarehouseID: wid, Lines: []dto.DocumentLineRequest{{ProductCode: "P1", Quantity: 6}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	posted := decode[dto.PostedDocumentResponse](t, resp)
	assert.Equal(t, "GEN", posted.Document.Series)
	assert.Equal(t, int64(1), posted.Document.Folio)
	require.Len(t, posted.Movements, 1)
	assert.Equal(t, posted.Document.ID, posted.Movements[0].DocumentID)

	resp = do(t, app, http.MethodPost, "/api/documents", dto.CreateDocumentRequest{Type: "OUT", WarehouseID: wid})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(2), decode[dto.DocumentResponse](t, resp).Folio)

	folio := int64(2)
	resp = do(t, app, http.MethodPost, "/api/documents", dto.CreateDocumentRequest{Type: "OUT", WarehouseID: wid, Folio: &folio})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/documents/"+posted.Document.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decode[dto.DocumentDetailResponse](t, resp)
	assert.Equal(t, "Central", detail.WarehouseName)
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, "P1", detail.Lines[0].ProductCode)

	resp = do(t, app, http.MethodPost, "/api/documents/batch", dto.PostDocumentRequest{Type: "OUT", WarehouseID: wid})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "un lote sin líneas no pasa la validación")
}

func TestCounts_AbrirContarConciliar(t *testing.T) {
	app := buildTestApp(t)
	wid := seed(t, app, "Central")
	require.Equal(t, http.StatusOK, move(t, app, "increment", wid, 10).StatusCode)

	resp := do(t, app, http.MethodPost, "/api/counts", dto.OpenCountRequest{WarehouseID: wid})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	open := decode[dto.CountDetailResponse](t, resp)
	require.Len(t, open.Lines, 1)
	assert.Equal(t, int64(10), open.Lines[0].SysQty)
	assert.Nil(t, open.Lines[0].CountedQty)

	resp = do(t, app, http.MethodPut, "/api/counts/"+open.Session.ID+"/lines", dto.SetCountedRequest{ProductCode: "P1", Counted: 8})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/counts/"+open.Session.ID+"/reconcile", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rec := decode[dto.ReconcileResponse](t, resp)
	assert.Equal(t, "CLOSED", rec.Session.Status)
	require.NotNil(t, rec.Document)
	assert.Equal(t, "ADJ", rec.Document.Type)
	require.Len(t, rec.Movements, 1)
	assert.Equal(t, int64(-2), rec.Movements[0].Quantity)

	resp = do(t, app, http.MethodPost, "/api/counts/"+open.Session.ID+"/reconcile", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCounts_AbrirPorCategoria(t *testing.T) {
	app := buildTestApp(t)
	wid := seed(t, app, "Central")

	name, category := "Martillo", "Herramientas"
	resp := do(t, app, http.MethodPut, "/api/products", dto.UpsertProductRequest{Code: "P2", Name: &name, WarehouseID: wid})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = do(t, app, http.MethodPatch, "/api/products/P2", dto.UpdateProductRequest{Category: &category})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/counts", dto.OpenCountRequest{WarehouseID: wid, Category: "Herramientas"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	open := decode[dto.CountDetailResponse](t, resp)
	require.Len(t, open.Lines, 1)
	assert.Equal(t, "P2", open.Lines[0].ProductCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reabastecimiento, importación y métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestReplenishment_UmbralYStockBajo(t *testing.T) {
	app := buildTestApp(t)
	wid := seed(t, app, "Central")
	require.Equal(t, http.StatusOK, move(t, app, "increment", wid, 2).StatusCode)

	resp := do(t, app, http.MethodPut, "/api/replenishment/thresholds", dto.ThresholdRequest{ProductCode: "P1", WarehouseID: wid, MinQty: 5})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/replenishment/suggestions?warehouse_id="+wid, nil)
	sugg := decode[dto.ListResponse[dto.PurchaseSuggestionResponse]](t, resp)
	require.Len(t, sugg.Items, 1)
	assert.Equal(t, int64(3), sugg.Items[0].Deficit)

	resp = do(t, app, http.MethodGet, "/api/replenishment/low-stock", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_QUERY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestImports_ResumenConErrores(t *testing.T) {
	app := buildTestApp(t)
	wid := seed(t, app, "Central")

	resp := do(t, app, http.MethodPost, "/api/imports", dto.ImportRequest{
		WarehouseID: wid,
		Mode:        "replace",
		Rows: []dto.ImportRowRequest{
			{Code: "P1", Quantity: 9},
			{Code: "P2", Name: "Tuerca", Quantity: -1},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sum := decode[dto.ImportSummaryResponse](t, resp)
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.Linked)
	assert.Equal(t, 1, sum.Failed)
	require.Len(t, sum.Errors, 1)
	assert.Contains(t, sum.Errors[0], "fila 2")

	resp = do(t, app, http.MethodGet, "/api/stock?product_code=P1&warehouse_id="+wid, nil)
	assert.Equal(t, int64(9), decode[dto.StockResponse](t, resp).Quantity)
}

func TestMetrics_ExponeContadoresDelLibro(t *testing.T) {
	app := buildTestApp(t)
	wid := seed(t, app, "Central")
	require.Equal(t, http.StatusOK, move(t, app, "increment", wid, 3).StatusCode)

	resp := do(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `ledger_movements_total{kind="IN"} 1`)
}
