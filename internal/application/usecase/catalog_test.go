package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/application/usecase"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type env struct {
	ctx        context.Context
	store      *memory.Store
	catalog    *usecase.CatalogUseCase
	warehouses *usecase.WarehouseUseCase
	ledger     *inventory.LedgerUseCase
	movs       *inventory.MovementQueryUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	d := inventory.Deps{Tx: store, Repos: store.Repos()}
	return &env{
		ctx:        context.Background(),
		store:      store,
		catalog:    usecase.NewCatalogUseCase(store, store.Repos()),
		warehouses: usecase.NewWarehouseUseCase(store.Repos().Warehouses),
		ledger:     inventory.NewLedgerUseCase(d),
		movs:       inventory.NewMovementQueryUseCase(d),
	}
}

func (e *env) warehouse(t *testing.T, name string) string {
	t.Helper()
	w, err := e.warehouses.Create(e.ctx, dto.CreateWarehouseRequest{Name: name})
	require.NoError(t, err)
	return w.ID
}

func (e *env) product(t *testing.T, code, name, warehouseID string) *dto.ProductResponse {
	t.Helper()
	res, err := e.catalog.Upsert(e.ctx, dto.UpsertProductRequest{Code: code, Name: &name, WarehouseID: warehouseID})
	require.NoError(t, err)
	return res.Product
}

func (e *env) qty(t *testing.T, code, warehouseID string) int64 {
	t.Helper()
	st, err := e.ledger.Stock(e.ctx, code, warehouseID)
	require.NoError(t, err)
	return st.Quantity
}

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Upsert
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsert_CreaYLuegoActualiza(t *testing.T) {
	e := newEnv(t)

	res, err := e.catalog.Upsert(e.ctx, dto.UpsertProductRequest{Code: "  P1 ", Name: ptr("Tornillo   grande")})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "P1", res.Product.Code)
	assert.Equal(t, "Tornillo grande", res.Product.Name)
	assert.True(t, res.Product.UnitFactor.Equal(decimal.NewFromInt(1)))

	res, err = e.catalog.Upsert(e.ctx, dto.UpsertProductRequest{Code: "P1", Description: ptr("acero")})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, "Tornillo grande", res.Product.Name, "un nombre nil no pisa el existente")
	assert.Equal(t, "acero", res.Product.Description)
}

func TestUpsert_ConBodegaVinculaEnCero(t *testing.T) {
	e := newEnv(t)
	wid := e.warehouse(t, "Central")

	e.product(t, "P1", "Tornillo", wid)

	linked, err := e.catalog.IsLinked(e.ctx, "P1", wid)
	require.NoError(t, err)
	assert.True(t, linked)
	assert.Equal(t, int64(0), e.qty(t, "P1", wid))

	levels, err := e.catalog.ListByWarehouse(e.ctx, wid)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, "P1", levels[0].Code)
}

func TestUpsert_Errores(t *testing.T) {
	e := newEnv(t)
	e.product(t, "P1", "Tornillo", "")
	require.NoError(t, e.catalog.AddAlias(e.ctx, "P1", dto.AliasRequest{Alias: "VIEJO"}))

	_, err := e.catalog.Upsert(e.ctx, dto.UpsertProductRequest{Code: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.catalog.Upsert(e.ctx, dto.UpsertProductRequest{Code: "VIEJO"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "un código nuevo no puede ser alias de otro producto")

	_, err = e.catalog.Upsert(e.ctx, dto.UpsertProductRequest{Code: "P2", WarehouseID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.catalog.Get(e.ctx, "P2")
	assert.ErrorIs(t, err, domain.ErrNotFound, "el producto no queda creado si el vínculo falla")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update y alias
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_AtributosDelCatalogo(t *testing.T) {
	e := newEnv(t)
	e.product(t, "P1", "Tornillo", "")

	got, err := e.catalog.Update(e.ctx, "P1", dto.UpdateProductRequest{
		Category:   ptr(" Ferretería "),
		Unit:       ptr("caja"),
		UnitFactor: ptr(decimal.NewFromInt(12)),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ferretería", got.Category)
	assert.Equal(t, "caja", got.Unit)
	assert.True(t, got.UnitFactor.Equal(decimal.NewFromInt(12)))

	_, err = e.catalog.Update(e.ctx, "P1", dto.UpdateProductRequest{UnitFactor: ptr(decimal.Zero)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cats, err := e.catalog.ListCategories(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ferretería"}, cats)
}

func TestAlias_ResolucionYColisiones(t *testing.T) {
	e := newEnv(t)
	e.product(t, "P1", "Tornillo", "")
	e.product(t, "P2", "Tuerca", "")

	require.NoError(t, e.catalog.AddAlias(e.ctx, "P1", dto.AliasRequest{Alias: "T-01"}))

	got, err := e.catalog.Get(e.ctx, "T-01")
	require.NoError(t, err)
	assert.Equal(t, "P1", got.Code)
	assert.Equal(t, []string{"T-01"}, got.Aliases)

	err = e.catalog.AddAlias(e.ctx, "P1", dto.AliasRequest{Alias: "P2"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el alias no puede ser el código de otro producto")

	err = e.catalog.AddAlias(e.ctx, "P2", dto.AliasRequest{Alias: "T-01"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = e.catalog.AddAlias(e.ctx, "P1", dto.AliasRequest{Alias: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, e.catalog.RemoveAlias(e.ctx, "T-01"))
	aliases, err := e.catalog.ListAliases(e.ctx, "P1")
	require.NoError(t, err)
	assert.Empty(t, aliases)
	assert.ErrorIs(t, e.catalog.RemoveAlias(e.ctx, "T-01"), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Vínculos
// ──────────────────────────────────────────────────────────────────────────────

func TestUnlink_ConExistenciaEsConflicto(t *testing.T) {
	e := newEnv(t)
	wid := e.warehouse(t, "Central")
	e.product(t, "P1", "Tornillo", wid)

	_, err := e.ledger.Increment(e.ctx, inventory.MovementInput{ProductCode: "P1", WarehouseID: wid, Quantity: 3})
	require.NoError(t, err)

	err = e.catalog.Unlink(e.ctx, "P1", wid)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = e.ledger.Decrement(e.ctx, inventory.MovementInput{ProductCode: "P1", WarehouseID: wid, Quantity: 3})
	require.NoError(t, err)
	require.NoError(t, e.catalog.Unlink(e.ctx, "P1", wid))

	linked, err := e.catalog.IsLinked(e.ctx, "P1", wid)
	require.NoError(t, err)
	assert.False(t, linked)
}

func TestLink_YIsLinkedDeProductoInexistente(t *testing.T) {
	e := newEnv(t)
	wid := e.warehouse(t, "Central")
	e.product(t, "P1", "Tornillo", "")

	require.NoError(t, e.catalog.Link(e.ctx, "P1", wid))
	require.NoError(t, e.catalog.Link(e.ctx, "P1", wid), "vincular dos veces no falla")

	linked, err := e.catalog.IsLinked(e.ctx, "NADA", wid)
	require.NoError(t, err)
	assert.False(t, linked)

	err = e.catalog.Link(e.ctx, "P1", "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
