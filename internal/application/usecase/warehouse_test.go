package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain"
)

func TestWarehouse_CreateNormalizaYRechazaDuplicados(t *testing.T) {
	e := newEnv(t)

	w, err := e.warehouses.Create(e.ctx, dto.CreateWarehouseRequest{Name: "  Bodega   Norte "})
	require.NoError(t, err)
	assert.Equal(t, "Bodega Norte", w.Name)
	assert.Equal(t, "slate", w.ColorKey)
	assert.NotEmpty(t, w.ID)

	_, err = e.warehouses.Create(e.ctx, dto.CreateWarehouseRequest{Name: "Bodega Norte"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = e.warehouses.Create(e.ctx, dto.CreateWarehouseRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWarehouse_UpdateYList(t *testing.T) {
	e := newEnv(t)
	a := e.warehouse(t, "Bodega A")
	e.warehouse(t, "Bodega B")

	got, err := e.warehouses.Update(e.ctx, a, dto.UpdateWarehouseRequest{Name: ptr("Bodega C"), ColorKey: ptr("teal")})
	require.NoError(t, err)
	assert.Equal(t, "Bodega C", got.Name)
	assert.Equal(t, "teal", got.ColorKey)

	_, err = e.warehouses.Update(e.ctx, a, dto.UpdateWarehouseRequest{Name: ptr("Bodega B")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = e.warehouses.Update(e.ctx, "no-existe", dto.UpdateWarehouseRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := e.warehouses.List(e.ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bodega B", list[0].Name)
	assert.Equal(t, "Bodega C", list[1].Name)
}

func TestWarehouse_DeleteConservaElDiario(t *testing.T) {
	e := newEnv(t)
	wid := e.warehouse(t, "Temporal")
	e.product(t, "P1", "Tornillo", wid)

	_, err := e.ledger.Increment(e.ctx, inventory.MovementInput{ProductCode: "P1", WarehouseID: wid, Quantity: 5})
	require.NoError(t, err)

	require.NoError(t, e.warehouses.Delete(e.ctx, wid))

	_, err = e.warehouses.GetByID(e.ctx, wid)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	linked, err := e.catalog.IsLinked(e.ctx, "P1", wid)
	require.NoError(t, err)
	assert.False(t, linked)

	movs, err := e.movs.ListMovements(e.ctx, inventory.MovementQuery{ProductCode: "P1"})
	require.NoError(t, err)
	require.Len(t, movs, 1, "el diario sobrevive a la bodega")
	assert.Equal(t, wid, movs[0].WarehouseID)

	assert.ErrorIs(t, e.warehouses.Delete(e.ctx, wid), domain.ErrNotFound)
}
