package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Umbrales y reposición
// ──────────────────────────────────────────────────────────────────────────────

func TestListLowStock_AgotadosPrimero(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p2", "P2", "Tuerca")
	f.addProduct(t, "p3", "P3", "Arandela")
	f.increment(t, "P1", w1, 3)
	f.increment(t, "P3", w1, 50)
	require.NoError(t, f.repl.SetThreshold(f.ctx, "P1", w1, 5))
	require.NoError(t, f.repl.SetThreshold(f.ctx, "P2", w1, 2))

	low, err := f.repl.ListLowStock(f.ctx, w1)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "P2", low[0].Code)
	assert.True(t, low[0].OutOfStock())
	assert.Equal(t, "P1", low[1].Code)

	sugg, err := f.repl.ListPurchaseSuggestions(f.ctx, w1)
	require.NoError(t, err)
	require.Len(t, sugg, 2)
	assert.Equal(t, "P1", sugg[0].Code)
	assert.Equal(t, int64(2), sugg[0].Deficit)
	assert.Equal(t, "P2", sugg[1].Code)
	assert.Equal(t, int64(2), sugg[1].Deficit)
}

func TestSetThreshold_Validaciones(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.repl.SetThreshold(f.ctx, "P1", w1, -1), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.repl.SetThreshold(f.ctx, "P1", "nope", 1), domain.ErrNotFound)

	require.NoError(t, f.repl.SetThreshold(f.ctx, "P1", w1, 4))
	rules, err := f.repl.ListThresholds(f.ctx, w1)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, int64(4), rules[0].MinQty)
}

func TestReorderProposals(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p2", "P2", "Tuerca")
	f.increment(t, "P1", w1, 4)
	f.increment(t, "P2", w1, 30)

	rule, err := f.repl.SetReplenishmentRule(f.ctx, inventory.ReplenishmentRuleInput{
		ProductCode: "P1", WarehouseID: w1, MinQty: 2, MaxQty: 20, ReorderPoint: 5, Multiple: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, "P1", rule.ProductCode)
	_, err = f.repl.SetReplenishmentRule(f.ctx, inventory.ReplenishmentRuleInput{
		ProductCode: "P2", WarehouseID: w1, MaxQty: 40, ReorderPoint: 10,
	})
	require.NoError(t, err)

	props, err := f.repl.ListReorderProposals(f.ctx, w1)
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "P1", props[0].Code)
	assert.Equal(t, int64(18), props[0].OrderQty)

	require.NoError(t, f.repl.DeleteReplenishmentRule(f.ctx, "P1", w1))
	props, err = f.repl.ListReorderProposals(f.ctx, w1)
	require.NoError(t, err)
	assert.Empty(t, props)

	_, err = f.repl.SetReplenishmentRule(f.ctx, inventory.ReplenishmentRuleInput{
		ProductCode: "P1", WarehouseID: w1, MinQty: 10, MaxQty: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMovements_Filtros(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p2", "P2", "Tuerca")
	f.increment(t, "P1", w1, 1)
	f.increment(t, "P2", w1, 1)
	f.increment(t, "P1", w2, 1)

	byProduct, err := f.movs.ListMovements(f.ctx, inventory.MovementQuery{ProductCode: "OLD-P1"})
	require.NoError(t, err)
	assert.Len(t, byProduct, 2)

	byBoth, err := f.movs.ListMovements(f.ctx, inventory.MovementQuery{ProductCode: "P1", WarehouseID: w2})
	require.NoError(t, err)
	assert.Len(t, byBoth, 1)

	recent, err := f.movs.ListMovements(f.ctx, inventory.MovementQuery{Days: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, recent, 2)
	assert.Equal(t, "P1", recent[0].ProductCode)
}
