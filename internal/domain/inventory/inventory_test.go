package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/inventory"
)

func ptr(v int64) *int64 { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Códigos y series
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "P-001", inventory.NormalizeCode("  P-001 \t"))
	// "é" compuesta (NFD) y precompuesta (NFC) producen el mismo código.
	assert.Equal(t, inventory.NormalizeCode("caf\u00e9"), inventory.NormalizeCode("cafe\u0301"))
	assert.NotEqual(t, inventory.NormalizeCode("abc"), inventory.NormalizeCode("ABC"))
}

func TestNormalizeSeries(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "GEN"},
		{in: "   ", want: "GEN"},
		{in: "alm", want: "ALM"},
		{in: " ent-01 ", want: "ENT-01"},
		{in: "con espacio", wantErr: true},
		{in: "ABCDEFGHIJKLMNOPQ", wantErr: true},
		{in: "ñ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := inventory.NormalizeSeries(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFolios(t *testing.T) {
	assert.Equal(t, int64(1), inventory.NextFolio(0))
	assert.Equal(t, int64(8), inventory.NextFolio(7))
	assert.ErrorIs(t, inventory.ValidateFolio(0), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.ValidateFolio(-3), domain.ErrInvalidInput)
	assert.NoError(t, inventory.ValidateFolio(12))
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock bajo y sugerencias de compra
// ──────────────────────────────────────────────────────────────────────────────

func levels() []*entity.StockLevel {
	return []*entity.StockLevel{
		{ProductID: "1", Code: "C", Quantity: 2, Threshold: 5},
		{ProductID: "2", Code: "B", Quantity: 0, Threshold: 0},
		{ProductID: "3", Code: "A", Quantity: 10, Threshold: 5},
		{ProductID: "4", Code: "D", Quantity: 5, Threshold: 5},
		{ProductID: "5", Code: "E", Quantity: 0, Threshold: 3},
		{ProductID: "6", Code: "F", Quantity: 7, Threshold: 0},
	}
}

func TestLowStock_AgotadosPrimeroLuegoCodigo(t *testing.T) {
	got := inventory.LowStock(levels())

	codes := make([]string, 0, len(got))
	for _, l := range got {
		codes = append(codes, l.Code)
	}
	assert.Equal(t, []string{"B", "E", "C", "D"}, codes)
}

func TestPurchaseSuggestions_DeficitDescendente(t *testing.T) {
	got := inventory.PurchaseSuggestions(levels())

	require.Len(t, got, 2)
	assert.Equal(t, "C", got[0].Code)
	assert.Equal(t, int64(3), got[0].Deficit)
	assert.Equal(t, "E", got[1].Code)
	assert.Equal(t, int64(3), got[1].Deficit)
}

func TestPurchaseSuggestions_SinReglasNoFalla(t *testing.T) {
	got := inventory.PurchaseSuggestions([]*entity.StockLevel{{Code: "X", Quantity: 0}})
	assert.Empty(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reabastecimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestReorderQty(t *testing.T) {
	rule := entity.ReplenishmentRule{MinQty: 2, MaxQty: 20, ReorderPoint: 5, Multiple: 6}

	assert.Equal(t, int64(0), inventory.ReorderQty(6, rule), "sobre el punto de pedido")
	assert.Equal(t, int64(18), inventory.ReorderQty(5, rule), "15 redondeado a múltiplo de 6")
	assert.Equal(t, int64(24), inventory.ReorderQty(0, rule), "20 redondeado a múltiplo de 6")

	assert.Equal(t, int64(0), inventory.ReorderQty(0, entity.ReplenishmentRule{}), "regla vacía no pide")
	assert.Equal(t, int64(4), inventory.ReorderQty(0, entity.ReplenishmentRule{MinQty: 4}), "sin máximo repone hasta el mínimo")
}

func TestReorderProposals(t *testing.T) {
	rules := []*entity.ReplenishmentRule{
		{ProductID: "1", ReorderPoint: 3, MaxQty: 10, Multiple: 1},
		{ProductID: "3", ReorderPoint: 3, MaxQty: 10, Multiple: 1},
		{ProductID: "2", ReorderPoint: 1, MaxQty: 12, Multiple: 5, LeadTimeDays: 4},
	}
	got := inventory.ReorderProposals(levels(), rules)

	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Code)
	assert.Equal(t, int64(15), got[0].OrderQty)
	assert.Equal(t, 4, got[0].LeadTimeDays)
	assert.Equal(t, "C", got[1].Code)
	assert.Equal(t, int64(8), got[1].OrderQty)
}

func TestValidateReplenishment(t *testing.T) {
	r := &entity.ReplenishmentRule{MinQty: 1, MaxQty: 5}
	require.NoError(t, inventory.ValidateReplenishment(r))
	assert.Equal(t, int64(1), r.Multiple)

	assert.ErrorIs(t, inventory.ValidateReplenishment(&entity.ReplenishmentRule{MinQty: 9, MaxQty: 5}), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.ValidateReplenishment(&entity.ReplenishmentRule{LeadTimeDays: -1}), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conteos y unidades
// ──────────────────────────────────────────────────────────────────────────────

func TestCountDeltas(t *testing.T) {
	lines := []*entity.CountLine{
		{ProductID: "1", SysQty: 3, CountedQty: ptr(8)},
		{ProductID: "2", SysQty: 4, CountedQty: nil},
		{ProductID: "3", SysQty: 4, CountedQty: ptr(4)},
		{ProductID: "4", SysQty: 6, CountedQty: ptr(1)},
	}
	deltas := inventory.CountDeltas(lines, nil)

	require.Len(t, deltas, 2)
	assert.Equal(t, int64(5), deltas[0].Delta)
	assert.Equal(t, int64(-5), deltas[1].Delta)
	assert.Equal(t, int64(10), inventory.SumAbs(deltas))
	assert.Empty(t, inventory.CountDeltas(lines[1:3], nil))
}

func TestCountDeltas_UsaExistenciaActual(t *testing.T) {
	lines := []*entity.CountLine{
		{ProductID: "1", SysQty: 10, CountedQty: ptr(8)},
		{ProductID: "2", SysQty: 5, CountedQty: ptr(5)},
		{ProductID: "3", SysQty: 2, CountedQty: ptr(2)},
	}
	deltas := inventory.CountDeltas(lines, map[string]int64{"1": 6, "2": 7, "3": 2})

	require.Len(t, deltas, 2)
	assert.Equal(t, "1", deltas[0].ProductID)
	assert.Equal(t, int64(2), deltas[0].Delta)
	assert.Equal(t, "2", deltas[1].ProductID)
	assert.Equal(t, int64(-2), deltas[1].Delta)
}

func TestBaseUnits(t *testing.T) {
	assert.True(t, decimal.NewFromInt(36).Equal(inventory.BaseUnits(3, decimal.NewFromInt(12))))
	assert.True(t, decimal.NewFromInt(3).Equal(inventory.BaseUnits(3, decimal.Zero)))
}
