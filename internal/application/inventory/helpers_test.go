package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	w1 = "00000000-0000-0000-0000-0000000000w1"
	w2 = "00000000-0000-0000-0000-0000000000w2"
)

type recordedAudit struct {
	mu     sync.Mutex
	events []entity.AuditEvent
}

func (r *recordedAudit) Record(_ context.Context, e entity.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordedAudit) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

type recordedMetrics struct {
	mu         sync.Mutex
	movements  map[string]int
	rejections map[string]int
	documents  map[string]int
}

func newRecordedMetrics() *recordedMetrics {
	return &recordedMetrics{movements: map[string]int{}, rejections: map[string]int{}, documents: map[string]int{}}
}

func (m *recordedMetrics) MovementRecorded(kind string, _ int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements[kind]++
}

func (m *recordedMetrics) StockRejected(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejections[op]++
}

func (m *recordedMetrics) DocumentCreated(t string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[t]++
}

func (m *recordedMetrics) ObserveOperation(string, time.Duration, error) {}

type fixture struct {
	ctx     context.Context
	store   *memory.Store
	audit   *recordedAudit
	metrics *recordedMetrics
	ledger  *inventory.LedgerUseCase
	docs    *inventory.DocumentUseCase
	repl    *inventory.ReplenishmentUseCase
	counts  *inventory.CountUseCase
	movs    *inventory.MovementQueryUseCase
}

// newFixture bodegas W1 y W2 y el producto P1 (alias "OLD-P1"), sin existencias.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	f := &fixture{ctx: ctx, store: store, audit: &recordedAudit{}, metrics: newRecordedMetrics()}
	d := inventory.Deps{Tx: store, Repos: store.Repos(), Audit: f.audit, Metrics: f.metrics}
	f.ledger = inventory.NewLedgerUseCase(d)
	f.docs = inventory.NewDocumentUseCase(d)
	f.repl = inventory.NewReplenishmentUseCase(d)
	f.counts = inventory.NewCountUseCase(d)
	f.movs = inventory.NewMovementQueryUseCase(d)

	r := store.Repos()
	now := time.Now()
	require.NoError(t, r.Warehouses.Create(ctx, &entity.Warehouse{ID: w1, Name: "W1", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, r.Warehouses.Create(ctx, &entity.Warehouse{ID: w2, Name: "W2", CreatedAt: now, UpdatedAt: now}))
	f.addProduct(t, "p1", "P1", "Tornillo")
	require.NoError(t, r.Products.AddAlias(ctx, &entity.ProductAlias{Alias: "OLD-P1", ProductID: "p1", CreatedAt: now}))
	return f
}

func (f *fixture) addProduct(t *testing.T, id, code, name string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.store.Repos().Products.Create(f.ctx, &entity.Product{
		ID: id, Code: code, Name: name, UnitFactor: decimal.NewFromInt(1), CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) qty(t *testing.T, code, warehouseID string) int64 {
	t.Helper()
	st, err := f.ledger.Stock(f.ctx, code, warehouseID)
	require.NoError(t, err)
	return st.Quantity
}

func (f *fixture) journal(t *testing.T, warehouseID string) []*entity.StockMovement {
	t.Helper()
	list, err := f.movs.ListMovements(f.ctx, inventory.MovementQuery{WarehouseID: warehouseID})
	require.NoError(t, err)
	return list
}

func (f *fixture) allMovements(t *testing.T) []*entity.StockMovement {
	t.Helper()
	list, err := f.movs.ListMovements(f.ctx, inventory.MovementQuery{})
	require.NoError(t, err)
	return list
}

func (f *fixture) increment(t *testing.T, code, warehouseID string, qty int64) {
	t.Helper()
	_, err := f.ledger.Increment(f.ctx, inventory.MovementInput{ProductCode: code, WarehouseID: warehouseID, Quantity: qty})
	require.NoError(t, err)
}
