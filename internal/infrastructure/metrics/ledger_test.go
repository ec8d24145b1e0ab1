package metrics_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/metrics"
)

func TestLedgerMetrics_Contadores(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewLedgerMetrics(reg)

	m.MovementRecorded("OUT", -4)
	m.MovementRecorded("OUT", -6)
	m.MovementRecorded("IN", 3)
	m.StockRejected("decrement")
	m.DocumentCreated("ADJ")
	m.ObserveOperation("decrement", 5*time.Millisecond, &domain.InsufficientStockError{})
	m.ObserveOperation("increment", time.Millisecond, nil)

	expected := `
# HELP ledger_movement_units_total Unidades movidas (valor absoluto) por tipo.
# TYPE ledger_movement_units_total counter
ledger_movement_units_total{kind="IN"} 3
ledger_movement_units_total{kind="OUT"} 10
`
	assert.NoError(t, testutil.CollectAndCompare(reg, strings.NewReader(expected), "ledger_movement_units_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "ledger_insufficient_stock_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "ledger_operation_errors_total"))
}

func TestLedgerMetrics_NilSeguro(t *testing.T) {
	var m *metrics.LedgerMetrics
	assert.NotPanics(t, func() {
		m.MovementRecorded("IN", 1)
		m.StockRejected("x")
		m.DocumentCreated("IN")
		m.ObserveOperation("x", time.Second, errors.New("boom"))
	})

	inert := metrics.NewLedgerMetrics(nil)
	assert.NotPanics(t, func() { inert.MovementRecorded("IN", 1) })
}
