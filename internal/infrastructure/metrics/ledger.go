package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain"
)

var _ inventory.Metrics = (*LedgerMetrics)(nil)

// LedgerMetrics contadores del libro de existencias. Un *LedgerMetrics nil descarta todo.
type LedgerMetrics struct {
	movements  *prometheus.CounterVec
	units      *prometheus.CounterVec
	rejections *prometheus.CounterVec
	documents  *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	failures   *prometheus.CounterVec
}

// NewLedgerMetrics registra las métricas en reg. Con reg nil devuelve un recolector inerte.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	m := &LedgerMetrics{
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_movements_total",
			Help: "Movimientos registrados por tipo.",
		}, []string{"kind"}),
		units: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_movement_units_total",
			Help: "Unidades movidas (valor absoluto) por tipo.",
		}, []string{"kind"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_insufficient_stock_total",
			Help: "Operaciones rechazadas por stock insuficiente.",
		}, []string{"operation"}),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_documents_total",
			Help: "Documentos creados por tipo.",
		}, []string{"type"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Duración de las operaciones transaccionales del libro.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operation_errors_total",
			Help: "Operaciones fallidas por causa.",
		}, []string{"operation", "reason"}),
	}
	reg.MustRegister(m.movements, m.units, m.rejections, m.documents, m.duration, m.failures)
	return m
}

// MovementRecorded cuenta un movimiento confirmado.
func (m *LedgerMetrics) MovementRecorded(kind string, qty int64) {
	if m == nil || m.movements == nil {
		return
	}
	if qty < 0 {
		qty = -qty
	}
	m.movements.WithLabelValues(normalizeLabel(kind)).Inc()
	m.units.WithLabelValues(normalizeLabel(kind)).Add(float64(qty))
}

// StockRejected cuenta un rechazo por stock insuficiente.
func (m *LedgerMetrics) StockRejected(operation string) {
	if m == nil || m.rejections == nil {
		return
	}
	m.rejections.WithLabelValues(normalizeLabel(operation)).Inc()
}

// DocumentCreated cuenta un documento confirmado.
func (m *LedgerMetrics) DocumentCreated(docType string) {
	if m == nil || m.documents == nil {
		return
	}
	m.documents.WithLabelValues(normalizeLabel(docType)).Inc()
}

// ObserveOperation registra la duración y, si falló, la causa.
func (m *LedgerMetrics) ObserveOperation(operation string, elapsed time.Duration, err error) {
	if m == nil || m.duration == nil {
		return
	}
	op := normalizeLabel(operation)
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	if err != nil {
		m.failures.WithLabelValues(op, reason(err)).Inc()
	}
}

func reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
