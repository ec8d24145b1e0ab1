package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

// Repos agrupa los repositorios del libro de existencias. El TxRunner entrega una copia
// atada a la transacción; fuera de ella se usa la atada al pool.
type Repos struct {
	Products       repository.ProductRepository
	Warehouses     repository.WarehouseRepository
	Stock          repository.StockRepository
	Movements      repository.StockMovementRepository
	Documents      repository.MovementDocumentRepository
	Rules          repository.RuleRepository
	Counts         repository.CountRepository
	Counterparties repository.CounterpartyRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ningún cambio queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx Repos) error) error
}

// AuditSink recibe eventos después de un commit exitoso.
type AuditSink interface {
	Record(ctx context.Context, event entity.AuditEvent) error
}

// Metrics registra contadores del libro. Las implementaciones deben tolerar receptor nil.
type Metrics interface {
	MovementRecorded(kind string, qty int64)
	StockRejected(operation string)
	DocumentCreated(docType string)
	ObserveOperation(operation string, elapsed time.Duration, err error)
}

// Deps dependencias comunes de los casos de uso del libro.
type Deps struct {
	Tx            TxRunner
	Repos         Repos
	Audit         AuditSink // opcional
	Metrics       Metrics   // opcional
	DefaultSeries string    // serie de folios por defecto, "GEN" si vacía
	Now           func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Audit == nil {
		d.Audit = nopAudit{}
	}
	if d.Metrics == nil {
		d.Metrics = nopMetrics{}
	}
	if d.DefaultSeries == "" {
		d.DefaultSeries = entity.DefaultSeries
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

type nopAudit struct{}

func (nopAudit) Record(context.Context, entity.AuditEvent) error { return nil }

type nopMetrics struct{}

func (nopMetrics) MovementRecorded(string, int64) {}
func (nopMetrics) StockRejected(string) {}
func (nopMetrics) DocumentCreated(string) {}
func (nopMetrics) ObserveOperation(string, time.Duration, error) {}
