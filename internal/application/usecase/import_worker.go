package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	domaininv "github.com/jhoicas/almacen-ledger/internal/domain/inventory"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

// Modos de importación de existencias.
const (
	ImportModeAdd     = "add"     // suma la cantidad a la existencia
	ImportModeReplace = "replace" // lleva la existencia a la cantidad
)

// ErrImportWorkerStopped el worker ya no acepta trabajos.
var ErrImportWorkerStopped = errors.New("import worker detenido")

// ImportJob filas ya parseadas para aplicar a una bodega.
type ImportJob struct {
	WarehouseID string
	Mode        string
	UserID      string
	Rows        []dto.ImportRowRequest
}

// ImportSummary resultado por trabajo. Err agrega los errores de cada fila (multierr).
type ImportSummary struct {
	Total   int
	Created int
	Linked  int
	Failed  int
	Err     error
}

type importRequest struct {
	ctx  context.Context
	job  ImportJob
	done chan ImportSummary
}

// ImportWorker aplica importaciones masivas en una goroutine de fondo, una a la vez,
// usando las mismas operaciones del libro que la captura manual.
type ImportWorker struct {
	catalog *CatalogUseCase
	ledger  *inventory.LedgerUseCase
	log     *logger.Logger

	jobs     chan importRequest
	wg       sync.WaitGroup
	mu       sync.RWMutex
	stopped  bool
	stopOnce sync.Once
}

// NewImportWorker construye el worker; queueSize es la capacidad de la cola (mínimo 1).
func NewImportWorker(catalog *CatalogUseCase, ledger *inventory.LedgerUseCase, log *logger.Logger, queueSize int) *ImportWorker {
	if queueSize < 1 {
		queueSize = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ImportWorker{
		catalog: catalog,
		ledger:  ledger,
		log:     log.Named("import"),
		jobs:    make(chan importRequest, queueSize),
	}
}

// Start lanza la goroutine que consume la cola hasta Stop.
func (w *ImportWorker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for req := range w.jobs {
			req.done <- w.Process(req.ctx, req.job)
			close(req.done)
		}
	}()
}

// Stop deja de aceptar trabajos y espera a que se vacíe la cola.
func (w *ImportWorker) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		close(w.jobs)
		w.mu.Unlock()
	})
	w.wg.Wait()
}

// Submit encola un trabajo; el canal devuelto recibe el resumen al terminar.
// Bloquea si la cola está llena hasta que haya espacio o ctx se cancele.
func (w *ImportWorker) Submit(ctx context.Context, job ImportJob) (<-chan ImportSummary, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return nil, ErrImportWorkerStopped
	}
	done := make(chan ImportSummary, 1)
	select {
	case w.jobs <- importRequest{ctx: context.WithoutCancel(ctx), job: job, done: done}:
		return done, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Process aplica el trabajo de forma síncrona. Una fila fallida no detiene las siguientes.
func (w *ImportWorker) Process(ctx context.Context, job ImportJob) ImportSummary {
	sum := ImportSummary{Total: len(job.Rows)}
	mode := job.Mode
	if mode == "" {
		mode = ImportModeAdd
	}
	if mode != ImportModeAdd && mode != ImportModeReplace {
		sum.Failed = sum.Total
		sum.Err = domain.Invalid("modo de importación %q", job.Mode)
		return sum
	}

	for i, row := range job.Rows {
		created, err := w.applyRow(ctx, job, mode, row)
		if err != nil {
			sum.Failed++
			sum.Err = multierr.Append(sum.Err, fmt.Errorf("fila %d (%s): %w", i+1, row.Code, err))
			continue
		}
		if created {
			sum.Created++
		}
		sum.Linked++
	}

	w.log.Info().
		Str("warehouse_id", job.WarehouseID).
		Str("mode", mode).
		Int("total", sum.Total).
		Int("created", sum.Created).
		Int("linked", sum.Linked).
		Int("failed", sum.Failed).
		Msg("importación completada")
	return sum
}

func (w *ImportWorker) applyRow(ctx context.Context, job ImportJob, mode string, row dto.ImportRowRequest) (bool, error) {
	code := domaininv.NormalizeCode(row.Code)
	if code == "" {
		return false, domain.Invalid("código vacío")
	}
	if row.Quantity < 0 {
		return false, domain.Invalid("cantidad negativa %d", row.Quantity)
	}

	// Solo los productos nuevos toman nombre y descripción de la fila.
	req := dto.UpsertProductRequest{Code: code, WarehouseID: job.WarehouseID}
	existing, err := w.catalog.ResolveCode(ctx, code)
	switch {
	case domain.IsNotFound(err):
		name, desc := domaininv.NormalizeName(row.Name), row.Description
		req.Name, req.Description = &name, &desc
	case err != nil:
		return false, err
	default:
		code = existing.Code
		req.Code = code
	}
	res, err := w.catalog.Upsert(ctx, req)
	if err != nil {
		return false, err
	}

	if row.Quantity == 0 {
		return res.Created, nil
	}
	switch mode {
	case ImportModeReplace:
		_, err = w.ledger.SetLevel(ctx, inventory.SetLevelInput{
			ProductCode: code,
			WarehouseID: job.WarehouseID,
			Target:      row.Quantity,
			Note:        "Importación (reemplazo)",
			UserID:      job.UserID,
		})
	default:
		_, err = w.ledger.Increment(ctx, inventory.MovementInput{
			ProductCode: code,
			WarehouseID: job.WarehouseID,
			Quantity:    row.Quantity,
			Note:        "Importación (suma)",
			UserID:      job.UserID,
		})
	}
	return res.Created, err
}
