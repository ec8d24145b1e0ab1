package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// core comparte transacción, auditoría y métricas entre los casos de uso del libro.
type core struct {
	d Deps
}

func newCore(d Deps) core { return core{d: d.withDefaults()} }

// run ejecuta fn en una transacción y, tras el commit, reporta métricas de los movimientos
// y documentos creados.
func (c core) run(ctx context.Context, op string, fn func(l *ledgerTx) error) (*ledgerTx, error) {
	start := time.Now()
	var lt *ledgerTx
	err := c.d.Tx.Run(ctx, func(tx Repos) error {
		lt = newLedgerTx(tx, c.d.Now())
		return fn(lt)
	})
	c.d.Metrics.ObserveOperation(op, time.Since(start), err)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			c.d.Metrics.StockRejected(op)
		}
		return nil, err
	}
	for _, m := range lt.movements {
		c.d.Metrics.MovementRecorded(m.Kind, m.Quantity)
	}
	for _, d := range lt.documents {
		c.d.Metrics.DocumentCreated(d.Type)
	}
	return lt, nil
}

// audit registra el evento; los errores del sink no deshacen una operación ya confirmada.
func (c core) audit(ctx context.Context, action, entityName, entityID, userID string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = nil
	}
	_ = c.d.Audit.Record(ctx, entity.AuditEvent{
		ID:        uuid.New().String(),
		Action:    action,
		Entity:    entityName,
		EntityID:  entityID,
		UserID:    userID,
		Payload:   raw,
		CreatedAt: c.d.Now(),
	})
}

// LedgerUseCase entradas, salidas, ajustes a nivel y traslados.
// Cada operación lee, valida, escribe la existencia y agrega el movimiento en una sola
// transacción con la fila de stock bloqueada (SELECT FOR UPDATE).
type LedgerUseCase struct {
	core
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(d Deps) *LedgerUseCase {
	return &LedgerUseCase{core: newCore(d)}
}

// MovementInput entrada para Increment/Decrement. ProductCode acepta código o alias.
type MovementInput struct {
	ProductCode string
	WarehouseID string
	Quantity    int64
	Note        string
	DocumentID  string
	UserID      string
}

// SetLevelInput entrada para SetLevel.
type SetLevelInput struct {
	ProductCode string
	WarehouseID string
	Target      int64
	Note        string
	DocumentID  string
	UserID      string
}

// TransferInput entrada para Transfer.
type TransferInput struct {
	ProductCode     string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        int64
	Note            string
	UserID          string
}

// TransferResult los dos movimientos del traslado; In.RefID == Out.ID.
type TransferResult struct {
	Out *entity.StockMovement
	In  *entity.StockMovement
}

// Increment suma Quantity y registra un movimiento IN. Quantity <= 0 no hace nada y devuelve (nil, nil).
func (uc *LedgerUseCase) Increment(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if in.Quantity <= 0 {
		return nil, nil
	}
	return uc.move(ctx, "increment", in, in.Quantity, entity.MovementKindIn)
}

// Decrement resta Quantity y registra un movimiento OUT. Si Quantity supera la existencia
// falla con *domain.InsufficientStockError y no cambia nada.
func (uc *LedgerUseCase) Decrement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if in.Quantity <= 0 {
		return nil, nil
	}
	return uc.move(ctx, "decrement", in, -in.Quantity, entity.MovementKindOut)
}

func (uc *LedgerUseCase) move(ctx context.Context, op string, in MovementInput, delta int64, kind string) (*entity.StockMovement, error) {
	var mov *entity.StockMovement
	_, err := uc.run(ctx, op, func(l *ledgerTx) error {
		p, err := l.product(ctx, in.ProductCode)
		if err != nil {
			return err
		}
		if _, err := l.warehouse(ctx, in.WarehouseID); err != nil {
			return err
		}
		if err := l.document(ctx, in.DocumentID); err != nil {
			return err
		}
		mov, err = l.apply(ctx, p, in.WarehouseID, delta, kind, movementMeta{
			Note: in.Note, DocumentID: in.DocumentID, UserID: in.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.audit(ctx, "stock."+op, "stock", mov.ProductID+":"+mov.WarehouseID, in.UserID, mov)
	return mov, nil
}

// SetLevel lleva la existencia a Target y registra un ADJ con la diferencia.
// Si la existencia ya es Target no registra movimiento y devuelve (nil, nil).
func (uc *LedgerUseCase) SetLevel(ctx context.Context, in SetLevelInput) (*entity.StockMovement, error) {
	if in.Target < 0 {
		return nil, domain.Invalid("nivel objetivo negativo %d", in.Target)
	}
	var mov *entity.StockMovement
	_, err := uc.run(ctx, "set_level", func(l *ledgerTx) error {
		p, err := l.product(ctx, in.ProductCode)
		if err != nil {
			return err
		}
		if _, err := l.warehouse(ctx, in.WarehouseID); err != nil {
			return err
		}
		if err := l.document(ctx, in.DocumentID); err != nil {
			return err
		}
		mov, err = l.setLevel(ctx, p, in.WarehouseID, in.Target, movementMeta{
			Note: in.Note, DocumentID: in.DocumentID, UserID: in.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if mov != nil {
		uc.audit(ctx, "stock.set_level", "stock", mov.ProductID+":"+mov.WarehouseID, in.UserID, mov)
	}
	return mov, nil
}

// Transfer mueve Quantity de una bodega a otra: XFER-OUT en origen y XFER-IN en destino,
// ambos en la misma transacción. Quantity <= 0 u origen == destino no hacen nada.
// Las filas se bloquean en orden de ID de bodega para que traslados cruzados no se interbloqueen.
func (uc *LedgerUseCase) Transfer(ctx context.Context, in TransferInput) (*TransferResult, error) {
	if in.Quantity <= 0 || in.FromWarehouseID == in.ToWarehouseID {
		return nil, nil
	}
	res := &TransferResult{}
	_, err := uc.run(ctx, "transfer", func(l *ledgerTx) error {
		p, err := l.product(ctx, in.ProductCode)
		if err != nil {
			return err
		}
		if _, err := l.warehouse(ctx, in.FromWarehouseID); err != nil {
			return err
		}
		if _, err := l.warehouse(ctx, in.ToWarehouseID); err != nil {
			return err
		}

		first, second := in.FromWarehouseID, in.ToWarehouseID
		if second < first {
			first, second = second, first
		}
		for _, wid := range []string{first, second} {
			if _, err := l.lock(ctx, p, wid); err != nil {
				return err
			}
		}

		meta := movementMeta{Note: in.Note, UserID: in.UserID}
		res.Out, err = l.apply(ctx, p, in.FromWarehouseID, -in.Quantity, entity.MovementKindXferOut, meta)
		if err != nil {
			return err
		}
		meta.RefID = res.Out.ID
		res.In, err = l.apply(ctx, p, in.ToWarehouseID, in.Quantity, entity.MovementKindXferIn, meta)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.audit(ctx, "stock.transfer", "stock", res.Out.ProductID, in.UserID, res)
	return res, nil
}

// Stock devuelve la existencia actual de un producto en una bodega (0 si no hay fila).
func (uc *LedgerUseCase) Stock(ctx context.Context, productCode, warehouseID string) (*entity.Stock, error) {
	p, err := resolveProduct(ctx, uc.d.Repos, productCode)
	if err != nil {
		return nil, err
	}
	if _, err := requireWarehouse(ctx, uc.d.Repos, warehouseID); err != nil {
		return nil, err
	}
	return uc.d.Repos.Stock.Get(ctx, p.ID, warehouseID)
}
