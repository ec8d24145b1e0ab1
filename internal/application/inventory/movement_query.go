package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

const (
	defaultMovementLimit = 200
	maxMovementLimit     = 1000
)

// MovementQueryUseCase lectura del diario de movimientos.
type MovementQueryUseCase struct {
	core
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(d Deps) *MovementQueryUseCase {
	return &MovementQueryUseCase{core: newCore(d)}
}

// MovementQuery filtros: ProductCode acepta código o alias; Days > 0 toma los últimos N días
// y tiene prioridad sobre From.
type MovementQuery struct {
	WarehouseID string
	ProductCode string
	Days        int
	From        *time.Time
	To          *time.Time
	Limit       int
}

// ListMovements movimientos más recientes primero.
func (uc *MovementQueryUseCase) ListMovements(ctx context.Context, q MovementQuery) ([]*entity.StockMovement, error) {
	f := entity.MovementFilter{WarehouseID: q.WarehouseID, From: q.From, To: q.To, Limit: q.Limit}
	if q.ProductCode != "" {
		p, err := resolveProduct(ctx, uc.d.Repos, q.ProductCode)
		if err != nil {
			return nil, err
		}
		f.ProductID = p.ID
	}
	if q.Days > 0 {
		from := uc.d.Now().AddDate(0, 0, -q.Days)
		f.From = &from
	}
	if f.Limit <= 0 {
		f.Limit = defaultMovementLimit
	}
	if f.Limit > maxMovementLimit {
		f.Limit = maxMovementLimit
	}
	return uc.d.Repos.Movements.List(ctx, f)
}
