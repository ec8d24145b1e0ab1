package repository

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// StockMovementRepository define el puerto del diario de movimientos (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// List ordena del más reciente al más antiguo; con DocumentID ordena por inserción.
	List(ctx context.Context, filter entity.MovementFilter) ([]*entity.StockMovement, error)
}
