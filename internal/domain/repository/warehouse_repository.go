package repository

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para bodegas.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	GetByName(ctx context.Context, name string) (*entity.Warehouse, error)
	List(ctx context.Context) ([]*entity.Warehouse, error)
	// Delete elimina la bodega y en cascada sus vínculos, stock, reglas y conteos.
	// Movimientos y documentos se conservan.
	Delete(ctx context.Context, id string) error
}
