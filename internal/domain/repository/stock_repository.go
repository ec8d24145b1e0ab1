package repository

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// StockRepository define el puerto para vínculos producto-bodega y existencias.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// EnsureLink crea el vínculo y la fila de stock en cero si faltan.
	EnsureLink(ctx context.Context, productID, warehouseID string) error
	IsLinked(ctx context.Context, productID, warehouseID string) (bool, error)
	Unlink(ctx context.Context, productID, warehouseID string) error

	// Get y GetForUpdate devuelven cantidad 0 si no hay fila.
	Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	// SetQuantity escribe la cantidad; una cantidad negativa se rechaza con domain.ErrInsufficientStock.
	SetQuantity(ctx context.Context, productID, warehouseID string, qty int64) error

	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.StockLevel, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Stock, error)
}
