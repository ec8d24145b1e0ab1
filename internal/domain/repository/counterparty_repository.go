package repository

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// CounterpartyRepository proveedores y clientes.
type CounterpartyRepository interface {
	Create(ctx context.Context, c *entity.Counterparty) error
	Update(ctx context.Context, c *entity.Counterparty) error
	GetByID(ctx context.Context, id string) (*entity.Counterparty, error)
	List(ctx context.Context, kind string) ([]*entity.Counterparty, error)
	Delete(ctx context.Context, id string) error
}
