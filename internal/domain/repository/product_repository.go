package repository

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para el catálogo (DIP).
// Los Get devuelven (nil, nil) cuando no existe el registro.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListCategories(ctx context.Context) ([]string, error)

	AddAlias(ctx context.Context, alias *entity.ProductAlias) error
	RemoveAlias(ctx context.Context, alias string) error
	ListAliases(ctx context.Context, productID string) ([]*entity.ProductAlias, error)
	// ResolveAlias devuelve el ID del producto dueño del alias, o "" si no existe.
	ResolveAlias(ctx context.Context, alias string) (string, error)
}
