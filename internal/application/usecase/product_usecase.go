package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-ledger/internal/domain/inventory"
)

// CatalogUseCase catálogo de productos: upsert por código, vínculos con bodegas y alias.
// El stock nunca se toca aquí; se maneja vía movimientos.
type CatalogUseCase struct {
	tx    inventory.TxRunner
	repos inventory.Repos
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(tx inventory.TxRunner, repos inventory.Repos) *CatalogUseCase {
	return &CatalogUseCase{tx: tx, repos: repos}
}

// Upsert crea o actualiza un producto por código. Name/Description nil no pisan valores;
// con WarehouseID crea el vínculo y la fila de stock en cero.
func (uc *CatalogUseCase) Upsert(ctx context.Context, in dto.UpsertProductRequest) (*dto.UpsertProductResponse, error) {
	code := domaininv.NormalizeCode(in.Code)
	if code == "" {
		return nil, domain.Invalid("código vacío")
	}
	out := &dto.UpsertProductResponse{}
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		now := time.Now()
		p, err := r.Products.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if p == nil {
			// Un código nuevo no puede chocar con un alias existente.
			owner, err := r.Products.ResolveAlias(ctx, code)
			if err != nil {
				return err
			}
			if owner != "" {
				return domain.Duplicate("código %q ya es alias de otro producto", code)
			}
			p = &entity.Product{
				ID:         uuid.New().String(),
				Code:       code,
				UnitFactor: decimal.NewFromInt(1),
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if in.Name != nil {
				p.Name = domaininv.NormalizeName(*in.Name)
			}
			if in.Description != nil {
				p.Description = *in.Description
			}
			if err := r.Products.Create(ctx, p); err != nil {
				return err
			}
			out.Created = true
		} else if in.Name != nil || in.Description != nil {
			if in.Name != nil {
				p.Name = domaininv.NormalizeName(*in.Name)
			}
			if in.Description != nil {
				p.Description = *in.Description
			}
			p.UpdatedAt = now
			if err := r.Products.Update(ctx, p); err != nil {
				return err
			}
		}
		if in.WarehouseID != "" {
			w, err := r.Warehouses.GetByID(ctx, in.WarehouseID)
			if err != nil {
				return err
			}
			if w == nil {
				return domain.NotFound("bodega", in.WarehouseID)
			}
			if err := r.Stock.EnsureLink(ctx, p.ID, in.WarehouseID); err != nil {
				return err
			}
		}
		out.Product = toProductResponse(p, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update edita atributos del catálogo (nombre, descripción, categoría, unidad y factor).
func (uc *CatalogUseCase) Update(ctx context.Context, codeOrAlias string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.resolve(ctx, codeOrAlias)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = domaininv.NormalizeName(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = domaininv.NormalizeName(*in.Category)
	}
	if in.Unit != nil {
		p.Unit = domaininv.NormalizeCode(*in.Unit)
	}
	if in.UnitFactor != nil {
		if !in.UnitFactor.GreaterThan(decimal.Zero) {
			return nil, domain.Invalid("factor de unidad debe ser positivo")
		}
		p.UnitFactor = *in.UnitFactor
	}
	p.UpdatedAt = time.Now()
	if err := uc.repos.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p, nil), nil
}

// Get obtiene un producto por código o alias, con sus alias.
func (uc *CatalogUseCase) Get(ctx context.Context, codeOrAlias string) (*dto.ProductResponse, error) {
	p, err := uc.resolve(ctx, codeOrAlias)
	if err != nil {
		return nil, err
	}
	aliases, err := uc.repos.Products.ListAliases(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p, aliases), nil
}

// ResolveCode devuelve el producto dueño de un código o alias.
func (uc *CatalogUseCase) ResolveCode(ctx context.Context, codeOrAlias string) (*dto.ProductResponse, error) {
	p, err := uc.resolve(ctx, codeOrAlias)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p, nil), nil
}

// List productos del catálogo ordenados por código.
func (uc *CatalogUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repos.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, nil))
	}
	return items, nil
}

// ListByWarehouse productos vinculados a la bodega con su existencia.
func (uc *CatalogUseCase) ListByWarehouse(ctx context.Context, warehouseID string) ([]dto.StockLevelResponse, error) {
	w, err := uc.repos.Warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.NotFound("bodega", warehouseID)
	}
	levels, err := uc.repos.Stock.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		items = append(items, ToStockLevelResponse(l))
	}
	return items, nil
}

// ListCategories categorías distintas en uso, ordenadas.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]string, error) {
	return uc.repos.Products.ListCategories(ctx)
}

// Link vincula un producto existente a una bodega (con fila de stock en cero).
func (uc *CatalogUseCase) Link(ctx context.Context, codeOrAlias, warehouseID string) error {
	return uc.tx.Run(ctx, func(r inventory.Repos) error {
		p, w, err := uc.pair(ctx, r, codeOrAlias, warehouseID)
		if err != nil {
			return err
		}
		return r.Stock.EnsureLink(ctx, p.ID, w.ID)
	})
}

// Unlink quita el vínculo. Falla con domain.ErrConflict si aún hay existencia en la bodega.
func (uc *CatalogUseCase) Unlink(ctx context.Context, codeOrAlias, warehouseID string) error {
	return uc.tx.Run(ctx, func(r inventory.Repos) error {
		p, w, err := uc.pair(ctx, r, codeOrAlias, warehouseID)
		if err != nil {
			return err
		}
		st, err := r.Stock.GetForUpdate(ctx, p.ID, w.ID)
		if err != nil {
			return err
		}
		if st.Quantity > 0 {
			return domain.Conflict("%s tiene %d unidades en la bodega", p.Code, st.Quantity)
		}
		return r.Stock.Unlink(ctx, p.ID, w.ID)
	})
}

// IsLinked indica si el producto está vinculado; un producto inexistente no lo está.
func (uc *CatalogUseCase) IsLinked(ctx context.Context, codeOrAlias, warehouseID string) (bool, error) {
	p, err := uc.resolve(ctx, codeOrAlias)
	if err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return uc.repos.Stock.IsLinked(ctx, p.ID, warehouseID)
}

// AddAlias registra un código alterno. No puede coincidir con el código de otro producto.
func (uc *CatalogUseCase) AddAlias(ctx context.Context, codeOrAlias string, in dto.AliasRequest) error {
	alias := domaininv.NormalizeCode(in.Alias)
	if alias == "" {
		return domain.Invalid("alias vacío")
	}
	return uc.tx.Run(ctx, func(r inventory.Repos) error {
		p, err := uc.resolveIn(ctx, r, codeOrAlias)
		if err != nil {
			return err
		}
		clash, err := r.Products.GetByCode(ctx, alias)
		if err != nil {
			return err
		}
		if clash != nil {
			return domain.Duplicate("alias %q es el código de un producto", alias)
		}
		return r.Products.AddAlias(ctx, &entity.ProductAlias{Alias: alias, ProductID: p.ID, CreatedAt: time.Now()})
	})
}

// RemoveAlias elimina un alias.
func (uc *CatalogUseCase) RemoveAlias(ctx context.Context, alias string) error {
	return uc.repos.Products.RemoveAlias(ctx, domaininv.NormalizeCode(alias))
}

// ListAliases alias del producto.
func (uc *CatalogUseCase) ListAliases(ctx context.Context, codeOrAlias string) ([]string, error) {
	p, err := uc.resolve(ctx, codeOrAlias)
	if err != nil {
		return nil, err
	}
	list, err := uc.repos.Products.ListAliases(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return aliasNames(list), nil
}

func (uc *CatalogUseCase) resolve(ctx context.Context, codeOrAlias string) (*entity.Product, error) {
	return uc.resolveIn(ctx, uc.repos, codeOrAlias)
}

func (uc *CatalogUseCase) resolveIn(ctx context.Context, r inventory.Repos, codeOrAlias string) (*entity.Product, error) {
	code := domaininv.NormalizeCode(codeOrAlias)
	if code == "" {
		return nil, domain.Invalid("código vacío")
	}
	p, err := r.Products.GetByCode(ctx, code)
	if err != nil || p != nil {
		return p, err
	}
	id, err := r.Products.ResolveAlias(ctx, code)
	if err != nil {
		return nil, err
	}
	if id != "" {
		if p, err = r.Products.GetByID(ctx, id); err != nil || p != nil {
			return p, err
		}
	}
	return nil, domain.NotFound("producto", code)
}

func (uc *CatalogUseCase) pair(ctx context.Context, r inventory.Repos, codeOrAlias, warehouseID string) (*entity.Product, *entity.Warehouse, error) {
	p, err := uc.resolveIn(ctx, r, codeOrAlias)
	if err != nil {
		return nil, nil, err
	}
	w, err := r.Warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, nil, err
	}
	if w == nil {
		return nil, nil, domain.NotFound("bodega", warehouseID)
	}
	return p, w, nil
}

func aliasNames(list []*entity.ProductAlias) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Alias)
	}
	return out
}

func toProductResponse(p *entity.Product, aliases []*entity.ProductAlias) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	r := &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Unit:        p.Unit,
		UnitFactor:  p.UnitFactor,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if len(aliases) > 0 {
		r.Aliases = aliasNames(aliases)
	}
	return r
}

// ToStockLevelResponse mapea un nivel de stock a su DTO.
func ToStockLevelResponse(l *entity.StockLevel) dto.StockLevelResponse {
	return dto.StockLevelResponse{
		ProductID:   l.ProductID,
		Code:        l.Code,
		Name:        l.Name,
		Description: l.Description,
		Quantity:    l.Quantity,
		Threshold:   l.Threshold,
	}
}
