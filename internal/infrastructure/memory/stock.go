package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo vínculos y existencias en memoria.
type StockRepo struct{ v *view }

func (r *StockRepo) EnsureLink(_ context.Context, productID, warehouseID string) error {
	d, done := r.v.write()
	defer done()
	if _, ok := d.products[productID]; !ok {
		return domain.NotFound("producto", productID)
	}
	if _, ok := d.warehouses[warehouseID]; !ok {
		return domain.NotFound("bodega", warehouseID)
	}
	k := pairKey{productID, warehouseID}
	d.links[k] = struct{}{}
	if _, ok := d.stock[k]; !ok {
		d.stock[k] = entity.Stock{ProductID: productID, WarehouseID: warehouseID, UpdatedAt: time.Now()}
	}
	return nil
}

func (r *StockRepo) IsLinked(_ context.Context, productID, warehouseID string) (bool, error) {
	d, done := r.v.read()
	defer done()
	_, ok := d.links[pairKey{productID, warehouseID}]
	return ok, nil
}

func (r *StockRepo) Unlink(_ context.Context, productID, warehouseID string) error {
	d, done := r.v.write()
	defer done()
	k := pairKey{productID, warehouseID}
	delete(d.links, k)
	delete(d.stock, k)
	delete(d.thresholds, k)
	delete(d.rules, k)
	return nil
}

func (r *StockRepo) Get(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	d, done := r.v.read()
	defer done()
	s, ok := d.stock[pairKey{productID, warehouseID}]
	if !ok {
		return &entity.Stock{ProductID: productID, WarehouseID: warehouseID}, nil
	}
	return &s, nil
}

// GetForUpdate equivale a Get: las transacciones ya se ejecutan de a una.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(ctx, productID, warehouseID)
}

func (r *StockRepo) SetQuantity(_ context.Context, productID, warehouseID string, qty int64) error {
	if qty < 0 {
		return fmt.Errorf("set stock: %w", domain.ErrInsufficientStock)
	}
	d, done := r.v.write()
	defer done()
	k := pairKey{productID, warehouseID}
	if _, ok := d.links[k]; !ok {
		return fmt.Errorf("set stock: %w", domain.NotFound("vínculo", productID+":"+warehouseID))
	}
	d.stock[k] = entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: qty, UpdatedAt: time.Now()}
	return nil
}

func (r *StockRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.StockLevel, error) {
	d, done := r.v.read()
	defer done()
	out := []*entity.StockLevel{}
	for k := range d.links {
		if k.warehouse != warehouseID {
			continue
		}
		p := d.products[k.product]
		out = append(out, &entity.StockLevel{
			ProductID:   p.ID,
			WarehouseID: warehouseID,
			Code:        p.Code,
			Name:        p.Name,
			Description: p.Description,
			Quantity:    d.stock[k].Quantity,
			Threshold:   d.thresholds[k].MinQty,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *StockRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Stock, error) {
	d, done := r.v.read()
	defer done()
	out := []*entity.Stock{}
	for k, s := range d.stock {
		if k.product == productID {
			s := s
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WarehouseID < out[j].WarehouseID })
	return out, nil
}
