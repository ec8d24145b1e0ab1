package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// EnsureLink crea el vínculo producto-bodega y su fila de stock en cero si faltan.
func (r *StockRepo) EnsureLink(ctx context.Context, productID, warehouseID string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_warehouse (product_id, warehouse_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, productID, warehouseID)
	if err != nil {
		return writeErr("insert product_warehouse", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO product_stock (product_id, warehouse_id, qty, updated_at) VALUES ($1, $2, 0, now())
		ON CONFLICT DO NOTHING`, productID, warehouseID)
	if err != nil {
		return writeErr("insert product_stock", err)
	}
	return nil
}

func (r *StockRepo) IsLinked(ctx context.Context, productID, warehouseID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM product_warehouse WHERE product_id = $1 AND warehouse_id = $2)`,
		productID, warehouseID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("is linked: %w", err)
	}
	return ok, nil
}

// Unlink borra el vínculo; stock, umbral y regla caen en cascada.
func (r *StockRepo) Unlink(ctx context.Context, productID, warehouseID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM product_warehouse WHERE product_id = $1 AND warehouse_id = $2`, productID, warehouseID)
	if err != nil {
		return fmt.Errorf("delete product_warehouse: %w", err)
	}
	return nil
}

// Get obtiene el stock actual de un producto en una bodega.
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	return r.get(ctx, productID, warehouseID, `
		SELECT product_id, warehouse_id, qty, updated_at
		FROM product_stock WHERE product_id = $1 AND warehouse_id = $2`)
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	return r.get(ctx, productID, warehouseID, `
		SELECT product_id, warehouse_id, qty, updated_at
		FROM product_stock WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`)
}

func (r *StockRepo) get(ctx context.Context, productID, warehouseID, query string) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return &entity.Stock{ProductID: productID, WarehouseID: warehouseID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// SetQuantity escribe la cantidad. El CHECK (qty >= 0) de la tabla respalda el rechazo.
func (r *StockRepo) SetQuantity(ctx context.Context, productID, warehouseID string, qty int64) error {
	if qty < 0 {
		return fmt.Errorf("set stock %d: %w", qty, domain.ErrInsufficientStock)
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE product_stock SET qty = $3, updated_at = now()
		WHERE product_id = $1 AND warehouse_id = $2`, productID, warehouseID, qty)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("set stock %d: %w", qty, domain.ErrInsufficientStock)
		}
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("vínculo", productID+":"+warehouseID)
	}
	return nil
}

// ListByWarehouse productos vinculados con cantidad y umbral, por código.
func (r *StockRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.StockLevel, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, pw.warehouse_id, p.code, p.name, p.description, COALESCE(s.qty, 0), COALESCE(t.min_qty, 0)
		FROM product_warehouse pw
		JOIN products p ON p.id = pw.product_id
		LEFT JOIN product_stock s ON s.product_id = pw.product_id AND s.warehouse_id = pw.warehouse_id
		LEFT JOIN stock_thresholds t ON t.product_id = pw.product_id AND t.warehouse_id = pw.warehouse_id
		WHERE pw.warehouse_id = $1
		ORDER BY p.code`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list stock by warehouse: %w", err)
	}
	defer rows.Close()
	out := []*entity.StockLevel{}
	for rows.Next() {
		var l entity.StockLevel
		if err := rows.Scan(&l.ProductID, &l.WarehouseID, &l.Code, &l.Name, &l.Description, &l.Quantity, &l.Threshold); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// ListByProduct existencias del producto en cada bodega vinculada.
func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Stock, error) {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, warehouse_id, qty, updated_at
		FROM product_stock WHERE product_id = $1
		ORDER BY warehouse_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()
	out := []*entity.Stock{}
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
