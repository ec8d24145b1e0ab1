package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var _ repository.RuleRepository = (*RuleRepo)(nil)

// RuleRepo umbrales y reglas de reabastecimiento; ambas tablas cuelgan de product_warehouse.
type RuleRepo struct {
	q Querier
}

// NewRuleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRuleRepository(q Querier) *RuleRepo {
	return &RuleRepo{q: q}
}

func (r *RuleRepo) SetThreshold(ctx context.Context, rule *entity.ThresholdRule) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_thresholds (product_id, warehouse_id, min_qty, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET min_qty = EXCLUDED.min_qty, updated_at = EXCLUDED.updated_at`,
		rule.ProductID, rule.WarehouseID, rule.MinQty, rule.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("vínculo", rule.ProductID+":"+rule.WarehouseID)
		}
		return writeErr("upsert threshold", err)
	}
	return nil
}

func (r *RuleRepo) ListThresholds(ctx context.Context, warehouseID string) ([]*entity.ThresholdRule, error) {
	rows, err := r.q.Query(ctx, `
		SELECT t.product_id, t.warehouse_id, t.min_qty, t.updated_at
		FROM stock_thresholds t
		JOIN products p ON p.id = t.product_id
		WHERE t.warehouse_id = $1
		ORDER BY p.code`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list thresholds: %w", err)
	}
	defer rows.Close()
	out := []*entity.ThresholdRule{}
	for rows.Next() {
		var t entity.ThresholdRule
		if err := rows.Scan(&t.ProductID, &t.WarehouseID, &t.MinQty, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan threshold: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *RuleRepo) UpsertReplenishment(ctx context.Context, rule *entity.ReplenishmentRule) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO replenishment_rules (product_id, warehouse_id, min_qty, max_qty, reorder_point, multiple, lead_time_days, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (product_id, warehouse_id) DO UPDATE SET
			min_qty = EXCLUDED.min_qty,
			max_qty = EXCLUDED.max_qty,
			reorder_point = EXCLUDED.reorder_point,
			multiple = EXCLUDED.multiple,
			lead_time_days = EXCLUDED.lead_time_days,
			updated_at = EXCLUDED.updated_at`,
		rule.ProductID, rule.WarehouseID, rule.MinQty, rule.MaxQty, rule.ReorderPoint,
		rule.Multiple, rule.LeadTimeDays, rule.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("vínculo", rule.ProductID+":"+rule.WarehouseID)
		}
		return writeErr("upsert replenishment rule", err)
	}
	return nil
}

func (r *RuleRepo) DeleteReplenishment(ctx context.Context, productID, warehouseID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM replenishment_rules WHERE product_id = $1 AND warehouse_id = $2`, productID, warehouseID)
	if err != nil {
		return fmt.Errorf("delete replenishment rule: %w", err)
	}
	return nil
}

func (r *RuleRepo) ListReplenishment(ctx context.Context, warehouseID string) ([]*entity.ReplenishmentRule, error) {
	rows, err := r.q.Query(ctx, `
		SELECT rr.product_id, rr.warehouse_id, rr.min_qty, rr.max_qty, rr.reorder_point, rr.multiple,
		       rr.lead_time_days, rr.updated_at, p.code, p.name
		FROM replenishment_rules rr
		JOIN products p ON p.id = rr.product_id
		WHERE rr.warehouse_id = $1
		ORDER BY p.code`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list replenishment rules: %w", err)
	}
	defer rows.Close()
	out := []*entity.ReplenishmentRule{}
	for rows.Next() {
		var rr entity.ReplenishmentRule
		if err := rows.Scan(&rr.ProductID, &rr.WarehouseID, &rr.MinQty, &rr.MaxQty, &rr.ReorderPoint, &rr.Multiple,
			&rr.LeadTimeDays, &rr.UpdatedAt, &rr.ProductCode, &rr.ProductName); err != nil {
			return nil, fmt.Errorf("scan replenishment rule: %w", err)
		}
		out = append(out, &rr)
	}
	return out, rows.Err()
}
