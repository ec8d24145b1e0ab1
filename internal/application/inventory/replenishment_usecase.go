package inventory

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-ledger/internal/domain/inventory"
)

// ReplenishmentUseCase umbrales, reglas de reabastecimiento y consultas consultivas
// (stock bajo, sugerencias de compra, propuestas de pedido). Las consultas no modifican nada
// y una regla ausente equivale a "sin umbral".
type ReplenishmentUseCase struct {
	core
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(d Deps) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{core: newCore(d)}
}

func (uc *ReplenishmentUseCase) levels(ctx context.Context, warehouseID string) ([]*entity.StockLevel, error) {
	if _, err := requireWarehouse(ctx, uc.d.Repos, warehouseID); err != nil {
		return nil, err
	}
	return uc.d.Repos.Stock.ListByWarehouse(ctx, warehouseID)
}

// ListLowStock productos con (umbral > 0 y qty <= umbral) o qty == 0; agotados primero, luego código.
func (uc *ReplenishmentUseCase) ListLowStock(ctx context.Context, warehouseID string) ([]*entity.StockLevel, error) {
	lv, err := uc.levels(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return domaininv.LowStock(lv), nil
}

// ListPurchaseSuggestions déficit = umbral - qty para umbral > qty; déficit descendente, luego código.
func (uc *ReplenishmentUseCase) ListPurchaseSuggestions(ctx context.Context, warehouseID string) ([]*entity.PurchaseSuggestion, error) {
	lv, err := uc.levels(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return domaininv.PurchaseSuggestions(lv), nil
}

// ListReorderProposals cantidades a pedir según las reglas de reabastecimiento de la bodega.
func (uc *ReplenishmentUseCase) ListReorderProposals(ctx context.Context, warehouseID string) ([]*entity.ReorderProposal, error) {
	lv, err := uc.levels(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	rules, err := uc.d.Repos.Rules.ListReplenishment(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return domaininv.ReorderProposals(lv, rules), nil
}

// SetThreshold fija el mínimo de un producto en una bodega (0 desactiva el umbral).
// Vincula el producto a la bodega si aún no lo está.
func (uc *ReplenishmentUseCase) SetThreshold(ctx context.Context, productCode, warehouseID string, minQty int64) error {
	if minQty < 0 {
		return domain.Invalid("umbral negativo %d", minQty)
	}
	var rule *entity.ThresholdRule
	_, err := uc.run(ctx, "set_threshold", func(l *ledgerTx) error {
		p, err := l.product(ctx, productCode)
		if err != nil {
			return err
		}
		if _, err := l.warehouse(ctx, warehouseID); err != nil {
			return err
		}
		if err := l.r.Stock.EnsureLink(ctx, p.ID, warehouseID); err != nil {
			return err
		}
		rule = &entity.ThresholdRule{ProductID: p.ID, WarehouseID: warehouseID, MinQty: minQty, UpdatedAt: l.now}
		return l.r.Rules.SetThreshold(ctx, rule)
	})
	if err != nil {
		return err
	}
	uc.audit(ctx, "rule.threshold", "threshold", rule.ProductID+":"+warehouseID, "", rule)
	return nil
}

// ListThresholds umbrales configurados en la bodega.
func (uc *ReplenishmentUseCase) ListThresholds(ctx context.Context, warehouseID string) ([]*entity.ThresholdRule, error) {
	if _, err := requireWarehouse(ctx, uc.d.Repos, warehouseID); err != nil {
		return nil, err
	}
	return uc.d.Repos.Rules.ListThresholds(ctx, warehouseID)
}

// ReplenishmentRuleInput parámetros de una regla; Multiple < 1 se toma como 1.
type ReplenishmentRuleInput struct {
	ProductCode  string
	WarehouseID  string
	MinQty       int64
	MaxQty       int64
	ReorderPoint int64
	Multiple     int64
	LeadTimeDays int
}

// SetReplenishmentRule crea o reemplaza la regla del producto en la bodega.
func (uc *ReplenishmentUseCase) SetReplenishmentRule(ctx context.Context, in ReplenishmentRuleInput) (*entity.ReplenishmentRule, error) {
	rule := &entity.ReplenishmentRule{
		WarehouseID:  in.WarehouseID,
		MinQty:       in.MinQty,
		MaxQty:       in.MaxQty,
		ReorderPoint: in.ReorderPoint,
		Multiple:     in.Multiple,
		LeadTimeDays: in.LeadTimeDays,
	}
	if err := domaininv.ValidateReplenishment(rule); err != nil {
		return nil, err
	}
	_, err := uc.run(ctx, "set_replenishment", func(l *ledgerTx) error {
		p, err := l.product(ctx, in.ProductCode)
		if err != nil {
			return err
		}
		if _, err := l.warehouse(ctx, in.WarehouseID); err != nil {
			return err
		}
		if err := l.r.Stock.EnsureLink(ctx, p.ID, in.WarehouseID); err != nil {
			return err
		}
		rule.ProductID = p.ID
		rule.ProductCode = p.Code
		rule.ProductName = p.Name
		rule.UpdatedAt = l.now
		return l.r.Rules.UpsertReplenishment(ctx, rule)
	})
	if err != nil {
		return nil, err
	}
	uc.audit(ctx, "rule.replenishment", "replenishment_rule", rule.ProductID+":"+rule.WarehouseID, "", rule)
	return rule, nil
}

// DeleteReplenishmentRule elimina la regla; no falla si no existía.
func (uc *ReplenishmentUseCase) DeleteReplenishmentRule(ctx context.Context, productCode, warehouseID string) error {
	p, err := resolveProduct(ctx, uc.d.Repos, productCode)
	if err != nil {
		return err
	}
	return uc.d.Repos.Rules.DeleteReplenishment(ctx, p.ID, warehouseID)
}

// ListReplenishmentRules reglas de la bodega ordenadas por código de producto.
func (uc *ReplenishmentUseCase) ListReplenishmentRules(ctx context.Context, warehouseID string) ([]*entity.ReplenishmentRule, error) {
	if _, err := requireWarehouse(ctx, uc.d.Repos, warehouseID); err != nil {
		return nil, err
	}
	return uc.d.Repos.Rules.ListReplenishment(ctx, warehouseID)
}
