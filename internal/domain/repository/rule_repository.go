package repository

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// RuleRepository umbrales y reglas de reabastecimiento por producto/bodega.
type RuleRepository interface {
	SetThreshold(ctx context.Context, rule *entity.ThresholdRule) error
	ListThresholds(ctx context.Context, warehouseID string) ([]*entity.ThresholdRule, error)

	UpsertReplenishment(ctx context.Context, rule *entity.ReplenishmentRule) error
	DeleteReplenishment(ctx context.Context, productID, warehouseID string) error
	ListReplenishment(ctx context.Context, warehouseID string) ([]*entity.ReplenishmentRule, error)
}
