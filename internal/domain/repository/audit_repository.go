package repository

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// AuditRepository persistencia del flujo de auditoría.
type AuditRepository interface {
	Record(ctx context.Context, event entity.AuditEvent) error
	List(ctx context.Context, entityName, entityID string, limit int) ([]*entity.AuditEvent, error)
}
