package memory

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo flujo de auditoría en memoria.
type AuditRepo struct{ v *view }

func (r *AuditRepo) Record(_ context.Context, e entity.AuditEvent) error {
	d, done := r.v.write()
	defer done()
	d.audit = append(d.audit, e)
	return nil
}

// List más recientes primero; entityName/entityID vacíos no filtran.
func (r *AuditRepo) List(_ context.Context, entityName, entityID string, limit int) ([]*entity.AuditEvent, error) {
	d, done := r.v.read()
	defer done()
	out := []*entity.AuditEvent{}
	for i := len(d.audit) - 1; i >= 0; i-- {
		e := d.audit[i]
		if (entityName != "" && e.Entity != entityName) || (entityID != "" && e.EntityID != entityID) {
			continue
		}
		out = append(out, &e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
