package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo flujo de auditoría en la tabla audit_events.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

func (r *AuditRepo) Record(ctx context.Context, e entity.AuditEvent) error {
	var payload any
	if len(e.Payload) > 0 {
		payload = string(e.Payload)
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_events (id, action, entity, entity_id, user_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)`,
		e.ID, e.Action, e.Entity, e.EntityID, e.UserID, payload, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// List más recientes primero; entityID vacío lista todos los de la entidad.
func (r *AuditRepo) List(ctx context.Context, entityName, entityID string, limit int) ([]*entity.AuditEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, action, entity, entity_id, user_id, COALESCE(payload::text, ''), created_at
		FROM audit_events
		WHERE ($1 = '' OR entity = $1) AND ($2 = '' OR entity_id = $2)
		ORDER BY created_at DESC
		LIMIT $3`, entityName, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()
	out := []*entity.AuditEvent{}
	for rows.Next() {
		var (
			e       entity.AuditEvent
			payload string
		)
		if err := rows.Scan(&e.ID, &e.Action, &e.Entity, &e.EntityID, &e.UserID, &payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		if payload != "" {
			e.Payload = []byte(payload)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
