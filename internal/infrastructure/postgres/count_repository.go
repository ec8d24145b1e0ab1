package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var _ repository.CountRepository = (*CountRepo)(nil)

// CountRepo sesiones y líneas de conteo cíclico.
type CountRepo struct {
	q Querier
}

// NewCountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCountRepository(q Querier) *CountRepo {
	return &CountRepo{q: q}
}

const sessionColumns = `id, warehouse_id, status, note, COALESCE(document_id::text, ''), created_at, closed_at`

func scanSession(row pgx.Row) (*entity.CountSession, error) {
	var s entity.CountSession
	if err := row.Scan(&s.ID, &s.WarehouseID, &s.Status, &s.Note, &s.DocumentID, &s.CreatedAt, &s.ClosedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSession inserta la cabecera y la foto de líneas; llamar dentro de una tx.
func (r *CountRepo) CreateSession(ctx context.Context, s *entity.CountSession, lines []*entity.CountLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO count_sessions (id, warehouse_id, status, note, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.WarehouseID, s.Status, s.Note, s.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("bodega", s.WarehouseID)
		}
		return writeErr("insert count session", err)
	}
	for _, l := range lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO count_lines (session_id, product_id, sys_qty, counted_qty)
			VALUES ($1, $2, $3, $4)`,
			s.ID, l.ProductID, l.SysQty, l.CountedQty)
		if err != nil {
			return writeErr("insert count line", err)
		}
	}
	return nil
}

func (r *CountRepo) GetSession(ctx context.Context, id string) (*entity.CountSession, error) {
	return r.getSession(ctx, `SELECT `+sessionColumns+` FROM count_sessions WHERE id = $1`, id)
}

// GetSessionForUpdate bloquea la sesión: dos conciliaciones concurrentes se serializan.
func (r *CountRepo) GetSessionForUpdate(ctx context.Context, id string) (*entity.CountSession, error) {
	return r.getSession(ctx, `SELECT `+sessionColumns+` FROM count_sessions WHERE id = $1 FOR UPDATE`, id)
}

func (r *CountRepo) getSession(ctx context.Context, query, id string) (*entity.CountSession, error) {
	if !validID(id) {
		return nil, nil
	}
	s, err := scanSession(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get count session: %w", err)
	}
	return s, nil
}

func (r *CountRepo) ListSessions(ctx context.Context, warehouseID string) ([]*entity.CountSession, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+sessionColumns+` FROM count_sessions
		WHERE warehouse_id = $1
		ORDER BY created_at DESC`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list count sessions: %w", err)
	}
	defer rows.Close()
	out := []*entity.CountSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan count session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *CountRepo) ListLines(ctx context.Context, sessionID string) ([]*entity.CountLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT l.session_id, l.product_id, l.sys_qty, l.counted_qty, p.code, p.name
		FROM count_lines l
		JOIN products p ON p.id = l.product_id
		WHERE l.session_id = $1
		ORDER BY p.code`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list count lines: %w", err)
	}
	defer rows.Close()
	out := []*entity.CountLine{}
	for rows.Next() {
		var l entity.CountLine
		if err := rows.Scan(&l.SessionID, &l.ProductID, &l.SysQty, &l.CountedQty, &l.ProductCode, &l.ProductName); err != nil {
			return nil, fmt.Errorf("scan count line: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (r *CountRepo) SetCounted(ctx context.Context, sessionID, productID string, counted int64) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE count_lines SET counted_qty = $3
		WHERE session_id = $1 AND product_id = $2`, sessionID, productID, counted)
	if err != nil {
		return writeErr("update count line", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("línea de conteo", productID)
	}
	return nil
}

func (r *CountRepo) Close(ctx context.Context, sessionID, documentID string, closedAt time.Time) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE count_sessions SET status = $2, document_id = NULLIF($3, '')::uuid, closed_at = $4
		WHERE id = $1`, sessionID, entity.CountStatusClosed, documentID, closedAt)
	if err != nil {
		return fmt.Errorf("close count session: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("sesión de conteo", sessionID)
	}
	return nil
}
