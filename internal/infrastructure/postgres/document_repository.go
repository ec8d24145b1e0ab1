package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var _ repository.MovementDocumentRepository = (*MovementDocumentRepo)(nil)

// MovementDocumentRepo registro de documentos con serie/folio.
type MovementDocumentRepo struct {
	q Querier
}

// NewMovementDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementDocumentRepository(q Querier) *MovementDocumentRepo {
	return &MovementDocumentRepo{q: q}
}

const documentColumns = `id, type, warehouse_id, counterparty, reference, note, total_lines, total_qty, series, folio, status, user_id, created_at`

func scanDocument(row pgx.Row) (*entity.MovementDocument, error) {
	var d entity.MovementDocument
	err := row.Scan(&d.ID, &d.Type, &d.WarehouseID, &d.Counterparty, &d.Reference, &d.Note,
		&d.TotalLines, &d.TotalQty, &d.Series, &d.Folio, &d.Status, &d.UserID, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// LockSeries toma un advisory lock de transacción por serie; se libera en Commit/Rollback.
func (r *MovementDocumentRepo) LockSeries(ctx context.Context, series string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "folio:"+series); err != nil {
		return fmt.Errorf("lock series %s: %w", series, err)
	}
	return nil
}

func (r *MovementDocumentRepo) MaxFolio(ctx context.Context, series string) (int64, error) {
	var last int64
	err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(folio), 0) FROM movement_documents WHERE series = $1`, series).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("max folio: %w", err)
	}
	return last, nil
}

// Create inserta la cabecera; (serie, folio) repetido devuelve ErrDuplicate.
func (r *MovementDocumentRepo) Create(ctx context.Context, d *entity.MovementDocument) error {
	query := `
		INSERT INTO movement_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Type, d.WarehouseID, d.Counterparty, d.Reference, d.Note,
		d.TotalLines, d.TotalQty, d.Series, d.Folio, d.Status, d.UserID, d.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("serie %s folio %d", d.Series, d.Folio)
		}
		return writeErr("insert movement document", err)
	}
	return nil
}

func (r *MovementDocumentRepo) GetByID(ctx context.Context, id string) (*entity.MovementDocument, error) {
	if !validID(id) {
		return nil, nil
	}
	d, err := scanDocument(r.q.QueryRow(ctx, `SELECT `+documentColumns+` FROM movement_documents WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement document: %w", err)
	}
	return d, nil
}

// List más recientes primero.
func (r *MovementDocumentRepo) List(ctx context.Context, f entity.DocumentFilter) ([]*entity.MovementDocument, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.WarehouseID != "" {
		add("warehouse_id = $%d", f.WarehouseID)
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.Series != "" {
		add("series = $%d", f.Series)
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + documentColumns + ` FROM movement_documents`)
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC, series, folio DESC")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list movement documents: %w", err)
	}
	defer rows.Close()
	out := []*entity.MovementDocument{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement document: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
