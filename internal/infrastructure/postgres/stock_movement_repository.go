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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo diario de movimientos; solo inserción.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementSelect = `
	SELECT m.id, m.seq, m.product_id, m.warehouse_id, m.qty, m.kind, m.note,
	       COALESCE(m.document_id::text, ''), COALESCE(m.ref_id::text, ''), m.user_id, m.created_at,
	       p.code, p.name
	FROM stock_movements m
	JOIN products p ON p.id = m.product_id`

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(&m.ID, &m.Seq, &m.ProductID, &m.WarehouseID, &m.Quantity, &m.Kind, &m.Note,
		&m.DocumentID, &m.RefID, &m.UserID, &m.CreatedAt, &m.ProductCode, &m.ProductName)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create agrega el movimiento y asigna Seq.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, warehouse_id, qty, kind, note, document_id, ref_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid, NULLIF($8, '')::uuid, $9, $10)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.ProductID, m.WarehouseID, m.Quantity, m.Kind, m.Note,
		m.DocumentID, m.RefID, m.UserID, m.CreatedAt,
	).Scan(&m.Seq)
	if err != nil {
		if isForeignKeyViolation(err) && constraintName(err) == "stock_movements_document_fk" {
			return domain.NotFound("documento", m.DocumentID)
		}
		if isForeignKeyViolation(err) {
			return domain.NotFound("producto", m.ProductID)
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	if !validID(id) {
		return nil, nil
	}
	m, err := scanMovement(r.q.QueryRow(ctx, movementSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// List más recientes primero; con DocumentID en orden de inserción.
func (r *StockMovementRepo) List(ctx context.Context, f entity.MovementFilter) ([]*entity.StockMovement, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.WarehouseID != "" {
		add("m.warehouse_id = $%d", f.WarehouseID)
	}
	if f.ProductID != "" {
		add("m.product_id = $%d", f.ProductID)
	}
	if f.DocumentID != "" {
		add("m.document_id = $%d", f.DocumentID)
	}
	if f.From != nil {
		add("m.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("m.created_at <= $%d", *f.To)
	}

	var sb strings.Builder
	sb.WriteString(movementSelect)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	if f.DocumentID != "" {
		sb.WriteString(" ORDER BY m.seq ASC")
	} else {
		sb.WriteString(" ORDER BY m.seq DESC")
	}
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	out := []*entity.StockMovement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
