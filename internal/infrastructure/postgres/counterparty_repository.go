package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var _ repository.CounterpartyRepository = (*CounterpartyRepo)(nil)

// CounterpartyRepo proveedores y clientes sobre PostgreSQL.
type CounterpartyRepo struct {
	q Querier
}

// NewCounterpartyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCounterpartyRepository(q Querier) *CounterpartyRepo {
	return &CounterpartyRepo{q: q}
}

const counterpartyColumns = `id, kind, name, tax_id, phone, email, note, created_at`

func scanCounterparty(row pgx.Row) (*entity.Counterparty, error) {
	var c entity.Counterparty
	if err := row.Scan(&c.ID, &c.Kind, &c.Name, &c.TaxID, &c.Phone, &c.Email, &c.Note, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CounterpartyRepo) Create(ctx context.Context, c *entity.Counterparty) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO counterparties (`+counterpartyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.Kind, c.Name, c.TaxID, c.Phone, c.Email, c.Note, c.CreatedAt)
	if err != nil {
		return writeErr("insert counterparty", err)
	}
	return nil
}

func (r *CounterpartyRepo) Update(ctx context.Context, c *entity.Counterparty) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE counterparties SET kind = $2, name = $3, tax_id = $4, phone = $5, email = $6, note = $7
		WHERE id = $1`,
		c.ID, c.Kind, c.Name, c.TaxID, c.Phone, c.Email, c.Note)
	if err != nil {
		return writeErr("update counterparty", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("tercero", c.ID)
	}
	return nil
}

func (r *CounterpartyRepo) GetByID(ctx context.Context, id string) (*entity.Counterparty, error) {
	if !validID(id) {
		return nil, nil
	}
	c, err := scanCounterparty(r.q.QueryRow(ctx, `SELECT `+counterpartyColumns+` FROM counterparties WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get counterparty: %w", err)
	}
	return c, nil
}

// List kind vacío lista todos; orden por nombre.
func (r *CounterpartyRepo) List(ctx context.Context, kind string) ([]*entity.Counterparty, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+counterpartyColumns+` FROM counterparties
		WHERE $1 = '' OR kind = $1
		ORDER BY name`, kind)
	if err != nil {
		return nil, fmt.Errorf("list counterparties: %w", err)
	}
	defer rows.Close()
	out := []*entity.Counterparty{}
	for rows.Next() {
		c, err := scanCounterparty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan counterparty: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CounterpartyRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.NotFound("tercero", id)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM counterparties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete counterparty: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("tercero", id)
	}
	return nil
}
