package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, code, name, description, category, unit, unit_factor, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.Category, &p.Unit, &p.UnitFactor, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Code, product.Name, product.Description, product.Category,
		product.Unit, product.UnitFactor, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("producto %q", product.Code)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update reescribe todos los campos del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET code = $2, name = $3, description = $4, category = $5, unit = $6, unit_factor = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Code, product.Name, product.Description, product.Category,
		product.Unit, product.UnitFactor, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("producto %q", product.Code)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("producto", product.ID)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByCode obtiene un producto por código exacto.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	return p, nil
}

// List lista el catálogo ordenado por código.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListCategories categorías distintas no vacías.
func (r *ProductRepo) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ProductRepo) AddAlias(ctx context.Context, a *entity.ProductAlias) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO product_aliases (alias, product_id, created_at) VALUES ($1, $2, $3)`,
		a.Alias, a.ProductID, a.CreatedAt,
	)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.Duplicate("alias %q", a.Alias)
	case isForeignKeyViolation(err):
		return domain.NotFound("producto", a.ProductID)
	}
	return fmt.Errorf("insert alias: %w", err)
}

func (r *ProductRepo) RemoveAlias(ctx context.Context, alias string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM product_aliases WHERE alias = $1`, alias)
	if err != nil {
		return fmt.Errorf("delete alias: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("alias", alias)
	}
	return nil
}

func (r *ProductRepo) ListAliases(ctx context.Context, productID string) ([]*entity.ProductAlias, error) {
	rows, err := r.q.Query(ctx,
		`SELECT alias, product_id, created_at FROM product_aliases WHERE product_id = $1 ORDER BY alias`, productID)
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}
	defer rows.Close()
	out := []*entity.ProductAlias{}
	for rows.Next() {
		var a entity.ProductAlias
		if err := rows.Scan(&a.Alias, &a.ProductID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alias: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// ResolveAlias devuelve "" si el alias no existe.
func (r *ProductRepo) ResolveAlias(ctx context.Context, alias string) (string, error) {
	var id string
	err := r.q.QueryRow(ctx, `SELECT product_id FROM product_aliases WHERE alias = $1`, alias).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("resolve alias: %w", err)
	}
	return id, nil
}
