package postgres_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Base creada por la versión anterior (products.warehouse_id)
// ──────────────────────────────────────────────────────────────────────────────

// legacySchema crea un esquema aislado con las tablas de la versión anterior y devuelve
// un pool cuyo search_path apunta a él.
func legacySchema(t *testing.T) (context.Context, *pgxpool.Pool) {
	t.Helper()
	if testPool == nil {
		t.Skip("sin base de datos de prueba (LEDGER_TEST_DATABASE_URL o LEDGER_TEST_EMBEDDED=true)")
	}
	ctx := context.Background()
	schema := "legacy_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	ident := pgx.Identifier{schema}.Sanitize()

	_, err := testPool.Exec(ctx, "CREATE SCHEMA "+ident)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = testPool.Exec(context.Background(), "DROP SCHEMA "+ident+" CASCADE")
	})

	cfg := testPool.Config().Copy()
	cfg.MaxConns = 2
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		CREATE TABLE warehouses (
			id   UUID PRIMARY KEY,
			name TEXT NOT NULL
		);
		CREATE TABLE products (
			id           UUID PRIMARY KEY,
			code         TEXT NOT NULL,
			name         TEXT NOT NULL DEFAULT '',
			description  TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			warehouse_id UUID
		)`)
	require.NoError(t, err)
	return ctx, pool
}

func countRows(t *testing.T, ctx context.Context, pool *pgxpool.Pool, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(ctx, query, args...).Scan(&n))
	return n
}

func TestMigrate_BaseAnteriorMueveBodegaDeProductoUnaVez(t *testing.T) {
	ctx, pool := legacySchema(t)

	w1, w2 := uuid.NewString(), uuid.NewString()
	linked1, linked2, loose, orphan := uuid.NewString(), uuid.NewString(), uuid.NewString(), uuid.NewString()
	_, err := pool.Exec(ctx, `INSERT INTO warehouses (id, name) VALUES ($1, 'Principal'), ($2, 'Anexo')`, w1, w2)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `
		INSERT INTO products (id, code, name, warehouse_id) VALUES
			($1, 'P1', 'Tornillo', $5),
			($2, 'P2', 'Tuerca', $6),
			($3, 'P3', 'Arandela', NULL),
			($4, 'P4', 'Perdido', $7)`,
		linked1, linked2, loose, orphan, w1, w2, uuid.NewString())
	require.NoError(t, err)

	db := postgres.OpenDB(pool)
	defer db.Close()
	log := logger.Nop()

	require.NoError(t, postgres.Migrate(ctx, db, log))

	assert.Equal(t, 2, countRows(t, ctx, pool, `SELECT count(*) FROM product_warehouse`))
	assert.Equal(t, 1, countRows(t, ctx, pool,
		`SELECT count(*) FROM product_warehouse WHERE product_id = $1 AND warehouse_id = $2`, linked1, w1))
	assert.Equal(t, 1, countRows(t, ctx, pool,
		`SELECT count(*) FROM product_warehouse WHERE product_id = $1 AND warehouse_id = $2`, linked2, w2))
	assert.Equal(t, 2, countRows(t, ctx, pool, `SELECT count(*) FROM product_stock WHERE qty = 0`))
	assert.Zero(t, countRows(t, ctx, pool, `SELECT count(*) FROM product_stock WHERE qty <> 0`))
	assert.Zero(t, countRows(t, ctx, pool, `SELECT count(*) FROM products WHERE warehouse_id IS NOT NULL`))

	// Columnas que la versión anterior no tenía.
	assert.Equal(t, 4, countRows(t, ctx, pool, `SELECT count(*) FROM products WHERE unit = 'UND' AND unit_factor = 1 AND category = ''`))
	assert.Equal(t, 2, countRows(t, ctx, pool, `SELECT count(*) FROM warehouses WHERE color_key = 'slate'`))

	// Existencia cargada después de migrar no debe tocarse en corridas siguientes.
	_, err = pool.Exec(ctx, `UPDATE product_stock SET qty = 7 WHERE product_id = $1`, linked1)
	require.NoError(t, err)

	require.NoError(t, postgres.Migrate(ctx, db, log))
	assert.Equal(t, 2, countRows(t, ctx, pool, `SELECT count(*) FROM product_warehouse`))
	assert.Equal(t, 2, countRows(t, ctx, pool, `SELECT count(*) FROM product_stock`))
	assert.Equal(t, 1, countRows(t, ctx, pool, `SELECT count(*) FROM product_stock WHERE product_id = $1 AND qty = 7`, linked1))

	// Reaplicar el paso de migración encuentra la columna vacía y no duplica nada.
	require.NoError(t, postgres.MigrateToVersion(ctx, db, "5"))
	require.NoError(t, postgres.Migrate(ctx, db, log))
	assert.Equal(t, 2, countRows(t, ctx, pool, `SELECT count(*) FROM product_warehouse`))
	assert.Equal(t, 2, countRows(t, ctx, pool, `SELECT count(*) FROM product_stock`))
	assert.Equal(t, 1, countRows(t, ctx, pool, `SELECT count(*) FROM product_stock WHERE product_id = $1 AND qty = 7`, linked1))
	assert.Zero(t, countRows(t, ctx, pool, `SELECT count(*) FROM product_warehouse WHERE product_id IN ($1, $2)`, loose, orphan))
}

func TestMigrate_BaseNuevaNoTieneColumnaAnterior(t *testing.T) {
	if testPool == nil {
		t.Skip("sin base de datos de prueba (LEDGER_TEST_DATABASE_URL o LEDGER_TEST_EMBEDDED=true)")
	}
	ctx := context.Background()
	var n int
	require.NoError(t, testPool.QueryRow(ctx, `
		SELECT count(*) FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = 'products' AND column_name = 'warehouse_id'`).Scan(&n))
	assert.Zero(t, n)

	db := postgres.OpenDB(testPool)
	defer db.Close()
	require.NoError(t, postgres.Migrate(ctx, db, logger.Nop()))
}
