package postgres_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMigrations(t *testing.T) map[string]string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	out := make(map[string]string, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		require.NoError(t, err)
		out[filepath.Base(f)] = string(data)
	}
	return out
}

func TestMigrations_VersionadasYConUpDown(t *testing.T) {
	files := readMigrations(t)
	names := make([]string, 0, len(files))
	for n := range files {
		names = append(names, n)
	}
	sort.Strings(names)

	for i, n := range names {
		assert.True(t, strings.HasPrefix(n, fmt.Sprintf("%05d_", i+1)), "versiones consecutivas: %s", n)
		assert.Contains(t, files[n], "-- +goose Up", n)
		assert.Contains(t, files[n], "-- +goose Down", n)
	}
}

func TestMigrations_Idempotentes(t *testing.T) {
	for name, content := range readMigrations(t) {
		up := strings.SplitN(content, "-- +goose Down", 2)[0]
		assert.NotContains(t, up, "CREATE TABLE products", name)
		for _, line := range strings.Split(up, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case strings.HasPrefix(line, "CREATE TABLE"):
				assert.Contains(t, line, "IF NOT EXISTS", "%s: %s", name, line)
			case strings.HasPrefix(line, "CREATE UNIQUE INDEX"), strings.HasPrefix(line, "CREATE INDEX"):
				assert.Contains(t, line, "IF NOT EXISTS", "%s: %s", name, line)
			case strings.HasPrefix(line, "ALTER TABLE") && strings.Contains(line, "ADD COLUMN"):
				assert.Contains(t, line, "ADD COLUMN IF NOT EXISTS", "%s: %s", name, line)
			}
		}
	}
}

func TestMigrations_Restricciones(t *testing.T) {
	files := readMigrations(t)

	stock := files["00002_create_stock.sql"]
	assert.Contains(t, stock, "CHECK (qty >= 0)")
	assert.Contains(t, stock, "REFERENCES warehouses(id) ON DELETE CASCADE")
	assert.Contains(t, stock, "REFERENCES product_warehouse(product_id, warehouse_id) ON DELETE CASCADE")

	journal := files["00003_create_journal.sql"]
	assert.Contains(t, journal, "ux_movement_documents_series_folio ON movement_documents (series, folio)")
	assert.Contains(t, journal, "GENERATED ALWAYS AS IDENTITY")
	assert.NotContains(t, journal, "REFERENCES warehouses", "documentos y movimientos sobreviven a la bodega")

	legacy := files["00006_legacy_product_warehouse.sql"]
	assert.Contains(t, legacy, "column_name = 'warehouse_id'")
	assert.Contains(t, legacy, "INSERT INTO product_warehouse")
	assert.Contains(t, legacy, "INSERT INTO product_stock")
	assert.Contains(t, legacy, "UPDATE products SET warehouse_id = NULL")
	assert.Contains(t, legacy, "-- +goose StatementBegin")
	assert.Contains(t, legacy, "-- +goose StatementEnd")
}
