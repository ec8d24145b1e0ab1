package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (multi-bodega).
// Code es único; el stock vive por bodega en Stock y nunca en el producto.
type Product struct {
	ID          string
	Code        string
	Name        string
	Description string
	Category    string
	Unit        string          // unidad de medida (UND, CAJA, KG...)
	UnitFactor  decimal.Decimal // unidades base por Unit; 1 por defecto
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductAlias código alterno que resuelve al mismo producto (código de proveedor, EAN viejo, etc.).
type ProductAlias struct {
	Alias     string
	ProductID string
	CreatedAt time.Time
}
