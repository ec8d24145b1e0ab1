package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertProductRequest crea o actualiza un producto por código.
// Name/Description nil no pisan valores existentes; WarehouseID vincula el producto.
type UpsertProductRequest struct {
	Code        string  `json:"code" validate:"required,min=1,max=64"`
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	WarehouseID string  `json:"warehouse_id"`
}

// UpdateProductRequest edición de atributos del catálogo.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	Unit        *string          `json:"unit" validate:"omitempty,max=20"`
	UnitFactor  *decimal.Decimal `json:"unit_factor"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	UnitFactor  decimal.Decimal `json:"unit_factor"`
	Aliases     []string        `json:"aliases,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// UpsertProductResponse resultado del upsert.
type UpsertProductResponse struct {
	Product *ProductResponse `json:"product"`
	Created bool             `json:"created"`
}

// AliasRequest alta de código alterno.
type AliasRequest struct {
	Alias string `json:"alias" validate:"required,min=1,max=64"`
}

// LinkRequest vínculo producto-bodega.
type LinkRequest struct {
	WarehouseID string `json:"warehouse_id" validate:"required"`
}

// LinkStatusResponse respuesta de is-linked.
type LinkStatusResponse struct {
	Linked bool `json:"linked"`
}

// StockLevelResponse producto vinculado a una bodega con existencia y umbral.
type StockLevelResponse struct {
	ProductID   string `json:"product_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Quantity    int64  `json:"qty"`
	Threshold   int64  `json:"threshold"`
}
