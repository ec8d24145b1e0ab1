package entity

import "time"

// Stock representa la existencia actual de un producto en una bodega.
// Invariante: Quantity >= 0 (la capa de almacenamiento rechaza escrituras negativas).
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	UpdatedAt   time.Time
}

// StockLevel fila de lectura: producto vinculado a una bodega con su cantidad y umbral.
type StockLevel struct {
	ProductID   string
	WarehouseID string
	Code        string
	Name        string
	Description string
	Quantity    int64
	Threshold   int64 // 0 = sin umbral configurado
}

// OutOfStock indica si no hay existencias.
func (s StockLevel) OutOfStock() bool { return s.Quantity == 0 }

// PurchaseSuggestion sugerencia de compra derivada del umbral.
type PurchaseSuggestion struct {
	ProductID string
	Code      string
	Name      string
	Quantity  int64
	Threshold int64
	Deficit   int64
}

// ReorderProposal propuesta de pedido derivada de una regla de reabastecimiento.
type ReorderProposal struct {
	ProductID    string
	Code         string
	Name         string
	Quantity     int64
	ReorderPoint int64
	MaxQty       int64
	OrderQty     int64
	LeadTimeDays int
}
