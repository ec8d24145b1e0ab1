package entity

import "time"

// ThresholdRule mínimo por producto/bodega bajo el cual se marca stock bajo.
type ThresholdRule struct {
	ProductID   string
	WarehouseID string
	MinQty      int64
	UpdatedAt   time.Time
}

// ReplenishmentRule parámetros de reabastecimiento (consultivos, no se aplican solos).
type ReplenishmentRule struct {
	ProductID    string
	WarehouseID  string
	MinQty       int64
	MaxQty       int64
	ReorderPoint int64
	Multiple     int64 // múltiplo de pedido, >= 1
	LeadTimeDays int
	UpdatedAt    time.Time

	// Solo lectura.
	ProductCode string
	ProductName string
}
