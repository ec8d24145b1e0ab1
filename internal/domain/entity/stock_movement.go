package entity

import "time"

// Tipos de movimiento del libro de existencias.
const (
	MovementKindIn      = "IN"
	MovementKindOut     = "OUT"
	MovementKindAdjust  = "ADJ"
	MovementKindXferIn  = "XFER-IN"
	MovementKindXferOut = "XFER-OUT"
)

// StockMovement registro inmutable de un cambio de cantidad.
// Quantity lleva el signo del efecto: positivo para IN/XFER-IN, negativo para OUT/XFER-OUT, cualquiera para ADJ.
type StockMovement struct {
	ID          string
	Seq         int64 // orden de inserción asignado por el almacenamiento
	ProductID   string
	WarehouseID string
	Quantity    int64
	Kind        string
	Note        string
	DocumentID  string // documento dueño, vacío si no hay
	RefID       string // movimiento pareado (traslados)
	UserID      string
	CreatedAt   time.Time

	// Solo lectura (join con products).
	ProductCode string
	ProductName string
}

// MovementFilter criterios para listar movimientos.
type MovementFilter struct {
	WarehouseID string
	ProductID   string
	DocumentID  string
	From        *time.Time
	To          *time.Time
	Limit       int
}
