package entity

import "time"

// Estados de una sesión de conteo. CLOSED es terminal.
const (
	CountStatusOpen   = "OPEN"
	CountStatusClosed = "CLOSED"
)

// CountSession conteo cíclico de una bodega.
type CountSession struct {
	ID          string
	WarehouseID string
	Status      string
	Note        string
	DocumentID  string // documento de ajuste generado al conciliar
	CreatedAt   time.Time
	ClosedAt    *time.Time
}

// IsOpen indica si la sesión acepta conteos.
func (s *CountSession) IsOpen() bool { return s.Status == CountStatusOpen }

// CountLine línea de conteo: SysQty es la foto del sistema al abrir; CountedQty la digita el operario.
type CountLine struct {
	SessionID  string
	ProductID  string
	SysQty     int64
	CountedQty *int64

	// Solo lectura.
	ProductCode string
	ProductName string
}
