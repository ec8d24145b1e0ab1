package entity

import "time"

// Tipos de documento.
const (
	DocumentTypeIn     = "IN"
	DocumentTypeOut    = "OUT"
	DocumentTypeAdjust = "ADJ"
)

// DocumentStatusPosted documento con movimientos aplicados.
const DocumentStatusPosted = "POSTED"

// DefaultSeries serie usada cuando el documento no indica una.
const DefaultSeries = "GEN"

// MovementDocument cabecera que agrupa movimientos (entrada, salida, ajuste o conteo).
// TotalLines/TotalQty son una foto al momento de crear el documento; no se recalculan.
type MovementDocument struct {
	ID           string
	Type         string
	WarehouseID  string
	Counterparty string
	Reference    string
	Note         string
	TotalLines   int
	TotalQty     int64
	Series       string
	Folio        int64
	Status       string
	UserID       string
	CreatedAt    time.Time
}

// DocumentFilter criterios para listar documentos.
type DocumentFilter struct {
	WarehouseID string
	Type        string
	Series      string
	Limit       int
}
