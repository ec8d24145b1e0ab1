package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDocumentRequest cabecera sin líneas; Folio nil asigna el siguiente de la serie.
type CreateDocumentRequest struct {
	Type         string `json:"type" validate:"required,oneof=IN OUT ADJ"`
	WarehouseID  string `json:"warehouse_id" validate:"required"`
	Counterparty string `json:"counterparty" validate:"max=200"`
	Reference    string `json:"reference" validate:"max=200"`
	Note         string `json:"note" validate:"max=500"`
	TotalLines   int    `json:"total_lines" validate:"gte=0"`
	TotalQty     int64  `json:"total_qty" validate:"gte=0"`
	Series       string `json:"series" validate:"max=16"`
	Folio        *int64 `json:"folio" validate:"omitempty,gt=0"`
	UserID       string `json:"user_id"`
}

// DocumentLineRequest línea de un lote.
type DocumentLineRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	Quantity    int64  `json:"qty"`
	Note        string `json:"note" validate:"max=500"`
}

// PostDocumentRequest lote de entrada o salida.
type PostDocumentRequest struct {
	Type         string                `json:"type" validate:"required,oneof=IN OUT"`
	WarehouseID  string                `json:"warehouse_id" validate:"required"`
	Counterparty string                `json:"counterparty" validate:"max=200"`
	Reference    string                `json:"reference" validate:"max=200"`
	Note         string                `json:"note" validate:"max=500"`
	Series       string                `json:"series" validate:"max=16"`
	Folio        *int64                `json:"folio" validate:"omitempty,gt=0"`
	UserID       string                `json:"user_id"`
	Lines        []DocumentLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// AdjustmentLineRequest nivel objetivo de un producto.
type AdjustmentLineRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	Target      int64  `json:"target" validate:"gte=0"`
}

// AdjustmentRequest lote de ajuste con motivo.
type AdjustmentRequest struct {
	WarehouseID string                  `json:"warehouse_id" validate:"required"`
	Reason      string                  `json:"reason" validate:"required,max=200"`
	Note        string                  `json:"note" validate:"max=500"`
	Series      string                  `json:"series" validate:"max=16"`
	UserID      string                  `json:"user_id"`
	Lines       []AdjustmentLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// DocumentResponse cabecera de documento.
type DocumentResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	WarehouseID  string    `json:"warehouse_id"`
	Counterparty string    `json:"counterparty"`
	Reference    string    `json:"reference"`
	Note         string    `json:"note"`
	TotalLines   int       `json:"total_lines"`
	TotalQty     int64     `json:"total_qty"`
	Series       string    `json:"series"`
	Folio        int64     `json:"folio"`
	Status       string    `json:"status"`
	UserID       string    `json:"user_id,omitempty"`
	CreatedAt    time.Time `json:"ts"`
}

// PostedDocumentResponse documento y movimientos aplicados.
type PostedDocumentResponse struct {
	Document  *DocumentResponse  `json:"document"`
	Movements []MovementResponse `json:"movements"`
}

// DocumentLineResponse línea de exportación.
type DocumentLineResponse struct {
	ProductCode  string          `json:"code"`
	ProductName  string          `json:"name"`
	Unit         string          `json:"unit,omitempty"`
	Quantity     int64           `json:"qty"`
	BaseQuantity decimal.Decimal `json:"base_qty"`
	Kind         string          `json:"kind"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    time.Time       `json:"ts"`
}

// DocumentDetailResponse cabecera y líneas para exportación.
type DocumentDetailResponse struct {
	Document      DocumentResponse       `json:"document"`
	WarehouseName string                 `json:"warehouse_name,omitempty"`
	Lines         []DocumentLineResponse `json:"lines"`
}
