package dto

import "time"

// MovementRequest body para entradas y salidas. Quantity <= 0 no produce cambios.
type MovementRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	WarehouseID string `json:"warehouse_id" validate:"required"`
	Quantity    int64  `json:"qty"`
	Note        string `json:"note" validate:"max=500"`
	DocumentID  string `json:"doc_id"`
	UserID      string `json:"user_id"`
}

// SetLevelRequest body para ajuste a nivel.
type SetLevelRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	WarehouseID string `json:"warehouse_id" validate:"required"`
	Target      int64  `json:"target" validate:"gte=0"`
	Note        string `json:"note" validate:"max=500"`
	DocumentID  string `json:"doc_id"`
	UserID      string `json:"user_id"`
}

// TransferRequest body para traslados entre bodegas.
type TransferRequest struct {
	ProductCode     string `json:"product_code" validate:"required"`
	FromWarehouseID string `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   string `json:"to_warehouse_id" validate:"required"`
	Quantity        int64  `json:"qty"`
	Note            string `json:"note" validate:"max=500"`
	UserID          string `json:"user_id"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductCode string    `json:"product_code,omitempty"`
	ProductName string    `json:"product_name,omitempty"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int64     `json:"qty"`
	Kind        string    `json:"kind"`
	Note        string    `json:"note,omitempty"`
	DocumentID  string    `json:"doc_id,omitempty"`
	RefID       string    `json:"ref_id,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"ts"`
}

// MutationResponse resultado de una mutación; Movement nil indica que no hubo cambio.
type MutationResponse struct {
	Applied  bool              `json:"applied"`
	Movement *MovementResponse `json:"movement,omitempty"`
}

// TransferResponse los dos movimientos del traslado.
type TransferResponse struct {
	Applied bool              `json:"applied"`
	Out     *MovementResponse `json:"out,omitempty"`
	In      *MovementResponse `json:"in,omitempty"`
}

// StockResponse existencia de un producto en una bodega.
type StockResponse struct {
	ProductCode string `json:"product_code"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"qty"`
}

// ThresholdRequest body para fijar umbral.
type ThresholdRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	WarehouseID string `json:"warehouse_id" validate:"required"`
	MinQty      int64  `json:"min_qty" validate:"gte=0"`
}

// ThresholdResponse umbral configurado.
type ThresholdResponse struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	MinQty      int64  `json:"min_qty"`
}

// ReplenishmentRuleRequest body de regla de reabastecimiento.
type ReplenishmentRuleRequest struct {
	ProductCode  string `json:"product_code" validate:"required"`
	WarehouseID  string `json:"warehouse_id" validate:"required"`
	MinQty       int64  `json:"min_qty" validate:"gte=0"`
	MaxQty       int64  `json:"max_qty" validate:"gte=0"`
	ReorderPoint int64  `json:"reorder_point" validate:"gte=0"`
	Multiple     int64  `json:"multiple" validate:"gte=0"`
	LeadTimeDays int    `json:"lead_time_days" validate:"gte=0"`
}

// ReplenishmentRuleResponse regla guardada.
type ReplenishmentRuleResponse struct {
	ProductID    string `json:"product_id"`
	ProductCode  string `json:"product_code"`
	ProductName  string `json:"product_name"`
	WarehouseID  string `json:"warehouse_id"`
	MinQty       int64  `json:"min_qty"`
	MaxQty       int64  `json:"max_qty"`
	ReorderPoint int64  `json:"reorder_point"`
	Multiple     int64  `json:"multiple"`
	LeadTimeDays int    `json:"lead_time_days"`
}

// PurchaseSuggestionResponse sugerencia de compra.
type PurchaseSuggestionResponse struct {
	ProductID string `json:"product_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Quantity  int64  `json:"qty"`
	Threshold int64  `json:"threshold"`
	Deficit   int64  `json:"deficit"`
}

// ReorderProposalResponse propuesta de pedido.
type ReorderProposalResponse struct {
	ProductID    string `json:"product_id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Quantity     int64  `json:"qty"`
	ReorderPoint int64  `json:"reorder_point"`
	MaxQty       int64  `json:"max_qty"`
	OrderQty     int64  `json:"order_qty"`
	LeadTimeDays int    `json:"lead_time_days"`
}

// ImportRowRequest fila ya parseada de una importación masiva.
type ImportRowRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int64  `json:"qty"`
}

// ImportRequest body para importar filas a una bodega. Mode: add (suma) o replace (reemplazo).
type ImportRequest struct {
	WarehouseID string             `json:"warehouse_id" validate:"required"`
	Mode        string             `json:"mode" validate:"omitempty,oneof=add replace"`
	UserID      string             `json:"user_id"`
	Rows        []ImportRowRequest `json:"rows" validate:"required,min=1,dive"`
}

// ImportSummaryResponse resultado de la importación.
type ImportSummaryResponse struct {
	Total   int      `json:"total"`
	Created int      `json:"created"`
	Linked  int      `json:"linked"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}
