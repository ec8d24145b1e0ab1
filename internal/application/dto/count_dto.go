package dto

import "time"

// OpenCountRequest apertura de sesión de conteo; Category vacía cuenta toda la bodega.
type OpenCountRequest struct {
	WarehouseID string `json:"warehouse_id" validate:"required"`
	Note        string `json:"note" validate:"max=500"`
	Category    string `json:"category" validate:"max=100"`
}

// SetCountedRequest cantidad contada de un producto.
type SetCountedRequest struct {
	ProductCode string `json:"product_code" validate:"required"`
	Counted     int64  `json:"counted_qty" validate:"gte=0"`
}

// ReconcileRequest conciliación de una sesión.
type ReconcileRequest struct {
	UserID string `json:"user_id"`
}

// CountSessionResponse sesión de conteo.
type CountSessionResponse struct {
	ID          string     `json:"id"`
	WarehouseID string     `json:"warehouse_id"`
	Status      string     `json:"status"`
	Note        string     `json:"note,omitempty"`
	DocumentID  string     `json:"doc_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
}

// CountLineResponse línea de conteo; CountedQty nil = sin contar.
type CountLineResponse struct {
	ProductID   string `json:"product_id"`
	ProductCode string `json:"code"`
	ProductName string `json:"name"`
	SysQty      int64  `json:"sys_qty"`
	CountedQty  *int64 `json:"counted_qty"`
}

// CountDetailResponse sesión con líneas.
type CountDetailResponse struct {
	Session CountSessionResponse `json:"session"`
	Lines   []CountLineResponse  `json:"lines"`
}

// ReconcileResponse resultado de conciliar; Document nil si no había diferencias.
type ReconcileResponse struct {
	Session   *CountSessionResponse `json:"session"`
	Document  *DocumentResponse     `json:"document,omitempty"`
	Movements []MovementResponse    `json:"movements"`
}
