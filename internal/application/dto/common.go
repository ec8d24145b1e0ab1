package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// InsufficientStockResponse cuerpo 409 cuando falta existencia; Available permite
// ofrecer "tope al disponible" y reintentar.
type InsufficientStockResponse struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	ProductCode string `json:"product_code"`
	WarehouseID string `json:"warehouse_id"`
	Requested   int64  `json:"requested"`
	Available   int64  `json:"available"`
}

// ListResponse envoltorio genérico para listados.
type ListResponse[T any] struct {
	Items []T `json:"items"`
}
