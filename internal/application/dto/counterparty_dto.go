package dto

import "time"

// CounterpartyRequest alta o edición de proveedor/cliente.
type CounterpartyRequest struct {
	Kind  string `json:"kind" validate:"required,oneof=SUPPLIER CUSTOMER"`
	Name  string `json:"name" validate:"required,min=1,max=200"`
	TaxID string `json:"tax_id" validate:"max=40"`
	Phone string `json:"phone" validate:"max=40"`
	Email string `json:"email" validate:"omitempty,email"`
	Note  string `json:"note" validate:"max=500"`
}

// CounterpartyResponse salida de un tercero.
type CounterpartyResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
