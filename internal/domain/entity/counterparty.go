package entity

import "time"

// Tipos de tercero.
const (
	CounterpartySupplier = "SUPPLIER"
	CounterpartyCustomer = "CUSTOMER"
)

// Counterparty proveedor o cliente usado como contraparte de documentos.
type Counterparty struct {
	ID        string
	Kind      string
	Name      string
	TaxID     string
	Phone     string
	Email     string
	Note      string
	CreatedAt time.Time
}
