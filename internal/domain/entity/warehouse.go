package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario.
// Name es único; ColorKey es solo presentación.
type Warehouse struct {
	ID          string
	Name        string
	Description string
	ColorKey    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
