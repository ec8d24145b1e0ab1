package entity

import (
	"encoding/json"
	"time"
)

// AuditEvent evento de auditoría registrado tras una mutación confirmada.
type AuditEvent struct {
	ID        string
	Action    string // ej. stock.decrement, document.create
	Entity    string
	EntityID  string
	UserID    string
	Payload   json.RawMessage
	CreatedAt time.Time
}
