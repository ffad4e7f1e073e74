package entity

import "time"

// AuditLog es un registro de auditoría de operaciones de escritura.
// Se escribe fuera de la transacción principal (fire-and-forget).
type AuditLog struct {
	ID        string
	ActorID   string
	Accion    string // ej. "invoice.create", "lote.transfer"
	Entidad   string
	EntidadID string
	Meta      map[string]any
	CreatedAt time.Time
}
