package entity

import "time"

// AuditLog registra operaciones destructivas (eliminación con motivo).
// Se escribe fuera de la transacción del motor: es informativo, no un invariante.
type AuditLog struct {
	ID          string
	Model       string // modelo afectado, ej. "Invoice"
	ObjectID    string
	Description string
	Reason      string
	UserID      string
	CreatedAt   time.Time
}
