package repository

import "github.com/facturasegura/api/internal/domain/entity"

// AuditLogRepository define el puerto del registro de auditoría.
// Las escrituras ocurren fuera de la transacción del motor (fire-and-forget).
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	List() ([]*entity.AuditLog, error)
}
