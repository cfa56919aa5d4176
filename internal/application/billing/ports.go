package billing

import (
	"context"
	"time"

	"github.com/facturasegura/api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Toda mutación del motor (líneas, emisión,
// anulación, eliminación) pasa por aquí: o se aplica completa o nada.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}

// AuditSink recibe notificaciones de operaciones destructivas. Es
// fire-and-forget: se invoca después del commit y nunca bloquea ni
// revierte la operación del motor.
type AuditSink interface {
	RecordDeletion(ctx context.Context, model, objectID, description, reason, userID string)
}

// Ledger es el contrato del Stock Ledger que consume el motor de facturación.
// Lo implementa *inventory.Ledger; los métodos operan sobre los repositorios
// de la transacción del caller.
type Ledger interface {
	Reserve(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository,
		productID, invoiceID, userID string, qty int, now time.Time) error
	Release(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository,
		productID, invoiceID, userID string, qty int, now time.Time) error
}
