package repository

import "github.com/facturasegura/api/internal/domain/entity"

// StockMovementRepository define el puerto del historial de movimientos de
// stock. Se escribe dentro de la transacción del ajuste correspondiente.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByInvoice(invoiceID string) ([]*entity.StockMovement, error)
}
