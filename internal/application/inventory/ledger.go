// Package inventory implementa el Stock Ledger: ajustes atómicos de stock
// con bloqueo de fila y registro de movimientos.
package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/facturasegura/api/internal/domain"
	"github.com/facturasegura/api/internal/domain/entity"
	"github.com/facturasegura/api/internal/domain/repository"
)

// Ledger es el único componente autorizado a mutar el stock de productos.
// Sus métodos operan sobre repositorios atados a la transacción del caller:
// si el caller hace rollback, ni el stock ni el movimiento quedan aplicados.
type Ledger struct{}

// NewLedger construye el ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Reserve descuenta qty unidades del stock del producto.
// Bloquea la fila (SELECT FOR UPDATE) para que el check-then-decrement sea
// atómico frente a reservas concurrentes. Falla con ErrInsufficientStock si
// qty excede el stock actual, dejando el stock intacto.
func (l *Ledger) Reserve(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	productID, invoiceID, userID string,
	qty int,
	now time.Time,
) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if qty > product.Stock {
		return domain.ErrInsufficientStock
	}
	if err := productRepo.UpdateStock(productID, product.Stock-qty); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: productID,
		InvoiceID: invoiceID,
		Type:      entity.MovementTypeOUT,
		Quantity:  -qty,
		CreatedBy: userID,
		CreatedAt: now,
	}
	return movRepo.Create(mov)
}

// Release devuelve qty unidades al stock del producto, incondicionalmente.
// Se usa al anular una factura, al eliminar un borrador o al quitar una línea.
func (l *Ledger) Release(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	productID, invoiceID, userID string,
	qty int,
	now time.Time,
) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := productRepo.UpdateStock(productID, product.Stock+qty); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: productID,
		InvoiceID: invoiceID,
		Type:      entity.MovementTypeIN,
		Quantity:  qty,
		CreatedBy: userID,
		CreatedAt: now,
	}
	return movRepo.Create(mov)
}
