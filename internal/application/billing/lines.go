package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/facturasegura/api/internal/domain"
	"github.com/facturasegura/api/internal/domain/authz"
	"github.com/facturasegura/api/internal/domain/entity"
	"github.com/facturasegura/api/internal/domain/repository"
)

// AddLine agrega una línea a un borrador: reserva stock (con bloqueo de
// fila) y recalcula totales en la misma transacción.
// Falla con ErrInvalidQuantity (qty <= 0), ErrInsufficientStock (qty mayor
// al stock disponible, sin decrementos parciales), ErrInvoiceNotEditable
// (estado distinto de borrador) o ErrPermissionDenied (actor sin derecho).
func (uc *InvoiceUseCase) AddLine(ctx context.Context, actor authz.Actor, invoiceID, productID string, qty int) error {
	if productID == "" {
		return domain.ErrInvalidInput
	}
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	now := time.Now()
	return uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		_ repository.SequenceRepository,
	) error {
		inv, err := lockInvoice(invoiceRepo, invoiceID)
		if err != nil {
			return err
		}
		if !authz.IsOwnerOrAdmin(actor, inv) {
			return domain.ErrPermissionDenied
		}
		if !inv.IsEditable() {
			return domain.ErrInvoiceNotEditable
		}
		if err := uc.ledger.Reserve(productRepo, movRepo, productID, invoiceID, actor.ID, qty, now); err != nil {
			return err
		}
		line := &entity.InvoiceLine{
			ID:        uuid.New().String(),
			InvoiceID: invoiceID,
			ProductID: productID,
			Quantity:  qty,
		}
		if err := invoiceRepo.CreateLine(line); err != nil {
			return err
		}
		return uc.recalcTotals(invoiceRepo, invoiceID, now)
	})
}

// RemoveLine quita una línea de un borrador, devuelve el stock reservado y
// recalcula totales. Las facturas fuera de borrador tienen líneas
// congeladas; en particular una factura anulada ya restituyó su stock al
// anularse, y rechazarla aquí evita una doble restitución.
func (uc *InvoiceUseCase) RemoveLine(ctx context.Context, actor authz.Actor, invoiceID, lineID string) error {
	now := time.Now()
	return uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		_ repository.SequenceRepository,
	) error {
		inv, err := lockInvoice(invoiceRepo, invoiceID)
		if err != nil {
			return err
		}
		if !authz.IsOwnerOrAdmin(actor, inv) {
			return domain.ErrPermissionDenied
		}
		if !inv.IsEditable() {
			return domain.ErrInvoiceNotEditable
		}
		line, err := invoiceRepo.GetLine(lineID)
		if err != nil {
			return err
		}
		if line == nil || line.InvoiceID != invoiceID {
			return domain.ErrNotFound
		}
		if err := uc.ledger.Release(productRepo, movRepo, line.ProductID, invoiceID, actor.ID, line.Quantity, now); err != nil {
			return err
		}
		if err := invoiceRepo.DeleteLine(lineID); err != nil {
			return err
		}
		return uc.recalcTotals(invoiceRepo, invoiceID, now)
	})
}

// ReplaceLines reemplaza todas las líneas de un borrador de forma atómica.
// Primero libera el stock de las líneas actuales y luego reserva el de las
// nuevas, todo en una transacción: la liberación previa hace que el stock
// que quedaría libre cuente para la factibilidad de las nuevas líneas, y si
// alguna reserva falla el rollback deja las líneas originales intactas.
func (uc *InvoiceUseCase) ReplaceLines(ctx context.Context, actor authz.Actor, invoiceID string, newLines []entity.InvoiceLine) error {
	for _, nl := range newLines {
		if nl.ProductID == "" {
			return domain.ErrInvalidInput
		}
		if nl.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
	}
	now := time.Now()
	return uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		_ repository.SequenceRepository,
	) error {
		inv, err := lockInvoice(invoiceRepo, invoiceID)
		if err != nil {
			return err
		}
		if !authz.IsOwnerOrAdmin(actor, inv) {
			return domain.ErrPermissionDenied
		}
		if !inv.IsEditable() {
			return domain.ErrInvoiceNotEditable
		}
		old, err := invoiceRepo.ListLines(invoiceID)
		if err != nil {
			return err
		}
		for _, line := range old {
			if err := uc.ledger.Release(productRepo, movRepo, line.ProductID, invoiceID, actor.ID, line.Quantity, now); err != nil {
				return err
			}
		}
		if err := invoiceRepo.DeleteLines(invoiceID); err != nil {
			return err
		}
		for _, nl := range newLines {
			if err := uc.ledger.Reserve(productRepo, movRepo, nl.ProductID, invoiceID, actor.ID, nl.Quantity, now); err != nil {
				return err
			}
			line := &entity.InvoiceLine{
				ID:        uuid.New().String(),
				InvoiceID: invoiceID,
				ProductID: nl.ProductID,
				Quantity:  nl.Quantity,
			}
			if err := invoiceRepo.CreateLine(line); err != nil {
				return err
			}
		}
		return uc.recalcTotals(invoiceRepo, invoiceID, now)
	})
}

// lockInvoice obtiene la factura con bloqueo de fila, mapeando ausencia a
// ErrNotFound.
func lockInvoice(invoiceRepo repository.InvoiceRepository, invoiceID string) (*entity.Invoice, error) {
	inv, err := invoiceRepo.GetForUpdate(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}
