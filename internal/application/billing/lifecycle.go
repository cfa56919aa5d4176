package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/facturasegura/api/internal/domain"
	"github.com/facturasegura/api/internal/domain/authz"
	"github.com/facturasegura/api/internal/domain/entity"
	"github.com/facturasegura/api/internal/domain/repository"
)

// invoiceNumberFormat produce FAC-NNNNNN (6 dígitos con ceros a la izquierda).
const invoiceNumberFormat = "FAC-%06d"

// Emit emite un borrador: asigna el consecutivo FAC-NNNNNN y pasa a ISSUED.
// El consecutivo se obtiene dentro de la misma transacción, serializado por
// el bloqueo del contador; el UNIQUE sobre invoices.number es el respaldo.
// Falla con ErrEmptyInvoice si el borrador no tiene líneas y con
// ErrInvalidTransition si la factura no está en borrador (el número ya
// asignado nunca se reasigna).
func (uc *InvoiceUseCase) Emit(ctx context.Context, actor authz.Actor, invoiceID string) (string, error) {
	var number string
	now := time.Now()
	err := uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
		seqRepo repository.SequenceRepository,
	) error {
		inv, err := lockInvoice(invoiceRepo, invoiceID)
		if err != nil {
			return err
		}
		if !authz.CanEmit(actor, inv) {
			return domain.ErrPermissionDenied
		}
		if !inv.CanEmit() {
			return domain.ErrInvalidTransition
		}
		count, err := invoiceRepo.CountLines(invoiceID)
		if err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrEmptyInvoice
		}
		seq, err := seqRepo.Next()
		if err != nil {
			return err
		}
		number = fmt.Sprintf(invoiceNumberFormat, seq)
		return invoiceRepo.SetIssued(invoiceID, number, now)
	})
	if err != nil {
		return "", err
	}
	return number, nil
}

// MarkPaid marca una factura emitida como pagada. Solo ISSUED → PAID.
func (uc *InvoiceUseCase) MarkPaid(ctx context.Context, actor authz.Actor, invoiceID string) error {
	now := time.Now()
	return uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.ProductRepository,
		_ repository.StockMovementRepository,
		_ repository.SequenceRepository,
	) error {
		inv, err := lockInvoice(invoiceRepo, invoiceID)
		if err != nil {
			return err
		}
		if !authz.IsOwnerOrAdmin(actor, inv) {
			return domain.ErrPermissionDenied
		}
		if !inv.CanMarkPaid() {
			return domain.ErrInvalidTransition
		}
		return invoiceRepo.SetStatus(invoiceID, entity.InvoiceStatusPaid, now)
	})
}

// Void anula una factura emitida o pagada, restituyendo el stock de todas
// sus líneas en la misma transacción (todo o nada). Las líneas se conservan
// como registro histórico pero dejan de reservar stock.
func (uc *InvoiceUseCase) Void(ctx context.Context, actor authz.Actor, invoiceID string) error {
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
		if !inv.CanVoid() {
			return domain.ErrInvalidTransition
		}
		lines, err := invoiceRepo.ListLines(invoiceID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := uc.ledger.Release(productRepo, movRepo, line.ProductID, invoiceID, actor.ID, line.Quantity, now); err != nil {
				return err
			}
		}
		return invoiceRepo.SetStatus(invoiceID, entity.InvoiceStatusVoided, now)
	})
}

// Delete elimina físicamente un borrador, devolviendo el stock reservado
// por sus líneas. Las facturas emitidas nunca se eliminan: falla con
// ErrCannotDeleteIssued indicando usar Void. Si reason no va vacío, la
// eliminación se registra en auditoría después del commit (fire-and-forget,
// fuera de la transacción del motor).
func (uc *InvoiceUseCase) Delete(ctx context.Context, actor authz.Actor, invoiceID, reason string) error {
	var description string
	now := time.Now()
	err := uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
		_ repository.SequenceRepository,
	) error {
		inv, err := lockInvoice(invoiceRepo, invoiceID)
		if err != nil {
			return err
		}
		if !authz.CanDelete(actor, inv) {
			return domain.ErrPermissionDenied
		}
		if !inv.CanDelete() {
			return domain.ErrCannotDeleteIssued
		}
		lines, err := invoiceRepo.ListLines(invoiceID)
		if err != nil {
			return err
		}
		// Una factura anulada ya restituyó su stock al anularse; liberar aquí
		// duplicaría la restitución. Nunca aplica en borradores, pero la guarda
		// protege el invariante si el estado cambiara alguna vez.
		if inv.Status != entity.InvoiceStatusVoided {
			for _, line := range lines {
				if err := uc.ledger.Release(productRepo, movRepo, line.ProductID, invoiceID, actor.ID, line.Quantity, now); err != nil {
					return err
				}
			}
		}
		description = fmt.Sprintf("Factura %s (%s, %d items)", invoiceID, inv.Status, len(lines))
		return invoiceRepo.Delete(invoiceID)
	})
	if err != nil {
		return err
	}
	if reason != "" && uc.audit != nil {
		uc.audit.RecordDeletion(ctx, "Invoice", invoiceID, description, reason, actor.ID)
	}
	return nil
}
