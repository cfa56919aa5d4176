// Package billing implementa el motor de facturación: ciclo de vida de la
// factura (borrador → emitida → pagada / anulada), gestión de líneas con
// ajuste compensatorio de stock y asignación del consecutivo, todo dentro
// de una transacción por operación.
package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/facturasegura/api/internal/domain"
	domainbilling "github.com/facturasegura/api/internal/domain/billing"
	"github.com/facturasegura/api/internal/domain/entity"
	"github.com/facturasegura/api/internal/domain/repository"
)

// InvoiceUseCase orquesta las operaciones sobre facturas. El Authorization
// Gate (domain/authz) se consulta antes que la máquina de estados; las
// mutaciones de stock las hace el Stock Ledger dentro de la misma tx.
type InvoiceUseCase struct {
	txRunner    TxRunner
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	ledger      Ledger
	audit       AuditSink
	taxRate     decimal.Decimal
}

// NewInvoiceUseCase construye el caso de uso. taxRate es la tasa de impuesto
// inyectada por configuración (por defecto 0.15).
func NewInvoiceUseCase(
	txRunner TxRunner,
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	ledger Ledger,
	audit AuditSink,
	taxRate decimal.Decimal,
) *InvoiceUseCase {
	if taxRate.IsZero() {
		taxRate = domainbilling.DefaultTaxRate
	}
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		ledger:      ledger,
		audit:       audit,
		taxRate:     taxRate,
	}
}

// CreateInvoice crea una factura en borrador, sin líneas y con totales en
// cero. creatorID es el actor autenticado; el cliente debe existir.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, creatorID, clientID string) (*entity.Invoice, error) {
	if clientID == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	inv := &entity.Invoice{
		ID:        uuid.New().String(),
		CreatorID: creatorID,
		ClientID:  clientID,
		Date:      now,
		Status:    entity.InvoiceStatusDraft,
		Subtotal:  decimal.Zero,
		Tax:       decimal.Zero,
		Total:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.invoiceRepo.Create(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetInvoice obtiene una factura con sus líneas y totales derivados.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*entity.Invoice, []*entity.InvoiceLineDetail, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}
	details, err := uc.invoiceRepo.ListLineDetails(id)
	if err != nil {
		return nil, nil, err
	}
	return inv, details, nil
}

// ListInvoices lista las facturas (resumen, sin líneas).
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context) ([]*entity.Invoice, error) {
	return uc.invoiceRepo.List()
}

// Metrics cuenta facturas por día en los últimos 7 días.
func (uc *InvoiceUseCase) Metrics(ctx context.Context) ([]entity.InvoiceDayCount, error) {
	return uc.invoiceRepo.CountByDay(7)
}

// recalcTotals recalcula y persiste los totales derivados a partir de las
// líneas actuales. Debe llamarse dentro de la transacción que mutó las líneas.
func (uc *InvoiceUseCase) recalcTotals(invoiceRepo repository.InvoiceRepository, invoiceID string, now time.Time) error {
	details, err := invoiceRepo.ListLineDetails(invoiceID)
	if err != nil {
		return err
	}
	t := domainbilling.CalculateTotals(details, uc.taxRate)
	return invoiceRepo.UpdateTotals(invoiceID, t.Subtotal, t.Tax, t.Total, now)
}
