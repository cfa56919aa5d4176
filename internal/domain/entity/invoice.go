package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una factura.
// DRAFT → ISSUED → PAID; ISSUED|PAID → VOIDED. VOIDED es absorbente.
const (
	InvoiceStatusDraft  = "DRAFT"  // Borrador: items editables, puede eliminarse
	InvoiceStatusIssued = "ISSUED" // Emitida: número asignado, items congelados
	InvoiceStatusPaid   = "PAID"   // Pagada
	InvoiceStatusVoided = "VOIDED" // Anulada: stock restituido
)

// Invoice representa la cabecera de una factura.
// Subtotal, Tax y Total son derivados: se recalculan en cada mutación de items
// y nunca se aceptan del cliente.
type Invoice struct {
	ID        string
	CreatorID string
	ClientID  string
	Date      time.Time // fecha de creación, inmutable
	Status    string
	Number    string // FAC-NNNNNN; vacío hasta la emisión, único e inmutable después
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEditable indica si los items de la factura pueden modificarse.
func (i *Invoice) IsEditable() bool {
	return i.Status == InvoiceStatusDraft
}

// CanEmit indica si la factura puede pasar a ISSUED.
func (i *Invoice) CanEmit() bool {
	return i.Status == InvoiceStatusDraft
}

// CanMarkPaid indica si la factura puede pasar a PAID.
func (i *Invoice) CanMarkPaid() bool {
	return i.Status == InvoiceStatusIssued
}

// CanVoid indica si la factura puede anularse (restituyendo stock).
func (i *Invoice) CanVoid() bool {
	return i.Status == InvoiceStatusIssued || i.Status == InvoiceStatusPaid
}

// CanDelete indica si la factura puede eliminarse físicamente.
// Las facturas emitidas no se eliminan: se anulan.
func (i *Invoice) CanDelete() bool {
	return i.Status == InvoiceStatusDraft
}

// InvoiceDayCount es el agregado de métricas: facturas creadas por día.
type InvoiceDayCount struct {
	Day   time.Time
	Count int
}
