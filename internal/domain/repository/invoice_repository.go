package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/facturasegura/api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// GetForUpdate bloquea la fila de la factura (SELECT FOR UPDATE) para
	// serializar transiciones de estado y mutaciones de líneas concurrentes.
	GetForUpdate(id string) (*entity.Invoice, error)
	List() ([]*entity.Invoice, error)
	// UpdateTotals persiste los campos monetarios derivados.
	UpdateTotals(id string, subtotal, tax, total decimal.Decimal, updatedAt time.Time) error
	// SetStatus cambia el estado (PAID, VOIDED).
	SetStatus(id, status string, updatedAt time.Time) error
	// SetIssued asigna número y estado ISSUED en una sola sentencia.
	// El número tiene constraint UNIQUE como respaldo del generador.
	SetIssued(id, number string, updatedAt time.Time) error
	// Delete elimina la factura; las líneas caen en cascada.
	Delete(id string) error

	CreateLine(line *entity.InvoiceLine) error
	GetLine(lineID string) (*entity.InvoiceLine, error)
	DeleteLine(lineID string) error
	DeleteLines(invoiceID string) error
	ListLines(invoiceID string) ([]*entity.InvoiceLine, error)
	// ListLineDetails devuelve las líneas con nombre y precio actual del
	// producto (JOIN), para recalcular totales y armar respuestas.
	ListLineDetails(invoiceID string) ([]*entity.InvoiceLineDetail, error)
	CountLines(invoiceID string) (int, error)
	// CountByDay cuenta facturas por día en los últimos days días (métricas).
	CountByDay(days int) ([]entity.InvoiceDayCount, error)
}
