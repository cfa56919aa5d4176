package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada: restitución por anulación o eliminación
	MovementTypeOUT = "OUT" // salida: reserva por línea de factura
)

// StockMovement es el registro histórico de cada ajuste del Stock Ledger.
// Quantity es negativa en salidas (OUT) y positiva en entradas (IN).
// InvoiceID referencia la factura que originó el ajuste.
type StockMovement struct {
	ID        string
	ProductID string
	InvoiceID string
	Type      string
	Quantity  int
	CreatedBy string
	CreatedAt time.Time
}
