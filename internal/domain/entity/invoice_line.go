package entity

import "github.com/shopspring/decimal"

// InvoiceLine representa un item de una factura. Mientras la factura no esté
// anulada, cada línea mantiene una reserva de stock por Quantity unidades.
type InvoiceLine struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  int
}

// InvoiceLineDetail es el modelo de lectura de una línea con los datos del
// producto necesarios para calcular totales (JOIN con products).
type InvoiceLineDetail struct {
	InvoiceLine
	ProductName string
	UnitPrice   decimal.Decimal
}
