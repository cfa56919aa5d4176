// Package billing contiene la lógica pura de facturación: cálculo de totales
// con tasa de impuesto configurable.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/facturasegura/api/internal/domain/entity"
)

// DefaultTaxRate es la tasa de IVA por defecto (15%). La tasa efectiva se
// inyecta por configuración; esta constante es solo el valor inicial.
var DefaultTaxRate = decimal.NewFromFloat(0.15)

// Totals agrupa los campos monetarios derivados de una factura.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// CalculateTotals deriva subtotal, impuesto y total a partir de las líneas.
// subtotal = Σ cantidad × precio; impuesto = round(subtotal × rate, 2);
// total = subtotal + impuesto. Los totales nunca se aceptan del cliente.
func CalculateTotals(lines []*entity.InvoiceLineDetail, rate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(rate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// ZeroTotals devuelve los totales de una factura sin líneas.
func ZeroTotals() Totals {
	return Totals{Subtotal: decimal.Zero, Tax: decimal.Zero, Total: decimal.Zero}
}
