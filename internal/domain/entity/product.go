package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Stock nunca es negativo; se modifica únicamente a través del Stock Ledger
// (application/inventory) dentro de una transacción.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta, 2 decimales
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
