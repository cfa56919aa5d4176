package repository

import "github.com/facturasegura/api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos.
// GetForUpdate se usa dentro de transacciones para serializar el
// check-then-decrement del stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock persiste el nuevo stock. El valor nunca es negativo:
	// el Stock Ledger valida antes de llamar.
	UpdateStock(id string, stock int) error
}
