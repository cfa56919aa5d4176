package repository

import "github.com/facturasegura/api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para clientes.
// El motor de facturación solo necesita validar existencia; el resto es la
// superficie mínima que usa la API.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	List() ([]*entity.Client, error)
}
