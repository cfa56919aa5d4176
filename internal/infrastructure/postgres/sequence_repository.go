package postgres

import (
	"context"
	"fmt"

	"github.com/facturasegura/api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo implementación de SequenceRepository sobre una tabla contador
// de una fila. El UPDATE del upsert toma un bloqueo de fila, así que dos
// emisiones concurrentes se serializan y nunca obtienen el mismo valor.
type SequenceRepo struct {
	q Querier
}

func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa el contador de facturas y devuelve el nuevo valor.
// Debe ejecutarse dentro de la transacción de emisión: si la emisión falla
// después, el rollback también devuelve el contador.
func (r *SequenceRepo) Next() (int64, error) {
	query := `
		INSERT INTO invoice_counters (id, last_value) VALUES (1, 1)
		ON CONFLICT (id) DO UPDATE SET last_value = invoice_counters.last_value + 1
		RETURNING last_value`
	var value int64
	if err := r.q.QueryRow(context.Background(), query).Scan(&value); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return value, nil
}
