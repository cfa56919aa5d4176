package repository

// SequenceRepository define el puerto del generador de consecutivos de
// factura. Next debe ejecutarse dentro de la misma transacción que la
// emisión: el incremento serializa emisiones concurrentes mediante el
// bloqueo de fila del contador.
type SequenceRepository interface {
	// Next incrementa el contador y devuelve el nuevo valor (estrictamente
	// creciente, comienza en 1).
	Next() (int64, error)
}
