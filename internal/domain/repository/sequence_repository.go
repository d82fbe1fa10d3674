package repository

import "context"

// SequenceRepository define el puerto del contador atómico por tipo de
// documento, usado por el servicio de numeración. El incremento ocurre sobre
// el valor almacenado para que los números no se repitan bajo concurrencia.
type SequenceRepository interface {
	Next(ctx context.Context, docType string) (int64, error)
}
