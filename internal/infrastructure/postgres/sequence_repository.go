package postgres

import (
	"context"
	"fmt"

	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador atómico por tipo de documento sobre PostgreSQL.
// El incremento ocurre en la BD (upsert sobre el valor almacenado), así que
// dos emisiones concurrentes nunca reciben el mismo número.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next devuelve el siguiente número de la secuencia del tipo de documento,
// creándola en 1 si no existe.
func (r *SequenceRepo) Next(ctx context.Context, docType string) (int64, error) {
	query := `
		INSERT INTO document_sequences (doc_type, next_value)
		VALUES ($1, 1)
		ON CONFLICT (doc_type)
		DO UPDATE SET next_value = document_sequences.next_value + 1
		RETURNING next_value`
	var n int64
	if err := r.q.QueryRow(ctx, query, docType).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", docType, err)
	}
	return n, nil
}
