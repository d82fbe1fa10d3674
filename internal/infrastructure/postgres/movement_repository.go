package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo INSERT y SELECT: la tabla no tiene UPDATE ni
// DELETE en ningún camino del código.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, product_id, warehouse_id, location_id,
	counterparty_warehouse_id, counterparty_location_id, delta, type,
	source_doc_type, source_doc_id, source_line_id, transfer_id, actor_id, created_at`

// Create agrega un movimiento al libro.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.WarehouseID, m.LocationID,
		m.CounterpartyWarehouseID, m.CounterpartyLocationID, m.Delta, m.Type,
		m.SourceDocType, m.SourceDocID, m.SourceLineID, m.TransferID, m.ActorID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List lista movimientos con filtros opcionales, más reciente primero.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	args := []any{}
	pos := 1
	if f.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.WarehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, f.WarehouseID)
		pos++
	}
	if f.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, f.Type)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// SumByKey re-suma los deltas del libro para la llave. Debe coincidir
// exactamente con la cantidad materializada; si no, el invariante está roto.
func (r *MovementRepo) SumByKey(ctx context.Context, productID, warehouseID, locationID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(delta), 0)
		FROM movements
		WHERE product_id = $1 AND warehouse_id = $2 AND location_id = $3`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID, warehouseID, locationID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum movements by key: %w", err)
	}
	return sum, nil
}

// ExistsBySource indica si un documento ya generó movimientos.
func (r *MovementRepo) ExistsBySource(ctx context.Context, sourceDocType, sourceDocID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM movements WHERE source_doc_type = $1 AND source_doc_id = $2)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, sourceDocType, sourceDocID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists movements by source: %w", err)
	}
	return exists, nil
}

// ListUnbalancedTransfers lista los traslados cuyos deltas no suman cero:
// la consulta de reconciliación para traslados parciales.
func (r *MovementRepo) ListUnbalancedTransfers(ctx context.Context) ([]repository.TransferImbalance, error) {
	query := `
		SELECT transfer_id, MIN(source_doc_type), MIN(source_doc_id),
		       SUM(delta), COUNT(*), MIN(created_at)
		FROM movements
		WHERE transfer_id <> ''
		GROUP BY transfer_id
		HAVING SUM(delta) <> 0
		ORDER BY MIN(created_at)`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list unbalanced transfers: %w", err)
	}
	defer rows.Close()

	var list []repository.TransferImbalance
	for rows.Next() {
		var t repository.TransferImbalance
		if err := rows.Scan(&t.TransferID, &t.SourceDocType, &t.SourceDocID, &t.Net, &t.Movements, &t.FirstSeen); err != nil {
			return nil, fmt.Errorf("scan transfer imbalance: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.ProductID, &m.WarehouseID, &m.LocationID,
		&m.CounterpartyWarehouseID, &m.CounterpartyLocationID, &m.Delta, &m.Type,
		&m.SourceDocType, &m.SourceDocID, &m.SourceLineID, &m.TransferID, &m.ActorID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
