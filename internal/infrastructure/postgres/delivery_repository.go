package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Nirmal21D/StockMaster-sub001/internal/domain"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación de DeliveryRepository sobre PostgreSQL
// (usable con pool o tx).
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

const deliveryColumns = `id, reference, source_warehouse_id, dest_warehouse_id, status, transfer_id,
	created_by, validated_by, validated_at, accepted_by, accepted_at, created_at, updated_at`

// Create persiste cabecera y líneas.
func (r *DeliveryRepo) Create(ctx context.Context, d *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Reference, d.SourceWarehouseID, d.DestWarehouseID, d.Status, d.TransferID,
		d.CreatedBy, d.ValidatedBy, d.ValidatedAt, d.AcceptedBy, d.AcceptedAt, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create delivery: %w", err)
	}
	return r.ReplaceLines(ctx, d.ID, d.Lines)
}

// GetByID devuelve el documento con sus líneas; nil si no existe.
func (r *DeliveryRepo) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate bloquea la fila del documento para serializar validaciones.
func (r *DeliveryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Delivery, error) {
	return r.get(ctx, id, true)
}

func (r *DeliveryRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var d entity.Delivery
	err := r.q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Reference, &d.SourceWarehouseID, &d.DestWarehouseID, &d.Status, &d.TransferID,
		&d.CreatedBy, &d.ValidatedBy, &d.ValidatedAt, &d.AcceptedBy, &d.AcceptedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	lines, err := r.loadLines(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Lines = lines
	return &d, nil
}

// Update persiste cabecera y estado (no las líneas).
func (r *DeliveryRepo) Update(ctx context.Context, d *entity.Delivery) error {
	query := `
		UPDATE deliveries
		SET dest_warehouse_id = $2, status = $3, transfer_id = $4,
		    validated_by = $5, validated_at = $6, accepted_by = $7, accepted_at = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.DestWarehouseID, d.Status, d.TransferID,
		d.ValidatedBy, d.ValidatedAt, d.AcceptedBy, d.AcceptedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	return nil
}

// ReplaceLines reemplaza el conjunto completo de líneas del documento.
func (r *DeliveryRepo) ReplaceLines(ctx context.Context, deliveryID string, lines []entity.DeliveryLine) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM delivery_lines WHERE delivery_id = $1`, deliveryID); err != nil {
		return fmt.Errorf("delete delivery lines: %w", err)
	}
	for _, l := range lines {
		query := `
			INSERT INTO delivery_lines (id, delivery_id, product_id, from_location_id, to_location_id, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := r.q.Exec(ctx, query, l.ID, deliveryID, l.ProductID, l.FromLocationID, l.ToLocationID, l.Quantity); err != nil {
			return fmt.Errorf("insert delivery line: %w", err)
		}
	}
	return nil
}

// List lista entregas por bodega origen y estado opcionales.
func (r *DeliveryRepo) List(ctx context.Context, warehouseID string, status entity.DeliveryStatus, limit, offset int) ([]*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE 1=1`
	args := []any{}
	pos := 1
	if warehouseID != "" {
		query += fmt.Sprintf(" AND source_warehouse_id = $%d", pos)
		args = append(args, warehouseID)
		pos++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var list []*entity.Delivery
	for rows.Next() {
		var d entity.Delivery
		if err := rows.Scan(
			&d.ID, &d.Reference, &d.SourceWarehouseID, &d.DestWarehouseID, &d.Status, &d.TransferID,
			&d.CreatedBy, &d.ValidatedBy, &d.ValidatedAt, &d.AcceptedBy, &d.AcceptedAt, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *DeliveryRepo) loadLines(ctx context.Context, deliveryID string) ([]entity.DeliveryLine, error) {
	query := `
		SELECT id, delivery_id, product_id, from_location_id, to_location_id, quantity
		FROM delivery_lines WHERE delivery_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("load delivery lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.DeliveryLine
	for rows.Next() {
		var l entity.DeliveryLine
		if err := rows.Scan(&l.ID, &l.DeliveryID, &l.ProductID, &l.FromLocationID, &l.ToLocationID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan delivery line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
