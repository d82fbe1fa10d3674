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

var _ repository.ReceiptRepository = (*ReceiptRepo)(nil)

// ReceiptRepo implementación de ReceiptRepository sobre PostgreSQL
// (usable con pool o tx).
type ReceiptRepo struct {
	q Querier
}

// NewReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptRepository(q Querier) *ReceiptRepo {
	return &ReceiptRepo{q: q}
}

// Create persiste cabecera y líneas.
func (r *ReceiptRepo) Create(ctx context.Context, rec *entity.Receipt) error {
	query := `
		INSERT INTO receipts (id, reference, warehouse_id, supplier_name, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.Reference, rec.WarehouseID, rec.SupplierName, rec.Status,
		rec.CreatedBy, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create receipt: %w", err)
	}
	return r.ReplaceLines(ctx, rec.ID, rec.Lines)
}

// GetByID devuelve el documento con sus líneas; nil si no existe.
func (r *ReceiptRepo) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate bloquea la fila del documento (SELECT FOR UPDATE) y carga las líneas.
func (r *ReceiptRepo) GetForUpdate(ctx context.Context, id string) (*entity.Receipt, error) {
	return r.get(ctx, id, true)
}

func (r *ReceiptRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Receipt, error) {
	query := `
		SELECT id, reference, warehouse_id, supplier_name, status,
		       created_by, validated_by, validated_at, created_at, updated_at
		FROM receipts WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var rec entity.Receipt
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.Reference, &rec.WarehouseID, &rec.SupplierName, &rec.Status,
		&rec.CreatedBy, &rec.ValidatedBy, &rec.ValidatedAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	lines, err := r.loadLines(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.Lines = lines
	return &rec, nil
}

// Update persiste cabecera y estado (no las líneas).
func (r *ReceiptRepo) Update(ctx context.Context, rec *entity.Receipt) error {
	query := `
		UPDATE receipts
		SET supplier_name = $2, status = $3, validated_by = $4, validated_at = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.SupplierName, rec.Status, rec.ValidatedBy, rec.ValidatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update receipt: %w", err)
	}
	return nil
}

// ReplaceLines reemplaza el conjunto completo de líneas del documento.
func (r *ReceiptRepo) ReplaceLines(ctx context.Context, receiptID string, lines []entity.ReceiptLine) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM receipt_lines WHERE receipt_id = $1`, receiptID); err != nil {
		return fmt.Errorf("delete receipt lines: %w", err)
	}
	for _, l := range lines {
		query := `
			INSERT INTO receipt_lines (id, receipt_id, product_id, location_id, quantity)
			VALUES ($1, $2, $3, $4, $5)`
		if _, err := r.q.Exec(ctx, query, l.ID, receiptID, l.ProductID, l.LocationID, l.Quantity); err != nil {
			return fmt.Errorf("insert receipt line: %w", err)
		}
	}
	return nil
}

// List lista recepciones por bodega y estado opcionales.
func (r *ReceiptRepo) List(ctx context.Context, warehouseID string, status entity.ReceiptStatus, limit, offset int) ([]*entity.Receipt, error) {
	query := `
		SELECT id, reference, warehouse_id, supplier_name, status,
		       created_by, validated_by, validated_at, created_at, updated_at
		FROM receipts WHERE 1=1`
	args := []any{}
	pos := 1
	if warehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
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
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Receipt
	for rows.Next() {
		var rec entity.Receipt
		if err := rows.Scan(
			&rec.ID, &rec.Reference, &rec.WarehouseID, &rec.SupplierName, &rec.Status,
			&rec.CreatedBy, &rec.ValidatedBy, &rec.ValidatedAt, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

func (r *ReceiptRepo) loadLines(ctx context.Context, receiptID string) ([]entity.ReceiptLine, error) {
	query := `
		SELECT id, receipt_id, product_id, location_id, quantity
		FROM receipt_lines WHERE receipt_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("load receipt lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.ReceiptLine
	for rows.Next() {
		var l entity.ReceiptLine
		if err := rows.Scan(&l.ID, &l.ReceiptID, &l.ProductID, &l.LocationID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan receipt line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
