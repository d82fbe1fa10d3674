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

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

// RequisitionRepo implementación de RequisitionRepository sobre PostgreSQL
// (usable con pool o tx).
type RequisitionRepo struct {
	q Querier
}

// NewRequisitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequisitionRepository(q Querier) *RequisitionRepo {
	return &RequisitionRepo{q: q}
}

const requisitionColumns = `id, reference, warehouse_id, final_source_warehouse_id, status, reject_reason,
	created_by, submitted_at, approved_by, approved_at, created_at, updated_at`

// Create persiste cabecera y líneas.
func (r *RequisitionRepo) Create(ctx context.Context, req *entity.Requisition) error {
	query := `
		INSERT INTO requisitions (` + requisitionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.Reference, req.WarehouseID, req.FinalSourceWarehouseID, req.Status, req.RejectReason,
		req.CreatedBy, req.SubmittedAt, req.ApprovedBy, req.ApprovedAt, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create requisition: %w", err)
	}
	return r.ReplaceLines(ctx, req.ID, req.Lines)
}

// GetByID devuelve el documento con sus líneas; nil si no existe.
func (r *RequisitionRepo) GetByID(ctx context.Context, id string) (*entity.Requisition, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate bloquea la fila del documento para serializar transiciones.
func (r *RequisitionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Requisition, error) {
	return r.get(ctx, id, true)
}

func (r *RequisitionRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Requisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM requisitions WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var req entity.Requisition
	err := r.q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.Reference, &req.WarehouseID, &req.FinalSourceWarehouseID, &req.Status, &req.RejectReason,
		&req.CreatedBy, &req.SubmittedAt, &req.ApprovedBy, &req.ApprovedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get requisition: %w", err)
	}
	lines, err := r.loadLines(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Lines = lines
	return &req, nil
}

// Update persiste cabecera y estado (no las líneas).
func (r *RequisitionRepo) Update(ctx context.Context, req *entity.Requisition) error {
	query := `
		UPDATE requisitions
		SET final_source_warehouse_id = $2, status = $3, reject_reason = $4,
		    submitted_at = $5, approved_by = $6, approved_at = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.FinalSourceWarehouseID, req.Status, req.RejectReason,
		req.SubmittedAt, req.ApprovedBy, req.ApprovedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update requisition: %w", err)
	}
	return nil
}

// ReplaceLines reemplaza el conjunto completo de líneas del documento.
func (r *RequisitionRepo) ReplaceLines(ctx context.Context, requisitionID string, lines []entity.RequisitionLine) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM requisition_lines WHERE requisition_id = $1`, requisitionID); err != nil {
		return fmt.Errorf("delete requisition lines: %w", err)
	}
	for _, l := range lines {
		query := `
			INSERT INTO requisition_lines (id, requisition_id, product_id, quantity, suggested_source_warehouse_id)
			VALUES ($1, $2, $3, $4, $5)`
		if _, err := r.q.Exec(ctx, query, l.ID, requisitionID, l.ProductID, l.Quantity, l.SuggestedSourceWarehouseID); err != nil {
			return fmt.Errorf("insert requisition line: %w", err)
		}
	}
	return nil
}

// List lista requisiciones por bodega solicitante y estado opcionales.
func (r *RequisitionRepo) List(ctx context.Context, warehouseID string, status entity.RequisitionStatus, limit, offset int) ([]*entity.Requisition, error) {
	query := `SELECT ` + requisitionColumns + ` FROM requisitions WHERE 1=1`
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
		return nil, fmt.Errorf("list requisitions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Requisition
	for rows.Next() {
		var req entity.Requisition
		if err := rows.Scan(
			&req.ID, &req.Reference, &req.WarehouseID, &req.FinalSourceWarehouseID, &req.Status, &req.RejectReason,
			&req.CreatedBy, &req.SubmittedAt, &req.ApprovedBy, &req.ApprovedAt, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan requisition: %w", err)
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}

func (r *RequisitionRepo) loadLines(ctx context.Context, requisitionID string) ([]entity.RequisitionLine, error) {
	query := `
		SELECT id, requisition_id, product_id, quantity, suggested_source_warehouse_id
		FROM requisition_lines WHERE requisition_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, requisitionID)
	if err != nil {
		return nil, fmt.Errorf("load requisition lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.RequisitionLine
	for rows.Next() {
		var l entity.RequisitionLine
		if err := rows.Scan(&l.ID, &l.RequisitionID, &l.ProductID, &l.Quantity, &l.SuggestedSourceWarehouseID); err != nil {
			return nil, fmt.Errorf("scan requisition line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
