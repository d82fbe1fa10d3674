package repository

import (
	"context"

	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
)

// RequisitionRepository define el puerto de persistencia para Requisition (DIP).
type RequisitionRepository interface {
	Create(ctx context.Context, r *entity.Requisition) error
	GetByID(ctx context.Context, id string) (*entity.Requisition, error)
	// GetForUpdate bloquea la fila del documento para serializar transiciones.
	GetForUpdate(ctx context.Context, id string) (*entity.Requisition, error)
	Update(ctx context.Context, r *entity.Requisition) error
	ReplaceLines(ctx context.Context, requisitionID string, lines []entity.RequisitionLine) error
	List(ctx context.Context, warehouseID string, status entity.RequisitionStatus, limit, offset int) ([]*entity.Requisition, error)
}
