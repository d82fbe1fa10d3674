package repository

import (
	"context"

	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
)

// AdjustmentRepository define el puerto de persistencia para Adjustment (DIP).
// Los ajustes son documentos de un solo paso: se crean y no se modifican.
type AdjustmentRepository interface {
	Create(ctx context.Context, a *entity.Adjustment) error
	GetByID(ctx context.Context, id string) (*entity.Adjustment, error)
	List(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.Adjustment, error)
}
