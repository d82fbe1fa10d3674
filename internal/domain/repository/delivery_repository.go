package repository

import (
	"context"

	"github.com/Nirmal21D/StockMaster-sub001/internal/domain/entity"
)

// DeliveryRepository define el puerto de persistencia para Delivery (DIP).
type DeliveryRepository interface {
	Create(ctx context.Context, d *entity.Delivery) error
	GetByID(ctx context.Context, id string) (*entity.Delivery, error)
	// GetForUpdate bloquea la fila del documento para serializar validaciones.
	GetForUpdate(ctx context.Context, id string) (*entity.Delivery, error)
	Update(ctx context.Context, d *entity.Delivery) error
	ReplaceLines(ctx context.Context, deliveryID string, lines []entity.DeliveryLine) error
	List(ctx context.Context, warehouseID string, status entity.DeliveryStatus, limit, offset int) ([]*entity.Delivery, error)
}
